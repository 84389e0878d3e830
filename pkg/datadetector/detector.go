// Package datadetector recognizes free-text phone numbers, postal addresses
// and dates with rule-based patterns. It stands in for a platform data
// detector: recall is limited to the North American and ISO formats encoded
// below, and precision depends on the validation hooks of each detector.
package datadetector

import (
	"fmt"
	"log/slog"

	"github.com/dlclark/regexp2"
)

// Span is one detector hit, positioned in runes
type Span struct {
	Start  int
	Length int
	Text   string
	// OuterStart and OuterLength bound the whole pattern match when the hit
	// was narrowed to part of it. A zero OuterLength means the hit is the
	// whole match.
	OuterStart  int
	OuterLength int
}

// End returns the rune index just past the span
func (s Span) End() int {
	return s.Start + s.Length
}

func (s Span) String() string {
	return fmt.Sprintf("Span{start:%d,length:%d,text:%q}", s.Start, s.Length, s.Text)
}

// Detector finds spans of one data type in text
type Detector interface {
	// Detect returns non-overlapping hits in left-to-right order
	Detect(text []rune) []Span
	// Name identifies the data type, e.g. "phone"
	Name() string
}

// RegexDetector is a Detector driven by a single alternation pattern and an
// optional validation hook that rejects syntactically plausible but invalid hits.
type RegexDetector struct {
	name     string
	pattern  *regexp2.Regexp
	validate func(string) bool
}

// NewRegexDetector compiles pattern into a detector
func NewRegexDetector(name, pattern string, opts regexp2.RegexOptions, validate func(string) bool) (*RegexDetector, error) {
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("compiling %s detector: %w", name, err)
	}
	return &RegexDetector{name: name, pattern: re, validate: validate}, nil
}

// MustRegexDetector is like NewRegexDetector but panics on an invalid pattern
func MustRegexDetector(name, pattern string, opts regexp2.RegexOptions, validate func(string) bool) *RegexDetector {
	d, err := NewRegexDetector(name, pattern, opts, validate)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the detector name
func (d *RegexDetector) Name() string {
	return d.name
}

// Detect scans text left to right
func (d *RegexDetector) Detect(text []rune) []Span {
	var spans []Span

	m, err := d.pattern.FindRunesMatch(text)
	for m != nil && err == nil {
		candidate := m.String()
		if d.validate == nil || d.validate(candidate) {
			spans = append(spans, Span{Start: m.Index, Length: m.Length, Text: candidate})
		}
		m, err = d.pattern.FindNextMatch(m)
	}
	if err != nil {
		slog.Debug("detector stopped", "detector", d.name, "error", err)
	}

	return spans
}

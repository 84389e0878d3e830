package activelabel

import (
	"fmt"
	"log/slog"
)

// RawMatch is an unprocessed hit before sigil stripping, trimming and filtering
type RawMatch struct {
	Range Range
	Text  string
}

func (m RawMatch) String() string {
	return fmt.Sprintf("RawMatch{range:%s,text:%q}", m.Range, m.Text)
}

// Engine runs the matcher of one kind over a text range
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine bound to registry. A nil registry selects the
// process-wide default.
func NewEngine(registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Engine{registry: registry}
}

// Registry returns the registry the engine compiles through
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Match returns the raw matches of kind inside search, left to right.
// A kind that cannot be compiled yields no matches.
func (e *Engine) Match(idx *TextIndex, kind Kind, search Range) []RawMatch {
	matcher, err := e.registry.Compile(kind)
	if err != nil {
		slog.Debug("Skipping kind", "kind", kind.String(), "error", err)
		return nil
	}

	start, end := idx.RuneSpan(search)
	spans := matcher.Detect(idx.Runes()[start:end])

	matches := make([]RawMatch, 0, len(spans))
	for _, span := range spans {
		r := idx.RangeOfRunes(start+span.Start, span.Length)
		// the length rule counts the separator a pattern consumed
		whole := r
		if span.OuterLength > 0 {
			whole = idx.RangeOfRunes(start+span.OuterStart, span.OuterLength)
		}
		if whole.Length <= kind.minLength() {
			continue
		}
		matches = append(matches, RawMatch{Range: r, Text: span.Text})
	}

	slog.Debug("Matched kind", "kind", kind.String(), "count", len(matches))
	return matches
}

package activelabel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Hanaasagi/activelabel/pkg/datadetector"
)

// ErrDetectorUnavailable is returned when no data detector is installed for a kind
var ErrDetectorUnavailable = errors.New("data detector unavailable")

// Matcher finds raw hits in text. Both compiled patterns and data detectors
// satisfy it.
type Matcher interface {
	Detect(text []rune) []datadetector.Span
}

// MatchPattern represents a pattern that should be matched
type MatchPattern struct {
	Name    string
	Pattern string
}

var BuiltinPatterns = []MatchPattern{
	// a '#' at start of text or after whitespace
	{"hashtag", `(?:^|\s|$)(?<match>#[\p{L}0-9_]*)`},
	// an '@' at start of text, after whitespace or after a dot
	{"mention", `(?:^|\s|$|[.])(?<match>@[\p{L}0-9_]*)`},
	// The look-ahead keeps trailing sentence punctuation out of the URL.
	{"url", `(?:^|[\s.:;?\-\]<(])` +
		`(?<match>(?:https?://|www\.|pic\.)[-\w;/?:@&=+$|.!~*'()\[\]%#,☺]+[\w/#](?:\(\))?)` +
		`(?=$|[\s',|().:;?\-\[\]>])`},
	{"email", `[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}`},
	// mm:ss or h:mm:ss not glued to other digits
	{"timestamp", `(?<![\d:])(?<match>(?:\d{1,2}:)?\d{1,2}:\d{2})(?![\d:])`},
}

// Registry resolves element kinds to matchers. Regex kinds are compiled
// through the shared PatternCache; phone, address and date kinds are served
// by data detectors.
type Registry struct {
	cache     *PatternCache
	mutex     sync.RWMutex
	detectors map[Kind]Matcher
}

// NewRegistry creates a registry over cache with the rule-based detectors installed
func NewRegistry(cache *PatternCache) *Registry {
	if cache == nil {
		cache = NewPatternCache()
	}
	return &Registry{
		cache: cache,
		detectors: map[Kind]Matcher{
			KindPhone:   datadetector.Phone(),
			KindAddress: datadetector.Address(),
			KindDate:    datadetector.Date(),
		},
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry used by parsers created
// without WithRegistry
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(NewPatternCache())
	})
	return defaultRegistry
}

// Cache returns the compiled-pattern cache owned by the registry
func (r *Registry) Cache() *PatternCache {
	return r.cache
}

// SetDetector installs d for a detector-backed kind. A nil detector marks
// the kind as unavailable.
func (r *Registry) SetDetector(kind Kind, d Matcher) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if d == nil {
		delete(r.detectors, kind)
		return
	}
	r.detectors[kind] = d
}

// Compile returns the matcher for kind
func (r *Registry) Compile(kind Kind) (Matcher, error) {
	if kind.usesDetector() {
		r.mutex.RLock()
		d, ok := r.detectors[kind]
		r.mutex.RUnlock()
		if !ok {
			return nil, fmt.Errorf("%s: %w", kind, ErrDetectorUnavailable)
		}
		return d, nil
	}

	name, pattern := "custom", kind.Pattern()
	if !kind.IsCustom() {
		name, pattern = "", ""
		for _, p := range BuiltinPatterns {
			if p.Name == kind.Name() {
				name, pattern = p.Name, p.Pattern
				break
			}
		}
		if name == "" {
			return nil, fmt.Errorf("no pattern registered for kind %s", kind)
		}
	}

	compiled, err := r.cache.GetCompiledPattern(name, pattern)
	if err != nil {
		return nil, err
	}
	return compiled, nil
}

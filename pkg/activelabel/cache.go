package activelabel

import (
	"fmt"

	"github.com/dlclark/regexp2"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Hanaasagi/activelabel/pkg/datadetector"
)

// matchGroup narrows a hit to the named group when a pattern defines it, so
// a pattern may consume a leading separator without reporting it
const matchGroup = "match"

// CompiledPattern stores a compiled regex with its name
type CompiledPattern struct {
	Name    string
	Pattern *regexp2.Regexp
}

// Detect returns every non-overlapping match, leftmost first
func (cp *CompiledPattern) Detect(text []rune) []datadetector.Span {
	var spans []datadetector.Span

	m, err := cp.Pattern.FindRunesMatch(text)
	for m != nil && err == nil {
		span := datadetector.Span{Start: m.Index, Length: m.Length, Text: m.String()}
		if g := m.GroupByName(matchGroup); g != nil && len(g.Captures) > 0 && g.Length > 0 {
			span = datadetector.Span{
				Start:       g.Index,
				Length:      g.Length,
				Text:        g.String(),
				OuterStart:  m.Index,
				OuterLength: m.Length,
			}
		}
		spans = append(spans, span)
		m, err = cp.Pattern.FindNextMatch(m)
	}

	return spans
}

// PatternCache provides thread-safe caching of compiled regex patterns.
// Entries never expire; a pattern is compiled at most once per key unless two
// goroutines miss at the same time, in which case the first insert wins.
type PatternCache struct {
	cache *gocache.Cache
}

// NewPatternCache creates an empty cache
func NewPatternCache() *PatternCache {
	return &PatternCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// GetCompiledPattern returns a cached compiled pattern or compiles and caches it.
// Patterns are compiled case-insensitively.
func (pc *PatternCache) GetCompiledPattern(name, pattern string) (*CompiledPattern, error) {
	key := name + ":" + pattern

	if cached, found := pc.cache.Get(key); found {
		if compiled, ok := cached.(*CompiledPattern); ok {
			return compiled, nil
		}
	}

	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		return nil, fmt.Errorf("compiling %s pattern %q: %w", name, pattern, err)
	}

	compiled := &CompiledPattern{Name: name, Pattern: re}
	if err := pc.cache.Add(key, compiled, gocache.NoExpiration); err != nil {
		// lost the race; reuse the winner so callers share one instance
		if cached, found := pc.cache.Get(key); found {
			if winner, ok := cached.(*CompiledPattern); ok {
				return winner, nil
			}
		}
	}

	return compiled, nil
}

// Len returns the number of cached patterns
func (pc *PatternCache) Len() int {
	return pc.cache.ItemCount()
}

// Flush drops every cached pattern
func (pc *PatternCache) Flush() {
	pc.cache.Flush()
}

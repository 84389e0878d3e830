// Package activelabel extracts mentions, hashtags, URLs, emails, phone
// numbers, addresses, dates, timestamps and caller-defined patterns from text
// as typed elements with UTF-16 ranges.
package activelabel

import "log/slog"

// DefaultKinds are the kinds DefaultConfig enables
var DefaultKinds = []Kind{KindMention, KindHashtag, KindURL}

// CustomPattern is a caller regular expression and the name it is reported under
type CustomPattern struct {
	Pattern    string `toml:"pattern" json:"pattern" yaml:"pattern"`
	Identifier string `toml:"identifier" json:"identifier" yaml:"identifier"`
}

// Config is the input of a parse
type Config struct {
	Enabled        []Kind
	CustomPatterns []CustomPattern
	MentionFilter  FilterFunc
	HashtagFilter  FilterFunc
	// MaxURLLength is the display length URLs are cut to; <= 0 disables trimming
	MaxURLLength int
}

// DefaultConfig enables mentions, hashtags and URLs
func DefaultConfig() Config {
	return Config{Enabled: append([]Kind(nil), DefaultKinds...)}
}

// Kinds returns the enabled kinds without duplicates followed by one custom
// kind per distinct custom pattern
func (c Config) Kinds() []Kind {
	seen := make(map[Kind]bool, len(c.Enabled)+len(c.CustomPatterns))
	kinds := make([]Kind, 0, len(c.Enabled)+len(c.CustomPatterns))
	add := func(k Kind) {
		if k.IsZero() || seen[k] {
			return
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	for _, k := range c.Enabled {
		add(k)
	}
	for _, p := range c.CustomPatterns {
		add(CustomKind(p.Pattern))
	}
	return kinds
}

// Name returns the display name of kind: the identifier for custom patterns,
// the kind name otherwise
func (c Config) Name(kind Kind) string {
	if kind.IsCustom() {
		for _, p := range c.CustomPatterns {
			if p.Pattern == kind.Pattern() && p.Identifier != "" {
				return p.Identifier
			}
		}
	}
	return kind.String()
}

func (c Config) filter(kind Kind) FilterFunc {
	switch kind {
	case KindMention:
		return c.MentionFilter
	case KindHashtag:
		return c.HashtagFilter
	default:
		return nil
	}
}

// ElementMap holds the tuples of each enabled kind in pass order. Every
// enabled kind has an entry, possibly empty.
type ElementMap struct {
	order   []Kind
	entries map[Kind][]ElementTuple
}

func newElementMap() *ElementMap {
	return &ElementMap{entries: make(map[Kind][]ElementTuple)}
}

func (m *ElementMap) set(kind Kind, tuples []ElementTuple) {
	if _, ok := m.entries[kind]; !ok {
		m.order = append(m.order, kind)
	}
	if tuples == nil {
		tuples = []ElementTuple{}
	}
	m.entries[kind] = tuples
}

// Kinds returns the keys in pass order
func (m *ElementMap) Kinds() []Kind {
	return append([]Kind(nil), m.order...)
}

// Get returns the tuples of kind and whether the kind was parsed
func (m *ElementMap) Get(kind Kind) ([]ElementTuple, bool) {
	tuples, ok := m.entries[kind]
	return tuples, ok
}

// Len returns the total number of tuples
func (m *ElementMap) Len() int {
	n := 0
	for _, tuples := range m.entries {
		n += len(tuples)
	}
	return n
}

// All returns every tuple, kinds in pass order and tuples left to right within a kind
func (m *ElementMap) All() []ElementTuple {
	all := make([]ElementTuple, 0, m.Len())
	for _, k := range m.order {
		all = append(all, m.entries[k]...)
	}
	return all
}

// Result is the output of a parse
type Result struct {
	// Text is the buffer after URL trimming; all ranges index into it
	Text     string
	Elements *ElementMap
}

// Parser runs the staged pipeline: URL trimming first, then every other
// enabled kind over the trimmed text
type Parser struct {
	engine  *Engine
	builder *Builder
}

// Option configures a Parser
type Option func(*Parser)

// WithRegistry makes the parser compile through r instead of the default registry
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		p.engine = NewEngine(r)
	}
}

// NewParser creates a parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.engine == nil {
		p.engine = NewEngine(nil)
	}
	p.builder = NewBuilder(p.engine)
	return p
}

// Engine returns the match engine
func (p *Parser) Engine() *Engine {
	return p.engine
}

// Parse extracts the elements of every kind cfg enables
func (p *Parser) Parse(text string, cfg Config) Result {
	kinds := cfg.Kinds()
	elements := newElementMap()

	for _, k := range kinds {
		if k == KindURL {
			var urls []ElementTuple
			urls, text = TrimURLs(p.engine, text, cfg.MaxURLLength)
			elements.set(KindURL, urls)
			break
		}
	}

	idx := NewTextIndex(text)
	for _, k := range kinds {
		if k == KindURL {
			continue
		}
		raw := p.engine.Match(idx, k, idx.FullRange())
		elements.set(k, p.builder.Build(idx, raw, k, cfg.filter(k)))
	}

	slog.Debug("Parsed text", "kinds", len(kinds), "elements", elements.Len())
	return Result{Text: text, Elements: elements}
}

package activelabel

// Label holds a text together with its parse configuration and handlers and
// keeps the parsed elements current. Every setter reparses the whole text;
// use Customize to apply several changes with a single parse.
// A Label is not safe for concurrent use.
type Label struct {
	parser   *Parser
	handlers *Handlers
	config   Config
	source   string
	result   Result

	batchDepth int
	parses     int
}

// NewLabel creates an empty label parsing with DefaultConfig. A nil parser
// uses the default registry.
func NewLabel(parser *Parser) *Label {
	if parser == nil {
		parser = NewParser()
	}
	l := &Label{
		parser:   parser,
		handlers: NewHandlers(),
		config:   DefaultConfig(),
	}
	l.result = Result{Elements: newElementMap()}
	return l
}

func (l *Label) update() {
	if l.batchDepth > 0 {
		return
	}
	l.result = l.parser.Parse(l.source, l.config)
	l.parses++
}

// Customize runs fn and parses once afterwards. Nested calls join the
// outermost batch.
func (l *Label) Customize(fn func(l *Label)) *Label {
	l.batchDepth++
	func() {
		defer func() { l.batchDepth-- }()
		fn(l)
	}()
	l.update()
	return l
}

func (l *Label) SetText(text string) {
	l.source = text
	l.update()
}

func (l *Label) SetEnabled(kinds ...Kind) {
	l.config.Enabled = append([]Kind(nil), kinds...)
	l.update()
}

func (l *Label) SetCustomPatterns(patterns ...CustomPattern) {
	l.config.CustomPatterns = append([]CustomPattern(nil), patterns...)
	l.update()
}

func (l *Label) SetMentionFilter(f FilterFunc) {
	l.config.MentionFilter = f
	l.update()
}

func (l *Label) SetHashtagFilter(f FilterFunc) {
	l.config.HashtagFilter = f
	l.update()
}

func (l *Label) SetMaxURLLength(n int) {
	l.config.MaxURLLength = n
	l.update()
}

// SetConfig replaces the whole configuration
func (l *Label) SetConfig(cfg Config) {
	l.config = cfg
	l.update()
}

// Config returns the current configuration
func (l *Label) Config() Config {
	return l.config
}

// Source returns the text as set, before URL trimming
func (l *Label) Source() string {
	return l.source
}

// Text returns the displayed text, after URL trimming
func (l *Label) Text() string {
	return l.result.Text
}

// Elements returns the elements of the last parse
func (l *Label) Elements() *ElementMap {
	return l.result.Elements
}

// Handlers returns the label's handler table
func (l *Label) Handlers() *Handlers {
	return l.handlers
}

// Parses returns how many times the label has parsed its text
func (l *Label) Parses() int {
	return l.parses
}

// ElementAt returns the element covering the UTF-16 offset. When ranges of
// several kinds overlap, the kind parsed last wins.
func (l *Label) ElementAt(offset int) (ElementTuple, bool) {
	var (
		found ElementTuple
		ok    bool
	)
	for _, t := range l.result.Elements.All() {
		if t.Range.Contains(offset) {
			found, ok = t, true
		}
	}
	return found, ok
}

// Select dispatches the element at offset through the handler table. It
// reports false when no element covers the offset.
func (l *Label) Select(offset int) (ElementTuple, bool) {
	t, ok := l.ElementAt(offset)
	if !ok {
		return ElementTuple{}, false
	}
	l.handlers.Dispatch(t)
	return t, true
}

package activelabel

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
)

// Selection is what a handler receives when an element is chosen
type Selection struct {
	Kind    Kind
	Element Element
	// Text is the selected text with the mention or hashtag sigil restored
	Text string
	// URL is set for URL selections
	URL *url.URL
}

// HandlerFunc is invoked for a selected element of the kind it is registered for
type HandlerFunc func(sel Selection)

// Handlers maps kinds to callbacks, with a fallback for kinds that have none.
// It is safe for concurrent use.
type Handlers struct {
	mutex    sync.RWMutex
	handlers map[Kind]HandlerFunc
	fallback func(text string, kind Kind)
}

// NewHandlers creates an empty handler table
func NewHandlers() *Handlers {
	return &Handlers{handlers: make(map[Kind]HandlerFunc)}
}

// Register binds fn to kind, replacing any previous binding
func (h *Handlers) Register(kind Kind, fn HandlerFunc) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if fn == nil {
		delete(h.handlers, kind)
		return
	}
	h.handlers[kind] = fn
}

// Remove unbinds kind
func (h *Handlers) Remove(kind Kind) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.handlers, kind)
}

// RemoveAll unbinds every kind. The fallback is kept.
func (h *Handlers) RemoveAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.handlers = make(map[Kind]HandlerFunc)
}

// SetFallback installs the callback used by Dispatch when Resolve reports
// the element as unhandled
func (h *Handlers) SetFallback(fn func(text string, kind Kind)) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.fallback = fn
}

// Resolve invokes the handler bound to the tuple's kind. It reports whether a
// handler ran together with the selected text. URLs that cannot be parsed are
// never passed to a handler.
func (h *Handlers) Resolve(t ElementTuple) (bool, string) {
	selected := selectedText(t)

	h.mutex.RLock()
	fn, ok := h.handlers[t.Kind]
	h.mutex.RUnlock()
	if !ok {
		return false, selected
	}

	sel := Selection{Kind: t.Kind, Element: t.Element, Text: selected}
	if t.Kind == KindURL {
		u, err := parseURL(selected)
		if err != nil {
			slog.Debug("Unresolvable URL", "url", selected, "error", err)
			return false, selected
		}
		sel.URL = u
	}

	fn(sel)
	return true, selected
}

// Dispatch resolves t and calls the fallback when no handler took it
func (h *Handlers) Dispatch(t ElementTuple) bool {
	handled, selected := h.Resolve(t)
	if handled {
		return true
	}

	h.mutex.RLock()
	fallback := h.fallback
	h.mutex.RUnlock()
	if fallback != nil {
		fallback(selected, t.Kind)
	}
	return false
}

func selectedText(t ElementTuple) string {
	if t.Element == nil {
		return ""
	}
	text := t.Element.Text()
	if sigil := t.Kind.sigil(); sigil != "" && !strings.HasPrefix(text, sigil) {
		text = sigil + text
	}
	return text
}

var errEmptyURL = errors.New("empty url")

// parseURL percent-escapes raw with the query-allowed set and parses it
func parseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errEmptyURL
	}
	return url.Parse(escapeQueryAllowed(raw))
}

const upperHex = "0123456789ABCDEF"

// escapeQueryAllowed percent-encodes every byte outside the URL query
// character set. Existing escapes are kept as they are.
func escapeQueryAllowed(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case queryAllowed(c):
			sb.WriteByte(c)
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			sb.WriteByte(c)
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperHex[c>>4])
			sb.WriteByte(upperHex[c&15])
		}
	}
	return sb.String()
}

func queryAllowed(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~!$&'()*+,;=:@/?", c) >= 0
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

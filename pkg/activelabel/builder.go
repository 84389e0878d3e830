package activelabel

import (
	"strings"
	"unicode"
)

// FilterFunc decides whether an extracted mention or hashtag is kept
type FilterFunc func(text string) bool

// Builder turns raw matches into typed element tuples
type Builder struct {
	engine *Engine
}

// NewBuilder creates a builder. The engine is used to decide whether the tail
// of a chapter line is plain title text.
func NewBuilder(engine *Engine) *Builder {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Builder{engine: engine}
}

// Build converts the raw matches of one kind. The filter only applies to
// mentions and hashtags; nil accepts everything.
func (b *Builder) Build(idx *TextIndex, raw []RawMatch, kind Kind, filter FilterFunc) []ElementTuple {
	runes := idx.Runes()
	tuples := make([]ElementTuple, 0, len(raw))

	for _, m := range raw {
		start, end := idx.RuneSpan(m.Range)
		for start < end && unicode.IsSpace(runes[start]) {
			start++
		}
		for end > start && unicode.IsSpace(runes[end-1]) {
			end--
		}
		if start == end {
			continue
		}

		text := string(runes[start:end])
		r := idx.RangeOfRunes(start, end-start)

		var element Element
		switch {
		case kind.hasSigil():
			payload := stripSigil(text)
			if payload == "" {
				continue
			}
			if filter != nil && !filter(payload) {
				continue
			}
			element = newElement(kind, payload)
		case kind == KindTimestamp:
			element = Timestamp{Time: text, Title: b.title(idx, start, end)}
		default:
			element = newElement(kind, text)
		}

		tuples = append(tuples, ElementTuple{
			Range:   r.Clamp(idx.Len()),
			Element: element,
			Kind:    kind,
		})
	}

	return tuples
}

// title returns the chapter title after a line-opening timestamp. A tail
// holding its own links, mentions or hashtags is not a title.
func (b *Builder) title(idx *TextIndex, start, end int) string {
	runes := idx.Runes()
	title := chapterTitle(runes, start, end)
	if title == "" {
		return ""
	}

	_, lineEnd := lineBounds(runes, start, end)
	tail := idx.RangeOfRunes(end, lineEnd-end)
	for _, k := range []Kind{KindURL, KindMention, KindHashtag} {
		if len(b.engine.Match(idx, k, tail)) > 0 {
			return ""
		}
	}
	return title
}

// stripSigil removes the leading sigil and one stray sigil left behind by a
// separator the pattern consumed
func stripSigil(text string) string {
	for range 2 {
		if strings.HasPrefix(text, "@") || strings.HasPrefix(text, "#") {
			text = text[1:]
		}
	}
	return text
}

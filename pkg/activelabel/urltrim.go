package activelabel

import (
	"log/slog"
	"strings"

	"github.com/rivo/uniseg"
)

// ellipsis is appended to URLs cut to the display length
const ellipsis = "..."

// TrimURLs finds the URLs in text and shortens those longer than maxLen
// grapheme clusters. It returns one tuple per URL with ranges valid in the
// returned text. Replacement is positional, so repeated identical URLs are
// each trimmed in place. maxLen <= 0 leaves the text untouched.
func TrimURLs(engine *Engine, text string, maxLen int) ([]ElementTuple, string) {
	idx := NewTextIndex(text)
	raw := engine.Match(idx, KindURL, idx.FullRange())
	tuples := NewBuilder(engine).Build(idx, raw, KindURL, nil)
	if maxLen <= 0 || len(tuples) == 0 {
		return tuples, text
	}

	runes := idx.Runes()
	offsets := byteOffsets(text, len(runes))
	var sb strings.Builder
	out := make([]ElementTuple, 0, len(tuples))
	cursor := 0
	delta := 0

	for _, t := range tuples {
		u, ok := t.Element.(URL)
		if !ok {
			continue
		}
		start, end := idx.RuneSpan(t.Range)
		if start < cursor || string(runes[start:end]) != u.Original {
			slog.Debug("Dropping URL that no longer matches the buffer", "url", u.Original, "range", t.Range.String())
			continue
		}

		trimmed := truncateURL(u.Original, maxLen)
		sb.WriteString(text[offsets[cursor]:offsets[start]])
		sb.WriteString(trimmed)
		cursor = end

		length := NewTextIndex(trimmed).Len()
		out = append(out, ElementTuple{
			Range:   Range{Location: t.Range.Location + delta, Length: length},
			Element: URL{Original: u.Original, Trimmed: trimmed},
			Kind:    KindURL,
		})
		delta += length - t.Range.Length
	}
	sb.WriteString(text[offsets[cursor]:])

	return out, sb.String()
}

// byteOffsets returns the byte offset of every rune of text plus len(text).
// Untouched text is copied by byte so invalid UTF-8 survives trimming.
func byteOffsets(text string, runeCount int) []int {
	offsets := make([]int, 0, runeCount+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

// truncateURL keeps the first maxLen grapheme clusters of s and appends the
// ellipsis, or returns s when it already fits
func truncateURL(s string, maxLen int) string {
	if maxLen <= 0 || uniseg.GraphemeClusterCount(s) <= maxLen {
		return s
	}

	var sb strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < maxLen && g.Next(); n++ {
		sb.WriteString(g.Str())
	}
	sb.WriteString(ellipsis)
	return sb.String()
}

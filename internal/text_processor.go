package internal

import (
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/leaanthony/go-ansi-parser"
)

// StyleSpan is a run of styled input, positioned in runes of the plain text
type StyleSpan struct {
	Start  int
	Length int
	Style  tcell.Style
}

// Document is the input with ANSI escapes removed and their styling kept
type Document struct {
	Text  string
	Spans []StyleSpan

	styles []tcell.Style
}

// ProcessText strips ANSI escapes from raw. Input without escapes is
// returned as is with no spans.
func ProcessText(raw string) *Document {
	if !strings.ContainsRune(raw, '\x1b') {
		return &Document{Text: raw}
	}

	var (
		plain  strings.Builder
		spans  []StyleSpan
		offset int
	)
	for i, line := range strings.Split(raw, "\n") {
		if i > 0 {
			plain.WriteByte('\n')
			offset++
		}

		elements, err := ansi.Parse(line)
		if err != nil {
			slog.Debug("Treating line as plain text", "line", i, "error", err)
			plain.WriteString(line)
			offset += len([]rune(line))
			continue
		}

		for _, element := range elements {
			if element.Label == "" {
				continue
			}
			length := len([]rune(element.Label))
			if hasStyle(element) {
				spans = append(spans, StyleSpan{Start: offset, Length: length, Style: toTcellStyle(element)})
			}
			plain.WriteString(element.Label)
			offset += length
		}
	}

	return &Document{Text: plain.String(), Spans: spans}
}

// HasStyledContent reports whether any styled span was found
func (d *Document) HasStyledContent() bool {
	return len(d.Spans) > 0
}

// StyleAt returns the style of the rune at index i
func (d *Document) StyleAt(i int) tcell.Style {
	if d.styles == nil {
		d.styles = make([]tcell.Style, len([]rune(d.Text)))
		for _, span := range d.Spans {
			for j := span.Start; j < span.Start+span.Length && j < len(d.styles); j++ {
				d.styles[j] = span.Style
			}
		}
	}
	if i < 0 || i >= len(d.styles) {
		return tcell.StyleDefault
	}
	return d.styles[i]
}

func hasStyle(element *ansi.StyledText) bool {
	return element.FgCol != nil || element.BgCol != nil ||
		element.Bold() || element.Underlined() || element.Italic()
}

func toTcellStyle(element *ansi.StyledText) tcell.Style {
	style := tcell.StyleDefault.
		Bold(element.Bold()).
		Italic(element.Italic()).
		Underline(element.Underlined())

	if element.FgCol != nil {
		rgb := element.FgCol.Rgb
		style = style.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
	}
	if element.BgCol != nil {
		rgb := element.BgCol.Rgb
		style = style.Background(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
	}
	return style
}

package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/Hanaasagi/activelabel/pkg/activelabel"
)

// Format selects how parse results are written
type Format string

const (
	FormatPlain Format = "plain"
	FormatColor Format = "color"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPlain, FormatColor, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// ElementRecord is the serialized form of one element
type ElementRecord struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Name    string            `json:"name,omitempty" yaml:"name,omitempty"`
	Text    string            `json:"text" yaml:"text"`
	Range   activelabel.Range `json:"range" yaml:"range"`
	Trimmed string            `json:"trimmed,omitempty" yaml:"trimmed,omitempty"`
	Title   string            `json:"title,omitempty" yaml:"title,omitempty"`
	Seconds int               `json:"seconds,omitempty" yaml:"seconds,omitempty"`
}

// Report is the serialized form of a parse result
type Report struct {
	Text     string          `json:"text" yaml:"text"`
	Elements []ElementRecord `json:"elements" yaml:"elements"`
}

// NewReport flattens result. Custom kinds are named by their identifier.
func NewReport(result activelabel.Result, cfg activelabel.Config) Report {
	report := Report{Text: result.Text, Elements: []ElementRecord{}}
	for _, t := range result.Elements.All() {
		record := ElementRecord{
			Kind:  t.Kind.Name(),
			Text:  t.Element.Text(),
			Range: t.Range,
		}
		if t.Kind.IsCustom() {
			record.Name = cfg.Name(t.Kind)
		}
		switch e := t.Element.(type) {
		case activelabel.URL:
			if e.Trimmed != e.Original {
				record.Trimmed = e.Trimmed
			}
		case activelabel.Timestamp:
			record.Title = e.Title
			record.Seconds = e.Seconds()
		}
		report.Elements = append(report.Elements, record)
	}
	return report
}

// Printer writes parse results
type Printer struct {
	w       io.Writer
	format  Format
	palette *Palette
	config  activelabel.Config
}

// NewPrinter creates a printer; palette is only used by FormatColor
func NewPrinter(w io.Writer, format Format, palette *Palette, cfg activelabel.Config) *Printer {
	return &Printer{w: w, format: format, palette: palette, config: cfg}
}

// Print writes result in the printer's format
func (p *Printer) Print(result activelabel.Result) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(result, p.config))
	case FormatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(result, p.config)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatColor:
		_, err := fmt.Fprintln(p.w, p.colorize(result))
		return err
	default:
		return p.printTable(result)
	}
}

// printTable writes one element per line with the kind and range columns
// padded to a common display width
func (p *Printer) printTable(result activelabel.Result) error {
	report := NewReport(result, p.config)

	kindWidth, rangeWidth := 0, 0
	for _, r := range report.Elements {
		kindWidth = max(kindWidth, runewidth.StringWidth(recordLabel(r)))
		rangeWidth = max(rangeWidth, runewidth.StringWidth(r.Range.String()))
	}

	for _, r := range report.Elements {
		text := r.Text
		if r.Trimmed != "" {
			text += " (" + r.Trimmed + ")"
		}
		if r.Title != "" {
			text += " " + r.Title
		}
		line := runewidth.FillRight(recordLabel(r), kindWidth) + "  " +
			runewidth.FillRight(r.Range.String(), rangeWidth) + "  " + text
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

func recordLabel(r ElementRecord) string {
	if r.Name != "" {
		return r.Kind + ":" + r.Name
	}
	return r.Kind
}

// colorize paints every element of the text in its kind's color. Where
// elements overlap, the one parsed last wins.
func (p *Printer) colorize(result activelabel.Result) string {
	idx := activelabel.NewTextIndex(result.Text)
	runes := idx.Runes()

	owner := make([]int, len(runes))
	for i := range owner {
		owner[i] = -1
	}
	tuples := result.Elements.All()
	for n, t := range tuples {
		start, end := idx.RuneSpan(t.Range)
		for i := start; i < end; i++ {
			owner[i] = n
		}
	}

	var sb strings.Builder
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && owner[j] == owner[i] {
			j++
		}
		run := string(runes[i:j])
		if owner[i] >= 0 {
			run = p.palette.ForKind(tuples[owner[i]].Kind).FgString(run)
		}
		sb.WriteString(run)
		i = j
	}
	return sb.String()
}

package internal

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Hanaasagi/activelabel/pkg/activelabel"
)

func testResult(t *testing.T) (activelabel.Result, activelabel.Config) {
	t.Helper()
	cfg := activelabel.Config{
		Enabled:        []activelabel.Kind{activelabel.KindMention, activelabel.KindURL, activelabel.KindTimestamp},
		CustomPatterns: []activelabel.CustomPattern{{Pattern: `issue-\d+`, Identifier: "issue"}},
		MaxURLLength:   12,
	}
	result := activelabel.NewParser().Parse("@bob fixed issue-42 see https://example.com/pull/7 at 1:05", cfg)
	return result, cfg
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"plain", "COLOR", "json", "yaml"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Errorf("expected error for xml")
	}
}

func TestPrintJSON(t *testing.T) {
	result, cfg := testResult(t)
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatJSON, nil, cfg).Print(result))

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	require.Equal(t, result.Text, report.Text)
	require.Len(t, report.Elements, 4)

	byKind := map[string]ElementRecord{}
	for _, r := range report.Elements {
		byKind[r.Kind] = r
	}
	require.Equal(t, "bob", byKind["mention"].Text)
	require.Equal(t, "https://exam...", byKind["url"].Trimmed)
	require.Equal(t, 65, byKind["timestamp"].Seconds)
	require.Equal(t, "issue", byKind["custom"].Name)
	require.Equal(t, "issue-42", byKind["custom"].Text)
}

func TestPrintYAML(t *testing.T) {
	result, cfg := testResult(t)
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatYAML, nil, cfg).Print(result))

	var report Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &report))
	require.Equal(t, NewReport(result, cfg), report)
}

func TestPrintPlain(t *testing.T) {
	result, cfg := testResult(t)
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatPlain, nil, cfg).Print(result))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "url"+strings.Repeat(" ", 11)+"{"), lines[0])
	require.Contains(t, buf.String(), "custom:issue  ")
	require.Contains(t, buf.String(), "(https://exam...)")
}

func TestPrintColor(t *testing.T) {
	previous := color.NoColor
	defer func() { color.NoColor = previous }()

	result, cfg := testResult(t)
	palette, err := NewPalette(nil)
	require.NoError(t, err)

	color.NoColor = true
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatColor, palette, cfg).Print(result))
	require.Equal(t, result.Text+"\n", buf.String())

	color.NoColor = false
	buf.Reset()
	require.NoError(t, NewPrinter(&buf, FormatColor, palette, cfg).Print(result))
	require.Contains(t, buf.String(), "\x1b[")
}

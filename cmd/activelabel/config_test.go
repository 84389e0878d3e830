package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hanaasagi/activelabel/internal"
	"github.com/Hanaasagi/activelabel/pkg/activelabel"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), config)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
[core]
enabled = ["mention", "email"]
max_url_length = 20
format = "json"
alphabet = "dvorak"

[[regexp.patterns]]
identifier = "issue"
pattern = "issue-\\d+"

[filters]
mentions = ["@bot"]
hashtags = ["spam"]

[colors]
mention = "red"
`)

	config, err := LoadConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"mention", "email"}, config.Core.Enabled)
	assert.Equal(t, 20, config.Core.MaxURLLength)
	assert.Equal(t, "json", config.Core.Format)
	assert.Equal(t, "dvorak", config.Core.Alphabet)
	assert.Equal(t, []activelabel.CustomPattern{{Identifier: "issue", Pattern: `issue-\d+`}}, config.Regexp.Patterns)
	assert.Equal(t, []string{"@bot"}, config.Filters.Mentions)
	assert.Equal(t, []string{"spam"}, config.Filters.Hashtags)
	assert.Equal(t, map[string]string{"mention": "red"}, config.Colors)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[core]\nposition = \"left\"\n")
	_, err := LoadConfigFromFile(path)
	assert.ErrorContains(t, err, "unknown config keys")
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[core\n")
	_, err := LoadConfigFromFile(path)
	assert.ErrorContains(t, err, "failed to decode TOML config")
}

func TestParseConfig(t *testing.T) {
	config := NewDefaultConfig()
	config.Core.Enabled = []string{"mention", "hashtag", "mention"}
	config.Core.MaxURLLength = 12
	config.Regexp.Patterns = []activelabel.CustomPattern{{Identifier: "issue", Pattern: `issue-\d+`}}
	config.Filters.Mentions = []string{"@Bot"}

	cfg, err := config.ParseConfig()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.MaxURLLength)
	assert.Equal(t, []activelabel.Kind{
		activelabel.KindMention,
		activelabel.KindHashtag,
		activelabel.CustomKind(`issue-\d+`),
	}, cfg.Kinds())
	require.NotNil(t, cfg.MentionFilter)
	assert.False(t, cfg.MentionFilter("bot"))
	assert.True(t, cfg.MentionFilter("alice"))
	assert.Nil(t, cfg.HashtagFilter)
}

func TestParseConfigErrors(t *testing.T) {
	config := NewDefaultConfig()
	config.Core.Enabled = []string{"fax"}
	_, err := config.ParseConfig()
	assert.Error(t, err)

	config = NewDefaultConfig()
	config.Regexp.Patterns = []activelabel.CustomPattern{{Identifier: "empty"}}
	_, err = config.ParseConfig()
	assert.ErrorContains(t, err, "no expression")
}

func TestParsePatternFlag(t *testing.T) {
	tests := []struct {
		value string
		want  activelabel.CustomPattern
	}{
		{`issue=issue-\d+`, activelabel.CustomPattern{Identifier: "issue", Pattern: `issue-\d+`}},
		{`\bare\b`, activelabel.CustomPattern{Pattern: `\bare\b`}},
		{`a(?=b)`, activelabel.CustomPattern{Pattern: `a(?=b)`}},
		{`id=`, activelabel.CustomPattern{Pattern: `id=`}},
		{`=x`, activelabel.CustomPattern{Pattern: `=x`}},
	}

	for _, tt := range tests {
		if got := parsePatternFlag(tt.value); got != tt.want {
			t.Errorf("parsePatternFlag(%q) = %+v; want %+v", tt.value, got, tt.want)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	opts := &AppOptions{}
	c := newRootCommand(opts)
	require.NoError(t, c.ParseFlags([]string{
		"-e", "email,url",
		"-x", `ticket=T-\d+`,
		"--max-url-length", "8",
		"--exclude-hashtag", "spam",
		"-f", "yaml",
	}))

	config := NewDefaultConfig()
	config.Core.Alphabet = "colemak"
	applyFlags(c, opts, config)

	assert.Equal(t, []string{"email", "url"}, config.Core.Enabled)
	assert.Equal(t, 8, config.Core.MaxURLLength)
	assert.Equal(t, "yaml", config.Core.Format)
	assert.Equal(t, "colemak", config.Core.Alphabet, "unset flags keep file values")
	assert.Equal(t, []activelabel.CustomPattern{{Identifier: "ticket", Pattern: `T-\d+`}}, config.Regexp.Patterns)
	assert.Equal(t, []string{"spam"}, config.Filters.Hashtags)
}

func TestOutputFormat(t *testing.T) {
	f, err := outputFormat("", true)
	require.NoError(t, err)
	assert.Equal(t, internal.FormatColor, f)

	f, err = outputFormat("", false)
	require.NoError(t, err)
	assert.Equal(t, internal.FormatPlain, f)

	f, err = outputFormat("JSON", true)
	require.NoError(t, err)
	assert.Equal(t, internal.FormatJSON, f)

	_, err = outputFormat("xml", false)
	assert.Error(t, err)
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi @alice\n#go\n"), 0o644))

	text, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, "hi @alice\n#go\n", text)

	_, err = readInput(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "opening input file")
}

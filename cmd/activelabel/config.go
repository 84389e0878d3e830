package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/Hanaasagi/activelabel/internal"
	"github.com/Hanaasagi/activelabel/pkg/activelabel"
)

type Config struct {
	Core    CoreConfig        `toml:"core"`
	Regexp  RegexpConfig      `toml:"regexp"`
	Filters FilterConfig      `toml:"filters"`
	Colors  map[string]string `toml:"colors"`
}

type CoreConfig struct {
	Enabled      []string `toml:"enabled"`
	MaxURLLength int      `toml:"max_url_length"`
	// Format is empty when the output format follows the terminal
	Format   string `toml:"format"`
	Alphabet string `toml:"alphabet"`
}

type RegexpConfig struct {
	Patterns []activelabel.CustomPattern `toml:"patterns"`
}

// FilterConfig lists mention handles and hashtags that are never reported
type FilterConfig struct {
	Mentions []string `toml:"mentions"`
	Hashtags []string `toml:"hashtags"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			Enabled:  []string{"mention", "hashtag", "url"},
			Alphabet: internal.DefaultAlphabet,
		},
		Regexp: RegexpConfig{
			Patterns: []activelabel.CustomPattern{},
		},
		Colors: map[string]string{},
	}
}

// DefaultConfigPath is config.toml under the XDG config home
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// LoadConfigFromFile decodes path over the defaults. A missing file yields
// the defaults.
func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	return config, nil
}

// ParseConfig builds the parse configuration the file describes
func (c *Config) ParseConfig() (activelabel.Config, error) {
	cfg := activelabel.Config{MaxURLLength: c.Core.MaxURLLength}

	for _, name := range c.Core.Enabled {
		kind, err := activelabel.ParseKind(name)
		if err != nil {
			return activelabel.Config{}, err
		}
		cfg.Enabled = append(cfg.Enabled, kind)
	}

	for _, p := range c.Regexp.Patterns {
		if p.Pattern == "" {
			return activelabel.Config{}, fmt.Errorf("custom pattern %q has no expression", p.Identifier)
		}
		cfg.CustomPatterns = append(cfg.CustomPatterns, p)
	}

	cfg.MentionFilter = excludeFilter(c.Filters.Mentions)
	cfg.HashtagFilter = excludeFilter(c.Filters.Hashtags)
	return cfg, nil
}

// excludeFilter rejects the listed payloads, ignoring case and sigils
func excludeFilter(excluded []string) activelabel.FilterFunc {
	if len(excluded) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(excluded))
	for _, e := range excluded {
		normalized = append(normalized, strings.ToLower(strings.TrimLeft(e, "@#")))
	}
	return func(payload string) bool {
		return !slices.Contains(normalized, strings.ToLower(payload))
	}
}

// parsePatternFlag reads a --regexp value, either "pattern" or "id=pattern".
// An identifier must be a plain word so that patterns containing '=' stay intact.
func parsePatternFlag(value string) activelabel.CustomPattern {
	if id, pattern, ok := strings.Cut(value, "="); ok && isIdentifier(id) && pattern != "" {
		return activelabel.CustomPattern{Identifier: id, Pattern: pattern}
	}
	return activelabel.CustomPattern{Pattern: value}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

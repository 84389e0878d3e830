package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"

	"github.com/Hanaasagi/activelabel/pkg/activelabel"
)

// Color colorizes text for the printer and the picker
type Color interface {
	FgString(text string) string
	Tcell() tcell.Color
}

// ColorWrapper wraps fatih/color functionality
type ColorWrapper struct {
	colorFunc func(...interface{}) string
	tcell     tcell.Color
	isRGB     bool
	r, g, b   uint8
}

// FgString returns a string with the color applied
func (c ColorWrapper) FgString(text string) string {
	if c.isRGB {
		// fatih/color has no truecolor attribute
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.r, c.g, c.b, text)
	}
	return c.colorFunc(text)
}

// Tcell returns the equivalent tcell color
func (c ColorWrapper) Tcell() tcell.Color {
	if c.isRGB {
		return tcell.NewRGBColor(int32(c.r), int32(c.g), int32(c.b))
	}
	return c.tcell
}

var rgbRegex = regexp.MustCompile(`^#([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

var (
	colorCache = make(map[string]Color, 32)
	colorMutex sync.RWMutex
)

func named(attr color.Attribute, tc tcell.Color) ColorWrapper {
	return ColorWrapper{colorFunc: color.New(attr).SprintFunc(), tcell: tc}
}

var predefinedColors = map[string]ColorWrapper{
	"black":          named(color.FgBlack, tcell.ColorBlack),
	"red":            named(color.FgRed, tcell.ColorMaroon),
	"green":          named(color.FgGreen, tcell.ColorGreen),
	"yellow":         named(color.FgYellow, tcell.ColorOlive),
	"blue":           named(color.FgBlue, tcell.ColorNavy),
	"magenta":        named(color.FgMagenta, tcell.ColorPurple),
	"cyan":           named(color.FgCyan, tcell.ColorTeal),
	"white":          named(color.FgWhite, tcell.ColorSilver),
	"bright-red":     named(color.FgHiRed, tcell.ColorRed),
	"bright-green":   named(color.FgHiGreen, tcell.ColorLime),
	"bright-yellow":  named(color.FgHiYellow, tcell.ColorYellow),
	"bright-blue":    named(color.FgHiBlue, tcell.ColorBlue),
	"bright-magenta": named(color.FgHiMagenta, tcell.ColorFuchsia),
	"bright-cyan":    named(color.FgHiCyan, tcell.ColorAqua),
	"bright-white":   named(color.FgHiWhite, tcell.ColorWhite),
	"default":        named(color.Reset, tcell.ColorDefault),
}

// ParseColor resolves a color name or #rrggbb value
func ParseColor(name string) (Color, error) {
	colorMutex.RLock()
	if cached, exists := colorCache[name]; exists {
		colorMutex.RUnlock()
		return cached, nil
	}
	colorMutex.RUnlock()

	var result Color
	if m := rgbRegex.FindStringSubmatch(name); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		result = ColorWrapper{isRGB: true, r: uint8(r), g: uint8(g), b: uint8(b)}
	} else if predefined, exists := predefinedColors[strings.ToLower(name)]; exists {
		result = predefined
	} else {
		return nil, fmt.Errorf("unknown color: %s", name)
	}

	colorMutex.Lock()
	colorCache[name] = result
	colorMutex.Unlock()

	return result, nil
}

// GetColor is ParseColor for names known to be valid; it panics otherwise
func GetColor(name string) Color {
	c, err := ParseColor(name)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// Palette assigns a color to every element kind plus the picker chrome
type Palette struct {
	kinds  map[activelabel.Kind]Color
	custom Color
	Hint   Color
	Select Color
}

// DefaultColors maps palette keys to color names
var DefaultColors = map[string]string{
	"mention":   "blue",
	"hashtag":   "magenta",
	"url":       "cyan",
	"email":     "green",
	"phone":     "yellow",
	"address":   "red",
	"date":      "bright-yellow",
	"timestamp": "bright-cyan",
	"custom":    "bright-green",
	"hint":      "bright-yellow",
	"select":    "bright-blue",
}

// NewPalette builds a palette from DefaultColors with overrides applied.
// Override keys are kind names, "custom", "hint" or "select".
func NewPalette(overrides map[string]string) (*Palette, error) {
	names := make(map[string]string, len(DefaultColors))
	for k, v := range DefaultColors {
		names[k] = v
	}
	for k, v := range overrides {
		key := strings.ToLower(k)
		if _, ok := DefaultColors[key]; !ok {
			return nil, fmt.Errorf("unknown color key: %s", k)
		}
		names[key] = v
	}

	resolved := make(map[string]Color, len(names))
	for k, v := range names {
		c, err := ParseColor(v)
		if err != nil {
			return nil, fmt.Errorf("color for %s: %w", k, err)
		}
		resolved[k] = c
	}

	p := &Palette{
		kinds:  make(map[activelabel.Kind]Color, len(activelabel.BuiltinKinds)),
		custom: resolved["custom"],
		Hint:   resolved["hint"],
		Select: resolved["select"],
	}
	for _, k := range activelabel.BuiltinKinds {
		p.kinds[k] = resolved[k.Name()]
	}
	return p, nil
}

// ForKind returns the color elements of kind are drawn in
func (p *Palette) ForKind(kind activelabel.Kind) Color {
	if kind.IsCustom() {
		return p.custom
	}
	if c, ok := p.kinds[kind]; ok {
		return c
	}
	return GetColor("default")
}

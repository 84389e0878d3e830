package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"

	"github.com/Hanaasagi/activelabel/pkg/activelabel"
)

// View is the interactive element picker. Elements are highlighted in their
// kind's color and labeled with hints; choosing one dispatches it through the
// label's handler table.
type View struct {
	label   *activelabel.Label
	doc     *Document
	palette *Palette
	index   *activelabel.TextIndex
	tuples  []activelabel.ElementTuple
	hints   []string
	skip    int
	top     int
	chosen  []activelabel.ElementTuple
	screen  tcell.Screen
	buffer  *TextBuffer
}

// CaptureEvent represents the result of the user interaction
type CaptureEvent int

const (
	ExitEvent CaptureEvent = iota
	HintEvent
)

// NewView creates a picker over the label's current elements. doc supplies
// the input styling and must hold the label's text.
func NewView(label *activelabel.Label, doc *Document, palette *Palette, alphabet *Alphabet) *View {
	tuples := label.Elements().All()
	sort.SliceStable(tuples, func(i, j int) bool {
		return tuples[i].Range.Location < tuples[j].Range.Location
	})

	if doc == nil || doc.Text != label.Text() {
		doc = &Document{Text: label.Text()}
	}

	return &View{
		label:   label,
		doc:     doc,
		palette: palette,
		index:   activelabel.NewTextIndex(label.Text()),
		tuples:  tuples,
		hints:   alphabet.Hints(len(tuples)),
	}
}

// Navigation methods
func (v *View) Prev() {
	if v.skip > 0 {
		v.skip--
	}
}

func (v *View) Next() {
	if v.skip < len(v.tuples)-1 {
		v.skip++
	}
}

// Selected returns the element the cursor is on
func (v *View) Selected() (activelabel.ElementTuple, bool) {
	if v.skip < len(v.tuples) {
		return v.tuples[v.skip], true
	}
	return activelabel.ElementTuple{}, false
}

// layout rebuilds the text buffer when the screen width changed
func (v *View) layout() {
	width, _ := v.screen.Size()
	if v.buffer == nil || v.buffer.Width() != width {
		v.buffer = NewTextBuffer(v.doc.Text, width)
	}
}

// textHeight is the number of rows left for text above the status line
func (v *View) textHeight() int {
	_, height := v.screen.Size()
	return max(1, height-1)
}

// scrollToSelected keeps the selected element on screen
func (v *View) scrollToSelected() {
	t, ok := v.Selected()
	if !ok {
		return
	}
	start, _ := v.index.RuneSpan(t.Range)
	_, y := v.buffer.Position(start)
	if y < v.top {
		v.top = y
	}
	if h := v.textHeight(); y >= v.top+h {
		v.top = y - h + 1
	}
}

func (v *View) render(typedHint string) {
	v.screen.Clear()
	v.layout()
	v.scrollToSelected()

	runes := v.index.Runes()
	for i, r := range runes {
		if r == '\n' {
			continue
		}
		v.setCell(i, r, v.doc.StyleAt(i))
	}

	for i, t := range v.tuples {
		style := tcell.StyleDefault.Foreground(v.palette.ForKind(t.Kind).Tcell()).Underline(true)
		if i == v.skip {
			style = style.Reverse(true)
		}
		start, end := v.index.RuneSpan(t.Range)
		for j := start; j < end; j++ {
			if runes[j] != '\n' {
				v.setCell(j, runes[j], style)
			}
		}
	}

	for i, t := range v.tuples {
		if i < len(v.hints) {
			v.renderHint(t, v.hints[i], typedHint)
		}
	}

	v.renderStatus()

	if IsDebugMode() {
		v.dumpSnapshot() // nolint: errcheck
	}

	v.screen.Show()
}

// setCell draws rune i at its laid out position if it is inside the viewport
func (v *View) setCell(i int, r rune, style tcell.Style) {
	x, y := v.buffer.Position(i)
	y -= v.top
	if y < 0 || y >= v.textHeight() {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// renderHint overlays the hint at the start of an element. Typed hint
// characters are drawn in the select color.
func (v *View) renderHint(t activelabel.ElementTuple, hint, typedHint string) {
	start, _ := v.index.RuneSpan(t.Range)
	x, y := v.buffer.Position(start)
	y -= v.top
	if y < 0 || y >= v.textHeight() {
		return
	}

	base := tcell.StyleDefault.Foreground(v.palette.Hint.Tcell()).Bold(true).Reverse(true)
	typed := tcell.StyleDefault.Foreground(v.palette.Select.Tcell()).Bold(true).Reverse(true)
	matching := strings.HasPrefix(hint, typedHint)

	for i, r := range hint {
		style := base
		if matching && i < len(typedHint) {
			style = typed
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += runeWidth(r)
	}
}

func (v *View) renderStatus() {
	width, height := v.screen.Size()
	status := "no elements"
	if t, ok := v.Selected(); ok {
		status = fmt.Sprintf("%s %q  [enter] select  [tab] next  [esc] quit", t.Kind, selectionText(t))
	}

	style := tcell.StyleDefault.Foreground(v.palette.Select.Tcell())
	x := 0
	for _, r := range status {
		if x >= width {
			break
		}
		v.screen.SetContent(x, height-1, r, nil, style)
		x += runeWidth(r)
	}
}

func selectionText(t activelabel.ElementTuple) string {
	if ts, ok := t.Element.(activelabel.Timestamp); ok {
		return ts.PresentableText()
	}
	return t.Element.Text()
}

func (v *View) dumpSnapshot() error {
	appDir := filepath.Join(xdg.StateHome, appName)
	filePath := filepath.Join(appDir, fmt.Sprintf("snapshot-%d.txt", time.Now().UnixMilli()))
	return os.WriteFile(filePath, []byte(v.buffer.String()), 0o644)
}

// listen handles user input and interaction
func (v *View) listen() CaptureEvent {
	if len(v.tuples) == 0 {
		return ExitEvent
	}

	typedHint := ""
	longestHint := v.findLongestHint()

	renderStart := time.Now()
	v.render(typedHint)
	slog.Info("first render completed", "duration_ms", time.Since(renderStart).Milliseconds())

	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if action := v.handleKeyEvent(ev, &typedHint, longestHint); action != nil {
				return *action
			}
		case *tcell.EventMouse:
			if action := v.handleMouseEvent(ev); action != nil {
				return *action
			}
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventError:
			return ExitEvent
		case nil:
			// screen finalized
			return ExitEvent
		}

		v.render(typedHint)
	}
}

func (v *View) findLongestHint() string {
	longest := ""
	for _, hint := range v.hints {
		if len(hint) > len(longest) {
			longest = hint
		}
	}
	return longest
}

func (v *View) handleKeyEvent(ev *tcell.EventKey, typedHint *string, longestHint string) *CaptureEvent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		action := ExitEvent
		return &action
	case tcell.KeyUp, tcell.KeyLeft, tcell.KeyBacktab:
		v.Prev()
	case tcell.KeyDown, tcell.KeyRight, tcell.KeyTab:
		v.Next()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(*typedHint) > 0 {
			*typedHint = (*typedHint)[:len(*typedHint)-1]
		}
	case tcell.KeyEnter:
		if t, ok := v.Selected(); ok {
			return v.choose(t)
		}
	case tcell.KeyRune:
		return v.handleRuneKey(ev.Rune(), typedHint, longestHint)
	}
	return nil
}

func (v *View) handleRuneKey(r rune, typedHint *string, longestHint string) *CaptureEvent {
	*typedHint += strings.ToLower(string(r))

	for i, hint := range v.hints {
		if hint == *typedHint {
			return v.choose(v.tuples[i])
		}
	}

	// no hint can match any more
	if len(*typedHint) >= len(longestHint) {
		action := ExitEvent
		return &action
	}
	return nil
}

// handleMouseEvent maps a left click to the element under the pointer
func (v *View) handleMouseEvent(ev *tcell.EventMouse) *CaptureEvent {
	if ev.Buttons()&tcell.Button1 == 0 {
		return nil
	}

	x, y := ev.Position()
	i, ok := v.buffer.RuneAt(x, y+v.top)
	if !ok {
		return nil
	}
	t, ok := v.label.ElementAt(v.index.Unit(i))
	if !ok {
		return nil
	}
	return v.choose(t)
}

// choose dispatches t and ends the session
func (v *View) choose(t activelabel.ElementTuple) *CaptureEvent {
	v.chosen = append(v.chosen, t)
	v.label.Handlers().Dispatch(t)

	action := HintEvent
	return &action
}

// Present opens the terminal screen and returns the chosen elements
func (v *View) Present() []activelabel.ElementTuple {
	// fast path
	if len(v.tuples) == 0 {
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("Failed to create tcell screen", "error", err)
		return nil
	}
	if err := screen.Init(); err != nil {
		slog.Error("Failed to initialize tcell screen", "error", err)
		return nil
	}
	defer screen.Fini()

	return v.PresentOn(screen)
}

// PresentOn runs the picker on an initialized screen
func (v *View) PresentOn(screen tcell.Screen) []activelabel.ElementTuple {
	v.screen = screen
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	if v.listen() == ExitEvent {
		return nil
	}
	return v.chosen
}

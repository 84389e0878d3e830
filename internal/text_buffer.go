package internal

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cellPos struct {
	x, y int
}

// TextBuffer lays text out on a grid of terminal cells, wrapping at width.
// It maps runes to cells for drawing and cells back to runes for mouse
// hit-testing.
type TextBuffer struct {
	width     int
	rows      int
	runes     []rune
	positions []cellPos     // rune index -> first cell
	cells     map[cellPos]int // cell -> rune index; wide runes own two cells
}

// runeWidth treats zero-width and control runes as one cell
func runeWidth(r rune) int {
	width := runewidth.RuneWidth(r)
	if width <= 0 {
		width = 1
	}
	return width
}

// NewTextBuffer lays out text for a screen width cells wide
func NewTextBuffer(text string, width int) *TextBuffer {
	if width <= 0 {
		width = 1
	}
	runes := []rune(text)
	tb := &TextBuffer{
		width:     width,
		runes:     runes,
		positions: make([]cellPos, len(runes)),
		cells:     make(map[cellPos]int, len(runes)),
	}

	x, y := 0, 0
	for i, r := range runes {
		if r == '\n' {
			tb.positions[i] = cellPos{x, y}
			x, y = 0, y+1
			continue
		}

		w := runeWidth(r)
		if x > 0 && x+w > width {
			x, y = 0, y+1
		}
		tb.positions[i] = cellPos{x, y}
		for k := 0; k < w; k++ {
			tb.cells[cellPos{x + k, y}] = i
		}
		x += w
	}
	tb.rows = y + 1

	return tb
}

// Rows returns the number of screen rows the text occupies
func (tb *TextBuffer) Rows() int {
	return tb.rows
}

// Width returns the wrap width
func (tb *TextBuffer) Width() int {
	return tb.width
}

// Position returns the cell of the rune at index i
func (tb *TextBuffer) Position(i int) (int, int) {
	if i < 0 || i >= len(tb.positions) {
		return 0, 0
	}
	p := tb.positions[i]
	return p.x, p.y
}

// RuneAt returns the index of the rune drawn at cell (x, y)
func (tb *TextBuffer) RuneAt(x, y int) (int, bool) {
	i, ok := tb.cells[cellPos{x, y}]
	return i, ok
}

func (tb *TextBuffer) String() string {
	grid := make([][]rune, tb.rows)
	for i, r := range tb.runes {
		if r == '\n' {
			continue
		}
		p := tb.positions[i]
		for len(grid[p.y]) < p.x {
			grid[p.y] = append(grid[p.y], ' ')
		}
		grid[p.y] = append(grid[p.y], r)
	}

	lines := make([]string, len(grid))
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

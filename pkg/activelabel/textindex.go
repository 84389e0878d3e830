package activelabel

import (
	"fmt"
	"sort"
	"unicode/utf16"
)

// Range is a span of text in UTF-16 code units, the unit attributed-text
// renderers index glyphs by. A rune outside the Basic Multilingual Plane
// occupies two units.
type Range struct {
	Location int `json:"location" yaml:"location"`
	Length   int `json:"length" yaml:"length"`
}

// End returns the offset just past the range
func (r Range) End() int {
	return r.Location + r.Length
}

// Contains reports whether the UTF-16 offset falls inside the range
func (r Range) Contains(offset int) bool {
	return offset >= r.Location && offset < r.End()
}

// Clamp shrinks the range so it never extends past limit
func (r Range) Clamp(limit int) Range {
	if r.Location < 0 {
		r.Length += r.Location
		r.Location = 0
	}
	if r.Location > limit {
		r.Location = limit
	}
	if r.End() > limit {
		r.Length = limit - r.Location
	}
	if r.Length < 0 {
		r.Length = 0
	}
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("{%d,%d}", r.Location, r.Length)
}

// TextIndex maps between rune indices and UTF-16 offsets of a fixed string.
// Patterns and detectors report rune positions; everything exposed to callers
// is in UTF-16 units.
type TextIndex struct {
	text  string
	runes []rune
	// units[i] is the UTF-16 offset of runes[i]; units[len(runes)] is the total length
	units []int
}

// NewTextIndex builds the offset tables for text
func NewTextIndex(text string) *TextIndex {
	runes := []rune(text)
	units := make([]int, len(runes)+1)
	offset := 0
	for i, r := range runes {
		units[i] = offset
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		offset += n
	}
	units[len(runes)] = offset
	return &TextIndex{text: text, runes: runes, units: units}
}

// String returns the indexed text
func (ti *TextIndex) String() string {
	return ti.text
}

// Runes returns the text as runes. Callers must not modify the slice.
func (ti *TextIndex) Runes() []rune {
	return ti.runes
}

// Len returns the text length in UTF-16 units
func (ti *TextIndex) Len() int {
	return ti.units[len(ti.runes)]
}

// RuneCount returns the number of runes in the text
func (ti *TextIndex) RuneCount() int {
	return len(ti.runes)
}

// Unit converts a rune index to a UTF-16 offset, clamping out-of-range input
func (ti *TextIndex) Unit(runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	if runeIndex >= len(ti.runes) {
		return ti.Len()
	}
	return ti.units[runeIndex]
}

// RuneIndex converts a UTF-16 offset to the index of the rune containing it
func (ti *TextIndex) RuneIndex(unit int) int {
	if unit <= 0 {
		return 0
	}
	if unit >= ti.Len() {
		return len(ti.runes)
	}
	i := sort.Search(len(ti.units), func(i int) bool { return ti.units[i] > unit })
	return i - 1
}

// RangeOfRunes converts a rune span to a UTF-16 range
func (ti *TextIndex) RangeOfRunes(start, length int) Range {
	from := ti.Unit(start)
	to := ti.Unit(start + length)
	return Range{Location: from, Length: to - from}
}

// RuneSpan converts a UTF-16 range to a rune span [start, end)
func (ti *TextIndex) RuneSpan(r Range) (int, int) {
	r = r.Clamp(ti.Len())
	return ti.RuneIndex(r.Location), ti.RuneIndex(r.End())
}

// Substring returns the text covered by r, clamped to the text bounds
func (ti *TextIndex) Substring(r Range) string {
	start, end := ti.RuneSpan(r)
	return string(ti.runes[start:end])
}

// FullRange covers the whole text
func (ti *TextIndex) FullRange() Range {
	return Range{Location: 0, Length: ti.Len()}
}

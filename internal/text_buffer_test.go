package internal

import "testing"

func TestTextBufferWrapping(t *testing.T) {
	tb := NewTextBuffer("abcdef\ngh", 4)

	if tb.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", tb.Rows())
	}

	tests := []struct {
		index int
		x, y  int
	}{
		{0, 0, 0},
		{3, 3, 0},
		{4, 0, 1},
		{5, 1, 1},
		{7, 0, 2},
	}
	for _, tt := range tests {
		x, y := tb.Position(tt.index)
		if x != tt.x || y != tt.y {
			t.Errorf("Position(%d) = (%d,%d); want (%d,%d)", tt.index, x, y, tt.x, tt.y)
		}
	}

	if got := tb.String(); got != "abcd\nef\ngh" {
		t.Errorf("unexpected layout %q", got)
	}
}

func TestTextBufferWideRunes(t *testing.T) {
	tb := NewTextBuffer("a世b世", 4)

	// 世 takes cells 1 and 2 on the first row
	for _, x := range []int{1, 2} {
		if i, ok := tb.RuneAt(x, 0); !ok || i != 1 {
			t.Errorf("RuneAt(%d,0) = %d,%v; want 1,true", x, i, ok)
		}
	}
	if i, ok := tb.RuneAt(3, 0); !ok || i != 2 {
		t.Errorf("RuneAt(3,0) = %d,%v; want 2,true", i, ok)
	}

	// the second 世 does not fit in the last cell and wraps
	if x, y := tb.Position(3); x != 0 || y != 1 {
		t.Errorf("Position(3) = (%d,%d); want (0,1)", x, y)
	}
	if _, ok := tb.RuneAt(5, 0); ok {
		t.Errorf("expected no rune past the end of a row")
	}
}

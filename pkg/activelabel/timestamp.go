package activelabel

import (
	"strconv"
	"strings"
)

// Timestamp is a video-style time reference such as 1:02:33 or 04:10.
// A timestamp that opens a line is a chapter marker and carries the rest of
// that line as its Title.
type Timestamp struct {
	Time  string
	Title string
}

func (e Timestamp) Text() string { return e.Time }

// Seconds returns the offset the timestamp points at
func (e Timestamp) Seconds() int {
	total := 0
	for _, part := range strings.Split(e.Time, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// PresentableText returns the chapter title when there is one, otherwise the
// time with leading zeros of the first component removed
func (e Timestamp) PresentableText() string {
	if e.Title != "" {
		return e.Title
	}
	head, rest, found := strings.Cut(e.Time, ":")
	if !found {
		return e.Time
	}
	trimmed := strings.TrimLeft(head, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return trimmed + ":" + rest
}

// lineBounds returns the rune span of the line containing the runes [start, end)
func lineBounds(runes []rune, start, end int) (int, int) {
	lineStart := start
	for lineStart > 0 && runes[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := end
	for lineEnd < len(runes) && runes[lineEnd] != '\n' {
		lineEnd++
	}
	return lineStart, lineEnd
}

// opensLine reports whether runes[start] is the first rune of its line
func opensLine(runes []rune, start int) bool {
	return start == 0 || runes[start-1] == '\n'
}

// chapterTitle returns the title text following a timestamp at runes[start:end],
// or "" when the timestamp is inline
func chapterTitle(runes []rune, start, end int) string {
	_, lineEnd := lineBounds(runes, start, end)
	if !opensLine(runes, start) {
		return ""
	}
	title := strings.TrimSpace(string(runes[end:lineEnd]))
	title = strings.TrimLeft(title, "-\u2013\u2014:|")
	return strings.TrimSpace(title)
}

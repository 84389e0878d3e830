package datadetector

import "github.com/dlclark/regexp2"

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// A separator is required between digit groups so that bare digit runs
// (order numbers, timestamps) are not reported.
var phonePattern = `(?<![\w+])(?:` +
	`(?:tel:)?(?:\+?1[-.\s]?)?\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}` + // (555) 123-4567
	`|(?:tel:)?(?:\+?1[-.\s]?)?\d{3}[-.\s]\d{3}[-.\s]?\d{4}` + // 555-123-4567
	`|\+\d{1,3}(?:[-.\s]\d{2,4}){2,5}` + // +44 20 7946 0958
	`)(?!\w)`

// Phone returns a detector for phone numbers
func Phone() Detector {
	return MustRegexDetector("phone", phonePattern, regexp2.None, validPhone)
}

func validPhone(candidate string) bool {
	n := countDigits(candidate)
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

package datadetector

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	monthNames   = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`
	weekdayNames = `Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday`
	ordinal      = `(?:st|nd|rd|th)?`
)

var datePattern = `\b(?:` +
	`\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?)?` + // 2018-08-31, ISO 8601
	`|\d{1,2}/\d{1,2}/\d{2,4}` + // 08/31/2018
	`|(?:` + monthNames + `)\.?\s+\d{1,2}` + ordinal + `(?:,?\s+\d{4})?` + // June 5th, 2021
	`|\d{1,2}` + ordinal + `\s+(?:of\s+)?(?:` + monthNames + `)(?:,?\s+\d{4})?` + // 5th of June 2021
	`|today|tomorrow|yesterday` +
	`|(?:next|last|this)\s+(?:` + weekdayNames + `|week|month|year)` +
	`)\b`

// Date returns a detector for calendar dates and relative day expressions
func Date() Detector {
	return MustRegexDetector("date", datePattern, regexp2.IgnoreCase, validDate)
}

func validDate(candidate string) bool {
	switch {
	case len(candidate) >= 10 && candidate[4] == '-':
		_, err := time.Parse("2006-01-02", candidate[:10])
		return err == nil
	case strings.Count(candidate, "/") == 2:
		parts := strings.Split(candidate, "/")
		a, errA := strconv.Atoi(parts[0])
		b, errB := strconv.Atoi(parts[1])
		if errA != nil || errB != nil || a == 0 || b == 0 {
			return false
		}
		// either month/day or day/month order
		return (a <= 12 && b <= 31) || (a <= 31 && b <= 12)
	default:
		return true
	}
}

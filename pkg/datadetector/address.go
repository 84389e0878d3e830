package datadetector

import (
	"strings"

	"github.com/dlclark/regexp2"
)

var streetSuffixes = []string{
	"Street", "St", "Avenue", "Ave", "Road", "Rd", "Boulevard", "Blvd",
	"Lane", "Ln", "Drive", "Dr", "Court", "Ct", "Way", "Place", "Pl",
	"Terrace", "Ter", "Parkway", "Pkwy", "Highway", "Hwy", "Circle", "Cir",
	"Square", "Sq", "Broadway",
}

// house number, one to five capitalized or numbered words, street suffix,
// then an optional ", City, ST 12345" tail
var addressPattern = `\b\d{1,6}(?:\s+[A-Z0-9][\w.'-]*){1,5}?\s+(?i:` + strings.Join(streetSuffixes, "|") + `)\b\.?` +
	`(?:,\s*[A-Z][A-Za-z.]*(?:\s+[A-Z][A-Za-z.]*)*,\s*[A-Z]{2}(?:\s+\d{5}(?:-\d{4})?)?)?`

// Address returns a detector for US-style street addresses
func Address() Detector {
	return MustRegexDetector("address", addressPattern, regexp2.None, nil)
}

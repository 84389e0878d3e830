package activelabel

import (
	"fmt"
	"strings"
)

type kindTag uint8

const (
	tagMention kindTag = iota + 1
	tagHashtag
	tagURL
	tagEmail
	tagPhone
	tagAddress
	tagDate
	tagTimestamp
	tagCustom
)

// Kind identifies the category of an element. Kinds are comparable values:
// two custom kinds are equal iff their patterns are equal, so a Kind can be
// used directly as a map key for handler and color lookup.
type Kind struct {
	tag     kindTag
	pattern string
}

var (
	KindMention   = Kind{tag: tagMention}
	KindHashtag   = Kind{tag: tagHashtag}
	KindURL       = Kind{tag: tagURL}
	KindEmail     = Kind{tag: tagEmail}
	KindPhone     = Kind{tag: tagPhone}
	KindAddress   = Kind{tag: tagAddress}
	KindDate      = Kind{tag: tagDate}
	KindTimestamp = Kind{tag: tagTimestamp}
)

// BuiltinKinds lists the non-custom kinds in their canonical order
var BuiltinKinds = []Kind{
	KindMention,
	KindHashtag,
	KindURL,
	KindEmail,
	KindPhone,
	KindAddress,
	KindDate,
	KindTimestamp,
}

var kindNames = map[kindTag]string{
	tagMention:   "mention",
	tagHashtag:   "hashtag",
	tagURL:       "url",
	tagEmail:     "email",
	tagPhone:     "phone",
	tagAddress:   "address",
	tagDate:      "date",
	tagTimestamp: "timestamp",
	tagCustom:    "custom",
}

// CustomKind returns the kind for a caller-defined regular expression
func CustomKind(pattern string) Kind {
	return Kind{tag: tagCustom, pattern: pattern}
}

// ParseKind maps a configuration name such as "mention" or "url" to its kind.
// Custom kinds are built with CustomKind and are not accepted here.
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, k := range BuiltinKinds {
		if kindNames[k.tag] == lower {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("unknown element kind: %q", name)
}

// IsCustom reports whether k was built with CustomKind
func (k Kind) IsCustom() bool {
	return k.tag == tagCustom
}

// IsZero reports whether k is the zero Kind
func (k Kind) IsZero() bool {
	return k.tag == 0
}

// Pattern returns the regular expression of a custom kind, or "" for built-in kinds
func (k Kind) Pattern() string {
	return k.pattern
}

// Name returns the kind name without the custom pattern
func (k Kind) Name() string {
	if name, ok := kindNames[k.tag]; ok {
		return name
	}
	return "none"
}

func (k Kind) String() string {
	if k.tag == tagCustom {
		return fmt.Sprintf("custom(%s)", k.pattern)
	}
	return k.Name()
}

// hasSigil reports whether elements of this kind carry a leading sigil
func (k Kind) hasSigil() bool {
	return k.tag == tagMention || k.tag == tagHashtag
}

// sigil returns the marker character for mention and hashtag kinds
func (k Kind) sigil() string {
	switch k.tag {
	case tagMention:
		return "@"
	case tagHashtag:
		return "#"
	default:
		return ""
	}
}

// usesDetector reports whether the kind is recognized by a data detector rather than a regex
func (k Kind) usesDetector() bool {
	return k.tag == tagPhone || k.tag == tagAddress || k.tag == tagDate
}

// minLength returns the raw match length at or below which matches are discarded
func (k Kind) minLength() int {
	switch k.tag {
	case tagMention, tagHashtag, tagURL, tagEmail:
		return 2
	case tagCustom:
		return 1
	default:
		return 0
	}
}

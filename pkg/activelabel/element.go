package activelabel

import "fmt"

// Element is the typed payload of one recognized substring.
// The concrete types are comparable, so == on two Elements compares both the
// kind and the payload.
type Element interface {
	// Kind returns the category of the element
	Kind() Kind
	// Text returns the payload text; sigils are not included.
	Text() string
	isElement()
}

// Mention is an @handle with the sigil stripped
type Mention struct {
	Handle string
}

// Hashtag is a #tag with the sigil stripped
type Hashtag struct {
	Tag string
}

// URL carries the URL as found in the source and its display form.
// Trimmed equals Original unless the URL was shortened.
type URL struct {
	Original string
	Trimmed  string
}

type Email struct {
	Address string
}

type Phone struct {
	Number string
}

type Address struct {
	Location string
}

type Date struct {
	Phrase string
}

// Custom is text matched by a caller-defined pattern
type Custom struct {
	Match   string
	Pattern string
}

func (Mention) Kind() Kind   { return KindMention }
func (Hashtag) Kind() Kind   { return KindHashtag }
func (URL) Kind() Kind       { return KindURL }
func (Email) Kind() Kind     { return KindEmail }
func (Phone) Kind() Kind     { return KindPhone }
func (Address) Kind() Kind   { return KindAddress }
func (Date) Kind() Kind      { return KindDate }
func (Timestamp) Kind() Kind { return KindTimestamp }
func (e Custom) Kind() Kind  { return CustomKind(e.Pattern) }

func (e Mention) Text() string { return e.Handle }
func (e Hashtag) Text() string { return e.Tag }
func (e URL) Text() string     { return e.Original }
func (e Email) Text() string   { return e.Address }
func (e Phone) Text() string   { return e.Number }
func (e Address) Text() string { return e.Location }
func (e Date) Text() string    { return e.Phrase }
func (e Custom) Text() string  { return e.Match }

func (Mention) isElement()   {}
func (Hashtag) isElement()   {}
func (URL) isElement()       {}
func (Email) isElement()     {}
func (Phone) isElement()     {}
func (Address) isElement()   {}
func (Date) isElement()      {}
func (Timestamp) isElement() {}
func (Custom) isElement()    {}

// newElement wraps extracted text into the element type for kind
func newElement(kind Kind, text string) Element {
	switch kind.tag {
	case tagMention:
		return Mention{Handle: text}
	case tagHashtag:
		return Hashtag{Tag: text}
	case tagURL:
		return URL{Original: text, Trimmed: text}
	case tagEmail:
		return Email{Address: text}
	case tagPhone:
		return Phone{Number: text}
	case tagAddress:
		return Address{Location: text}
	case tagDate:
		return Date{Phrase: text}
	case tagTimestamp:
		return Timestamp{Time: text}
	default:
		return Custom{Match: text, Pattern: kind.pattern}
	}
}

// ElementTuple is the unit of parser output
type ElementTuple struct {
	Range   Range
	Element Element
	Kind    Kind
}

func (t ElementTuple) String() string {
	return fmt.Sprintf("ElementTuple{kind:%s,range:%s,text:%q}", t.Kind, t.Range, t.Element.Text())
}

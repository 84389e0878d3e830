package internal

import (
	"fmt"
	"strings"
)

var builtinAlphabets = []struct {
	name    string
	letters string
}{
	{"numeric", "1234567890"},
	{"abcd", "abcd"},
	{"qwerty", "asdfqwerzxcvjklmiuopghtybn"},
	{"qwerty-homerow", "asdfjklgh"},
	{"qwerty-left-hand", "asdfqwerzcxv"},
	{"qwerty-right-hand", "jkluiopmyhn"},
	{"azerty", "qsdfazerwxcvjklmuiopghtybn"},
	{"azerty-homerow", "qsdfjkmgh"},
	{"azerty-left-hand", "qsdfazerwxcv"},
	{"azerty-right-hand", "jklmuiophyn"},
	{"qwertz", "asdfqweryxcvjkluiopmghtzbn"},
	{"qwertz-homerow", "asdfghjkl"},
	{"qwertz-left-hand", "asdfqweryxcv"},
	{"qwertz-right-hand", "jkluiopmhzn"},
	{"dvorak", "aoeuqjkxpyhtnsgcrlmwvzfidb"},
	{"dvorak-homerow", "aoeuhtnsid"},
	{"dvorak-left-hand", "aoeupqjkyix"},
	{"dvorak-right-hand", "htnsgcrlmwvz"},
	{"colemak", "arstqwfpzxcvneioluymdhgjbk"},
	{"colemak-homerow", "arstneiodh"},
	{"colemak-left-hand", "arstqwfpzxcv"},
	{"colemak-right-hand", "neioluymjhk"},
}

// DefaultAlphabet is used when the configuration names none
const DefaultAlphabet = "qwerty"

// Alphabet produces the key sequences the picker labels elements with
type Alphabet struct {
	letters []string
}

func NewAlphabet(letters string) *Alphabet {
	return &Alphabet{letters: strings.Split(letters, "")}
}

// NewBuiltinAlphabet looks up a keyboard layout by name
func NewBuiltinAlphabet(name string) (*Alphabet, error) {
	for _, alphabet := range builtinAlphabets {
		if alphabet.name == name {
			return NewAlphabet(alphabet.letters), nil
		}
	}
	return nil, fmt.Errorf("unknown alphabet: %s", name)
}

// AlphabetNames lists the builtin layouts
func AlphabetNames() []string {
	names := make([]string, 0, len(builtinAlphabets))
	for _, alphabet := range builtinAlphabets {
		names = append(names, alphabet.name)
	}
	return names
}

// Hints returns n distinct hints, no hint a prefix of another. Single
// letters are used while they last; the trailing letters are then turned
// into two-letter prefixes, starting from the last one.
func (a *Alphabet) Hints(n int) []string {
	size := len(a.letters)
	if n <= 0 || size == 0 {
		return nil
	}

	singles := append([]string(nil), a.letters...)
	var doubles []string

	for len(singles) > 0 && len(singles)+len(doubles) < n {
		prefix := singles[len(singles)-1]
		singles = singles[:len(singles)-1]

		room := min(size, n-len(singles)-len(doubles))
		group := make([]string, 0, room)
		for _, letter := range a.letters[:room] {
			group = append(group, prefix+letter)
		}
		doubles = append(group, doubles...)
	}

	if keep := n - len(doubles); len(singles) > keep {
		singles = singles[:keep]
	}
	return append(singles, doubles...)
}

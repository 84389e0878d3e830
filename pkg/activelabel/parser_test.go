package activelabel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(WithRegistry(NewRegistry(NewPatternCache())))
}

func parse(t *testing.T, text string, kinds ...Kind) Result {
	t.Helper()
	return newTestParser().Parse(text, Config{Enabled: kinds})
}

func texts(tuples []ElementTuple) []string {
	out := []string{}
	for _, tuple := range tuples {
		out = append(out, tuple.Element.Text())
	}
	return out
}

func get(r Result, kind Kind) []ElementTuple {
	tuples, _ := r.Elements.Get(kind)
	return tuples
}

func TestParseNoMatches(t *testing.T) {
	for _, text := range []string{"", "x", "😁", "this is a sentence"} {
		r := parse(t, text, KindMention, KindHashtag, KindURL)
		for _, k := range []Kind{KindMention, KindHashtag, KindURL} {
			tuples, ok := r.Elements.Get(k)
			require.True(t, ok, "kind %s missing for %q", k, text)
			require.Empty(t, tuples, "kind %s for %q", k, text)
		}
	}
}

func TestParseMentions(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"@userhandle", []string{"userhandle"}},
		{"@userhandle.", []string{"userhandle"}},
		{"@_with_underscores_", []string{"_with_underscores_"}},
		{"Hello @world", []string{"world"}},
		{".@userhandle", []string{"userhandle"}},
		{"@first @second", []string{"first", "second"}},
		{"@çevik", []string{"çevik"}},
		{"@u", []string{}},
		{"hi @u", []string{"u"}},
		{".@u", []string{"u"}},
		{"@", []string{}},
		{"hi @", []string{}},
		{"email@domain.com", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := parse(t, tt.text, KindMention)
			require.Equal(t, tt.want, texts(get(r, KindMention)))
		})
	}
}

func TestParseMentionRangeKeepsSigil(t *testing.T) {
	r := parse(t, "Hello @world", KindMention)
	tuples := get(r, KindMention)
	require.Len(t, tuples, 1)
	require.Equal(t, Range{Location: 6, Length: 6}, tuples[0].Range)
	require.Equal(t, Mention{Handle: "world"}, tuples[0].Element)
	require.Equal(t, KindMention, tuples[0].Kind)
}

func TestParseRangesAreUTF16(t *testing.T) {
	r := parse(t, "😁 @user", KindMention)
	tuples := get(r, KindMention)
	require.Len(t, tuples, 1)
	require.Equal(t, Range{Location: 3, Length: 5}, tuples[0].Range)
	require.Equal(t, "@user", NewTextIndex(r.Text).Substring(tuples[0].Range))
}

func TestParseHashtags(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"#hashtag", []string{"hashtag"}},
		{"#some#hashtag", []string{"some"}},
		{"one #two three #four", []string{"two", "four"}},
		{"#ñandú", []string{"ñandú"}},
		{"hash#tag", []string{}},
		{"#h", []string{}},
		{"x #a", []string{"a"}},
		{"#a #b", []string{"b"}},
		{"x #", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := parse(t, tt.text, KindHashtag)
			require.Equal(t, tt.want, texts(get(r, KindHashtag)))
		})
	}
}

func TestParseURLs(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"www.google.com", []string{"www.google.com"}},
		{"pic.twitter.com/YUGdEbUx", []string{"pic.twitter.com/YUGdEbUx"}},
		{"http://www.google.com", []string{"http://www.google.com"}},
		{"https://www.google.com.", []string{"https://www.google.com"}},
		{"(https://example.com/path)", []string{"https://example.com/path"}},
		{"see www.a.com and www.b.com", []string{"www.a.com", "www.b.com"}},
		{"picfoo", []string{}},
		{"wwwbar", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := parse(t, tt.text, KindURL)
			tuples := get(r, KindURL)
			require.Equal(t, tt.want, texts(tuples))
			for _, tuple := range tuples {
				u := tuple.Element.(URL)
				require.Equal(t, u.Original, u.Trimmed)
			}
		})
	}
}

func TestParseEmails(t *testing.T) {
	r := parse(t, "email@domain.com", KindEmail)
	require.Equal(t, []string{"email@domain.com"}, texts(get(r, KindEmail)))

	r = parse(t, "Contact: someone.else@sub.domain.org!", KindEmail)
	require.Equal(t, []string{"someone.else@sub.domain.org"}, texts(get(r, KindEmail)))

	r = parse(t, "no at sign here", KindEmail)
	require.Empty(t, get(r, KindEmail))
}

func TestParseCustomPattern(t *testing.T) {
	cfg := Config{CustomPatterns: []CustomPattern{{Pattern: `\sare\b`, Identifier: "are"}}}
	r := newTestParser().Parse("we are one", cfg)

	kind := CustomKind(`\sare\b`)
	tuples := get(r, kind)
	require.Len(t, tuples, 1)
	require.Equal(t, Custom{Match: "are", Pattern: `\sare\b`}, tuples[0].Element)
	require.Equal(t, Range{Location: 3, Length: 3}, tuples[0].Range)
	require.Equal(t, "are", cfg.Name(kind))
	require.Equal(t, "mention", cfg.Name(KindMention))
}

func TestParseCustomPatternIsCaseInsensitive(t *testing.T) {
	cfg := Config{CustomPatterns: []CustomPattern{{Pattern: "are"}}}
	r := newTestParser().Parse("We ARE one", cfg)
	require.Equal(t, []string{"ARE"}, texts(get(r, CustomKind("are"))))
}

func TestParseInvalidCustomPatternYieldsNothing(t *testing.T) {
	cfg := Config{
		Enabled:        []Kind{KindMention},
		CustomPatterns: []CustomPattern{{Pattern: "(unclosed"}},
	}
	r := newTestParser().Parse("@user (unclosed", cfg)

	tuples, ok := r.Elements.Get(CustomKind("(unclosed"))
	require.True(t, ok)
	require.Empty(t, tuples)
	require.Equal(t, []string{"user"}, texts(get(r, KindMention)))
}

func TestParseFiltersAreExclusionary(t *testing.T) {
	p := newTestParser()
	cfg := Config{Enabled: []Kind{KindMention, KindHashtag}}

	r := p.Parse("@user #tag", cfg)
	require.Equal(t, 2, r.Elements.Len())

	cfg.MentionFilter = func(text string) bool { return text != "user" }
	r = p.Parse("@user #tag", cfg)
	require.Equal(t, 1, r.Elements.Len())
	require.Equal(t, []ElementTuple{{
		Range:   Range{Location: 6, Length: 4},
		Element: Hashtag{Tag: "tag"},
		Kind:    KindHashtag,
	}}, r.Elements.All())

	cfg.HashtagFilter = func(text string) bool { return text != "tag" }
	r = p.Parse("@user #tag", cfg)
	require.Equal(t, 0, r.Elements.Len())
}

func TestParseFiltersIgnoreOtherKinds(t *testing.T) {
	reject := func(string) bool { return false }
	cfg := Config{
		Enabled:       []Kind{KindURL, KindEmail},
		MentionFilter: reject,
		HashtagFilter: reject,
	}
	r := newTestParser().Parse("www.google.com email@domain.com", cfg)
	require.Equal(t, 2, r.Elements.Len())
}

func TestParseDisabledKindRoundTrip(t *testing.T) {
	p := newTestParser()
	text := "@user #tag www.google.com email@domain.com"

	full := p.Parse(text, Config{Enabled: []Kind{KindMention, KindHashtag, KindURL, KindEmail}})
	partial := p.Parse(text, Config{Enabled: []Kind{KindMention, KindURL, KindEmail}})

	require.Len(t, get(full, KindHashtag), 1)
	require.Empty(t, get(partial, KindHashtag))
	for _, k := range []Kind{KindMention, KindURL, KindEmail} {
		require.Equal(t, get(full, k), get(partial, k), "kind %s", k)
	}
}

func TestParsePassOrder(t *testing.T) {
	cfg := Config{
		Enabled:        []Kind{KindHashtag, KindURL, KindMention, KindHashtag},
		CustomPatterns: []CustomPattern{{Pattern: "foo"}, {Pattern: "foo"}},
	}
	r := newTestParser().Parse("", cfg)
	require.Equal(t, []Kind{KindURL, KindHashtag, KindMention, CustomKind("foo")}, r.Elements.Kinds())
}

func TestParseOverlapIsKept(t *testing.T) {
	cfg := Config{
		Enabled:        []Kind{KindURL},
		CustomPatterns: []CustomPattern{{Pattern: "google"}},
	}
	r := newTestParser().Parse("www.google.com", cfg)
	require.Len(t, get(r, KindURL), 1)
	require.Len(t, get(r, CustomKind("google")), 1)
}

func TestParseDetectorKinds(t *testing.T) {
	text := "Ping @joe or call 202-555-0123. Meet at 768 5th Ave on June 5th, 2021."
	r := parse(t, text, KindMention, KindPhone, KindAddress, KindDate)

	require.Equal(t, []string{"joe"}, texts(get(r, KindMention)))
	require.Equal(t, []string{"202-555-0123"}, texts(get(r, KindPhone)))
	require.Equal(t, []string{"768 5th Ave"}, texts(get(r, KindAddress)))
	require.Equal(t, []string{"June 5th, 2021"}, texts(get(r, KindDate)))

	phone := get(r, KindPhone)[0]
	require.Equal(t, "202-555-0123", NewTextIndex(r.Text).Substring(phone.Range))
}

func TestParseUnavailableDetector(t *testing.T) {
	registry := NewRegistry(NewPatternCache())
	registry.SetDetector(KindPhone, nil)
	p := NewParser(WithRegistry(registry))

	r := p.Parse("@user 202-555-0123", Config{Enabled: []Kind{KindMention, KindPhone}})
	tuples, ok := r.Elements.Get(KindPhone)
	require.True(t, ok)
	require.Empty(t, tuples)
	require.Len(t, get(r, KindMention), 1)
}

func TestParseTrimsURLsBeforeOtherKinds(t *testing.T) {
	text := "https://github.com/optonaut/ActiveLabel.swift/blob/master/README.md @user"
	cfg := Config{Enabled: []Kind{KindMention, KindURL}, MaxURLLength: 30}
	r := newTestParser().Parse(text, cfg)

	require.NotEqual(t, len(text), len(r.Text))
	require.True(t, strings.HasPrefix(r.Text, "https://github.com/optonaut/Ac... "))

	idx := NewTextIndex(r.Text)
	mention := get(r, KindMention)
	require.Len(t, mention, 1)
	require.Equal(t, "@user", idx.Substring(mention[0].Range))
}

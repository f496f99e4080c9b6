package terms

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	snowballeng "github.com/kljensen/snowball/english"
)

var (
	reTag       = regexp.MustCompile(`<[^>]*>`)
	reSeparator = regexp.MustCompile(`[-_.,;/]`)
)

// Extractor normalizes text into tokens. The zero value is ready to use and
// matches Normalize.
type Extractor struct {
	// Stem applies the snowball English stemmer to every token that
	// survives stopword removal.
	Stem bool
}

type Option func(*Extractor)

// WithStemming enables or disables stemming.
func WithStemming(enabled bool) Option {
	return func(e *Extractor) {
		e.Stem = enabled
	}
}

func NewExtractor(opts ...Option) Extractor {
	var e Extractor
	for _, o := range opts {
		o(&e)
	}
	return e
}

// Normalize lowercases text, strips tags, turns separator punctuation into
// spaces, drops any other non word runes, splits on whitespace and removes
// stopwords. Order and duplicates are preserved.
func (e Extractor) Normalize(text string) []string {
	text = strings.ToLower(text)
	text = reTag.ReplaceAllString(text, " ")
	text = reSeparator.ReplaceAllString(text, " ")
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, text)

	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, word := range fields {
		if IsStopword(word) {
			continue
		}
		if e.Stem {
			word = snowballeng.Stem(word, false)
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// Normalize is Extractor{}.Normalize.
func Normalize(text string) []string {
	return Extractor{}.Normalize(text)
}

// PhoneticHash is a deliberately coarse fingerprint: the set of non vowel
// runes of word, sorted and concatenated. "color" and "colour" collide, as do
// many unrelated words.
func PhoneticHash(word string) string {
	seen := make(map[rune]struct{}, len(word))
	runes := make([]rune, 0, len(word))
	for _, r := range word {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return string(runes)
}

// Ngrams returns every run of n consecutive tokens joined by a single space.
func Ngrams(n int, tokens []string) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

// NgramRange concatenates Ngrams(n, tokens) for n in [minN, maxN].
func NgramRange(minN, maxN int, tokens []string) []string {
	var grams []string
	for n := minN; n <= maxN; n++ {
		grams = append(grams, Ngrams(n, tokens)...)
	}
	return grams
}

// Prefixes returns the prefixes of word with rune length in
// [minLen, min(maxLen, len(word))], longest first. maxLen <= 0 means no upper
// bound. A word shorter than minLen is returned on its own.
func Prefixes(word string, minLen, maxLen int) []string {
	n := utf8.RuneCountInString(word)
	if n < minLen {
		return []string{word}
	}
	if maxLen <= 0 || maxLen > n {
		maxLen = n
	}
	minLen = max(minLen, 1)
	if maxLen < minLen {
		return nil
	}

	// byte offset of the end of each rune prefix
	ends := make([]int, 0, n)
	for i := range word {
		if i > 0 {
			ends = append(ends, i)
		}
	}
	ends = append(ends, len(word))

	prefixes := make([]string, 0, maxLen-minLen+1)
	for l := maxLen; l >= minLen; l-- {
		prefixes = append(prefixes, word[:ends[l-1]])
	}
	return prefixes
}

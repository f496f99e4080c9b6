package search

import (
	"errors"
	"fmt"

	"github.com/forestrie/go-bloomsearch/corpus"
)

var ErrConfig = errors.New("search: invalid scoring configuration")

// Config holds the query term windows and every scoring weight. All weights
// must be non-negative so that a Bloom false positive can only raise a score.
type Config struct {
	// NgramMin and NgramMax bound the query n-gram window. Defaults 2 and 3.
	NgramMin int `yaml:"ngramMin" json:"ngramMin"`
	NgramMax int `yaml:"ngramMax" json:"ngramMax"`

	// PrefixMin is the shortest prefix probed for a word the filter does not
	// hold. PrefixMax caps the longest, 0 meaning the word length.
	PrefixMin int `yaml:"prefixMin" json:"prefixMin"`
	PrefixMax int `yaml:"prefixMax" json:"prefixMax"`

	// PhraseBonus is added once when the whole normalized query is present.
	PhraseBonus float64 `yaml:"phraseBonus" json:"phraseBonus"`

	// NgramWeight scales an n-gram hit by its share of the query words.
	NgramWeight float64 `yaml:"ngramWeight" json:"ngramWeight"`
	// TitleNgramBonus is added when the n-gram occurs in the normalized title.
	TitleNgramBonus float64 `yaml:"titleNgramBonus" json:"titleNgramBonus"`

	TitleWordBonus float64 `yaml:"titleWordBonus" json:"titleWordBonus"`
	WordWeight     float64 `yaml:"wordWeight" json:"wordWeight"`

	// PrefixExponent is p in WordWeight * (prefixLen/wordLen)^p.
	PrefixExponent float64 `yaml:"prefixExponent" json:"prefixExponent"`

	PhoneticWeight     float64 `yaml:"phoneticWeight" json:"phoneticWeight"`
	TitlePhoneticBonus float64 `yaml:"titlePhoneticBonus" json:"titlePhoneticBonus"`
}

func DefaultConfig() Config {
	return Config{
		NgramMin:           2,
		NgramMax:           3,
		PrefixMin:          3,
		PrefixMax:          0,
		PhraseBonus:        10,
		NgramWeight:        2,
		TitleNgramBonus:    4,
		TitleWordBonus:     1,
		WordWeight:         1,
		PrefixExponent:     1,
		PhoneticWeight:     0.5,
		TitlePhoneticBonus: 1,
	}
}

// Validate rejects negative windows and weights. NgramMax below NgramMin is
// allowed and disables n-gram scoring.
func (c Config) Validate() error {
	windows := []struct {
		name string
		v    int
	}{
		{"ngramMin", c.NgramMin},
		{"ngramMax", c.NgramMax},
		{"prefixMin", c.PrefixMin},
		{"prefixMax", c.PrefixMax},
	}
	for _, w := range windows {
		if w.v < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrConfig, w.name, w.v)
		}
	}

	weights := []struct {
		name string
		v    float64
	}{
		{"phraseBonus", c.PhraseBonus},
		{"ngramWeight", c.NgramWeight},
		{"titleNgramBonus", c.TitleNgramBonus},
		{"titleWordBonus", c.TitleWordBonus},
		{"wordWeight", c.WordWeight},
		{"prefixExponent", c.PrefixExponent},
		{"phoneticWeight", c.PhoneticWeight},
		{"titlePhoneticBonus", c.TitlePhoneticBonus},
	}
	for _, w := range weights {
		// !(v >= 0) also catches NaN
		if !(w.v >= 0) {
			return fmt.Errorf("%w: %s must be >= 0 (%v)", ErrConfig, w.name, w.v)
		}
	}
	return nil
}

// AlignTo narrows the probe windows to the terms a corpus built with w
// holds: no prefix shorter than w.PrefixMin and no n-gram outside
// [w.NgramMin, w.NgramMax]. Zero fields of w are unknown and leave c as is.
func (c Config) AlignTo(w corpus.TermWindows) Config {
	if w.PrefixMin > 0 {
		c.PrefixMin = max(c.PrefixMin, w.PrefixMin)
	}
	if w.NgramMin > 0 {
		c.NgramMin = max(c.NgramMin, w.NgramMin)
	}
	if w.NgramMax > 0 {
		c.NgramMax = min(c.NgramMax, w.NgramMax)
	}
	return c
}

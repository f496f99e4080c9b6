package search

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/forestrie/go-bloomsearch/bloom"
	"github.com/forestrie/go-bloomsearch/corpus"
	"github.com/forestrie/go-bloomsearch/terms"
)

// Result is one ranked document.
type Result struct {
	Entry corpus.Entry
	Score float64
}

// document is a corpus entry with everything that does not depend on the
// query worked out once.
type document struct {
	entry       corpus.Entry
	filter      bloom.Membership
	titleTokens map[string]struct{}
	titleJoined string
	titleHashes map[string]struct{}
}

// query is the transient term set for one Search call.
type query struct {
	words  []string
	hashes []string
	phrase string
	ngrams []ngram
}

type ngram struct {
	text  string
	words int
}

// Engine scores queries against a fixed corpus. It is safe for concurrent
// use once constructed.
type Engine struct {
	opts Options
	docs []document
}

// NewEngine decodes every entry's filter up front. A single malformed filter
// fails the whole engine with an error wrapping bloom.ErrFormat.
func NewEngine(entries []corpus.Entry, opts ...Option) (*Engine, error) {
	o := newOptions(opts...)
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	docs := make([]document, len(entries))
	for i, e := range entries {
		f, err := bloom.FromBinary(e.Index)
		if err != nil {
			return nil, fmt.Errorf("document %d (%s): %w", i, e.Path, err)
		}
		docs[i] = newDocument(o.extractor, e, f)
	}
	if o.log != nil {
		o.log.Debugf("search engine ready: %d documents, %d workers", len(docs), o.workers)
	}
	return &Engine{opts: o, docs: docs}, nil
}

func newDocument(ex terms.Extractor, e corpus.Entry, f bloom.Membership) document {
	tokens := ex.Normalize(e.Title)
	d := document{
		entry:       e,
		filter:      f,
		titleTokens: make(map[string]struct{}, len(tokens)),
		titleJoined: strings.Join(tokens, " "),
		titleHashes: make(map[string]struct{}, len(tokens)),
	}
	for _, t := range tokens {
		d.titleTokens[t] = struct{}{}
		if h := terms.PhoneticHash(t); h != "" {
			d.titleHashes[h] = struct{}{}
		}
	}
	return d
}

// Len is the number of documents in the engine.
func (e *Engine) Len() int { return len(e.docs) }

// Search ranks every document against q. Results are in descending score
// order, ties in corpus order, and only scores above minScore are kept. A
// query that normalizes to nothing returns no results.
func (e *Engine) Search(q string, minScore float64) []Result {
	qt, ok := e.prepare(q)
	if !ok {
		return nil
	}

	scores := make([]float64, len(e.docs))
	e.scoreAll(qt, scores)

	results := make([]Result, 0, len(e.docs))
	for i, s := range scores {
		if s > minScore {
			results = append(results, Result{Entry: e.docs[i].entry, Score: s})
		}
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	if e.opts.log != nil {
		e.opts.log.Debugf("search %q: %d words, %d of %d documents above %v",
			q, len(qt.words), len(results), len(e.docs), minScore)
	}
	return results
}

func (e *Engine) prepare(q string) (query, bool) {
	words := e.opts.extractor.Normalize(q)
	if len(words) == 0 {
		return query{}, false
	}

	cfg := e.opts.config
	qt := query{
		words:  words,
		hashes: make([]string, len(words)),
		phrase: strings.Join(words, " "),
	}
	for i, w := range words {
		qt.hashes[i] = terms.PhoneticHash(w)
	}
	for n := cfg.NgramMin; n <= cfg.NgramMax; n++ {
		for _, g := range terms.Ngrams(n, words) {
			qt.ngrams = append(qt.ngrams, ngram{text: g, words: n})
		}
	}
	return qt, true
}

func (e *Engine) scoreAll(qt query, scores []float64) {
	workers := min(e.opts.workers, len(e.docs))
	if workers <= 1 {
		for i := range e.docs {
			scores[i] = e.score(qt, &e.docs[i])
		}
		return
	}

	// Each worker owns a disjoint stride of scores.
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := w; i < len(e.docs); i += workers {
				scores[i] = e.score(qt, &e.docs[i])
			}
		}()
	}
	wg.Wait()
}

// score sums the query's contributions for one document. Every term is
// non-negative.
func (e *Engine) score(qt query, d *document) float64 {
	cfg := e.opts.config
	words := float64(len(qt.words))
	score := 0.0

	if d.filter.Has(qt.phrase) {
		score += cfg.PhraseBonus
	}

	for _, g := range qt.ngrams {
		if d.filter.Has(g.text) {
			score += cfg.NgramWeight * (float64(g.words) / words)
		}
		if containsPhrase(d.titleJoined, g.text) {
			score += cfg.TitleNgramBonus
		}
	}

	for i, w := range qt.words {
		if _, ok := d.titleTokens[w]; ok {
			score += cfg.TitleWordBonus
		}
		if d.filter.Has(w) {
			score += cfg.WordWeight / words
		} else {
			score += e.prefixScore(d.filter, w) / words
		}

		h := qt.hashes[i]
		if h == "" {
			continue
		}
		if d.filter.Has(h) {
			score += cfg.PhoneticWeight / words
		}
		if _, ok := d.titleHashes[h]; ok {
			score += cfg.TitlePhoneticBonus
		}
	}
	return score
}

// prefixScore scores the longest prefix of w present in f. Shorter prefixes
// are not probed once one hits.
func (e *Engine) prefixScore(f bloom.Membership, w string) float64 {
	cfg := e.opts.config
	wordLen := float64(utf8.RuneCountInString(w))
	for _, p := range terms.Prefixes(w, cfg.PrefixMin, cfg.PrefixMax) {
		if p == w {
			// already probed as the whole word
			continue
		}
		if f.Has(p) {
			ratio := float64(utf8.RuneCountInString(p)) / wordLen
			return cfg.WordWeight * math.Pow(ratio, cfg.PrefixExponent)
		}
	}
	return 0
}

// containsPhrase reports whether g occurs in title on token boundaries.
func containsPhrase(title, g string) bool {
	if title == "" {
		return false
	}
	return strings.Contains(" "+title+" ", " "+g+" ")
}

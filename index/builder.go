package index

import (
	"fmt"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-bloomsearch/bloom"
	"github.com/forestrie/go-bloomsearch/corpus"
	"github.com/forestrie/go-bloomsearch/terms"
)

// Document is one source document as delivered by ingestion: plain text body,
// front matter already removed.
type Document struct {
	Path  string
	Title string
	Body  string
}

// Builder turns documents into corpus entries, one Bloom filter each.
type Builder struct {
	log  logger.Logger
	opts Options
}

// NewBuilder returns a builder. log may be nil.
func NewBuilder(log logger.Logger, opts ...Option) *Builder {
	return &Builder{log: log, opts: newOptions(opts...)}
}

// Windows reports the term windows this builder indexes with, for the
// corpus manifest.
func (b *Builder) Windows() corpus.TermWindows {
	return corpus.TermWindows{
		NgramMin:  b.opts.ngramMin,
		NgramMax:  b.opts.ngramMax,
		PrefixMin: b.opts.prefixMin,
		Stemming:  b.opts.extractor.Stem,
		ErrorRate: b.opts.errorRate,
	}
}

// Build returns the encoded corpus for docs, chunks in input order.
func (b *Builder) Build(docs []Document) ([]byte, error) {
	entries, err := b.Entries(docs)
	if err != nil {
		return nil, err
	}
	data, err := corpus.Encode(entries)
	if err != nil {
		return nil, err
	}
	b.infof("corpus built: %d documents, %d bytes", len(entries), len(data))
	return data, nil
}

// Entries builds the entry for every document. entries[i] always belongs to
// docs[i]. The first failing document, by input position, aborts the build.
func (b *Builder) Entries(docs []Document) ([]corpus.Entry, error) {
	entries := make([]corpus.Entry, len(docs))
	errs := make([]error, len(docs))

	workers := min(b.opts.workers, len(docs))
	if workers <= 1 {
		for i := range docs {
			entries[i], errs[i] = b.Entry(docs[i])
			if errs[i] != nil {
				break
			}
		}
	} else {
		var wg sync.WaitGroup
		next := make(chan int)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range next {
					entries[i], errs[i] = b.Entry(docs[i])
				}
			}()
		}
		for i := range docs {
			next <- i
		}
		close(next)
		wg.Wait()
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", docs[i].Path, err)
		}
	}
	return entries, nil
}

// Entry builds the corpus entry for a single document.
func (b *Builder) Entry(doc Document) (corpus.Entry, error) {
	set := b.Terms(doc)

	f, err := bloom.New(uint64(max(1, len(set))), b.opts.errorRate)
	if err != nil {
		return corpus.Entry{}, err
	}
	for _, t := range set {
		f.Add(t)
	}
	index, err := f.MarshalBinary()
	if err != nil {
		return corpus.Entry{}, err
	}

	b.debugf("indexed %s: %d terms, m=%d k=%d", doc.Path, len(set), f.M(), f.K())
	return corpus.Entry{Title: doc.Title, Path: doc.Path, Index: index}, nil
}

// Terms returns the distinct terms of doc in first seen order: body words
// with their phonetic hashes and prefixes, body n-grams, then the same
// word derived terms for the title.
func (b *Builder) Terms(doc Document) []string {
	ts := newTermSet()
	words := make(map[string]struct{})

	tokens := b.opts.extractor.Normalize(doc.Body)
	b.addWords(ts, words, tokens)
	for _, g := range terms.NgramRange(b.opts.ngramMin, b.opts.ngramMax, tokens) {
		ts.add(g)
	}
	b.addWords(ts, words, b.opts.extractor.Normalize(doc.Title))
	return ts.order
}

// addWords adds each unique word with its phonetic hash and prefixes. words
// tracks the words already expanded, which is not the same as ts: "test" may
// already be in ts as a prefix of "testing".
func (b *Builder) addWords(ts *termSet, words map[string]struct{}, tokens []string) {
	for _, w := range tokens {
		if _, ok := words[w]; ok {
			continue
		}
		words[w] = struct{}{}
		ts.add(w)
		// all vowel words have no fingerprint
		if h := terms.PhoneticHash(w); h != "" {
			ts.add(h)
		}
		for _, p := range terms.Prefixes(w, b.opts.prefixMin, 0) {
			ts.add(p)
		}
	}
}

type termSet struct {
	seen  map[string]struct{}
	order []string
}

func newTermSet() *termSet {
	return &termSet{seen: make(map[string]struct{})}
}

// add reports whether t was new.
func (s *termSet) add(t string) bool {
	if _, ok := s.seen[t]; ok {
		return false
	}
	s.seen[t] = struct{}{}
	s.order = append(s.order, t)
	return true
}

func (b *Builder) infof(format string, args ...any) {
	if b.log != nil {
		b.log.Infof(format, args...)
	}
}

func (b *Builder) debugf(format string, args ...any) {
	if b.log != nil {
		b.log.Debugf(format, args...)
	}
}

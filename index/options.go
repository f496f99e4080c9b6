package index

import (
	"github.com/forestrie/go-bloomsearch/bloom"
	"github.com/forestrie/go-bloomsearch/terms"
)

const (
	DefaultNgramMin  = 2
	DefaultNgramMax  = 6
	DefaultPrefixMin = 3
)

// Options controls how document term sets are derived and sized.
type Options struct {
	errorRate float64
	ngramMin  int
	ngramMax  int
	prefixMin int
	workers   int
	extractor terms.Extractor
}

type Option func(*Options)

// WithErrorRate sets the target false positive rate of every filter.
func WithErrorRate(p float64) Option {
	return func(o *Options) {
		o.errorRate = p
	}
}

// WithNgramWindow sets the n-gram sizes indexed from each document body.
func WithNgramWindow(minN, maxN int) Option {
	return func(o *Options) {
		o.ngramMin = minN
		o.ngramMax = maxN
	}
}

// WithPrefixMin sets the shortest indexed word prefix.
func WithPrefixMin(n int) Option {
	return func(o *Options) {
		o.prefixMin = n
	}
}

// WithWorkers builds documents on n goroutines. The corpus is byte
// identical for any n.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.workers = n
	}
}

func WithExtractor(e terms.Extractor) Option {
	return func(o *Options) {
		o.extractor = e
	}
}

func newOptions(opts ...Option) Options {
	o := Options{
		errorRate: bloom.DefaultErrorRate,
		ngramMin:  DefaultNgramMin,
		ngramMax:  DefaultNgramMax,
		prefixMin: DefaultPrefixMin,
		workers:   1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

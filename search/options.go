package search

import (
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-bloomsearch/terms"
)

type Options struct {
	config    Config
	workers   int
	extractor terms.Extractor
	log       logger.Logger
}

type Option func(*Options)

// WithConfig replaces the default scoring configuration.
func WithConfig(cfg Config) Option {
	return func(o *Options) {
		o.config = cfg
	}
}

// WithWorkers scores documents on n goroutines. n <= 1 scores sequentially.
// Results are identical either way.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.workers = n
	}
}

// WithExtractor sets the query normalizer. It must match the one the corpus
// was built with, stemming included.
func WithExtractor(e terms.Extractor) Option {
	return func(o *Options) {
		o.extractor = e
	}
}

func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.log = log
	}
}

func newOptions(opts ...Option) Options {
	o := Options{
		config:  DefaultConfig(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

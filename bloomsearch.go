// Package bloomsearch builds and queries an approximate full text index in
// which every document is represented by a single Bloom filter.
//
// Build packs the filters of a document set into one corpus blob; Search
// decodes a blob and ranks its documents against a free text query.
package bloomsearch

import (
	"errors"

	"github.com/forestrie/go-bloomsearch/bloom"
	"github.com/forestrie/go-bloomsearch/corpus"
	"github.com/forestrie/go-bloomsearch/index"
	"github.com/forestrie/go-bloomsearch/search"
)

// Document is an ingested source document.
type Document = index.Document

// Result is a ranked match.
type Result struct {
	Path  string
	Title string
	Score float64
}

// Build returns the corpus for documents. Chunk order follows documents.
func Build(documents []Document, opts ...index.Option) ([]byte, error) {
	return index.NewBuilder(nil, opts...).Build(documents)
}

// Search ranks the documents of data against query and returns those scoring
// above minScore, best first. A malformed corpus or filter is reported with
// an error satisfying IsFormatError and no results.
func Search(data []byte, query string, minScore float64, opts ...search.Option) ([]Result, error) {
	entries, err := corpus.Decode(data)
	if err != nil {
		return nil, err
	}
	engine, err := search.NewEngine(entries, opts...)
	if err != nil {
		return nil, err
	}
	return Results(engine.Search(query, minScore)), nil
}

// Results flattens engine results to path, title and score.
func Results(ranked []search.Result) []Result {
	out := make([]Result, len(ranked))
	for i, r := range ranked {
		out[i] = Result{Path: r.Entry.Path, Title: r.Entry.Title, Score: r.Score}
	}
	return out
}

// IsFormatError reports whether err was caused by malformed corpus or filter
// bytes.
func IsFormatError(err error) bool {
	return errors.Is(err, corpus.ErrFormat) || errors.Is(err, bloom.ErrFormat)
}

// IsConfigError reports whether err was caused by invalid filter or scoring
// parameters.
func IsConfigError(err error) bool {
	return errors.Is(err, bloom.ErrConfig) || errors.Is(err, search.ErrConfig)
}

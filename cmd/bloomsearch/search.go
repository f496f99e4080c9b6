package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forestrie/go-bloomsearch"
	"github.com/forestrie/go-bloomsearch/corpus"
	"github.com/forestrie/go-bloomsearch/search"
	"github.com/forestrie/go-bloomsearch/terms"
)

var errNoQuery = errors.New("search needs a query")

func runSearch(ctx context.Context, env *environment, args []string) error {
	if len(args) == 0 {
		return errNoQuery
	}
	q := strings.Join(args, " ")

	src, err := openSource(env)
	if err != nil {
		return err
	}
	c, err := src.Load(ctx, env.cfg.Corpus)
	if err != nil {
		return err
	}

	start := time.Now()
	entries, err := corpus.Decode(c.Data)
	if err != nil {
		return fmt.Errorf("%s: %w", env.cfg.Corpus, err)
	}
	engine, err := search.NewEngine(entries, searchOptions(env, c.Manifest)...)
	if err != nil {
		return fmt.Errorf("%s: %w", env.cfg.Corpus, err)
	}
	results := bloomsearch.Results(engine.Search(q, env.cfg.MinScore))
	env.log.Infof("search %q: %d results from %d documents in %v", q, len(results), engine.Len(), time.Since(start))

	return writeResults(env, results)
}

// searchOptions follows the manifest where it records how the corpus was
// built, so a query is normalized the way the documents were and only probes
// the prefix and n-gram windows that were indexed.
func searchOptions(env *environment, m *corpus.Manifest) []search.Option {
	opts := env.cfg.SearchOptions()
	opts = append(opts, search.WithLogger(env.log))
	if m == nil {
		return opts
	}
	if m.Windows.Stemming != env.cfg.Index.Stemming {
		env.log.Infof("corpus built with stemming=%v, searching the same way", m.Windows.Stemming)
		opts = append(opts, search.WithExtractor(terms.NewExtractor(terms.WithStemming(m.Windows.Stemming))))
	}
	if cfg := env.cfg.Search.AlignTo(m.Windows); cfg != env.cfg.Search {
		env.log.Infof("corpus indexed prefixes from %d and ngrams %d-%d, searching prefixes from %d and ngrams %d-%d",
			m.Windows.PrefixMin, m.Windows.NgramMin, m.Windows.NgramMax, cfg.PrefixMin, cfg.NgramMin, cfg.NgramMax)
		opts = append(opts, search.WithConfig(cfg))
	}
	return opts
}

func writeResults(env *environment, results []bloomsearch.Result) error {
	enc := json.NewEncoder(env.stdout)
	for _, r := range results {
		if err := enc.Encode(struct {
			Path  string  `json:"path"`
			Title string  `json:"title"`
			Score float64 `json:"score"`
		}{r.Path, r.Title, r.Score}); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/forestrie/go-bloomsearch/bloom"
	"github.com/forestrie/go-bloomsearch/corpus"
)

func runInspect(ctx context.Context, env *environment, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("inspect takes no arguments")
	}
	src, err := openSource(env)
	if err != nil {
		return err
	}
	c, err := src.Load(ctx, env.cfg.Corpus)
	if err != nil {
		return err
	}

	if m := c.Manifest; m != nil {
		fmt.Fprintf(env.stdout, "build %s at %s\n", m.BuildID, m.Created.Format("2006-01-02T15:04:05Z07:00"))
		fmt.Fprintf(env.stdout, "blake3 %s, %d bytes, %d documents\n", m.FingerprintHex(), m.Bytes, m.Documents)
		fmt.Fprintf(env.stdout, "ngrams %d-%d, prefixes from %d, stemming %v, error rate %v\n\n",
			m.Windows.NgramMin, m.Windows.NgramMax, m.Windows.PrefixMin, m.Windows.Stemming, m.Windows.ErrorRate)
	}

	w := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tTITLE\tM\tK\tN\tEST FPR")
	s := corpus.NewScanner(c.Data)
	for s.Scan() {
		e := s.Entry()
		f, err := bloom.FromBinary(e.Index)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Path, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.4f\n", e.Path, e.Title, f.M(), f.K(), f.N(), f.EstimateFalsePositiveRate())
	}
	if err := s.Err(); err != nil {
		return err
	}
	return w.Flush()
}

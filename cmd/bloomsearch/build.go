package main

import (
	"context"
	"fmt"

	"github.com/forestrie/go-bloomsearch/corpus"
	"github.com/forestrie/go-bloomsearch/index"
	"github.com/forestrie/go-bloomsearch/ingest"
	"github.com/forestrie/go-bloomsearch/store"
)

func runBuild(ctx context.Context, env *environment, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("build takes at most one pages directory, got %d", len(args))
	}
	dir := env.cfg.PagesDir
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := ingest.PagesDir(dir)
	if err != nil {
		return err
	}

	docs, err := newLoader(env).LoadDir(dir)
	if err != nil {
		return err
	}
	return buildAndSave(ctx, env, docs)
}

func newLoader(env *environment) *ingest.Loader {
	return ingest.NewLoader(env.log, ingest.WithRawMarkdown(env.cfg.Index.RawMarkdown))
}

// buildAndSave indexes docs and writes the corpus and its manifest.
func buildAndSave(ctx context.Context, env *environment, docs []index.Document) error {
	builder := index.NewBuilder(env.log, env.cfg.IndexOptions()...)
	data, err := builder.Build(docs)
	if err != nil {
		return err
	}

	m := corpus.NewManifest(data, len(docs), builder.Windows())
	if err := store.NewLocal(env.log).Save(ctx, env.cfg.Corpus, data, &m); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "%s: %d documents, %d bytes, build %s\n",
		env.cfg.Corpus, len(docs), len(data), m.BuildID)
	return nil
}

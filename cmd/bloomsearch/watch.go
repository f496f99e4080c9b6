package main

import (
	"context"
	"fmt"

	"github.com/forestrie/go-bloomsearch/index"
	"github.com/forestrie/go-bloomsearch/ingest"
)

func runWatch(ctx context.Context, env *environment, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("watch takes at most one pages directory, got %d", len(args))
	}
	dir := env.cfg.PagesDir
	if len(args) == 1 {
		dir = args[0]
	}
	dir, err := ingest.PagesDir(dir)
	if err != nil {
		return err
	}

	env.log.Infof("watching %s", dir)
	return newLoader(env).Watch(ctx, dir, ingest.DefaultDebounce, func(docs []index.Document) error {
		return buildAndSave(ctx, env, docs)
	})
}

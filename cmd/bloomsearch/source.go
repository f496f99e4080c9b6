package main

import (
	"fmt"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/forestrie/go-bloomsearch/config"
	"github.com/forestrie/go-bloomsearch/store"
)

// openSource returns where search and inspect read the corpus from. For the
// blob source the account comes from the azblob environment variables and
// env.cfg.Corpus names the blob.
func openSource(env *environment) (store.Source, error) {
	if env.source != nil {
		return env.source, nil
	}

	switch env.cfg.Source {
	case "", config.SourceLocal:
		return store.NewLocal(env.log), nil
	case config.SourceBlob:
		storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), env.cfg.Blob.Container)
		if err != nil {
			return nil, fmt.Errorf("blob container %s: %w", env.cfg.Blob.Container, err)
		}
		env.log.Debugf("reading corpora from blob container %s", env.cfg.Blob.Container)
		return store.NewBlobSource(env.log, storer), nil
	}
	return nil, fmt.Errorf("%w: unknown corpus source %q", config.ErrInvalid, env.cfg.Source)
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/forestrie/go-bloomsearch/corpus"
)

const (
	// ManifestSuffix is appended to a corpus name to name its manifest.
	ManifestSuffix = ".manifest"

	// CompressedSuffix marks a corpus stored zstd compressed.
	CompressedSuffix = ".zst"
)

var ErrNotFound = errors.New("store: corpus not found")

// Corpus is a loaded corpus blob and, when one was stored with it, the
// manifest describing it. A returned manifest has already been verified
// against Data.
type Corpus struct {
	Data     []byte
	Manifest *corpus.Manifest
}

// Source loads corpora by name.
type Source interface {
	Load(ctx context.Context, name string) (Corpus, error)
}

// ManifestName is the sidecar name for the corpus called name.
func ManifestName(name string) string {
	return name + ManifestSuffix
}

// decodeCorpus applies the transforms implied by name to raw stored bytes and
// checks them against the raw manifest, if there is one.
func decodeCorpus(name string, raw, rawManifest []byte) (Corpus, error) {
	data, err := maybeDecompress(name, raw)
	if err != nil {
		return Corpus{}, fmt.Errorf("%s: %w", name, err)
	}
	c := Corpus{Data: data}
	if rawManifest == nil {
		return c, nil
	}

	m, err := corpus.UnmarshalManifest(rawManifest)
	if err != nil {
		return Corpus{}, fmt.Errorf("%s: %w", ManifestName(name), err)
	}
	if err := m.Verify(data); err != nil {
		return Corpus{}, fmt.Errorf("%s: %w", name, err)
	}
	c.Manifest = &m
	return c, nil
}

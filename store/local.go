package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-bloomsearch/corpus"
)

// Local stores corpora as files. Names are file paths; a name ending in .zst
// is written and read zstd compressed. The manifest sidecar is never
// compressed.
type Local struct {
	log logger.Logger
}

var _ Source = (*Local)(nil)

func NewLocal(log logger.Logger) *Local {
	return &Local{log: log}
}

// Save writes data to name and, when m is not nil, its manifest beside it.
// Each file is written to a temporary name and renamed into place.
func (l *Local) Save(ctx context.Context, name string, data []byte, m *corpus.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFileAtomic(name, maybeCompress(name, data)); err != nil {
		return err
	}
	if m == nil {
		return nil
	}

	b, err := corpus.MarshalManifest(*m)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(ManifestName(name), b); err != nil {
		return err
	}
	l.infof("saved %s: %d bytes, build %s", name, len(data), m.BuildID)
	return nil
}

// Load reads name and its manifest, if present.
func (l *Local) Load(ctx context.Context, name string) (Corpus, error) {
	if err := ctx.Err(); err != nil {
		return Corpus{}, err
	}
	raw, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Corpus{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Corpus{}, err
	}

	rawManifest, err := os.ReadFile(ManifestName(name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Corpus{}, err
		}
		rawManifest = nil
	}
	return decodeCorpus(name, raw, rawManifest)
}

func writeFileAtomic(name string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (l *Local) infof(format string, args ...any) {
	if l.log != nil {
		l.log.Infof(format, args...)
	}
}

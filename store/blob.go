package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
)

const (
	azblobBlobNotFound = "BlobNotFound"
)

// blobReader is the part of the azblob store a BlobSource needs.
type blobReader interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)
}

// BlobSource loads published corpora from blob storage. Names are blob
// identities; the manifest is the blob with the same identity plus
// ".manifest".
type BlobSource struct {
	log   logger.Logger
	store blobReader
	opts  []azblob.Option
}

var _ Source = (*BlobSource)(nil)

// NewBlobSource returns a source reading through store. opts are forwarded
// on every read.
func NewBlobSource(log logger.Logger, store blobReader, opts ...azblob.Option) *BlobSource {
	return &BlobSource{log: log, store: store, opts: opts}
}

// Load reads the corpus blob and its manifest blob. A missing manifest is not
// an error; a missing corpus is ErrNotFound.
func (s *BlobSource) Load(ctx context.Context, name string) (Corpus, error) {
	raw, err := s.read(ctx, name)
	if err != nil {
		if IsBlobNotFound(err) {
			return Corpus{}, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
		}
		return Corpus{}, err
	}

	rawManifest, err := s.read(ctx, ManifestName(name))
	if err != nil {
		if !IsBlobNotFound(err) {
			return Corpus{}, err
		}
		rawManifest = nil
	}

	c, err := decodeCorpus(name, raw, rawManifest)
	if err != nil {
		return Corpus{}, err
	}
	if s.log != nil {
		s.log.Infof("loaded blob %s: %d bytes, manifest %v", name, len(c.Data), c.Manifest != nil)
	}
	return c, nil
}

// read returns the whole blob. The response reader is always closed.
func (s *BlobSource) read(ctx context.Context, identity string) ([]byte, error) {
	rr, err := s.store.Reader(ctx, identity, s.opts...)
	if err != nil {
		return nil, err
	}
	defer rr.Reader.Close()

	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", identity, err)
	}
	return data, nil
}

// AsStorageError unwraps the azure sdk storage error carried by err.
func AsStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	var ierr *azStorageBlob.InternalError
	if !errors.As(err, &ierr) || ierr == nil {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

// IsBlobNotFound reports whether err is, or wraps, ErrNotFound or the azure
// BlobNotFound storage error.
func IsBlobNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	serr, ok := AsStorageError(err)
	if !ok {
		return false
	}
	return serr.ErrorCode == azblobBlobNotFound
}

package corpus

import (
	"errors"
	"fmt"
)

const (
	// Corpus layout
	//
	// .      | magic  |  chunk ...                                    | end    |
	// .      | "SRCH" |  "SCHK" u32 title  u32 path  u32 index   ...  | "HCRS" |
	// bytes  |   4    |    4    4+len      4+len     4+len            |   4    |
	//
	// All integers are little endian u32, all text UTF-8 with no terminator.
	// Anything after the end marker is ignored.

	MagicBytes    = 4
	LengthBytes   = 4
	FileMagic     = "SRCH"
	ChunkMagic    = "SCHK"
	EndMarker     = "HCRS"
	MaxFieldBytes = 1<<32 - 1

	// chunk overhead: marker plus three length prefixes
	chunkFixedBytes = MagicBytes + 3*LengthBytes
)

var (
	// ErrFormat is wrapped by every decode failure. Decoding never returns a
	// partial corpus.
	ErrFormat = errors.New("corpus: malformed corpus")

	ErrFileMagic     = fmt.Errorf("%w: file magic missing", ErrFormat)
	ErrChunkMagic    = fmt.Errorf("%w: chunk marker invalid", ErrFormat)
	ErrTruncated     = fmt.Errorf("%w: data truncated", ErrFormat)
	ErrFieldLength   = fmt.Errorf("%w: declared length exceeds remaining data", ErrFormat)
	ErrMissingEnd    = fmt.Errorf("%w: end marker missing", ErrFormat)
	ErrFieldTooLarge = errors.New("corpus: field does not fit a u32 length")
)

// Entry is one document record: its title, its corpus relative path and the
// binary encoding of its Bloom filter.
type Entry struct {
	Title string
	Path  string
	Index []byte
}

// chunkBytes returns the encoded size of e.
func chunkBytes(e Entry) (uint64, error) {
	for _, n := range []int{len(e.Title), len(e.Path), len(e.Index)} {
		if uint64(n) > MaxFieldBytes {
			return 0, ErrFieldTooLarge
		}
	}
	return chunkFixedBytes + uint64(len(e.Title)) + uint64(len(e.Path)) + uint64(len(e.Index)), nil
}

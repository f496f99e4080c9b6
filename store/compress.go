package store

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// zstd encoders and decoders are safe for concurrent use and costly to
// create, so one of each is shared.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		panic("store: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("store: zstd decoder initialization failed: " + err.Error())
	}
}

func Compress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

func Decompress(compressed []byte) ([]byte, error) {
	data, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return data, nil
}

// IsCompressed reports whether a corpus called name is stored compressed.
func IsCompressed(name string) bool {
	return strings.HasSuffix(name, CompressedSuffix)
}

func maybeCompress(name string, data []byte) []byte {
	if IsCompressed(name) {
		return Compress(data)
	}
	return data
}

func maybeDecompress(name string, data []byte) ([]byte, error) {
	if IsCompressed(name) {
		return Decompress(data)
	}
	return data, nil
}

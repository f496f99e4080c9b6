package corpus

import (
	"encoding/binary"
	"fmt"
)

// EncodedBytes returns the exact length Encode will produce for entries.
func EncodedBytes(entries []Entry) (uint64, error) {
	total := uint64(2 * MagicBytes)
	for i, e := range entries {
		n, err := chunkBytes(e)
		if err != nil {
			return 0, fmt.Errorf("entry %d (%s): %w", i, e.Path, err)
		}
		total += n
	}
	return total, nil
}

// Encode packs entries, in order, into a single corpus blob. The output is
// allocated once and is a pure function of entries.
func Encode(entries []Entry) ([]byte, error) {
	total, err := EncodedBytes(entries)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, total)
	buf = append(buf, FileMagic...)
	for _, e := range entries {
		buf = appendChunk(buf, e)
	}
	buf = append(buf, EndMarker...)
	return buf, nil
}

func appendChunk(buf []byte, e Entry) []byte {
	buf = append(buf, ChunkMagic...)
	buf = appendField(buf, []byte(e.Title))
	buf = appendField(buf, []byte(e.Path))
	buf = appendField(buf, e.Index)
	return buf
}

func appendField(buf []byte, field []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(field)))
	return append(buf, field...)
}

// Decode parses a corpus blob. Entry order matches the order given to
// Encode. Entry.Index slices alias data; callers must not modify data while
// the entries are in use.
func Decode(data []byte) ([]Entry, error) {
	var entries []Entry
	s := NewScanner(data)
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

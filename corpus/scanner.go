package corpus

import (
	"encoding/binary"
	"fmt"
)

// Scanner walks the chunks of a corpus blob one entry at a time, in the
// style of bufio.Scanner:
//
//	s := corpus.NewScanner(data)
//	for s.Scan() {
//		e := s.Entry()
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
//
// Entries already returned stay valid when a later chunk fails to decode, so
// callers that need all-or-nothing semantics should use Decode.
type Scanner struct {
	data  []byte
	cur   uint64
	entry Entry
	err   error
	done  bool
	count int
}

func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Scan advances to the next entry. It returns false at the end marker or on
// error.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	if s.cur == 0 {
		if string(s.peek(MagicBytes)) != FileMagic {
			return s.fail(ErrFileMagic)
		}
		s.cur = MagicBytes
	}

	marker := s.peek(MagicBytes)
	if marker == nil {
		return s.fail(ErrMissingEnd)
	}
	switch string(marker) {
	case EndMarker:
		s.done = true
		return false
	case ChunkMagic:
	default:
		return s.fail(fmt.Errorf("%w: %q at offset %d", ErrChunkMagic, marker, s.cur))
	}
	s.cur += MagicBytes

	title, err := s.field()
	if err != nil {
		return s.fail(err)
	}
	path, err := s.field()
	if err != nil {
		return s.fail(err)
	}
	index, err := s.field()
	if err != nil {
		return s.fail(err)
	}

	s.entry = Entry{
		Title: string(title),
		Path:  string(path),
		Index: index,
	}
	s.count++
	return true
}

// Entry returns the entry produced by the last successful Scan.
func (s *Scanner) Entry() Entry { return s.entry }

// Err returns the first decode error, or nil after a clean end marker.
func (s *Scanner) Err() error { return s.err }

// Count is the number of entries scanned so far.
func (s *Scanner) Count() int { return s.count }

// Offset is the position of the next unread byte.
func (s *Scanner) Offset() uint64 { return s.cur }

func (s *Scanner) peek(n uint64) []byte {
	if uint64(len(s.data))-s.cur < n {
		return nil
	}
	return s.data[s.cur : s.cur+n]
}

func (s *Scanner) field() ([]byte, error) {
	lb := s.peek(LengthBytes)
	if lb == nil {
		return nil, fmt.Errorf("%w: length prefix at offset %d", ErrTruncated, s.cur)
	}
	n := uint64(binary.LittleEndian.Uint32(lb))
	s.cur += LengthBytes

	b := s.peek(n)
	if b == nil {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrFieldLength, n, s.cur)
	}
	s.cur += n
	return b[:n:n], nil
}

func (s *Scanner) fail(err error) bool {
	s.err = err
	s.done = true
	s.entry = Entry{}
	return false
}

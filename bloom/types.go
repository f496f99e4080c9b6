package bloom

import (
	"errors"
	"fmt"
)

const (
	// HeaderBytes is the fixed size of the binary header: m, k, n as u32.
	HeaderBytes = 12

	// DefaultErrorRate is the target false positive rate used by the index
	// builder when none is configured.
	DefaultErrorRate = 0.01
)

var (
	// ErrConfig is wrapped by every error caused by invalid construction
	// parameters. Values are never clamped into range.
	ErrConfig = errors.New("bloom: invalid filter parameters")

	// ErrFormat is wrapped by every error caused by a malformed encoding.
	ErrFormat = errors.New("bloom: malformed filter encoding")
)

var (
	ErrBadCapacity   = fmt.Errorf("%w: capacity must be > 0", ErrConfig)
	ErrBadErrorRate  = fmt.Errorf("%w: error rate must be in (0, 1)", ErrConfig)
	ErrBadMBits      = fmt.Errorf("%w: m must be > 0", ErrConfig)
	ErrBadK          = fmt.Errorf("%w: k must be > 0", ErrConfig)
	ErrMBitsOverflow = fmt.Errorf("%w: m overflows supported range", ErrConfig)

	ErrHeaderTooShort = fmt.Errorf("%w: header too short", ErrFormat)
	ErrBitsetTooShort = fmt.Errorf("%w: bitset shorter than ceil(m/8)", ErrFormat)
	ErrHeaderMBits    = fmt.Errorf("%w: header m is zero", ErrFormat)
	ErrHeaderK        = fmt.Errorf("%w: header k is zero", ErrFormat)
	ErrBadBase64      = fmt.Errorf("%w: bitset is not valid base64", ErrFormat)
)

// Header is the decoded form of the 12 byte binary header.
type Header struct {
	MBits     uint32
	K         uint32
	NInserted uint32
}

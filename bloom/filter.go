package bloom

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Membership is the read side of a filter. The search engine only needs this.
type Membership interface {
	Has(value string) bool
}

// Builder is the write side: add values, then serialize.
type Builder interface {
	Membership
	Add(value string)
	MarshalBinary() ([]byte, error)
}

// Filter is a Bloom filter over string values. A Filter is not safe for
// concurrent mutation; concurrent Has calls are fine once building is done.
type Filter struct {
	m    uint32
	k    uint32
	n    uint32
	bits []byte
}

var (
	_ Builder    = (*Filter)(nil)
	_ Membership = (*Filter)(nil)
)

// New returns an empty filter sized for capacity items at errorRate.
func New(capacity uint64, errorRate float64) (*Filter, error) {
	m, k, err := OptimalParams(capacity, errorRate)
	if err != nil {
		return nil, err
	}
	return NewWithParams(m, k)
}

// NewWithParams returns an empty filter with explicit m and k.
func NewWithParams(mBits uint32, k uint32) (*Filter, error) {
	if mBits == 0 {
		return nil, ErrBadMBits
	}
	if k == 0 {
		return nil, ErrBadK
	}
	return &Filter{
		m:    mBits,
		k:    k,
		bits: make([]byte, BitsetBytes(mBits)),
	}, nil
}

// FromBinary decodes the binary encoding produced by MarshalBinary. Bytes
// beyond ceil(m/8) after the header are ignored. The bitset is copied, b is
// not retained.
func FromBinary(b []byte) (*Filter, error) {
	f := &Filter{}
	if err := f.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return f, nil
}

// FromState decodes the textual representation produced by State.
func FromState(st EncodedState) (*Filter, error) {
	if st.M == 0 {
		return nil, ErrHeaderMBits
	}
	if st.K == 0 {
		return nil, ErrHeaderK
	}
	bits, err := base64.StdEncoding.DecodeString(st.BitsBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBase64, err)
	}
	need := BitsetBytes(st.M)
	if uint64(len(bits)) < uint64(need) {
		return nil, ErrBitsetTooShort
	}
	return &Filter{m: st.M, k: st.K, n: st.N, bits: bits[:need:need]}, nil
}

func (f *Filter) M() uint32 { return f.m }
func (f *Filter) K() uint32 { return f.k }
func (f *Filter) N() uint32 { return f.n }

// Add records value. Every probed bit stays set until Clear.
func (f *Filter) Add(value string) {
	h1, h2 := HashPair(value, f.m)
	setBitsLSB0(f.bits, uint64(f.m), f.k, h1, h2)
	f.n++
}

// Has returns false if value was definitely never added, true if it may have
// been.
func (f *Filter) Has(value string) bool {
	h1, h2 := HashPair(value, f.m)
	return testBitsLSB0(f.bits, uint64(f.m), f.k, h1, h2)
}

// EstimateFalsePositiveRate reports the expected false positive rate given
// the number of values added so far.
func (f *Filter) EstimateFalsePositiveRate() float64 {
	return FalsePositiveRate(f.m, f.k, f.n)
}

// Clear zeroes the bitset and the insert count. m and k are kept.
func (f *Filter) Clear() {
	clear(f.bits)
	f.n = 0
}

// MarshalBinary returns the 12 byte header followed by the bitset.
func (f *Filter) MarshalBinary() ([]byte, error) {
	return f.AppendBinary(make([]byte, 0, EncodedBytes(f.m)))
}

// AppendBinary appends the binary encoding of f to b.
func (f *Filter) AppendBinary(b []byte) ([]byte, error) {
	var hdr [HeaderBytes]byte
	if err := EncodeHeader(hdr[:], Header{MBits: f.m, K: f.k, NInserted: f.n}); err != nil {
		return nil, err
	}
	b = append(b, hdr[:]...)
	return append(b, f.bits...), nil
}

// UnmarshalBinary replaces the state of f with the decoded form of b.
func (f *Filter) UnmarshalBinary(b []byte) error {
	h, err := DecodeHeader(b)
	if err != nil {
		return err
	}
	need := uint64(BitsetBytes(h.MBits))
	if uint64(len(b)-HeaderBytes) < need {
		return ErrBitsetTooShort
	}

	bits := make([]byte, need)
	copy(bits, b[HeaderBytes:])

	f.m = h.MBits
	f.k = h.K
	f.n = h.NInserted
	f.bits = bits
	return nil
}

// EncodedState is the textual representation of a filter, suitable for
// embedding in JSON (or CBOR) documents.
type EncodedState struct {
	M          uint32 `json:"m" cbor:"m"`
	K          uint32 `json:"k" cbor:"k"`
	N          uint32 `json:"n" cbor:"n"`
	BitsBase64 string `json:"bitsBase64" cbor:"bitsBase64"`
}

// State returns the textual representation of f.
func (f *Filter) State() EncodedState {
	return EncodedState{
		M:          f.m,
		K:          f.k,
		N:          f.n,
		BitsBase64: base64.StdEncoding.EncodeToString(f.bits),
	}
}

func (f *Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.State())
}

func (f *Filter) UnmarshalJSON(b []byte) error {
	var st EncodedState
	if err := json.Unmarshal(b, &st); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	decoded, err := FromState(st)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

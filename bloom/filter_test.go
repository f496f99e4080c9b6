package bloom

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterInsertAndQuery(t *testing.T) {
	f, err := New(100, 0.01)
	require.NoError(t, err)
	require.Equal(t, uint32(959), f.M())
	require.Equal(t, uint32(7), f.K())
	require.Equal(t, uint32(0), f.N())

	// Empty filters are definitely-not-present for any value.
	require.False(t, f.Has("missing"))

	f.Add("foo")
	require.True(t, f.Has("foo"))
	require.False(t, f.Has("bar"))

	// No false negatives, however many unrelated values follow.
	for i := 0; i < 200; i++ {
		f.Add(fmt.Sprintf("value-%d", i))
		require.True(t, f.Has("foo"))
	}
	for i := 0; i < 200; i++ {
		require.True(t, f.Has(fmt.Sprintf("value-%d", i)))
	}
	require.Equal(t, uint32(201), f.N())
}

func TestFilterRejectsBadParams(t *testing.T) {
	tests := []struct {
		name      string
		capacity  uint64
		errorRate float64
		want      error
	}{
		{"zero capacity", 0, 0.01, ErrBadCapacity},
		{"zero rate", 10, 0, ErrBadErrorRate},
		{"negative rate", 10, -0.5, ErrBadErrorRate},
		{"rate one", 10, 1, ErrBadErrorRate},
		{"rate above one", 10, 1.5, ErrBadErrorRate},
		{"huge capacity", 1 << 40, 0.0001, ErrMBitsOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.capacity, tt.errorRate)
			require.Nil(t, f)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, ErrConfig)
		})
	}

	_, err := NewWithParams(0, 3)
	require.ErrorIs(t, err, ErrConfig)
	_, err = NewWithParams(64, 0)
	require.ErrorIs(t, err, ErrConfig)
}

func TestFilterBinaryGolden(t *testing.T) {
	f, err := NewWithParams(64, 3)
	require.NoError(t, err)
	f.Add("foo")

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, "4000000003000000010000000002810000000000", hex.EncodeToString(b))
	require.Len(t, b, int(EncodedBytes(64)))
}

func TestFilterBinaryRoundTrip(t *testing.T) {
	f, err := New(20, 0.1)
	require.NoError(t, err)
	f.Add("x")
	f.Add("y")
	f.Add("z")

	b, err := f.MarshalBinary()
	require.NoError(t, err)

	r, err := FromBinary(b)
	require.NoError(t, err)
	assert.Equal(t, f.M(), r.M())
	assert.Equal(t, f.K(), r.K())
	assert.Equal(t, f.N(), r.N())

	for _, v := range []string{"x", "y", "z", "w", "", "xy"} {
		assert.Equal(t, f.Has(v), r.Has(v), v)
	}
	assert.True(t, r.Has("x"))

	// Trailing bytes after the bitset are ignored.
	r2, err := FromBinary(append(b, 0xff, 0xff))
	require.NoError(t, err)
	assert.Equal(t, f.State(), r2.State())

	// The decoded filter does not alias the input.
	for i := HeaderBytes; i < len(b); i++ {
		b[i] = 0
	}
	assert.True(t, r.Has("x"))
}

func TestFilterFromBinaryRejectsMalformed(t *testing.T) {
	f, err := NewWithParams(64, 3)
	require.NoError(t, err)
	b, err := f.MarshalBinary()
	require.NoError(t, err)

	_, err = FromBinary(b[:HeaderBytes-1])
	require.ErrorIs(t, err, ErrHeaderTooShort)
	require.ErrorIs(t, err, ErrFormat)

	_, err = FromBinary(b[:len(b)-1])
	require.ErrorIs(t, err, ErrBitsetTooShort)

	zeroM := make([]byte, len(b))
	copy(zeroM, b)
	writeU32LE(zeroM[0:4], 0)
	_, err = FromBinary(zeroM)
	require.ErrorIs(t, err, ErrFormat)

	zeroK := make([]byte, len(b))
	copy(zeroK, b)
	writeU32LE(zeroK[4:8], 0)
	_, err = FromBinary(zeroK)
	require.ErrorIs(t, err, ErrFormat)
}

func TestFilterStateRoundTrip(t *testing.T) {
	f, err := New(50, 0.05)
	require.NoError(t, err)
	f.Add("alice")
	f.Add("bob")

	st := f.State()
	r, err := FromState(st)
	require.NoError(t, err)
	assert.True(t, r.Has("alice"))
	assert.True(t, r.Has("bob"))
	for _, v := range []string{"charlie", "dave", "alice bob"} {
		assert.Equal(t, f.Has(v), r.Has(v), v)
	}

	js, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js, &decoded))
	assert.Contains(t, decoded, "m")
	assert.Contains(t, decoded, "k")
	assert.Contains(t, decoded, "n")
	assert.Contains(t, decoded, "bitsBase64")

	var back Filter
	require.NoError(t, json.Unmarshal(js, &back))
	assert.Equal(t, st, back.State())
}

func TestFilterFromStateRejectsMalformed(t *testing.T) {
	f, err := NewWithParams(64, 3)
	require.NoError(t, err)
	st := f.State()

	bad := st
	bad.BitsBase64 = "!!not base64"
	_, err = FromState(bad)
	require.ErrorIs(t, err, ErrBadBase64)
	require.ErrorIs(t, err, ErrFormat)

	short := st
	short.BitsBase64 = "AAAA"
	_, err = FromState(short)
	require.ErrorIs(t, err, ErrBitsetTooShort)

	zero := st
	zero.M = 0
	_, err = FromState(zero)
	require.ErrorIs(t, err, ErrFormat)
}

func TestFilterClear(t *testing.T) {
	f, err := New(10, 0.01)
	require.NoError(t, err)
	m, k := f.M(), f.K()

	f.Add("a")
	f.Add("b")
	require.True(t, f.Has("a"))

	f.Clear()
	assert.Equal(t, uint32(0), f.N())
	assert.Equal(t, m, f.M())
	assert.Equal(t, k, f.K())
	assert.False(t, f.Has("a"))
	assert.False(t, f.Has("b"))
	assert.Equal(t, float64(0), f.EstimateFalsePositiveRate())
}

func TestFilterFalsePositiveRate(t *testing.T) {
	const (
		capacity = 1000
		target   = 0.01
		trials   = 5
		probes   = 20000
	)
	rng := rand.New(rand.NewSource(42))

	var observed float64
	for trial := 0; trial < trials; trial++ {
		f, err := New(capacity, target)
		require.NoError(t, err)

		for i := 0; i < capacity; i++ {
			f.Add(fmt.Sprintf("in-%d-%d", trial, rng.Int63()))
		}

		est := f.EstimateFalsePositiveRate()
		assert.InDelta(t, target, est, target/2)

		hits := 0
		for i := 0; i < probes; i++ {
			if f.Has(fmt.Sprintf("out-%d-%d", trial, rng.Int63())) {
				hits++
			}
		}
		observed += float64(hits) / probes
	}
	observed /= trials

	// Within a small constant factor of the target.
	assert.Less(t, observed, target*3)
	assert.Greater(t, observed, target/3)
}

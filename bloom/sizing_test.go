package bloom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimalParams(t *testing.T) {
	tests := []struct {
		capacity  uint64
		errorRate float64
		wantM     uint32
		wantK     uint32
	}{
		{100, 0.01, 959, 7},
		{1, 0.01, 10, 7},
		{20, 0.1, 96, 3},
		{50, 0.05, 312, 4},
	}
	for _, tt := range tests {
		m, k, err := OptimalParams(tt.capacity, tt.errorRate)
		require.NoError(t, err)
		require.Equal(t, tt.wantM, m)
		require.Equal(t, tt.wantK, k)
	}

	_, _, err := OptimalParams(10, math.NaN())
	require.ErrorIs(t, err, ErrBadErrorRate)
}

func TestBitsetBytes(t *testing.T) {
	require.Equal(t, uint32(0), BitsetBytes(0))
	require.Equal(t, uint32(1), BitsetBytes(1))
	require.Equal(t, uint32(1), BitsetBytes(8))
	require.Equal(t, uint32(2), BitsetBytes(9))
	require.Equal(t, uint32(1<<29), BitsetBytes(^uint32(0)))
	require.Equal(t, uint64(HeaderBytes+8), EncodedBytes(64))
}

func TestFalsePositiveRate(t *testing.T) {
	require.Equal(t, float64(1), FalsePositiveRate(0, 3, 10))
	require.Equal(t, float64(0), FalsePositiveRate(64, 3, 0))

	want := math.Pow(1-math.Exp(-(7.0*100)/959), 7)
	require.InDelta(t, want, FalsePositiveRate(959, 7, 100), 1e-12)
}

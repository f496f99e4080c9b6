package bloom

import "math"

// OptimalParams returns the bit count m and probe count k for a filter
// expected to hold capacity items at the target false positive rate:
//
//	m = ceil(-capacity * ln(errorRate) / ln(2)^2)
//	k = max(1, round((m / capacity) * ln(2)))
func OptimalParams(capacity uint64, errorRate float64) (mBits uint32, k uint32, err error) {
	if capacity == 0 {
		return 0, 0, ErrBadCapacity
	}
	// The negated form also rejects NaN.
	if !(errorRate > 0 && errorRate < 1) {
		return 0, 0, ErrBadErrorRate
	}

	n := float64(capacity)
	m := math.Ceil(-n * math.Log(errorRate) / (math.Ln2 * math.Ln2))
	if m > float64(math.MaxUint32) {
		return 0, 0, ErrMBitsOverflow
	}
	mBits = uint32(m)

	k = uint32(math.Max(1, math.Round((m/n)*math.Ln2)))
	return mBits, k, nil
}

// BitsetBytes returns ceil(mBits/8).
func BitsetBytes(mBits uint32) uint32 {
	return uint32((uint64(mBits) + 7) / 8)
}

// EncodedBytes returns the length of the binary encoding for mBits.
func EncodedBytes(mBits uint32) uint64 {
	return HeaderBytes + uint64(BitsetBytes(mBits))
}

// FalsePositiveRate estimates the probability that Has reports a value that
// was never added:
//
//	(1 - exp(-k*n/m))^k
//
// It returns 1 when m is zero.
func FalsePositiveRate(mBits, k, n uint32) float64 {
	if mBits == 0 {
		return 1
	}
	kf := float64(k)
	return math.Pow(1-math.Exp(-(kf*float64(n))/float64(mBits)), kf)
}

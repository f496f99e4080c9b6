package bloom

const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 16777619

	mixSeed32 uint32 = 0x9e3779b9
	mixAdd32  uint32 = 0x7ed55d16
)

// FNV1a32 is 32 bit FNV-1a over the code points of s (not its UTF-8 bytes).
func FNV1a32(s string) uint32 {
	h := fnvOffset32
	for _, r := range s {
		h ^= uint32(r)
		h *= fnvPrime32
	}
	return h
}

// Xorshift32 mixes the code points of s, seeded with its UTF-16 length, and
// finishes with a single xorshift32 step.
func Xorshift32(s string) uint32 {
	x := mixSeed32 ^ utf16Len(s)
	for _, r := range s {
		x ^= uint32(r) + mixAdd32 + (x << 12)
		x ^= x >> 19
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// HashPair returns the double hashing seeds for s folded into [0, mBits).
// h2 is forced odd before folding. mBits must be non zero.
func HashPair(s string, mBits uint32) (h1 uint32, h2 uint32) {
	h1 = FNV1a32(s)
	h2 = Xorshift32(s) | 1
	return h1 % mBits, h2 % mBits
}

// utf16Len counts the UTF-16 code units needed for s. The length seed is
// defined in code units so that filters agree with implementations whose
// strings are UTF-16.
func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
			continue
		}
		n++
	}
	return n
}

func setBitsLSB0(bitset []byte, mBits uint64, k uint32, h1, h2 uint32) {
	for i := uint64(0); i < uint64(k); i++ {
		j := (uint64(h1) + i*uint64(h2)) % mBits
		bitset[j>>3] |= 1 << (j & 7)
	}
}

func testBitsLSB0(bitset []byte, mBits uint64, k uint32, h1, h2 uint32) bool {
	for i := uint64(0); i < uint64(k); i++ {
		j := (uint64(h1) + i*uint64(h2)) % mBits
		if bitset[j>>3]&(1<<(j&7)) == 0 {
			return false
		}
	}
	return true
}

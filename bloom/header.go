package bloom

// DecodeHeader decodes the 12 byte header at the front of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderBytes {
		return Header{}, ErrHeaderTooShort
	}

	h := Header{
		MBits:     readU32LE(b[0:4]),
		K:         readU32LE(b[4:8]),
		NInserted: readU32LE(b[8:12]),
	}
	if h.MBits == 0 {
		return Header{}, ErrHeaderMBits
	}
	if h.K == 0 {
		return Header{}, ErrHeaderK
	}
	return h, nil
}

// EncodeHeader writes h into the first HeaderBytes of b.
func EncodeHeader(b []byte, h Header) error {
	if len(b) < HeaderBytes {
		return ErrHeaderTooShort
	}
	if h.MBits == 0 {
		return ErrBadMBits
	}
	if h.K == 0 {
		return ErrBadK
	}

	writeU32LE(b[0:4], h.MBits)
	writeU32LE(b[4:8], h.K)
	writeU32LE(b[8:12], h.NInserted)
	return nil
}

package corpus

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"
)

// ManifestVersion is bumped on incompatible changes to Manifest.
const ManifestVersion = 1

var (
	ErrFingerprintMismatch = errors.New("corpus: manifest fingerprint does not match corpus data")
	ErrManifestVersion     = errors.New("corpus: unsupported manifest version")
	ErrManifestDecode      = errors.New("corpus: manifest could not be decoded")
)

// TermWindows records how the term sets of a corpus were derived, so the
// search side can probe with compatible n-gram and prefix windows.
type TermWindows struct {
	NgramMin  int     `cbor:"1,keyasint"`
	NgramMax  int     `cbor:"2,keyasint"`
	PrefixMin int     `cbor:"3,keyasint"`
	Stemming  bool    `cbor:"4,keyasint"`
	ErrorRate float64 `cbor:"5,keyasint"`
}

// Manifest describes one build of a corpus blob. It is stored next to the
// corpus rather than inside it so that the corpus format stays fixed.
type Manifest struct {
	Version     int         `cbor:"1,keyasint"`
	BuildID     uuid.UUID   `cbor:"2,keyasint"`
	Created     time.Time   `cbor:"3,keyasint"`
	Documents   int         `cbor:"4,keyasint"`
	Bytes       int         `cbor:"5,keyasint"`
	Fingerprint [32]byte    `cbor:"6,keyasint"`
	Windows     TermWindows `cbor:"7,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Core deterministic encoding: the same manifest always produces the
	// same bytes.
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("corpus: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("corpus: CBOR decoder initialization failed: " + err.Error())
	}
}

// Fingerprint is the BLAKE3 digest of a corpus blob.
func Fingerprint(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// NewManifest describes data, which must be the output of Encode for
// documents entries.
func NewManifest(data []byte, documents int, windows TermWindows) Manifest {
	return Manifest{
		Version:     ManifestVersion,
		BuildID:     uuid.New(),
		Created:     time.Now().UTC(),
		Documents:   documents,
		Bytes:       len(data),
		Fingerprint: Fingerprint(data),
		Windows:     windows,
	}
}

// Verify checks that data is the corpus this manifest was made for.
func (m Manifest) Verify(data []byte) error {
	if m.Bytes != len(data) {
		return fmt.Errorf("%w: size %d, manifest says %d", ErrFingerprintMismatch, len(data), m.Bytes)
	}
	got := Fingerprint(data)
	if !bytes.Equal(got[:], m.Fingerprint[:]) {
		return fmt.Errorf("%w: %s", ErrFingerprintMismatch, hex.EncodeToString(got[:]))
	}
	return nil
}

// FingerprintHex is the manifest fingerprint as lower case hex.
func (m Manifest) FingerprintHex() string {
	return hex.EncodeToString(m.Fingerprint[:])
}

func MarshalManifest(m Manifest) ([]byte, error) {
	return encMode.Marshal(m)
}

func UnmarshalManifest(b []byte) (Manifest, error) {
	var m Manifest
	if err := decMode.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrManifestDecode, err)
	}
	if m.Version != ManifestVersion {
		return Manifest{}, fmt.Errorf("%w: %d", ErrManifestVersion, m.Version)
	}
	return m, nil
}

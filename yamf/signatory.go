package yamf

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pietgeursen/bamboo-rs/varu64"
)

// Ed25519NumericID is the registry tag for the Ed25519 public-key variant.
const Ed25519NumericID = 0

// Ed25519PublicKeySize is the byte length of an Ed25519 public key.
const Ed25519PublicKeySize = ed25519.PublicKeySize

// Signatory is a tagged public key: an algorithm id plus its key bytes. The
// only registered variant today is Ed25519.
type Signatory struct {
	AlgorithmID uint64
	Bytes       []byte
}

// NewEd25519Signatory tags an Ed25519 public key as a Signatory.
func NewEd25519Signatory(pub ed25519.PublicKey) Signatory {
	return Signatory{AlgorithmID: Ed25519NumericID, Bytes: []byte(pub)}
}

// Equal reports whether s and other tag the same algorithm and key bytes.
func (s Signatory) Equal(other Signatory) bool {
	if s.AlgorithmID != other.AlgorithmID || len(s.Bytes) != len(other.Bytes) {
		return false
	}
	for i := range s.Bytes {
		if s.Bytes[i] != other.Bytes[i] {
			return false
		}
	}
	return true
}

// PublicKey returns s as a standard library ed25519.PublicKey.
func (s Signatory) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(s.Bytes)
}

// Size returns the number of bytes Encode would write for s.
func (s Signatory) Size() int {
	return varu64.Size(s.AlgorithmID) + varu64.Size(uint64(len(s.Bytes))) + len(s.Bytes)
}

// Encode writes the tagged encoding of s into out, returning bytes written.
func (s Signatory) Encode(out []byte) (int, error) {
	n, err := varu64.Encode(s.AlgorithmID, out)
	if err != nil {
		return 0, fmt.Errorf("yamf: encode signatory algorithm id: %w", err)
	}
	m, err := varu64.Encode(uint64(len(s.Bytes)), out[n:])
	if err != nil {
		return 0, fmt.Errorf("yamf: encode signatory length: %w", err)
	}
	n += m
	if len(out[n:]) < len(s.Bytes) {
		return 0, varu64.ErrBufferTooSmall
	}
	n += copy(out[n:], s.Bytes)
	return n, nil
}

// DecodeSignatory parses a tagged Signatory from the front of buf, returning
// the value and the number of bytes consumed.
func DecodeSignatory(buf []byte) (Signatory, int, error) {
	algID, n, err := varu64.Decode(buf)
	if err != nil {
		return Signatory{}, 0, fmt.Errorf("yamf: decode signatory algorithm id: %w", err)
	}

	length, err := signatoryVariantLength(algID)
	if err != nil {
		return Signatory{}, 0, err
	}

	declaredLength, m, err := varu64.Decode(buf[n:])
	if err != nil {
		return Signatory{}, 0, fmt.Errorf("yamf: decode signatory length: %w", err)
	}
	n += m
	if declaredLength != uint64(length) {
		return Signatory{}, 0, fmt.Errorf("yamf: signatory length %d does not match variant %d (want %d)", declaredLength, algID, length)
	}

	if len(buf[n:]) < length {
		return Signatory{}, 0, fmt.Errorf("yamf: signatory truncated, need %d bytes, have %d", length, len(buf[n:]))
	}
	key := make([]byte, length)
	copy(key, buf[n:n+length])
	n += length

	return Signatory{AlgorithmID: algID, Bytes: key}, n, nil
}

func signatoryVariantLength(algID uint64) (int, error) {
	switch algID {
	case Ed25519NumericID:
		return Ed25519PublicKeySize, nil
	default:
		return 0, fmt.Errorf("yamf: unknown signatory algorithm id %d", algID)
	}
}

// Package yamf implements the "yet-another-multi-format" tagged containers
// used throughout a Bamboo entry: YamfHash, YamfSignatory, and Signature.
// Each is a varu64-tagged algorithm identifier followed by a varu64 length
// and the raw bytes, so new algorithm variants can be added to the registry
// without changing the wire-level shape of the container.
package yamf

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/pietgeursen/bamboo-rs/varu64"
)

// Blake2bNumericID is the registry tag for the Blake2b-512 hash variant.
const Blake2bNumericID = 0

// Blake2bSize is the digest length, in bytes, of the Blake2b-512 variant.
const Blake2bSize = 64

// Hash is a tagged hash value: an algorithm id plus its digest bytes. The
// only registered variant today is Blake2b-512.
type Hash struct {
	AlgorithmID uint64
	Bytes       []byte
}

// NewBlake2bHash hashes data with Blake2b-512 and returns the tagged Hash.
func NewBlake2bHash(data []byte) Hash {
	digest := blake2b.Sum512(data)
	return Hash{AlgorithmID: Blake2bNumericID, Bytes: digest[:]}
}

// Equal reports whether h and other tag the same algorithm and digest bytes.
func (h Hash) Equal(other Hash) bool {
	if h.AlgorithmID != other.AlgorithmID || len(h.Bytes) != len(other.Bytes) {
		return false
	}
	for i := range h.Bytes {
		if h.Bytes[i] != other.Bytes[i] {
			return false
		}
	}
	return true
}

// Size returns the number of bytes Encode would write for h.
func (h Hash) Size() int {
	return varu64.Size(h.AlgorithmID) + varu64.Size(uint64(len(h.Bytes))) + len(h.Bytes)
}

// Encode writes the tagged encoding of h into out, returning bytes written.
func (h Hash) Encode(out []byte) (int, error) {
	n, err := varu64.Encode(h.AlgorithmID, out)
	if err != nil {
		return 0, fmt.Errorf("yamf: encode hash algorithm id: %w", err)
	}
	m, err := varu64.Encode(uint64(len(h.Bytes)), out[n:])
	if err != nil {
		return 0, fmt.Errorf("yamf: encode hash length: %w", err)
	}
	n += m
	if len(out[n:]) < len(h.Bytes) {
		return 0, varu64.ErrBufferTooSmall
	}
	n += copy(out[n:], h.Bytes)
	return n, nil
}

// DecodeHash parses a tagged Hash from the front of buf, returning the
// value and the number of bytes consumed.
func DecodeHash(buf []byte) (Hash, int, error) {
	algID, n, err := varu64.Decode(buf)
	if err != nil {
		return Hash{}, 0, fmt.Errorf("yamf: decode hash algorithm id: %w", err)
	}

	length, err := variantLength(algID)
	if err != nil {
		return Hash{}, 0, err
	}

	declaredLength, m, err := varu64.Decode(buf[n:])
	if err != nil {
		return Hash{}, 0, fmt.Errorf("yamf: decode hash length: %w", err)
	}
	n += m
	if declaredLength != uint64(length) {
		return Hash{}, 0, fmt.Errorf("yamf: hash length %d does not match variant %d (want %d)", declaredLength, algID, length)
	}

	if len(buf[n:]) < length {
		return Hash{}, 0, fmt.Errorf("yamf: hash truncated, need %d bytes, have %d", length, len(buf[n:]))
	}
	digest := make([]byte, length)
	copy(digest, buf[n:n+length])
	n += length

	return Hash{AlgorithmID: algID, Bytes: digest}, n, nil
}

// variantLength resolves the fixed digest length for a registered
// hash-algorithm id, or an error for an unknown tag.
func variantLength(algID uint64) (int, error) {
	switch algID {
	case Blake2bNumericID:
		return Blake2bSize, nil
	default:
		return 0, fmt.Errorf("yamf: unknown hash algorithm id %d", algID)
	}
}

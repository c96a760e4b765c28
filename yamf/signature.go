package yamf

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pietgeursen/bamboo-rs/varu64"
)

// Ed25519SignatureSize is the byte length of an Ed25519 signature.
const Ed25519SignatureSize = ed25519.SignatureSize

// Signature is a tagged signature: an algorithm id plus its signature
// bytes. The only registered variant today is Ed25519.
type Signature struct {
	AlgorithmID uint64
	Bytes       []byte
}

// NewEd25519Signature tags raw Ed25519 signature bytes as a Signature.
func NewEd25519Signature(sig []byte) Signature {
	return Signature{AlgorithmID: Ed25519NumericID, Bytes: sig}
}

// Size returns the number of bytes Encode would write for s.
func (s Signature) Size() int {
	return varu64.Size(s.AlgorithmID) + varu64.Size(uint64(len(s.Bytes))) + len(s.Bytes)
}

// Encode writes the tagged encoding of s into out, returning bytes written.
func (s Signature) Encode(out []byte) (int, error) {
	n, err := varu64.Encode(s.AlgorithmID, out)
	if err != nil {
		return 0, fmt.Errorf("yamf: encode signature algorithm id: %w", err)
	}
	m, err := varu64.Encode(uint64(len(s.Bytes)), out[n:])
	if err != nil {
		return 0, fmt.Errorf("yamf: encode signature length: %w", err)
	}
	n += m
	if len(out[n:]) < len(s.Bytes) {
		return 0, varu64.ErrBufferTooSmall
	}
	n += copy(out[n:], s.Bytes)
	return n, nil
}

// DecodeSignature parses a tagged Signature from the front of buf, returning
// the value and the number of bytes consumed.
func DecodeSignature(buf []byte) (Signature, int, error) {
	algID, n, err := varu64.Decode(buf)
	if err != nil {
		return Signature{}, 0, fmt.Errorf("yamf: decode signature algorithm id: %w", err)
	}

	length, err := signatureVariantLength(algID)
	if err != nil {
		return Signature{}, 0, err
	}

	declaredLength, m, err := varu64.Decode(buf[n:])
	if err != nil {
		return Signature{}, 0, fmt.Errorf("yamf: decode signature length: %w", err)
	}
	n += m
	if declaredLength != uint64(length) {
		return Signature{}, 0, fmt.Errorf("yamf: signature length %d does not match variant %d (want %d)", declaredLength, algID, length)
	}

	if len(buf[n:]) < length {
		return Signature{}, 0, fmt.Errorf("yamf: signature truncated, need %d bytes, have %d", length, len(buf[n:]))
	}
	sig := make([]byte, length)
	copy(sig, buf[n:n+length])
	n += length

	return Signature{AlgorithmID: algID, Bytes: sig}, n, nil
}

func signatureVariantLength(algID uint64) (int, error) {
	switch algID {
	case Ed25519NumericID:
		return Ed25519SignatureSize, nil
	default:
		return 0, fmt.Errorf("yamf: unknown signature algorithm id %d", algID)
	}
}

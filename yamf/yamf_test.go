package yamf

import (
	"crypto/ed25519"
	"testing"
)

func TestHashRoundTrip(t *testing.T) {
	h := NewBlake2bHash([]byte("hello bamboo"))
	out := make([]byte, h.Size())
	n, err := h.Encode(out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, consumed, err := DecodeHash(out[:n])
	if err != nil {
		t.Fatalf("DecodeHash: %v", err)
	}
	if consumed != n {
		t.Errorf("consumed %d, wrote %d", consumed, n)
	}
	if !got.Equal(h) {
		t.Errorf("round-tripped hash does not equal original")
	}
}

func TestHashUnknownAlgorithm(t *testing.T) {
	// Tag byte 0xFF as algorithm id, varu64-encoded (single byte since
	// 0xFF as a value is > 247 so it actually needs multi-byte form; use a
	// value that unambiguously decodes but is not a registered variant).
	buf := []byte{100 /* unknown alg id */, 64}
	buf = append(buf, make([]byte, 64)...)
	_, _, err := DecodeHash(buf)
	if err == nil {
		t.Fatal("expected error decoding unknown hash algorithm id")
	}
}

func TestHashLengthMismatch(t *testing.T) {
	buf := []byte{Blake2bNumericID, 10} // declares 10 bytes, not 64
	buf = append(buf, make([]byte, 10)...)
	_, _, err := DecodeHash(buf)
	if err == nil {
		t.Fatal("expected error on hash length mismatch")
	}
}

func TestHashTruncated(t *testing.T) {
	buf := []byte{Blake2bNumericID, Blake2bSize}
	buf = append(buf, make([]byte, 10)...) // short of the declared 64 bytes
	_, _, err := DecodeHash(buf)
	if err == nil {
		t.Fatal("expected error on truncated hash bytes")
	}
}

func TestSignatoryRoundTrip(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s := NewEd25519Signatory(pub)
	out := make([]byte, s.Size())
	n, err := s.Encode(out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, consumed, err := DecodeSignatory(out[:n])
	if err != nil {
		t.Fatalf("DecodeSignatory: %v", err)
	}
	if consumed != n || !got.Equal(s) {
		t.Errorf("round-tripped signatory mismatch")
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sig := NewEd25519Signature(ed25519.Sign(priv, []byte("message")))
	out := make([]byte, sig.Size())
	n, err := sig.Encode(out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, consumed, err := DecodeSignature(out[:n])
	if err != nil {
		t.Fatalf("DecodeSignature: %v", err)
	}
	if consumed != n {
		t.Errorf("consumed %d, wrote %d", consumed, n)
	}
	if len(got.Bytes) != len(sig.Bytes) {
		t.Errorf("signature length mismatch after round-trip")
	}
}

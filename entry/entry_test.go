package entry

import (
	"testing"

	"github.com/pietgeursen/bamboo-rs/yamf"
)

func genesisEntry(t *testing.T) *Entry {
	t.Helper()
	return &Entry{
		LogID:         0,
		IsEndOfFeed:   false,
		PayloadHash:   yamf.NewBlake2bHash([]byte("hello")),
		PayloadLength: 5,
		Author:        yamf.NewEd25519Signatory(make([]byte, yamf.Ed25519PublicKeySize)),
		SeqNum:        1,
		Sig:           yamf.NewEd25519Signature(make([]byte, yamf.Ed25519SignatureSize)),
	}
}

func linkedEntry(t *testing.T, seqNum uint64, backlink, lipmaaLink yamf.Hash, needsLipmaa bool) *Entry {
	t.Helper()
	e := &Entry{
		LogID:         0,
		PayloadHash:   yamf.NewBlake2bHash([]byte("world")),
		PayloadLength: 5,
		Author:        yamf.NewEd25519Signatory(make([]byte, yamf.Ed25519PublicKeySize)),
		SeqNum:        seqNum,
		Backlink:      &backlink,
		Sig:           yamf.NewEd25519Signature(make([]byte, yamf.Ed25519SignatureSize)),
	}
	if needsLipmaa {
		e.LipmaaLink = &lipmaaLink
	}
	return e
}

func TestEncodeDecodeRoundTripGenesis(t *testing.T) {
	e := genesisEntry(t)
	out := make([]byte, Size(e))
	n, err := Encode(e, out)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if n != len(out) {
		t.Fatalf("Encode wrote %d, Size said %d", n, len(out))
	}

	got, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equal(e) {
		t.Errorf("decoded entry does not equal original")
	}
	if got.Backlink != nil || got.LipmaaLink != nil {
		t.Errorf("genesis entry should carry no links")
	}
}

func TestEncodeDecodeRoundTripSeqTwoBacklinkOnly(t *testing.T) {
	if LipmaaLinkRequired(2) {
		t.Fatal("seq 2 should not require a stored lipmaa link")
	}
	backlink := yamf.NewBlake2bHash([]byte("entry-1-bytes"))
	e := linkedEntry(t, 2, backlink, yamf.Hash{}, false)

	out := make([]byte, Size(e))
	if _, err := Encode(e, out); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equal(e) {
		t.Errorf("decoded entry does not equal original")
	}
	if got.LipmaaLink != nil {
		t.Errorf("seq 2 entry decoded with an unexpected lipmaa link")
	}
}

func TestEncodeDecodeRoundTripSeqFourBothLinks(t *testing.T) {
	if !LipmaaLinkRequired(4) {
		t.Fatal("seq 4 should require a stored lipmaa link distinct from its backlink")
	}
	backlink := yamf.NewBlake2bHash([]byte("entry-3-bytes"))
	lipmaaLink := yamf.NewBlake2bHash([]byte("entry-1-bytes"))
	e := linkedEntry(t, 4, backlink, lipmaaLink, true)

	out := make([]byte, Size(e))
	if _, err := Encode(e, out); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Equal(e) {
		t.Errorf("decoded entry does not equal original")
	}
	if got.LipmaaLink == nil {
		t.Fatalf("seq 4 entry decoded without its lipmaa link")
	}
}

func TestEncodeRejectsBacklinkOnGenesis(t *testing.T) {
	e := genesisEntry(t)
	backlink := yamf.NewBlake2bHash([]byte("shouldn't be here"))
	e.Backlink = &backlink

	out := make([]byte, MaxEntrySize)
	if _, err := Encode(e, out); err == nil {
		t.Fatal("expected Encode to reject a genesis entry carrying a backlink")
	}
}

func TestEncodeRejectsMissingBacklinkWhenRequired(t *testing.T) {
	e := linkedEntry(t, 2, yamf.Hash{}, yamf.Hash{}, false)
	e.Backlink = nil

	out := make([]byte, MaxEntrySize)
	if _, err := Encode(e, out); err == nil {
		t.Fatal("expected Encode to reject a seq>1 entry missing its backlink")
	}
}

func TestDecodeRejectsSeqNumZero(t *testing.T) {
	e := genesisEntry(t)
	out := make([]byte, Size(e))
	if _, err := Encode(e, out); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Overwrite the seq_num field (single varu64 byte, the field right
	// after log_id) with 0.
	seqOffset := 1 + e.PayloadHash.Size() + 1 /* payload_length varu64(5) */ + e.Author.Size() + 1 /* log_id varu64(0) */
	corrupted := append([]byte(nil), out...)
	corrupted[seqOffset] = 0

	if _, err := Decode(corrupted); err == nil {
		t.Fatal("expected Decode to reject seq_num == 0")
	}
}

func TestDecodeEmptyInputIsInvalid(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatal("expected Decode(nil) to fail")
	}
}

func TestDecodeUnknownHashTagIsRejected(t *testing.T) {
	e := genesisEntry(t)
	out := make([]byte, Size(e))
	if _, err := Encode(e, out); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// The payload_hash algorithm id is the byte right after is_end_of_feed.
	corrupted := append([]byte(nil), out...)
	corrupted[1] = 99

	if _, err := Decode(corrupted); err == nil {
		t.Fatal("expected Decode to reject an unknown hash algorithm id")
	}
}

func TestMaxEntrySizeIsPositiveAndBoundsEveryField(t *testing.T) {
	if MaxEntrySize <= 0 {
		t.Fatalf("MaxEntrySize = %d, want > 0", MaxEntrySize)
	}
	e := genesisEntry(t)
	backlink := yamf.NewBlake2bHash([]byte("x"))
	lipmaaLink := yamf.NewBlake2bHash([]byte("y"))
	e.SeqNum = 4
	e.Backlink = &backlink
	e.LipmaaLink = &lipmaaLink
	if Size(e) > MaxEntrySize {
		t.Errorf("Size(e) = %d exceeds MaxEntrySize = %d", Size(e), MaxEntrySize)
	}
}

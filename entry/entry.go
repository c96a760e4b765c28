// Package entry implements the Bamboo append-only log entry format: a
// signed, hash-linked, per-author record that extends one of an author's
// logs. It provides the three core operations over the binary format —
// Encode/Publish, Decode, and Verify — plus the lipmaa-driven link rules
// that give O(log n) certificate paths through a log.
//
// The package is purely synchronous: every operation is a pure function of
// its inputs (and, for Publish, the Ed25519 keypair), with no I/O, no
// blocking, and no shared mutable state. Looking up the bytes of a
// previous entry by (author, log id, seq) is the caller's responsibility;
// see internal/store for one such adapter.
package entry

import (
	"github.com/pietgeursen/bamboo-rs/lipmaa"
	"github.com/pietgeursen/bamboo-rs/varu64"
	"github.com/pietgeursen/bamboo-rs/yamf"
)

// Entry is one record in an author's append-only log.
type Entry struct {
	LogID         uint64
	IsEndOfFeed   bool
	PayloadHash   yamf.Hash
	PayloadLength uint64
	Author        yamf.Signatory
	SeqNum        uint64

	// Backlink is the hash of the full encoded bytes of the entry at
	// SeqNum-1. Present iff SeqNum > 1.
	Backlink *yamf.Hash

	// LipmaaLink is the hash of the full encoded bytes of the entry at
	// lipmaa.Lipmaa(SeqNum). Present iff SeqNum > 1 and that differs from
	// SeqNum-1 (see LipmaaLinkRequired).
	LipmaaLink *yamf.Hash

	Sig yamf.Signature
}

// maxVaru64Size is the largest number of bytes a varu64 encoding ever
// takes, regardless of value.
const maxVaru64Size = 9

func maxHashSize() int {
	return varu64.Size(yamf.Blake2bNumericID) + varu64.Size(uint64(yamf.Blake2bSize)) + yamf.Blake2bSize
}

func maxSignatorySize() int {
	return varu64.Size(yamf.Ed25519NumericID) + varu64.Size(uint64(yamf.Ed25519PublicKeySize)) + yamf.Ed25519PublicKeySize
}

func maxSignatureSize() int {
	return varu64.Size(yamf.Ed25519NumericID) + varu64.Size(uint64(yamf.Ed25519SignatureSize)) + yamf.Ed25519SignatureSize
}

// MaxEntrySize is the largest number of bytes a single Entry can ever
// encode to, given the currently registered hash/signatory/signature
// variants. It is derived from those variants' sizes rather than
// hard-coded: the handful of known reference implementations disagree on
// this constant (316, 322, and 325 bytes have all been observed) because
// they each counted the per-field tag/length overhead differently. With the
// Blake2b-512 and Ed25519 variants it comes to 326 bytes.
var MaxEntrySize = 1 + /* is_end_of_feed */
	maxHashSize() + /* payload_hash */
	maxVaru64Size + /* payload_length */
	maxSignatorySize() + /* author */
	maxVaru64Size + /* log_id */
	maxVaru64Size + /* seq_num */
	maxHashSize() + /* backlink */
	maxHashSize() + /* lipmaa_link */
	maxSignatureSize() /* sig */

// LipmaaLinkRequired reports whether an entry at seqNum must carry a
// stored lipmaa link, i.e. whether lipmaa.Lipmaa(seqNum) differs from the
// entry's direct predecessor. When they coincide only the backlink is
// stored and the lipmaa link is implied equal to it.
func LipmaaLinkRequired(seqNum uint64) bool {
	if seqNum <= 1 {
		return false
	}
	return lipmaa.Lipmaa(seqNum) != seqNum-1
}

// Equal reports whether e and other describe the same entry: same fields,
// same presence/absence of links, same linked hashes, same signature.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.LogID != other.LogID ||
		e.IsEndOfFeed != other.IsEndOfFeed ||
		e.PayloadLength != other.PayloadLength ||
		e.SeqNum != other.SeqNum {
		return false
	}
	if !e.PayloadHash.Equal(other.PayloadHash) || !e.Author.Equal(other.Author) {
		return false
	}
	if !hashPtrEqual(e.Backlink, other.Backlink) || !hashPtrEqual(e.LipmaaLink, other.LipmaaLink) {
		return false
	}
	return bytesEqual(e.Sig.Bytes, other.Sig.Bytes) && e.Sig.AlgorithmID == other.Sig.AlgorithmID
}

func hashPtrEqual(a, b *yamf.Hash) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

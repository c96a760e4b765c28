package entry

import (
	"github.com/pietgeursen/bamboo-rs/varu64"
)

// maxPayloadLength is 2^63 - 1: the spec bounds payload_length so it fits
// comfortably in a signed 64-bit length on either side of the FFI boundary,
// even though varu64 itself could encode the full unsigned 64-bit range.
const maxPayloadLength = 1<<63 - 1

// validateLinkInvariants checks the §3 invariants relating SeqNum to the
// presence of Backlink/LipmaaLink, returning the specific *Error to raise
// for whichever invariant is violated, or nil if e is well-formed.
func validateLinkInvariants(e *Entry) *Error {
	if e.SeqNum == 0 {
		if e.Backlink != nil || e.LipmaaLink != nil {
			return CodeError(EncodeEntryHasBacklinksWhenSeqZero)
		}
		return CodeError(EncodeSeqError)
	}
	if e.SeqNum == 1 {
		if e.Backlink != nil {
			return CodeError(EncodeBacklinkError)
		}
		if e.LipmaaLink != nil {
			return CodeError(EncodeLipmaaError)
		}
		return nil
	}
	if e.Backlink == nil {
		return CodeError(EncodeBacklinkError)
	}
	if LipmaaLinkRequired(e.SeqNum) {
		if e.LipmaaLink == nil {
			return CodeError(EncodeLipmaaError)
		}
	} else if e.LipmaaLink != nil {
		return CodeError(EncodeLipmaaError)
	}
	return nil
}

// Size returns the number of bytes Encode would write for e, including its
// signature.
func Size(e *Entry) int {
	return sizeWithoutSig(e) + e.Sig.Size()
}

// SigningPreimageSize returns the number of bytes SigningPreimage would
// write for e.
func SigningPreimageSize(e *Entry) int {
	return sizeWithoutSig(e)
}

func sizeWithoutSig(e *Entry) int {
	n := 1 /* is_end_of_feed */ +
		e.PayloadHash.Size() +
		varu64.Size(e.PayloadLength) +
		e.Author.Size() +
		varu64.Size(e.LogID) +
		varu64.Size(e.SeqNum)
	if e.Backlink != nil {
		n += e.Backlink.Size()
	}
	if e.LipmaaLink != nil {
		n += e.LipmaaLink.Size()
	}
	return n
}

// Encode writes the full wire encoding of e, including its signature, into
// out, returning the number of bytes written.
func Encode(e *Entry, out []byte) (int, error) {
	n, err := encodeFields(e, out)
	if err != nil {
		return 0, err
	}
	if len(out[n:]) < e.Sig.Size() {
		return 0, CodeError(EncodeBufferLength)
	}
	m, err := e.Sig.Encode(out[n:])
	if err != nil {
		return 0, wrapErr(EncodeSigError, err)
	}
	return n + m, nil
}

// SigningPreimage writes e's signing pre-image — its encoded bytes with the
// signature field omitted — into out. This is the exact input to Ed25519
// sign/verify.
func SigningPreimage(e *Entry, out []byte) (int, error) {
	return encodeFields(e, out)
}

// encodeFields writes every field of e except the signature, in the order
// fixed by the wire format: is_end_of_feed, payload_hash, payload_length,
// author, log_id, seq_num, [backlink], [lipmaa_link].
func encodeFields(e *Entry, out []byte) (int, error) {
	if e.PayloadLength > maxPayloadLength {
		return 0, CodeError(EncodePayloadSizeError)
	}
	if verr := validateLinkInvariants(e); verr != nil {
		return 0, verr
	}
	if len(out) < sizeWithoutSig(e) {
		return 0, CodeError(EncodeBufferLength)
	}

	n := 0

	if e.IsEndOfFeed {
		out[n] = 0x01
	} else {
		out[n] = 0x00
	}
	n++

	m, err := e.PayloadHash.Encode(out[n:])
	if err != nil {
		return 0, wrapErr(EncodePayloadHashError, err)
	}
	n += m

	m, err = varu64.Encode(e.PayloadLength, out[n:])
	if err != nil {
		return 0, wrapErr(EncodePayloadSizeError, err)
	}
	n += m

	m, err = e.Author.Encode(out[n:])
	if err != nil {
		return 0, wrapErr(EncodeAuthorError, err)
	}
	n += m

	m, err = varu64.Encode(e.LogID, out[n:])
	if err != nil {
		return 0, wrapErr(EncodeLogIdError, err)
	}
	n += m

	m, err = varu64.Encode(e.SeqNum, out[n:])
	if err != nil {
		return 0, wrapErr(EncodeSeqError, err)
	}
	n += m

	if e.Backlink != nil {
		m, err = e.Backlink.Encode(out[n:])
		if err != nil {
			return 0, wrapErr(EncodeBacklinkError, err)
		}
		n += m
	}

	if e.LipmaaLink != nil {
		m, err = e.LipmaaLink.Encode(out[n:])
		if err != nil {
			return 0, wrapErr(EncodeLipmaaError, err)
		}
		n += m
	}

	return n, nil
}

package entry

import (
	"github.com/pietgeursen/bamboo-rs/varu64"
	"github.com/pietgeursen/bamboo-rs/yamf"
)

// Decode parses buf into a structured Entry, validating the wire format
// and the §3 invariants relating SeqNum to link presence. Trailing bytes
// after the signature are not an error at this layer; a caller that cares
// about exact framing should check DecodeWithLength's consumed count.
func Decode(buf []byte) (*Entry, error) {
	e, _, err := DecodeWithLength(buf)
	return e, err
}

// DecodeWithLength is Decode, additionally returning the number of bytes
// of buf the entry actually occupied.
func DecodeWithLength(buf []byte) (*Entry, int, error) {
	if len(buf) == 0 {
		return nil, 0, CodeError(DecodeInputIsLengthZero)
	}

	e := &Entry{}
	n := 0

	switch buf[n] {
	case 0x00:
		e.IsEndOfFeed = false
	case 0x01:
		e.IsEndOfFeed = true
	default:
		return nil, 0, CodeError(DecodeIsEndOfFeedError)
	}
	n++

	hash, m, err := yamf.DecodeHash(buf[n:])
	if err != nil {
		return nil, 0, wrapErr(DecodePayloadHashError, err)
	}
	e.PayloadHash = hash
	n += m

	payloadLength, m, err := varu64.Decode(buf[n:])
	if err != nil {
		return nil, 0, wrapErr(DecodePayloadSizeError, err)
	}
	if payloadLength > maxPayloadLength {
		return nil, 0, CodeError(DecodePayloadSizeError)
	}
	e.PayloadLength = payloadLength
	n += m

	author, m, err := yamf.DecodeSignatory(buf[n:])
	if err != nil {
		return nil, 0, wrapErr(DecodeAuthorError, err)
	}
	e.Author = author
	n += m

	logID, m, err := varu64.Decode(buf[n:])
	if err != nil {
		return nil, 0, wrapErr(DecodeLogIdError, err)
	}
	e.LogID = logID
	n += m

	seqNum, m, err := varu64.Decode(buf[n:])
	if err != nil {
		return nil, 0, wrapErr(DecodeSeqError, err)
	}
	if seqNum == 0 {
		return nil, 0, CodeError(DecodeSeqIsZero)
	}
	e.SeqNum = seqNum
	n += m

	if seqNum > 1 {
		backlink, m, err := yamf.DecodeHash(buf[n:])
		if err != nil {
			return nil, 0, wrapErr(DecodeBacklinkError, err)
		}
		e.Backlink = &backlink
		n += m

		if LipmaaLinkRequired(seqNum) {
			lipmaaLink, m, err := yamf.DecodeHash(buf[n:])
			if err != nil {
				return nil, 0, wrapErr(DecodeLipmaaError, err)
			}
			e.LipmaaLink = &lipmaaLink
			n += m
		}
	}

	sig, m, err := yamf.DecodeSignature(buf[n:])
	if err != nil {
		return nil, 0, wrapErr(DecodeSigError, err)
	}
	e.Sig = sig
	n += m

	return e, n, nil
}

package entry

import (
	"crypto/ed25519"

	"github.com/pietgeursen/bamboo-rs/yamf"
)

// VerifyArgs bundles every input to Verify.
type VerifyArgs struct {
	EntryBytes   []byte
	PayloadBytes []byte

	// BacklinkEntryBytes is required whenever the decoded entry's SeqNum
	// is greater than 1.
	BacklinkEntryBytes []byte

	// LipmaaEntryBytes is required whenever the decoded entry stores a
	// lipmaa link (see LipmaaLinkRequired).
	LipmaaEntryBytes []byte
}

// Verify checks that args.EntryBytes decodes to a well-formed entry,
// correctly signed, committing to args.PayloadBytes, and consistent with
// its back-link and lipmaa-link neighbors. It returns nil on success, or
// the first *Error encountered.
func Verify(args VerifyArgs) error {
	e, err := Decode(args.EntryBytes)
	if err != nil {
		return err
	}

	preimageSize := SigningPreimageSize(e)
	preimage := make([]byte, preimageSize)
	if _, err := SigningPreimage(e, preimage); err != nil {
		return err
	}
	if !ed25519.Verify(e.Author.PublicKey(), preimage, e.Sig.Bytes) {
		return CodeError(InvalidSignature)
	}

	payloadHash := yamf.NewBlake2bHash(args.PayloadBytes)
	if !payloadHash.Equal(e.PayloadHash) {
		return CodeError(PayloadHashDidNotMatch)
	}
	if uint64(len(args.PayloadBytes)) != e.PayloadLength {
		return CodeError(PayloadLengthDidNotMatch)
	}

	if e.SeqNum > 1 {
		if len(args.BacklinkEntryBytes) == 0 {
			return CodeError(PublishWithoutBacklinkEntry)
		}
		backlinkHash := yamf.NewBlake2bHash(args.BacklinkEntryBytes)
		if e.Backlink == nil || !backlinkHash.Equal(*e.Backlink) {
			return CodeError(BacklinkHashDoesNotMatch)
		}

		backlinkEntry, err := Decode(args.BacklinkEntryBytes)
		if err != nil {
			return err
		}
		if backlinkEntry.LogID != e.LogID {
			return CodeError(VerifyLogIdDidNotMatchBacklink)
		}
		if !backlinkEntry.Author.Equal(e.Author) {
			return CodeError(VerifyAuthorDidNotMatchBacklink)
		}
		if backlinkEntry.IsEndOfFeed {
			return CodeError(VerifyPublishedAfterEndOfFeedError)
		}
	}

	if e.LipmaaLink != nil {
		if len(args.LipmaaEntryBytes) == 0 {
			return CodeError(PublishWithoutLipmaaEntry)
		}
		lipmaaHash := yamf.NewBlake2bHash(args.LipmaaEntryBytes)
		if !lipmaaHash.Equal(*e.LipmaaLink) {
			return CodeError(LipmaalinkHashDoesNotMatch)
		}

		lipmaaEntry, err := Decode(args.LipmaaEntryBytes)
		if err != nil {
			return err
		}
		if lipmaaEntry.LogID != e.LogID {
			return CodeError(VerifyLogIdDidNotMatchLipmaalink)
		}
		if !lipmaaEntry.Author.Equal(e.Author) {
			return CodeError(VerifyAuthorDidNotMatchLipmaalink)
		}
	}

	return nil
}

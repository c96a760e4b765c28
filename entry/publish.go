package entry

import (
	"crypto/ed25519"

	"github.com/pietgeursen/bamboo-rs/lipmaa"
	"github.com/pietgeursen/bamboo-rs/yamf"
)

// PublishArgs bundles every input to Publish: the payload to commit to,
// the author's keypair, the byte context needed to extend an existing log
// (or none, for a genesis entry), and the buffer to write into.
type PublishArgs struct {
	// Out is the caller-owned buffer the encoded entry is written into. It
	// must be at least MaxEntrySize bytes, or sized exactly if the caller
	// already knows the entry's size.
	Out []byte

	Payload   []byte
	PublicKey ed25519.PublicKey
	SecretKey ed25519.PrivateKey

	// BacklinkEntryBytes is the full encoded bytes of the entry at
	// LastSeq. Required whenever LastSeq > 0.
	BacklinkEntryBytes []byte

	// LipmaaEntryBytes is the full encoded bytes of the entry at
	// lipmaa.Lipmaa(LastSeq+1). Required whenever that entry's link is
	// distinct from its backlink (see LipmaaLinkRequired).
	LipmaaEntryBytes []byte

	IsEndOfFeed bool
	LastSeq     uint64
	LogID       uint64
}

// Publish builds, signs, and serializes a new entry extending the log
// identified by (author, LogID) at seq LastSeq+1, writing it into
// args.Out and returning the number of bytes written.
func Publish(args PublishArgs) (int, error) {
	if len(args.PublicKey) != ed25519.PublicKeySize {
		return 0, CodeError(PublishWithoutKeypair)
	}
	if len(args.SecretKey) != ed25519.PrivateKeySize {
		return 0, CodeError(PublishWithoutSecretKey)
	}

	seqNum := args.LastSeq + 1

	var backlinkEntry *Entry
	if args.LastSeq > 0 {
		if len(args.BacklinkEntryBytes) == 0 {
			return 0, CodeError(PublishWithoutBacklinkEntry)
		}
		decoded, err := Decode(args.BacklinkEntryBytes)
		if err != nil {
			return 0, err
		}
		backlinkEntry = decoded

		if backlinkEntry.IsEndOfFeed {
			return 0, CodeError(PublishAfterEndOfFeed)
		}
		if backlinkEntry.LogID != args.LogID {
			return 0, CodeError(PublishWithIncorrectLogId)
		}
		if !backlinkEntry.Author.Equal(yamf.NewEd25519Signatory(args.PublicKey)) {
			return 0, CodeError(PublishAuthorMismatch)
		}
	}

	lipmaaRequired := LipmaaLinkRequired(seqNum)
	if lipmaaRequired && len(args.LipmaaEntryBytes) == 0 {
		return 0, CodeError(PublishWithoutLipmaaEntry)
	}

	e := &Entry{
		LogID:         args.LogID,
		IsEndOfFeed:   args.IsEndOfFeed,
		PayloadHash:   yamf.NewBlake2bHash(args.Payload),
		PayloadLength: uint64(len(args.Payload)),
		Author:        yamf.NewEd25519Signatory(args.PublicKey),
		SeqNum:        seqNum,
	}

	if args.LastSeq > 0 {
		backlinkHash := yamf.NewBlake2bHash(args.BacklinkEntryBytes)
		e.Backlink = &backlinkHash

		if lipmaaRequired {
			lipmaaHash := yamf.NewBlake2bHash(args.LipmaaEntryBytes)
			e.LipmaaLink = &lipmaaHash
		}
	}

	preimageSize := SigningPreimageSize(e)
	if len(args.Out) < preimageSize {
		return 0, CodeError(EncodeBufferLength)
	}
	n, err := SigningPreimage(e, args.Out)
	if err != nil {
		return 0, err
	}

	sig := ed25519.Sign(args.SecretKey, args.Out[:n])
	e.Sig = yamf.NewEd25519Signature(sig)

	if len(args.Out[n:]) < e.Sig.Size() {
		return 0, CodeError(EncodeBufferLength)
	}
	m, err := e.Sig.Encode(args.Out[n:])
	if err != nil {
		return 0, wrapErr(EncodeSigError, err)
	}

	return n + m, nil
}

// PublishGenesis is a thin convenience wrapper over Publish for the first
// entry in a log, where there is no backlink or lipmaa link to supply.
func PublishGenesis(out, payload []byte, publicKey ed25519.PublicKey, secretKey ed25519.PrivateKey, logID uint64, isEndOfFeed bool) (int, error) {
	return Publish(PublishArgs{
		Out:         out,
		Payload:     payload,
		PublicKey:   publicKey,
		SecretKey:   secretKey,
		IsEndOfFeed: isEndOfFeed,
		LastSeq:     0,
		LogID:       logID,
	})
}

// NextLipmaaSeq is exposed for callers assembling PublishArgs.LipmaaEntryBytes:
// the seq number whose bytes they need to supply for the entry that would
// extend a log currently at lastSeq.
func NextLipmaaSeq(lastSeq uint64) uint64 {
	return lipmaa.Lipmaa(lastSeq + 1)
}

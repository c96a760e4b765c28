package store

import (
	"context"
	"crypto/ed25519"
	"errors"

	"github.com/pietgeursen/bamboo-rs/entry"
)

// PublishRequest bundles everything Publish needs beyond the store
// itself: the payload to commit to and the author's keypair and log.
type PublishRequest struct {
	Payload     []byte
	PublicKey   ed25519.PublicKey
	SecretKey   ed25519.PrivateKey
	LogID       uint64
	IsEndOfFeed bool
}

// Publish looks up the current head of (PublicKey, LogID) in s, fetches
// whatever backlink/lipmaa-link bytes entry.Publish needs, signs and
// encodes the new entry, appends it to s, and returns its encoded bytes.
func Publish(ctx context.Context, s EntryStore, req PublishRequest) ([]byte, error) {
	lastSeq, err := s.Head(ctx, req.PublicKey, req.LogID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, &entry.Error{Code: entry.AddEntryGetLastEntryError, Err: err}
		}
		lastSeq = 0
	}

	args := entry.PublishArgs{
		Out:         make([]byte, entry.MaxEntrySize),
		Payload:     req.Payload,
		PublicKey:   req.PublicKey,
		SecretKey:   req.SecretKey,
		IsEndOfFeed: req.IsEndOfFeed,
		LastSeq:     lastSeq,
		LogID:       req.LogID,
	}

	if lastSeq > 0 {
		backlinkBytes, err := s.Get(ctx, req.PublicKey, req.LogID, lastSeq)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, entry.CodeError(entry.AddEntryGetLastEntryNotFound)
			}
			return nil, &entry.Error{Code: entry.AddEntryGetBacklinkError, Err: err}
		}
		args.BacklinkEntryBytes = backlinkBytes

		seqNum := lastSeq + 1
		if entry.LipmaaLinkRequired(seqNum) {
			lipmaaSeq := entry.NextLipmaaSeq(lastSeq)
			lipmaaBytes, err := s.Get(ctx, req.PublicKey, req.LogID, lipmaaSeq)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					return nil, entry.CodeError(entry.AddEntryNoLipmaalinkInStore)
				}
				return nil, &entry.Error{Code: entry.AddEntryGetLipmaalinkError, Err: err}
			}
			args.LipmaaEntryBytes = lipmaaBytes
		}
	}

	n, err := entry.Publish(args)
	if err != nil {
		return nil, err
	}
	entryBytes := args.Out[:n]

	if err := s.Append(ctx, entryBytes); err != nil {
		return nil, err
	}
	return entryBytes, nil
}

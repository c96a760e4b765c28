package store

import (
	"context"
	"errors"

	"github.com/pietgeursen/bamboo-rs/entry"
)

// Verify decodes entryBytes, fetches whatever backlink/lipmaa-link bytes
// entry.Verify needs from s, and checks entryBytes against payloadBytes
// and its neighbors. The returned error is always an *entry.Error, using
// the AddEntry* family for failures that originate in the store lookup
// rather than the entry itself.
func Verify(ctx context.Context, s EntryStore, entryBytes, payloadBytes []byte) error {
	e, err := entry.Decode(entryBytes)
	if err != nil {
		return &entry.Error{Code: entry.AddEntryDecodeFailed, Err: err}
	}

	args := entry.VerifyArgs{
		EntryBytes:   entryBytes,
		PayloadBytes: payloadBytes,
	}

	if e.SeqNum > 1 {
		backlinkBytes, err := s.Get(ctx, e.Author.PublicKey(), e.LogID, e.SeqNum-1)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return entry.CodeError(entry.AddEntryGetLastEntryNotFound)
			}
			return &entry.Error{Code: entry.AddEntryGetBacklinkError, Err: err}
		}
		args.BacklinkEntryBytes = backlinkBytes
	}

	if e.LipmaaLink != nil {
		lipmaaSeq := entry.NextLipmaaSeq(e.SeqNum - 1)
		lipmaaBytes, err := s.Get(ctx, e.Author.PublicKey(), e.LogID, lipmaaSeq)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return entry.CodeError(entry.AddEntryNoLipmaalinkInStore)
			}
			return &entry.Error{Code: entry.AddEntryGetLipmaalinkError, Err: err}
		}
		args.LipmaaEntryBytes = lipmaaBytes
	}

	return entry.Verify(args)
}

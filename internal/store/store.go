// Package store adapts the pure entry package onto persistence: a place
// to fetch a previous entry's bytes from when publishing or verifying,
// and a place to append newly published entries to. It is not a
// replication protocol — one process, one backing directory or HTTP
// endpoint, exercised by the CLI and its tests.
package store

import (
	"context"
	"crypto/ed25519"
	"errors"
)

// ErrNotFound is returned by Get and Head when no entry exists at the
// requested coordinates.
var ErrNotFound = errors.New("store: not found")

// EntryStore is the minimal persistence interface a bamboo log adapter
// must provide: fetching the encoded bytes of a specific entry, finding
// the current head (highest published seq) of a log, and appending a
// newly published entry.
type EntryStore interface {
	// Get returns the full encoded bytes of the entry at (author, logID,
	// seq), or ErrNotFound if none has been published yet.
	Get(ctx context.Context, author ed25519.PublicKey, logID, seq uint64) ([]byte, error)

	// Head returns the highest seq published so far for (author, logID),
	// or ErrNotFound if the log is empty.
	Head(ctx context.Context, author ed25519.PublicKey, logID uint64) (seq uint64, err error)

	// Append stores entryBytes, which must decode to a well-formed entry;
	// the store derives (author, logID, seq) from the decoded entry
	// itself rather than taking them as separate arguments.
	Append(ctx context.Context, entryBytes []byte) error
}

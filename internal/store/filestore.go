package store

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pietgeursen/bamboo-rs/entry"
)

// FileStore is the simplest possible EntryStore: one file per entry,
// named by seq number, under baseDir/<author-hex>/<logID>/.
type FileStore struct {
	baseDir string

	mu sync.Mutex
}

// NewFileStore returns a FileStore rooted at baseDir. The directory is
// created lazily, on the first Append into a given (author, logID).
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

func (s *FileStore) logDir(author ed25519.PublicKey, logID uint64) string {
	return filepath.Join(s.baseDir, hex.EncodeToString(author), strconv.FormatUint(logID, 10))
}

func (s *FileStore) entryPath(author ed25519.PublicKey, logID, seq uint64) string {
	return filepath.Join(s.logDir(author, logID), strconv.FormatUint(seq, 10)+".entry")
}

func (s *FileStore) Get(_ context.Context, author ed25519.PublicKey, logID, seq uint64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.entryPath(author, logID, seq))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read entry: %w", err)
	}
	return b, nil
}

func (s *FileStore) Head(_ context.Context, author ed25519.PublicKey, logID uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirEntries, err := os.ReadDir(s.logDir(author, logID))
	if os.IsNotExist(err) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("store: list log dir: %w", err)
	}

	var head uint64
	found := false
	for _, de := range dirEntries {
		name := strings.TrimSuffix(de.Name(), ".entry")
		seq, err := strconv.ParseUint(name, 10, 64)
		if err != nil {
			continue
		}
		if !found || seq > head {
			head = seq
			found = true
		}
	}
	if !found {
		return 0, ErrNotFound
	}
	return head, nil
}

func (s *FileStore) Append(_ context.Context, entryBytes []byte) error {
	e, err := entry.Decode(entryBytes)
	if err != nil {
		return &entry.Error{Code: entry.AddEntryDecodeFailed, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.logDir(e.Author.PublicKey(), e.LogID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create log dir: %w", err)
	}

	path := s.entryPath(e.Author.PublicKey(), e.LogID, e.SeqNum)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("store: entry already exists at seq %d", e.SeqNum)
	}

	if err := os.WriteFile(path, entryBytes, 0o644); err != nil {
		return fmt.Errorf("store: write entry: %w", err)
	}
	return nil
}

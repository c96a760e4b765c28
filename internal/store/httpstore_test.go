package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/pietgeursen/bamboo-rs/entry"
)

// memoryBackend is a minimal bamboo-store HTTP server: enough of the
// entries/heads/health JSON protocol for HTTPStore's requests to round-trip
// against, backed by an in-memory map keyed like FileStore's directories.
type memoryBackend struct {
	mu      sync.Mutex
	entries map[string][]byte // "authorHex/logID/seq" -> entry bytes
	heads   map[string]uint64 // "authorHex/logID" -> highest seq
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		entries: make(map[string][]byte),
		heads:   make(map[string]uint64),
	}
}

func (b *memoryBackend) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/entries/", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/entries/")
		b.mu.Lock()
		entryBytes, ok := b.entries[key]
		b.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(getResponse{EntryHex: hex.EncodeToString(entryBytes)})
	})
	mux.HandleFunc("/entries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			json.NewEncoder(w).Encode(appendResponse{Success: false, Error: err.Error()})
			return
		}
		var req appendRequest
		if err := json.Unmarshal(body, &req); err != nil {
			json.NewEncoder(w).Encode(appendResponse{Success: false, Error: err.Error()})
			return
		}
		entryBytes, err := hex.DecodeString(req.EntryHex)
		if err != nil {
			json.NewEncoder(w).Encode(appendResponse{Success: false, Error: err.Error()})
			return
		}
		e, err := entry.Decode(entryBytes)
		if err != nil {
			json.NewEncoder(w).Encode(appendResponse{Success: false, Error: err.Error()})
			return
		}
		key := fmt.Sprintf("%s/%d/%d", hex.EncodeToString(e.Author.Bytes), e.LogID, e.SeqNum)
		headKey := fmt.Sprintf("%s/%d", hex.EncodeToString(e.Author.Bytes), e.LogID)

		b.mu.Lock()
		b.entries[key] = entryBytes
		if e.SeqNum > b.heads[headKey] {
			b.heads[headKey] = e.SeqNum
		}
		b.mu.Unlock()

		json.NewEncoder(w).Encode(appendResponse{Success: true})
	})
	mux.HandleFunc("/heads/", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/heads/")
		b.mu.Lock()
		seq, ok := b.heads[key]
		b.mu.Unlock()
		json.NewEncoder(w).Encode(headResponse{Seq: seq, Found: ok})
	})
	return httptest.NewServer(mux)
}

func TestHTTPStorePublishThenVerifyChain(t *testing.T) {
	backend := newMemoryBackend()
	srv := backend.server()
	defer srv.Close()

	s := NewHTTPStore(zap.NewNop(), srv.URL)
	pub, priv := newTestKeypair(t)
	ctx := context.Background()

	payloads := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
	entries := make([][]byte, 0, len(payloads))
	for _, p := range payloads {
		entryBytes, err := Publish(ctx, s, PublishRequest{
			Payload:   p,
			PublicKey: pub,
			SecretKey: priv,
			LogID:     0,
		})
		if err != nil {
			t.Fatalf("Publish: %v", err)
		}
		entries = append(entries, entryBytes)
	}

	head, err := s.Head(ctx, pub, 0)
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head != uint64(len(payloads)) {
		t.Fatalf("Head = %d, want %d", head, len(payloads))
	}

	for i, entryBytes := range entries {
		if err := Verify(ctx, s, entryBytes, payloads[i]); err != nil {
			t.Fatalf("Verify entry %d: %v", i+1, err)
		}
	}
}

func TestHTTPStoreGetMissingReturnsNotFound(t *testing.T) {
	backend := newMemoryBackend()
	srv := backend.server()
	defer srv.Close()

	s := NewHTTPStore(zap.NewNop(), srv.URL)
	pub, _ := newTestKeypair(t)

	if _, err := s.Get(context.Background(), pub, 0, 1); err != ErrNotFound {
		t.Fatalf("Get on empty store: got %v, want ErrNotFound", err)
	}
	if _, err := s.Head(context.Background(), pub, 0); err != ErrNotFound {
		t.Fatalf("Head on empty store: got %v, want ErrNotFound", err)
	}
}

func TestHTTPStoreCheckHealth(t *testing.T) {
	backend := newMemoryBackend()
	srv := backend.server()
	defer srv.Close()

	s := NewHTTPStore(zap.NewNop(), srv.URL)
	if err := s.CheckHealth(context.Background()); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
}

func TestHTTPStoreCheckHealthUnreachable(t *testing.T) {
	s := NewHTTPStore(zap.NewNop(), "http://127.0.0.1:1")
	if err := s.CheckHealth(context.Background()); err == nil {
		t.Fatal("expected CheckHealth to fail against an unreachable server")
	}
}

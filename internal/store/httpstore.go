package store

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// getResponse mirrors a remote bamboo-store's JSON entry response.
type getResponse struct {
	EntryHex string `json:"entryHex"`
	Error    string `json:"error,omitempty"`
}

// headResponse mirrors a remote bamboo-store's JSON head response.
type headResponse struct {
	Seq   uint64 `json:"seq"`
	Found bool   `json:"found"`
	Error string `json:"error,omitempty"`
}

// appendRequest/appendResponse mirror a remote bamboo-store's JSON
// append request/response pair.
type appendRequest struct {
	EntryHex string `json:"entryHex"`
}

type appendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// HTTPStore fetches and publishes entries against a remote bamboo-store
// HTTP endpoint. It is modeled directly on the shape of a trimmed
// base URL plus a timeout-bounded http.Client wrapping JSON
// request/response pairs.
type HTTPStore struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPStore returns an HTTPStore talking to baseURL.
func NewHTTPStore(logger *zap.Logger, baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger.With(zap.String("component", "HTTPStore")),
	}
}

func (s *HTTPStore) Get(ctx context.Context, author ed25519.PublicKey, logID, seq uint64) ([]byte, error) {
	url := fmt.Sprintf("%s/entries/%s/%d/%d", s.baseURL, hex.EncodeToString(author), logID, seq)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("store: build get request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store: get entry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("store: read get response: %w", err)
	}

	var r getResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("store: unmarshal get response: %w", err)
	}
	if r.Error != "" {
		return nil, fmt.Errorf("store: get entry: %s", r.Error)
	}

	entryBytes, err := hex.DecodeString(strings.TrimPrefix(r.EntryHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("store: decode entry hex: %w", err)
	}
	return entryBytes, nil
}

func (s *HTTPStore) Head(ctx context.Context, author ed25519.PublicKey, logID uint64) (uint64, error) {
	url := fmt.Sprintf("%s/heads/%s/%d", s.baseURL, hex.EncodeToString(author), logID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("store: build head request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("store: head: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("store: read head response: %w", err)
	}

	var r headResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return 0, fmt.Errorf("store: unmarshal head response: %w", err)
	}
	if r.Error != "" {
		return 0, fmt.Errorf("store: head: %s", r.Error)
	}
	if !r.Found {
		return 0, ErrNotFound
	}
	return r.Seq, nil
}

func (s *HTTPStore) Append(ctx context.Context, entryBytes []byte) error {
	s.logger.Debug("appending entry", zap.Int("entryLength", len(entryBytes)))

	jsonData, err := json.Marshal(appendRequest{EntryHex: hex.EncodeToString(entryBytes)})
	if err != nil {
		return fmt.Errorf("store: marshal append request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/entries", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("store: build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("store: append entry: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("store: read append response: %w", err)
	}

	var r appendResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("store: unmarshal append response: %w", err)
	}
	if !r.Success {
		return fmt.Errorf("store: append entry: %s", r.Error)
	}
	return nil
}

// CheckHealth reports whether the remote store is reachable.
func (s *HTTPStore) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("store: build health request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("store: health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("store: unhealthy, status %d", resp.StatusCode)
	}
	return nil
}

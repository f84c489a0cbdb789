package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore is the durable store for the bearer token. One fixed key
// holds one opaque string; absence means unauthenticated.
type TokenStore interface {
	// Load returns the stored token, or "" if none is stored.
	Load() (string, error)
	// Save stores the token, replacing any previous value.
	Save(token string) error
	// Clear removes the stored token. Clearing an empty store is not
	// an error.
	Clear() error
}

// FileStore persists the token in a single file so it survives
// restarts, the way the browser client kept it in local storage.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements TokenStore
func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Save implements TokenStore
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear implements TokenStore
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory TokenStore used in tests
type MemoryStore struct {
	token string
}

// NewMemoryStore creates an in-memory store, optionally pre-seeded
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

// Load implements TokenStore
func (s *MemoryStore) Load() (string, error) { return s.token, nil }

// Save implements TokenStore
func (s *MemoryStore) Save(token string) error {
	s.token = token
	return nil
}

// Clear implements TokenStore
func (s *MemoryStore) Clear() error {
	s.token = ""
	return nil
}

// Package session holds the session token that marks a user as signed in.
//
// A token's mere presence means "authenticated"; nothing here checks expiry
// or signatures. Stores never report read failures: an unreadable medium is
// an absent token.
package session

import (
	"strings"
	"sync"
)

// TokenReader is the read side of a TokenStore.
type TokenReader interface {
	// Get returns the current token, and false when there is none.
	Get() (string, bool)
}

// TokenStore persists the current session token.
type TokenStore interface {
	TokenReader
	// Set replaces any previously stored token.
	Set(token string) error
	// Clear removes the stored token.
	Clear() error
}

// MemoryStore is a TokenStore that lives only as long as the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns a store holding token (which may be empty).
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: strings.TrimSpace(token)}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	s.token = strings.TrimSpace(token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

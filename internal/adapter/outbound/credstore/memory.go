package credstore

import (
	"sync"

	"github.com/quillpress/quillctl/internal/domain/credential"
)

// MemoryStore implements credential.Store with an in-process value.
// Thread-safe for concurrent access. For tests and the "memory" storage
// backend; credentials do not survive the process.
type MemoryStore struct {
	mu   sync.RWMutex
	pair credential.Pair
	set  bool
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get retrieves the stored pair.
func (s *MemoryStore) Get() (credential.Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return credential.Pair{}, credential.ErrNoCredentials
	}
	return s.pair, nil
}

// Set replaces the stored pair.
func (s *MemoryStore) Set(pair credential.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.set = true
	return nil
}

// Clear removes the stored pair.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = credential.Pair{}
	s.set = false
	return nil
}

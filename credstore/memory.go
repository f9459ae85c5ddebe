package credstore

import (
	"context"
	"sync"

	"github.com/goliatone/go-shelf/core"
)

// MemoryStore keeps the credential pair in process memory. Reads and writes
// are safe for concurrent use; the pair is always observed whole.
type MemoryStore struct {
	mu      sync.RWMutex
	cred    core.Credential
	present bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, cred core.Credential) error {
	if s == nil {
		return core.InternalError("credstore: memory store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.present = true
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (core.Credential, bool, error) {
	if s == nil {
		return core.Credential{}, false, core.InternalError("credstore: memory store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present || !s.cred.Valid() {
		return core.Credential{}, false, nil
	}
	return s.cred, true, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	if s == nil {
		return core.InternalError("credstore: memory store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = core.Credential{}
	s.present = false
	return nil
}

var _ core.CredentialStore = (*MemoryStore)(nil)

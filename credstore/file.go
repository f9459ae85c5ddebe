package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-shelf/core"
)

const stateFileMode = 0o600

// stateFile is the on-disk layout: two named slots, matching the storage
// contract the resource API's web client uses.
type stateFile struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// FileStore persists the credential pair as a JSON state file. Writes go
// through a temp file plus rename so a crash never leaves a torn pair on
// disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, core.BadInputError("credstore: state file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o700); err != nil {
		return nil, fmt.Errorf("credstore: create state dir: %w", err)
	}
	return &FileStore{path: trimmed}, nil
}

func (s *FileStore) Save(_ context.Context, cred core.Credential) error {
	if s == nil {
		return core.InternalError("credstore: file store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(stateFile{Access: cred.Access, Refresh: cred.Refresh})
	if err != nil {
		return fmt.Errorf("credstore: encode state: %w", err)
	}
	return s.writeAtomic(payload)
}

func (s *FileStore) Load(_ context.Context) (core.Credential, bool, error) {
	if s == nil {
		return core.Credential{}, false, core.InternalError("credstore: file store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.Credential{}, false, nil
		}
		return core.Credential{}, false, fmt.Errorf("credstore: read state: %w", err)
	}

	var state stateFile
	if err := json.Unmarshal(raw, &state); err != nil {
		return core.Credential{}, false, fmt.Errorf("credstore: decode state: %w", err)
	}

	cred := core.Credential{Access: state.Access, Refresh: state.Refresh}
	if !cred.Valid() {
		return core.Credential{}, false, nil
	}
	return cred, true, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if s == nil {
		return core.InternalError("credstore: file store is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credstore: remove state: %w", err)
	}
	return nil
}

func (s *FileStore) writeAtomic(payload []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".shelf-state-*")
	if err != nil {
		return fmt.Errorf("credstore: create temp state: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credstore: write temp state: %w", err)
	}
	if err := tmp.Chmod(stateFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("credstore: chmod temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credstore: close temp state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("credstore: replace state: %w", err)
	}
	return nil
}

var _ core.CredentialStore = (*FileStore)(nil)

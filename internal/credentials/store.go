// Package credentials persists the client's local credential state: the
// issued bearer token (for environments where cross-origin cookies are
// unreliable) and the explicit-logout marker that suppresses automatic
// re-authentication on the next start. Both are cleared together on logout.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"loanlink/internal/sentinel"
)

// Store is the persistence contract for local credential state.
// Error Contract: Token returns sentinel.ErrNotFound when no token is held;
// all other methods return nil on success and wrapped errors on I/O failure.
type Store interface {
	Token() (string, error)
	SaveToken(token string) error
	ClearToken() error
	LogoutMarker() bool
	SetLogoutMarker() error
	ClearLogoutMarker() error
	// Clear removes the token and the marker together.
	Clear() error
}

// fileState is the on-disk shape, one JSON document per client.
type fileState struct {
	Token          string `json:"token,omitempty"`
	ExplicitLogout bool   `json:"explicitLogout,omitempty"`
}

// FileStore keeps credential state in a single JSON file (0600).
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path, creating parent
// directories lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() (fileState, error) {
	var state fileState
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read credentials: %w", err)
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		// A corrupt file behaves like an empty one; the next write repairs it.
		return fileState{}, nil
	}
	return state, nil
}

func (s *FileStore) save(state fileState) error {
	if state == (fileState{}) {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove credentials: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return "", err
	}
	if state.Token == "" {
		return "", fmt.Errorf("credential token: %w", sentinel.ErrNotFound)
	}
	return state.Token, nil
}

func (s *FileStore) SaveToken(token string) error {
	return s.update(func(state *fileState) {
		state.Token = token
	})
}

func (s *FileStore) ClearToken() error {
	return s.update(func(state *fileState) {
		state.Token = ""
	})
}

func (s *FileStore) LogoutMarker() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return false
	}
	return state.ExplicitLogout
}

func (s *FileStore) SetLogoutMarker() error {
	return s.update(func(state *fileState) {
		state.ExplicitLogout = true
	})
}

func (s *FileStore) ClearLogoutMarker() error {
	return s.update(func(state *fileState) {
		state.ExplicitLogout = false
	})
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(fileState{})
}

func (s *FileStore) update(apply func(*fileState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.load()
	if err != nil {
		return err
	}
	apply(&state)
	return s.save(state)
}

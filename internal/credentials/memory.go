package credentials

import (
	"fmt"
	"sync"

	"loanlink/internal/sentinel"
)

// MemoryStore keeps credential state in memory for tests and ephemeral runs.
type MemoryStore struct {
	mu     sync.Mutex
	token  string
	marker bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", fmt.Errorf("credential token: %w", sentinel.ErrNotFound)
	}
	return s.token, nil
}

func (s *MemoryStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemoryStore) LogoutMarker() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.marker
}

func (s *MemoryStore) SetLogoutMarker() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = true
	return nil
}

func (s *MemoryStore) ClearLogoutMarker() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = false
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.marker = false
	return nil
}

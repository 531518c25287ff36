package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// SessionStore holds the identity of the logged-in employee. There is one
// active session per process and this layer never expires it.
type SessionStore interface {
	Set(data json.RawMessage) error
	Get() (json.RawMessage, error)
	Clear() error
}

type sessionClaims struct {
	Employee json.RawMessage `json:"employee"`
	jwt.RegisteredClaims
}

// FileSessionStore keeps the session on disk as an HS256 token so a tampered
// file is rejected on read.
type FileSessionStore struct {
	path   string
	secret []byte
	mu     sync.RWMutex
}

func NewFileSessionStore(path, secret string) *FileSessionStore {
	return &FileSessionStore{path: path, secret: []byte(secret)}
}

func (s *FileSessionStore) Set(data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	signed, err := utils.SignToken(sessionClaims{Employee: data}, s.secret)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	return os.WriteFile(s.path, []byte(signed), 0o600)
}

// Get returns nil data and no error when no session exists.
func (s *FileSessionStore) Get() (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	claims := &sessionClaims{}
	if err := utils.ParseToken(string(raw), claims, s.secret); err != nil {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	return claims.Employee, nil
}

func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// MemorySessionStore keeps the session in memory only.
type MemorySessionStore struct {
	mu   sync.RWMutex
	data json.RawMessage
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Set(data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append(json.RawMessage(nil), data...)
	return nil
}

func (s *MemorySessionStore) Get() (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, nil
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

package chatclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StateStore holds client-local state that outlives one run: the active
// session id. Clear is called on logout.
type StateStore interface {
	SessionID() (string, error)
	SetSessionID(id string) error
	Clear() error
}

const SessionIDKey = "vivubot_session_id"

// FileStateStore keeps the state as a small JSON object on disk.
type FileStateStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStateStore(dir string) (*FileStateStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStateStore{path: filepath.Join(dir, "state.json")}, nil
}

func (s *FileStateStore) SessionID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return "", err
	}
	return state[SessionIDKey], nil
}

func (s *FileStateStore) SetSessionID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.read()
	if err != nil {
		return err
	}
	state[SessionIDKey] = id
	return s.write(state)
}

func (s *FileStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func (s *FileStateStore) read() (map[string]string, error) {
	state := map[string]string{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return state, nil
}

func (s *FileStateStore) write(state map[string]string) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// MemoryStateStore is used when nothing should be written to disk.
type MemoryStateStore struct {
	mu sync.Mutex
	id string
}

func (s *MemoryStateStore) SessionID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, nil
}

func (s *MemoryStateStore) SetSessionID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	return nil
}

func (s *MemoryStateStore) Clear() error {
	return s.SetSessionID("")
}

package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/chronicle/pkg/era"
	"github.com/jwebster45206/chronicle/pkg/session"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]session.Session
	eras      []era.Era
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage holding the given eras
func NewMockStorage(eras ...era.Era) *MockStorage {
	return &MockStorage{
		sessions: make(map[uuid.UUID]session.Session),
		eras:     append([]era.Era(nil), eras...),
	}
}

// SetPingSuccess configures the mock to succeed on ping
func (m *MockStorage) SetPingSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = nil
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveSession mocks saving a session. A copy is stored.
func (m *MockStorage) SaveSession(ctx context.Context, s *session.Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

// LoadSession mocks loading a session
func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, exists := m.sessions[id]
	if !exists {
		return nil, nil // Return nil for not found
	}
	return &s, nil
}

// DeleteSession mocks deleting a session
func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// SessionCount returns the number of stored sessions (for testing)
func (m *MockStorage) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ListEras mocks listing eras
func (m *MockStorage) ListEras(ctx context.Context) ([]era.Era, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]era.Era(nil), m.eras...), nil
}

// GetEra mocks getting an era by ID
func (m *MockStorage) GetEra(ctx context.Context, id string) (*era.Era, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.eras {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

// AddEra adds or replaces an era in the mock storage (for testing)
func (m *MockStorage) AddEra(e era.Era) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eras = era.Overlay(m.eras, []era.Era{e})
}

package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/pkg/state"
)

// MockStorage is an in-memory Storage for tests. Sessions are copied on the
// way in and out so callers cannot share state through it.
type MockStorage struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*state.Session
	locks     map[uuid.UUID]time.Time
	pingError error
	saveError error
	loadError error
	saveCalls int
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[uuid.UUID]*state.Session),
		locks:    make(map[uuid.UUID]time.Time),
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

func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// SaveCalls returns how many times SaveSession succeeded.
func (m *MockStorage) SaveCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saveCalls
}

// Locked reports whether the turn lock for id is currently held.
func (m *MockStorage) Locked(id uuid.UUID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	exp, ok := m.locks[id]
	return ok && time.Now().Before(exp)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSession(ctx context.Context, s *state.Session) error {
	if s == nil {
		return errors.New("session cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.sessions[s.ID] = s.Clone()
	m.saveCalls++
	return nil
}

func (m *MockStorage) LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadError != nil {
		return nil, m.loadError
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

func (m *MockStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.locks, id)
	return nil
}

func (m *MockStorage) AcquireTurnLock(ctx context.Context, id uuid.UUID, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, ok := m.locks[id]; ok && time.Now().Before(exp) {
		return false, nil
	}
	m.locks[id] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockStorage) ReleaseTurnLock(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
	return nil
}

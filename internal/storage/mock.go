package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/ringtrail/pkg/journey"
	"github.com/jwebster45206/ringtrail/pkg/state"
)

// MockStorage is an in-memory Storage implementation for testing.
type MockStorage struct {
	mu        sync.RWMutex
	runs      map[uuid.UUID]*state.GameState
	journey   *journey.Journey
	pingError error
	saveError error
}

var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage.
func NewMockStorage(j *journey.Journey) *MockStorage {
	return &MockStorage{
		runs:    make(map[uuid.UUID]*state.GameState),
		journey: j,
	}
}

// SetPingError configures the mock to fail on ping with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures the mock to fail on save with the given error.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveRun(ctx context.Context, gs *state.GameState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.runs[gs.ID] = gs
	return nil
}

func (m *MockStorage) LoadRun(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs[id], nil
}

func (m *MockStorage) DeleteRun(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	return nil
}

func (m *MockStorage) GetJourney(ctx context.Context) (*journey.Journey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.journey, nil
}

// Package slots is the per-doctor key-value storage the dashboard reads and
// writes: one string value per well-known key.
package slots

import (
	"context"
	"errors"
	"sync"
)

const (
	KeyCurrentLecture = "currentLecture"
	KeyDarkMode       = "darkMode"
)

var ErrNotFound = errors.New("slot not found")

type Slots interface {
	// Get returns ErrNotFound when the key was never written or was cleared.
	Get(ctx context.Context, doctorID int, key string) (string, error)
	Set(ctx context.Context, doctorID int, key, value string) error
	// Clear drops every key of the doctor.
	Clear(ctx context.Context, doctorID int) error
}

// Memory keeps slots in process memory. The server always uses the Redis
// hash; Memory backs the tests.
type Memory struct {
	mu   sync.RWMutex
	data map[int]map[string]string
}

var _ Slots = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[int]map[string]string)}
}

func (m *Memory) Get(_ context.Context, doctorID int, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[doctorID][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, doctorID int, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[doctorID] == nil {
		m.data[doctorID] = make(map[string]string)
	}
	m.data[doctorID][key] = value
	return nil
}

func (m *Memory) Clear(_ context.Context, doctorID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, doctorID)
	return nil
}

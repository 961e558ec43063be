package store

import (
	"context"
	"sync"

	"github.com/ajitpratap0/daybook/internal/models"
)

// MemoryBackend is an in-memory Backend used by tests and ephemeral journals.
type MemoryBackend struct {
	mu      sync.RWMutex
	snap    *models.Snapshot
	saves   int
	saveErr error
	loadErr error
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load returns a deep copy of the stored snapshot.
func (m *MemoryBackend) Load(_ context.Context) (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.snap == nil {
		return nil, ErrNoSnapshot
	}
	return m.snap.Clone(), nil
}

// Save stores a deep copy of snap.
func (m *MemoryBackend) Save(_ context.Context, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snap = snap.Clone()
	m.saves++
	return nil
}

// Close is a no-op for the memory backend.
func (m *MemoryBackend) Close() error {
	return nil
}

// FailSaves makes every subsequent Save return err. Pass nil to recover.
func (m *MemoryBackend) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// FailLoads makes every subsequent Load return err. Pass nil to recover.
func (m *MemoryBackend) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// Saves returns the number of successful saves.
func (m *MemoryBackend) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

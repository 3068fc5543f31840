package session

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by read-path lookups for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store keys sessions by an opaque string identity. Write paths use
// GetOrCreate; read paths use Get and surface ErrNotFound instead of
// creating.
type Store interface {
	Get(id string) (*Session, error)
	GetOrCreate(id string) *Session
}

// MemoryStore is the process-lifetime session store. It never evicts;
// unbounded growth is an accepted limitation of the intake service.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := newSession(id)
	m.sessions[id] = s
	return s
}

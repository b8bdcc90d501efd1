package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Used for tests and
// single-instance development setups.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, id)
		return nil, ErrNotFound
	}
	s := e.session
	s.ID = id
	s.Flashes = append([]Flash(nil), e.session.Flashes...)
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	cp.Flashes = append([]Flash(nil), s.Flashes...)
	m.entries[s.ID] = memoryEntry{session: cp, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

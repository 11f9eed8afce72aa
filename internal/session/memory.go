package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Used when no Redis address is
// configured and in tests.
type MemoryStore struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	sessions  map[string]*memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	values    map[string][]byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*memoryEntry),
	}
}

func (s *MemoryStore) Open(id string) Session {
	return &memorySession{store: s, id: id}
}

// entry returns the live entry for id, dropping it when expired. Callers hold mu.
func (s *MemoryStore) entry(id string, create bool) *memoryEntry {
	now := s.now()
	e, ok := s.sessions[id]
	if ok && !now.Before(e.expiresAt) {
		delete(s.sessions, id)
		ok = false
	}
	if !ok {
		if !create {
			return nil
		}
		e = &memoryEntry{values: make(map[string][]byte)}
		s.sessions[id] = e
	}
	e.expiresAt = now.Add(s.ttl)
	return e
}

// sweep drops every expired entry, at most once per ttl. Callers hold mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

type memorySession struct {
	store *MemoryStore
	id    string
}

func (m *memorySession) ID() string { return m.id }

func (m *memorySession) Get(_ context.Context, key string, dst any) (bool, error) {
	m.store.mu.Lock()
	e := m.store.entry(m.id, false)
	var data []byte
	if e != nil {
		data = e.values[key]
	}
	m.store.mu.Unlock()

	if data == nil {
		return false, nil
	}
	if err := decode(key, data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memorySession) Set(_ context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.sweep()
	m.store.entry(m.id, true).values[key] = data
	return nil
}

func (m *memorySession) Clear(_ context.Context, key string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if e := m.store.entry(m.id, false); e != nil {
		delete(e.values, key)
	}
	return nil
}

func (m *memorySession) Destroy(_ context.Context) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	delete(m.store.sessions, m.id)
	return nil
}

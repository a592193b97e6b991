package session

import (
	"context"
	"sync"
	"time"
)

// Store keeps session states keyed by session id. Get returns ErrNotFound
// for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, id string, state *State) error
	Delete(ctx context.Context, id string) error
	Close() error
}

type memoryEntry struct {
	snap    Snapshot
	touched time.Time
}

// MemoryStore is an in-process Store. Entries idle for longer than the TTL
// are dropped.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := m.clock()
	if m.expired(e, now) {
		delete(m.entries, id)
		return nil, ErrNotFound
	}
	e.touched = now
	m.entries[id] = e
	return Restore(e.snap), nil
}

func (m *MemoryStore) Save(_ context.Context, id string, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock()
	for k, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, k)
		}
	}
	m.entries[id] = memoryEntry{snap: state.Snapshot(), touched: now}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Len returns the number of live entries.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) expired(e memoryEntry, now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.touched) > m.ttl
}

package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	rec      Record
	deadline time.Time
}

// MemoryStore keeps sessions in process. Used when no Redis URL is
// configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Save stores rec until ttl elapses. Expired entries are swept on every
// save so sessions nobody reads again do not accumulate.
func (s *MemoryStore) Save(_ context.Context, rec Record, ttl time.Duration) error {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if !now.Before(entry.deadline) {
			delete(s.entries, key)
		}
	}
	s.entries[Key(rec.ID)] = memoryEntry{rec: rec, deadline: now.Add(ttl)}
	return nil
}

// Len reports how many entries are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) Load(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	entry, ok := s.entries[Key(id)]
	s.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	if !s.now().Before(entry.deadline) {
		s.mu.Lock()
		delete(s.entries, Key(id))
		s.mu.Unlock()
		return Record{}, ErrNotFound
	}
	return entry.rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, Key(id))
	return nil
}

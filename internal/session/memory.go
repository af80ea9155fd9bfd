package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	data    []byte
	expires time.Time
}

type slotKey struct {
	id   string
	kind Kind
}

// MemoryStore is a process-local Store for single-instance deployments and
// tests. Expired slots are dropped lazily on access and by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[slotKey]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an empty store whose slots live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[slotKey]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, id string, kind Kind, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding session %s/%s: %w", id, kind, err)
	}
	s.mu.Lock()
	s.entries[slotKey{id, kind}] = entry{data: data, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string, kind Kind, dst any) error {
	k := slotKey{id, kind}
	s.mu.RLock()
	e, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if !s.now().Before(e.expires) {
		s.mu.Lock()
		delete(s.entries, k)
		s.mu.Unlock()
		return ErrNotFound
	}
	if err := json.Unmarshal(e.data, dst); err != nil {
		return fmt.Errorf("decoding session %s/%s: %w", id, kind, err)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range Kinds {
		delete(s.entries, slotKey{id, k})
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// Sweep drops every expired slot and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

package handoff

import (
	"context"
	"sync"
	"time"

	"github.com/jonathan/intern-ease/internal/types"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in process. Suitable for a single server instance.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores the encoded result under key
func (s *MemoryStore) Put(_ context.Context, key string, result *types.GenerationResult) error {
	payload, err := encode(result)
	if err != nil {
		return err
	}
	s.PutRaw(key, payload)
	return nil
}

// PutRaw stores an already encoded payload
func (s *MemoryStore) PutRaw(key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{payload: payload, expiresAt: s.now().Add(s.ttl)}
}

// Get returns the result stored under key
func (s *MemoryStore) Get(_ context.Context, key string) (*types.GenerationResult, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return decode(key, entry.payload)
}

// Sweep drops expired entries and reports how many were removed
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close drops every entry
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]memoryEntry)
	return nil
}

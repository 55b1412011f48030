package rights

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store, used when no external store is
// configured and as a test double. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]int)}
}

func (s *MemoryStore) Get(ctx context.Context, licenseID string, counter Counter) (*int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.counters[memoryKey(licenseID, counter)]
	if !ok {
		return nil, nil
	}
	return &value, nil
}

func (s *MemoryStore) Set(ctx context.Context, licenseID string, counter Counter, value int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[memoryKey(licenseID, counter)] = value
	return nil
}

func memoryKey(licenseID string, counter Counter) string {
	return licenseID + ":" + string(counter)
}

package storage

import "sync"

// MemoryStore keeps records in memory only. Used when persistence is disabled
// and as the backing store in tests.
type MemoryStore[T ValidatingSpec] struct {
	records map[string]T

	mu sync.RWMutex
}

func NewMemoryStore[T ValidatingSpec](records map[string]T) *MemoryStore[T] {
	s := &MemoryStore[T]{records: map[string]T{}}
	for id, v := range records {
		s.records[id] = v
	}
	return s
}

func (s *MemoryStore[T]) Save(id string, o T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = o
	return nil
}

func (s *MemoryStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *MemoryStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := make(map[string]T, len(s.records))
	for id, v := range s.records {
		vals[id] = v
	}
	return vals
}

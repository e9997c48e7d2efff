package repository

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string][]byte
}

// NewMemoryStore returns a process-local store. Data is lost on restart.
func NewMemoryStore() KeyValueStore {
	return &memoryStore{entries: make(map[string]map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, learnerID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[learnerID][key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryStore) Put(_ context.Context, learnerID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	learner, ok := s.entries[learnerID]
	if !ok {
		learner = make(map[string][]byte)
		s.entries[learnerID] = learner
	}
	learner[key] = append([]byte(nil), value...)
	return nil
}

package otp

import (
	"context"
	"sync"

	"cafe-storefront/internal/domain"
)

// memoryStore keeps codes in a process-local map. Concurrent requests for the
// same phone race, last write wins.
type memoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemory() Store {
	return &memoryStore{records: make(map[string]Record)}
}

func (s *memoryStore) Get(_ context.Context, phone string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[phone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (s *memoryStore) Set(_ context.Context, phone string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[phone] = rec
	return nil
}

func (s *memoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, phone)
	return nil
}

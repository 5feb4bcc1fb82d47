package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ehr/transforms/pkg/fhirmodels"
)

type memEntry struct {
	current  fhirmodels.Resource
	versions []Version
}

// MemoryStore is a Store backed by a map. Saved resources are cloned on the
// way in and out so callers cannot alias stored state.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]*memEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[Key]*memEntry{}, now: time.Now}
}

func (s *MemoryStore) GetCurrentVersion(_ context.Context, key Key) (fhirmodels.Resource, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || e.current == nil {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return fhirmodels.Clone(e.current)
}

func (s *MemoryStore) Save(_ context.Context, key Key, r fhirmodels.Resource) (int, error) {
	c, err := fhirmodels.Clone(r)
	if err != nil {
		return 0, fmt.Errorf("save %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil {
		e = &memEntry{}
		s.entries[key] = e
	}
	v := len(e.versions) + 1
	e.current = c
	e.versions = append(e.versions, Version{Version: v, Action: ActionSave, Resource: c, RecordedAt: s.now()})
	return v, nil
}

func (s *MemoryStore) Delete(_ context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil || e.current == nil {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	e.current = nil
	e.versions = append(e.versions, Version{Version: len(e.versions) + 1, Action: ActionDelete, RecordedAt: s.now()})
	return nil
}

func (s *MemoryStore) History(_ context.Context, key Key) ([]Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.entries[key]
	if e == nil {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	out := make([]Version, len(e.versions))
	copy(out, e.versions)
	return out, nil
}

// Len reports how many resources currently exist.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if e.current != nil {
			n++
		}
	}
	return n
}

package idmap

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store for tests and dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[Key]Mapping
	seq  map[Key]int
	next int
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[Key]Mapping),
		seq:  make(map[Key]int),
		now:  time.Now,
	}
}

func (s *MemoryStore) Lookup(_ context.Context, key Key) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.rows[key]
	return m.GlobalID, ok, nil
}

func (s *MemoryStore) Insert(_ context.Context, key Key, id uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.rows[key]; ok {
		return m.GlobalID, false, nil
	}
	s.rows[key] = Mapping{Key: key, GlobalID: id, CreatedAt: s.now()}
	s.seq[key] = s.next
	s.next++
	return id, true, nil
}

func (s *MemoryStore) Reverse(_ context.Context, resourceType string, id uuid.UUID) ([]Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Mapping
	for k, m := range s.rows {
		if k.ResourceType == resourceType && m.GlobalID == id {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.seq[out[i].Key] < s.seq[out[j].Key] })
	return out, nil
}

// Len returns the number of stored mappings.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

package idmap

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Cache is a concurrent map whose lifetime is one batch. It never evicts;
// it is dropped along with the batch that owns it.
type Cache[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{m: make(map[K]V)}
}

func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[k]
	return v, ok
}

func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	c.m[k] = v
	c.mu.Unlock()
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Assignment records a global id resolved while processing a batch.
type Assignment struct {
	Key      Key
	GlobalID uuid.UUID
	Created  bool
}

// Batch is a per-batch view of a Mapper. It memoises resolved keys and
// records every assignment so the caller can report them even when the
// batch fails.
type Batch struct {
	mapper *Mapper
	cache  *Cache[Key, uuid.UUID]

	mu       sync.Mutex
	assigned map[Key]Assignment
}

func (m *Mapper) NewBatch() *Batch {
	return &Batch{
		mapper:   m,
		cache:    NewCache[Key, uuid.UUID](),
		assigned: make(map[Key]Assignment),
	}
}

func (b *Batch) GetOrCreate(ctx context.Context, key Key) (uuid.UUID, bool, error) {
	if id, ok := b.cache.Get(key); ok {
		return id, false, nil
	}
	id, created, err := b.mapper.GetOrCreate(ctx, key)
	if err != nil {
		return uuid.Nil, false, err
	}
	b.cache.Put(key, id)
	b.record(key, id, created)
	return id, created, nil
}

func (b *Batch) GetExisting(ctx context.Context, key Key) (uuid.UUID, bool, error) {
	if id, ok := b.cache.Get(key); ok {
		return id, true, nil
	}
	id, ok, err := b.mapper.GetExisting(ctx, key)
	if err != nil || !ok {
		return id, ok, err
	}
	b.cache.Put(key, id)
	return id, true, nil
}

func (b *Batch) record(key Key, id uuid.UUID, created bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev, seen := b.assigned[key]
	b.assigned[key] = Assignment{Key: key, GlobalID: id, Created: created || (seen && prev.Created)}
}

// Assignments returns every id resolved through this batch, sorted by key.
func (b *Batch) Assignments() []Assignment {
	b.mu.Lock()
	out := make([]Assignment, 0, len(b.assigned))
	for _, a := range b.assigned {
		out = append(out, a)
	}
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.flightKey() < out[j].Key.flightKey()
	})
	return out
}

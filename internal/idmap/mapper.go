package idmap

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Mapper resolves local keys to global ids on top of a Store.
type Mapper struct {
	store  Store
	group  *singleflight.Group
	strict bool
	newID  func() uuid.UUID
	logger zerolog.Logger
}

type Option func(*Mapper)

// WithStrict makes Reverse fail on ambiguous matches instead of picking the
// oldest mapping.
func WithStrict(strict bool) Option {
	return func(m *Mapper) { m.strict = strict }
}

func NewMapper(store Store, logger zerolog.Logger, opts ...Option) *Mapper {
	m := &Mapper{
		store:  store,
		group:  &singleflight.Group{},
		newID:  uuid.New,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// resolved is shared by every caller of one flight. claimed hands the
// created flag to exactly one of them.
type resolved struct {
	id      uuid.UUID
	created bool
	claimed *atomic.Bool
}

// GetOrCreate returns the global id for key, creating it on first use.
// Exactly one caller sees created=true for a new mapping, even when several
// callers shared the in-flight creation.
func (m *Mapper) GetOrCreate(ctx context.Context, key Key) (uuid.UUID, bool, error) {
	if err := key.validate(); err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: %s", err, key)
	}
	v, err, _ := m.group.Do(key.flightKey(), func() (interface{}, error) {
		id, ok, err := m.store.Lookup(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		if ok {
			return resolved{id: id}, nil
		}
		winner, inserted, err := m.store.Insert(ctx, key, m.newID())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		if inserted {
			m.logger.Debug().Str("key", key.String()).Str("global_id", winner.String()).Msg("created global id")
		}
		return resolved{id: winner, created: inserted, claimed: new(atomic.Bool)}, nil
	})
	if err != nil {
		return uuid.Nil, false, err
	}
	r := v.(resolved)
	return r.id, r.created && r.claimed.CompareAndSwap(false, true), nil
}

// GetExisting looks a key up without creating anything.
func (m *Mapper) GetExisting(ctx context.Context, key Key) (uuid.UUID, bool, error) {
	if err := key.validate(); err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: %s", err, key)
	}
	id, ok, err := m.store.Lookup(ctx, key)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return id, ok, nil
}

// Link maps an additional local key onto an existing global id, e.g. when a
// feed learns that two of its local keys denote one entity. Linking a key
// that is already mapped to the same id is a no-op.
func (m *Mapper) Link(ctx context.Context, key Key, id uuid.UUID) error {
	if err := key.validate(); err != nil {
		return fmt.Errorf("%w: %s", err, key)
	}
	winner, _, err := m.store.Insert(ctx, key, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if winner != id {
		return fmt.Errorf("%w: %s is %s", ErrConflict, key, winner)
	}
	return nil
}

// Reverse finds the local key behind a global id. More than one candidate
// is an error in strict mode; otherwise the oldest mapping is chosen and
// the ambiguity is logged.
func (m *Mapper) Reverse(ctx context.Context, resourceType string, id uuid.UUID) (Key, error) {
	matches, err := m.store.Reverse(ctx, resourceType, id)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	switch len(matches) {
	case 0:
		return Key{}, fmt.Errorf("%w: %s/%s", ErrNotFound, resourceType, id)
	case 1:
		return matches[0].Key, nil
	}
	if m.strict {
		return Key{}, fmt.Errorf("%w: %s/%s has %d local keys", ErrAmbiguousMatch, resourceType, id, len(matches))
	}
	m.logger.Error().
		Str("resource_type", resourceType).
		Str("global_id", id.String()).
		Int("candidates", len(matches)).
		Str("chosen", matches[0].Key.String()).
		Msg("ambiguous reverse id match, using oldest mapping")
	return matches[0].Key, nil
}

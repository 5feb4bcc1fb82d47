package idmap

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnavailable wraps any failure of the backing store. It is systemic:
	// callers abort the batch rather than continue with partial assignment.
	ErrUnavailable    = errors.New("identifier store unavailable")
	ErrNotFound       = errors.New("identifier mapping not found")
	ErrAmbiguousMatch = errors.New("ambiguous identifier match")
	ErrConflict       = errors.New("local key already mapped to a different global id")
	ErrInvalidKey     = errors.New("invalid identifier key")
)

// Key identifies a logical resource inside one source scope.
type Key struct {
	Scope        string
	ResourceType string
	LocalID      string
}

func (k Key) String() string {
	return k.Scope + ":" + k.ResourceType + "/" + k.LocalID
}

func (k Key) validate() error {
	if k.Scope == "" || k.ResourceType == "" || k.LocalID == "" {
		return ErrInvalidKey
	}
	return nil
}

// flightKey is unambiguous even when parts contain separators.
func (k Key) flightKey() string {
	return k.Scope + "\x1f" + k.ResourceType + "\x1f" + k.LocalID
}

// Mapping is one durable (scope, type, local id) -> global id record.
type Mapping struct {
	Key
	GlobalID  uuid.UUID
	CreatedAt time.Time
}

// Store persists mappings. Insert must be atomic per key: when the key
// already exists it returns the stored id and inserted=false.
type Store interface {
	Lookup(ctx context.Context, key Key) (uuid.UUID, bool, error)
	Insert(ctx context.Context, key Key, id uuid.UUID) (winner uuid.UUID, inserted bool, err error)
	// Reverse lists the mappings for a global id, oldest first.
	Reverse(ctx context.Context, resourceType string, id uuid.UUID) ([]Mapping, error)
}

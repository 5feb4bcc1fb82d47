// Package store persists the current merged version of each resource,
// keyed by scope, kind and global id, together with its version history.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ehr/transforms/pkg/fhirmodels"
)

var (
	ErrNotFound = errors.New("resource not found")
	// ErrUnavailable wraps failures of the backing database. It is systemic
	// and aborts the batch that hit it.
	ErrUnavailable = errors.New("resource store unavailable")
)

// Actions recorded in a resource's history.
const (
	ActionSave   = "save"
	ActionDelete = "delete"
)

type Key struct {
	Scope string
	Kind  fhirmodels.Kind
	ID    uuid.UUID
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s/%s", k.Scope, k.Kind, k.ID)
}

// KeyOf builds the key of a resource whose id has already been mapped to a
// global id.
func KeyOf(scope string, r fhirmodels.Resource) (Key, error) {
	id, err := uuid.Parse(r.GetID())
	if err != nil {
		return Key{}, fmt.Errorf("%s id %q is not a global id: %w", r.Kind(), r.GetID(), err)
	}
	return Key{Scope: scope, Kind: r.Kind(), ID: id}, nil
}

// Version is one entry of a resource's history. Resource is nil for
// deletions.
type Version struct {
	Version    int
	Action     string
	Resource   fhirmodels.Resource
	RecordedAt time.Time
}

type Store interface {
	// GetCurrentVersion returns ErrNotFound when the resource was never
	// saved or has been deleted.
	GetCurrentVersion(ctx context.Context, key Key) (fhirmodels.Resource, error)
	// Save stores r as the new current version and returns its version
	// number.
	Save(ctx context.Context, key Key, r fhirmodels.Resource) (int, error)
	// Delete removes the current version. Deleting an absent resource
	// returns ErrNotFound.
	Delete(ctx context.Context, key Key) error
	History(ctx context.Context, key Key) ([]Version, error)
}

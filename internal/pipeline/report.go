package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ehr/transforms/internal/idmap"
	"github.com/ehr/transforms/pkg/fhirmodels"
)

var (
	// ErrBatchFailed is returned by Run when at least one resource failed
	// but the batch otherwise completed.
	ErrBatchFailed = errors.New("batch completed with failures")
	// ErrBatchAborted is returned when a systemic failure stopped the batch.
	ErrBatchAborted  = errors.New("batch aborted")
	ErrInvalidRecord = errors.New("invalid record")
)

// ResourceError describes why one resource could not be processed.
type ResourceError struct {
	Scope    string
	Feed     string
	Kind     fhirmodels.Kind
	LocalID  string
	GlobalID string
	Err      error
}

func (e *ResourceError) Error() string {
	id := e.LocalID
	if e.GlobalID != "" {
		id += " (" + e.GlobalID + ")"
	}
	return fmt.Sprintf("%s %s/%s from %s: %v", e.Scope, e.Kind, id, e.Feed, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

func (e *ResourceError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("scope", e.Scope).
		Str("feed", e.Feed).
		Str("kind", string(e.Kind)).
		Str("local_id", e.LocalID).
		Str("global_id", e.GlobalID)
}

// Report summarises a Run or Remap.
type Report struct {
	Processed int
	Merged    int
	Created   int
	Deleted   int
	Skipped   int
	Failures  []*ResourceError
	// Assignments lists every global id resolved during the batch, including
	// those of failed resources.
	Assignments []idmap.Assignment
}

type outcome int

const (
	outcomeCreated outcome = iota
	outcomeMerged
	outcomeDeleted
	outcomeSkipped
)

type tally struct {
	mu sync.Mutex
	r  Report
}

func (t *tally) add(o outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.r.Processed++
	switch o {
	case outcomeCreated:
		t.r.Created++
	case outcomeMerged:
		t.r.Merged++
	case outcomeDeleted:
		t.r.Deleted++
	case outcomeSkipped:
		t.r.Skipped++
	}
}

func (t *tally) fail(e *ResourceError) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.r.Processed++
	t.r.Failures = append(t.r.Failures, e)
}

func (t *tally) report() *Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.r
	return &r
}

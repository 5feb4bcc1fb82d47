// Package merge combines a stored resource with a newly observed version of
// the same logical resource so that nothing contributed by an earlier feed
// is lost.
package merge

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehr/transforms/internal/walker"
	"github.com/ehr/transforms/pkg/fhirmodels"
)

var (
	ErrMissingPatient   = errors.New("patient reference missing on merge")
	ErrPatientChanged   = errors.New("incoming resource belongs to a different patient")
	ErrUnsupportedField = errors.New("field not supported for merge")
	// ErrInvariant signals a programming error in the caller, such as
	// merging resources of different kinds. It aborts the batch.
	ErrInvariant = errors.New("merge invariant violated")
)

// mergeFunc merges incoming into existing in place. existing is a private
// copy owned by the engine.
type mergeFunc func(existing, incoming fhirmodels.Resource) error

func typed[T fhirmodels.Resource](fn func(T, T) error) mergeFunc {
	return func(existing, incoming fhirmodels.Resource) error {
		return fn(existing.(T), incoming.(T))
	}
}

var mergers = map[fhirmodels.Kind]mergeFunc{
	fhirmodels.KindEncounter:    typed(mergeEncounter),
	fhirmodels.KindPatient:      typed(mergePatient),
	fhirmodels.KindLocation:     typed(mergeLocation),
	fhirmodels.KindOrganization: typed(mergeOrganization),
	fhirmodels.KindPractitioner: typed(mergePractitioner),
}

// Engine merges resources according to per-kind policies and per-feed
// validation rules.
type Engine struct {
	rules  Rules
	logger zerolog.Logger
}

func NewEngine(rules Rules, logger zerolog.Logger) *Engine {
	return &Engine{rules: rules, logger: logger}
}

// Merge returns the merged snapshot of existing and incoming. A nil
// existing means first sight and returns incoming unchanged. Neither input
// is modified and the result shares no memory with either. Kinds without a
// dedicated merger take the incoming snapshot whole once both sides agree on
// the owning patient. A non-zero effectiveDate is stamped as
// meta.lastUpdated.
func (e *Engine) Merge(feed string, existing, incoming fhirmodels.Resource, effectiveDate time.Time) (fhirmodels.Resource, error) {
	if incoming == nil {
		return nil, fmt.Errorf("%w: nil incoming resource", ErrInvariant)
	}
	if existing == nil {
		return private(incoming)
	}
	if existing.Kind() != incoming.Kind() {
		return nil, fmt.Errorf("%w: cannot merge %s into %s", ErrInvariant, incoming.Kind(), existing.Kind())
	}
	if existing.GetID() != incoming.GetID() {
		return nil, fmt.Errorf("%w: cannot merge %s/%s into %s/%s", ErrInvariant,
			incoming.Kind(), incoming.GetID(), existing.Kind(), existing.GetID())
	}
	if err := e.rules.validate(feed, incoming); err != nil {
		return nil, err
	}

	fn, ok := mergers[incoming.Kind()]
	if !ok {
		if err := checkOwner(existing, incoming); err != nil {
			return nil, err
		}
		e.logger.Debug().
			Str("kind", string(incoming.Kind())).
			Str("global_id", incoming.GetID()).
			Msg("no field merger for kind, incoming replaces stored version")
		return private(incoming)
	}

	merged, err := private(existing)
	if err != nil {
		return nil, err
	}
	// mergers attach incoming values by pointer, so they get their own copy
	in, err := private(incoming)
	if err != nil {
		return nil, err
	}
	if err := fn(merged, in); err != nil {
		return nil, err
	}
	mergeDomain(merged.Domain(), in.Domain())
	if !effectiveDate.IsZero() {
		d := merged.Domain()
		if d.Meta == nil {
			d.Meta = &fhirmodels.Meta{}
		}
		t := effectiveDate
		d.Meta.LastUpdated = &t
	}
	return merged, nil
}

// mergeDomain merges the parts shared by all kinds.
func mergeDomain(existing, incoming *fhirmodels.DomainResource) {
	existing.Extension = appendIfNew(existing.Extension, incoming.Extension)
	existing.Contained = appendIfNew(existing.Contained, incoming.Contained)
	if incoming.Meta != nil {
		if existing.Meta == nil {
			existing.Meta = &fhirmodels.Meta{}
		}
		existing.Meta.Profile = appendIfNew(existing.Meta.Profile, incoming.Meta.Profile)
	}
}

func private(r fhirmodels.Resource) (fhirmodels.Resource, error) {
	c, err := fhirmodels.Clone(r)
	if err != nil {
		return nil, fmt.Errorf("%w: clone %s: %w", ErrInvariant, r.Kind(), err)
	}
	return c, nil
}

// owners reads the owning patient of any kind; it never resolves ids.
var owners = walker.New(nil)

// checkOwner applies the patient invariant to kinds merged by replacement.
// Kinds with no patient concept pass.
func checkOwner(existing, incoming fhirmodels.Resource) error {
	stored, err := owners.PatientOwner(existing)
	switch {
	case errors.Is(err, walker.ErrNoPatientConcept):
		return nil
	case errors.Is(err, walker.ErrMissingPatient):
		return fmt.Errorf("%w: stored %s/%s", ErrMissingPatient, existing.Kind(), existing.GetID())
	case err != nil:
		return err
	}
	next, err := owners.PatientOwner(incoming)
	switch {
	case errors.Is(err, walker.ErrMissingPatient):
		return fmt.Errorf("%w: incoming %s/%s", ErrMissingPatient, incoming.Kind(), incoming.GetID())
	case err != nil:
		return err
	}
	if stored != next {
		return fmt.Errorf("%w: %s/%s stored under Patient/%s, incoming Patient/%s", ErrPatientChanged,
			existing.Kind(), existing.GetID(), stored, next)
	}
	return nil
}

// checkPatient enforces that both sides name the same owning patient.
// The stored patient is never replaced.
func checkPatient(kind fhirmodels.Kind, id string, existing, incoming *fhirmodels.Reference) error {
	if !existing.HasReference() {
		return fmt.Errorf("%w: stored %s/%s", ErrMissingPatient, kind, id)
	}
	if !incoming.HasReference() {
		return fmt.Errorf("%w: incoming %s/%s", ErrMissingPatient, kind, id)
	}
	if existing.Reference != incoming.Reference {
		return fmt.Errorf("%w: %s/%s stored under %s, incoming %s", ErrPatientChanged,
			kind, id, existing.Reference, incoming.Reference)
	}
	return nil
}

// Package walker enumerates every reference held by a resource and rewrites
// it, either by resolving local keys to global ids or by applying a
// dictionary of old to new reference strings.
package walker

import (
	"context"
	"errors"
	"fmt"

	"github.com/ehr/transforms/internal/idmap"
	"github.com/ehr/transforms/pkg/fhirmodels"
	"github.com/google/uuid"
)

var (
	ErrUnsupported      = errors.New("operation not supported for resource kind")
	ErrMissingPatient   = errors.New("missing patient reference")
	ErrNoPatientConcept = errors.New("resource kind has no patient owner")
	ErrMissingID        = errors.New("resource has no local id")
)

// Resolver is the slice of the identifier mapping layer the walker needs.
type Resolver interface {
	GetOrCreate(ctx context.Context, key idmap.Key) (uuid.UUID, bool, error)
}

// Walker applies reference operations to resources of any supported kind.
type Walker struct {
	ids Resolver
}

// New returns a walker. ids may be nil when only Remap and PatientOwner
// are used.
func New(ids Resolver) *Walker {
	return &Walker{ids: ids}
}

// kindSpec is the per-kind part of the walk.
type kindSpec struct {
	// references visits every reference field specific to the kind.
	references func(fhirmodels.Resource, *visitor)
	// owner returns the patient reference; nil means the kind has no
	// patient concept.
	owner func(fhirmodels.Resource) *fhirmodels.Reference
	// noRemap marks kinds that cannot be retroactively remapped.
	noRemap bool
}

func refs[T fhirmodels.Resource](fn func(T, *visitor)) func(fhirmodels.Resource, *visitor) {
	return func(r fhirmodels.Resource, v *visitor) { fn(r.(T), v) }
}

func owner[T fhirmodels.Resource](fn func(T) *fhirmodels.Reference) func(fhirmodels.Resource) *fhirmodels.Reference {
	return func(r fhirmodels.Resource) *fhirmodels.Reference { return fn(r.(T)) }
}

// kinds is the dispatch table. It is filled in init because the per-kind
// walkers recurse back into it.
var kinds map[fhirmodels.Kind]kindSpec

func init() {
	kinds = map[fhirmodels.Kind]kindSpec{
		fhirmodels.KindPatient:               {references: refs(patientRefs)},
		fhirmodels.KindEncounter:             {references: refs(encounterRefs), owner: owner(encounterOwner)},
		fhirmodels.KindCondition:             {references: refs(conditionRefs), owner: owner(conditionOwner)},
		fhirmodels.KindObservation:           {references: refs(observationRefs), owner: owner(observationOwner)},
		fhirmodels.KindOrganization:          {references: refs(organizationRefs)},
		fhirmodels.KindLocation:              {references: refs(locationRefs)},
		fhirmodels.KindPractitioner:          {references: refs(practitionerRefs)},
		fhirmodels.KindAppointment:           {references: refs(appointmentRefs), owner: owner(appointmentOwner)},
		fhirmodels.KindSchedule:              {references: refs(scheduleRefs)},
		fhirmodels.KindSlot:                  {references: refs(slotRefs)},
		fhirmodels.KindEpisodeOfCare:         {references: refs(episodeOfCareRefs), owner: owner(episodeOfCareOwner)},
		fhirmodels.KindMedicationOrder:       {references: refs(medicationOrderRefs), owner: owner(medicationOrderOwner)},
		fhirmodels.KindMedicationStatement:   {references: refs(medicationStatementRefs), owner: owner(medicationStatementOwner)},
		fhirmodels.KindImmunization:          {references: refs(immunizationRefs), owner: owner(immunizationOwner)},
		fhirmodels.KindAllergyIntolerance:    {references: refs(allergyIntoleranceRefs), owner: owner(allergyIntoleranceOwner)},
		fhirmodels.KindDiagnosticOrder:       {references: refs(diagnosticOrderRefs), owner: owner(diagnosticOrderOwner)},
		fhirmodels.KindDiagnosticReport:      {references: refs(diagnosticReportRefs), owner: owner(diagnosticReportOwner)},
		fhirmodels.KindSpecimen:              {references: refs(specimenRefs), owner: owner(specimenOwner)},
		fhirmodels.KindProcedure:             {references: refs(procedureRefs), owner: owner(procedureOwner)},
		fhirmodels.KindProcedureRequest:      {references: refs(procedureRequestRefs), owner: owner(procedureRequestOwner)},
		fhirmodels.KindReferralRequest:       {references: refs(referralRequestRefs), owner: owner(referralRequestOwner)},
		fhirmodels.KindFamilyMemberHistory:   {references: refs(familyMemberHistoryRefs), owner: owner(familyMemberHistoryOwner)},
		fhirmodels.KindFlag:                  {references: refs(flagRefs), owner: owner(flagOwner)},
		fhirmodels.KindList:                  {references: refs(listRefs), owner: owner(listOwner)},
		fhirmodels.KindQuestionnaireResponse: {references: refs(questionnaireResponseRefs), owner: owner(questionnaireResponseOwner)},
		fhirmodels.KindSubstance:             {references: refs(substanceRefs)},
		fhirmodels.KindParameters:            {references: refs(parametersRefs), owner: owner(parametersOwner), noRemap: true},
		fhirmodels.KindRelatedPerson:         {references: refs(relatedPersonRefs), owner: owner(relatedPersonOwner)},
	}
}

func specFor(r fhirmodels.Resource) (kindSpec, error) {
	if r == nil {
		return kindSpec{}, fmt.Errorf("%w: nil resource", fhirmodels.ErrUnknownKind)
	}
	s, ok := kinds[r.Kind()]
	if !ok {
		return kindSpec{}, fmt.Errorf("%w: %q", fhirmodels.ErrUnknownKind, r.Kind())
	}
	return s, nil
}

// MapForward assigns the resource its global id and rewrites every
// reference it holds from a local key to a global id, creating ids for
// referenced entities seen for the first time. It reports whether the
// resource's own id was newly created.
func (w *Walker) MapForward(ctx context.Context, r fhirmodels.Resource, scope string) (bool, error) {
	if _, err := specFor(r); err != nil {
		return false, err
	}
	if r.GetID() == "" {
		return false, fmt.Errorf("%w: %s", ErrMissingID, r.Kind())
	}
	id, created, err := w.ids.GetOrCreate(ctx, idmap.Key{
		Scope:        scope,
		ResourceType: string(r.Kind()),
		LocalID:      r.GetID(),
	})
	if err != nil {
		return false, err
	}
	r.SetID(id.String())

	v := &visitor{rewrite: w.forward(ctx, scope)}
	v.walk(r)
	return created, v.err
}

func (w *Walker) forward(ctx context.Context, scope string) func(*fhirmodels.Reference) error {
	return func(ref *fhirmodels.Reference) error {
		kind, local, err := ref.Target()
		if err != nil {
			return err
		}
		id, _, err := w.ids.GetOrCreate(ctx, idmap.Key{
			Scope:        scope,
			ResourceType: string(kind),
			LocalID:      local,
		})
		if err != nil {
			return err
		}
		ref.Reference = string(kind) + "/" + id.String()
		return nil
	}
}

// Remap rewrites every reference found in dict to its replacement.
// References not in dict are left alone. Kinds that cannot be remapped
// fail with ErrUnsupported.
func (w *Walker) Remap(_ context.Context, r fhirmodels.Resource, dict map[string]string) error {
	if _, err := specFor(r); err != nil {
		return err
	}
	v := &visitor{
		remap: true,
		rewrite: func(ref *fhirmodels.Reference) error {
			if to, ok := dict[ref.Reference]; ok {
				ref.Reference = to
			}
			return nil
		},
	}
	v.walk(r)
	return v.err
}

// PatientOwner returns the local id of the patient that owns r. Kinds with
// no patient concept return ErrNoPatientConcept; patient-owned resources
// without a patient reference return ErrMissingPatient.
func (w *Walker) PatientOwner(r fhirmodels.Resource) (string, error) {
	s, err := specFor(r)
	if err != nil {
		return "", err
	}
	if p, ok := r.(*fhirmodels.Patient); ok {
		if p.ID == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingID, r.Kind())
		}
		return p.ID, nil
	}
	if s.owner == nil {
		return "", fmt.Errorf("%w: %s", ErrNoPatientConcept, r.Kind())
	}
	ref := s.owner(r)
	if !ref.HasReference() {
		return "", fmt.Errorf("%w: %s/%s", ErrMissingPatient, r.Kind(), r.GetID())
	}
	kind, id, err := ref.Target()
	if err != nil {
		return "", fmt.Errorf("%w: %s/%s: %w", ErrMissingPatient, r.Kind(), r.GetID(), err)
	}
	if kind != fhirmodels.KindPatient {
		return "", fmt.Errorf("%w: %s/%s refers to %s", ErrMissingPatient, r.Kind(), r.GetID(), kind)
	}
	return id, nil
}

// visitor carries one walk. The first error stops further rewriting.
type visitor struct {
	rewrite func(*fhirmodels.Reference) error
	remap   bool
	err     error
}

// walk visits the parts common to every kind and then the kind's own
// reference fields. The resource's own id is never touched here.
func (v *visitor) walk(r fhirmodels.Resource) {
	if v.err != nil || r == nil {
		return
	}
	s, err := specFor(r)
	if err != nil {
		v.err = err
		return
	}
	if v.remap && s.noRemap {
		v.err = fmt.Errorf("%w: remap of %s", ErrUnsupported, r.Kind())
		return
	}
	d := r.Domain()
	v.extensions(d.Extension)
	for i := range d.Contained {
		v.walk(d.Contained[i].Resource)
	}
	s.references(r, v)
}

func (v *visitor) ref(r *fhirmodels.Reference) {
	if v.err != nil || r == nil {
		return
	}
	if r.HasReference() {
		if r.IsContained() {
			return
		}
		if err := v.rewrite(r); err != nil {
			v.err = err
		}
		return
	}
	if inline := r.InlineResource(); inline != nil {
		v.walk(inline)
	}
}

func (v *visitor) refs(rs []fhirmodels.Reference) {
	for i := range rs {
		v.ref(&rs[i])
	}
}

func (v *visitor) choice(c *fhirmodels.ConceptOrReference) {
	if r, ok := c.AsReference(); ok {
		v.ref(r)
	}
}

func (v *visitor) identifier(id *fhirmodels.Identifier) {
	if id != nil {
		v.ref(id.Assigner)
	}
}

func (v *visitor) identifiers(ids []fhirmodels.Identifier) {
	for i := range ids {
		v.ref(ids[i].Assigner)
	}
}

func (v *visitor) extensions(exts []fhirmodels.Extension) {
	for i := range exts {
		v.ref(exts[i].ValueReference)
		v.extensions(exts[i].Extension)
	}
}

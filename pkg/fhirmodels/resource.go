package fhirmodels

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var ErrUnknownKind = errors.New("unknown resource kind")

// Resource is implemented by every resource kind in this package.
type Resource interface {
	Kind() Kind
	GetID() string
	SetID(id string)
	Domain() *DomainResource
}

// DomainResource holds the parts shared by all kinds.
type DomainResource struct {
	ID        string      `json:"id,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Extension []Extension `json:"extension,omitempty"`
	Contained []Inline    `json:"contained,omitempty"`
}

func (d *DomainResource) GetID() string           { return d.ID }
func (d *DomainResource) SetID(id string)         { d.ID = id }
func (d *DomainResource) Domain() *DomainResource { return d }

var constructors = map[Kind]func() Resource{
	KindPatient:               func() Resource { return &Patient{} },
	KindEncounter:             func() Resource { return &Encounter{} },
	KindCondition:             func() Resource { return &Condition{} },
	KindObservation:           func() Resource { return &Observation{} },
	KindOrganization:          func() Resource { return &Organization{} },
	KindLocation:              func() Resource { return &Location{} },
	KindPractitioner:          func() Resource { return &Practitioner{} },
	KindAppointment:           func() Resource { return &Appointment{} },
	KindSchedule:              func() Resource { return &Schedule{} },
	KindSlot:                  func() Resource { return &Slot{} },
	KindEpisodeOfCare:         func() Resource { return &EpisodeOfCare{} },
	KindMedicationOrder:       func() Resource { return &MedicationOrder{} },
	KindMedicationStatement:   func() Resource { return &MedicationStatement{} },
	KindImmunization:          func() Resource { return &Immunization{} },
	KindAllergyIntolerance:    func() Resource { return &AllergyIntolerance{} },
	KindDiagnosticOrder:       func() Resource { return &DiagnosticOrder{} },
	KindDiagnosticReport:      func() Resource { return &DiagnosticReport{} },
	KindSpecimen:              func() Resource { return &Specimen{} },
	KindProcedure:             func() Resource { return &Procedure{} },
	KindProcedureRequest:      func() Resource { return &ProcedureRequest{} },
	KindReferralRequest:       func() Resource { return &ReferralRequest{} },
	KindFamilyMemberHistory:   func() Resource { return &FamilyMemberHistory{} },
	KindFlag:                  func() Resource { return &Flag{} },
	KindList:                  func() Resource { return &List{} },
	KindQuestionnaireResponse: func() Resource { return &QuestionnaireResponse{} },
	KindSubstance:             func() Resource { return &Substance{} },
	KindParameters:            func() Resource { return &Parameters{} },
	KindRelatedPerson:         func() Resource { return &RelatedPerson{} },
}

// New returns an empty resource of the given kind.
func New(kind Kind) (Resource, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return ctor(), nil
}

// Marshal encodes a resource as FHIR JSON with its resourceType.
func Marshal(r Resource) ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", r.Kind(), err)
	}
	var buf bytes.Buffer
	buf.Grow(len(body) + 32)
	buf.WriteString(`{"resourceType":"`)
	buf.WriteString(string(r.Kind()))
	buf.WriteByte('"')
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes FHIR JSON into the resource kind named by resourceType.
func Unmarshal(data []byte) (Resource, error) {
	var head struct {
		ResourceType string `json:"resourceType"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode resource: %w", err)
	}
	if head.ResourceType == "" {
		return nil, fmt.Errorf("decode resource: %w: missing resourceType", ErrUnknownKind)
	}
	r, err := New(Kind(head.ResourceType))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.ResourceType, err)
	}
	return r, nil
}

// Clone returns a deep copy of r.
func Clone(r Resource) (Resource, error) {
	data, err := Marshal(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Equal reports whether two values are semantically the same, comparing
// their canonical JSON encodings. Nil and empty values compare equal.
func Equal(a, b any) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(normalizeEmpty(ja), normalizeEmpty(jb))
}

func normalizeEmpty(b []byte) []byte {
	if bytes.Equal(b, []byte("null")) {
		return []byte("{}")
	}
	return b
}

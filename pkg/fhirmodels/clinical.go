package fhirmodels

import "time"

type Condition struct {
	DomainResource
	Identifier         []Identifier        `json:"identifier,omitempty"`
	Patient            *Reference          `json:"patient,omitempty"`
	Encounter          *Reference          `json:"encounter,omitempty"`
	Asserter           *Reference          `json:"asserter,omitempty"`
	DateRecorded       *time.Time          `json:"dateRecorded,omitempty"`
	Code               *CodeableConcept    `json:"code,omitempty"`
	Category           *CodeableConcept    `json:"category,omitempty"`
	ClinicalStatus     string              `json:"clinicalStatus,omitempty"`
	VerificationStatus string              `json:"verificationStatus,omitempty"`
	Severity           *CodeableConcept    `json:"severity,omitempty"`
	OnsetDateTime      *time.Time          `json:"onsetDateTime,omitempty"`
	AbatementDateTime  *time.Time          `json:"abatementDateTime,omitempty"`
	Evidence           []ConditionEvidence `json:"evidence,omitempty"`
	Notes              string              `json:"notes,omitempty"`
}

type ConditionEvidence struct {
	Code   *CodeableConcept `json:"code,omitempty"`
	Detail []Reference      `json:"detail,omitempty"`
}

func (*Condition) Kind() Kind { return KindCondition }

type Observation struct {
	DomainResource
	Identifier           []Identifier         `json:"identifier,omitempty"`
	Status               string               `json:"status,omitempty"`
	Category             *CodeableConcept     `json:"category,omitempty"`
	Code                 *CodeableConcept     `json:"code,omitempty"`
	Subject              *Reference           `json:"subject,omitempty"`
	Encounter            *Reference           `json:"encounter,omitempty"`
	EffectiveDateTime    *time.Time           `json:"effectiveDateTime,omitempty"`
	Issued               *time.Time           `json:"issued,omitempty"`
	Performer            []Reference          `json:"performer,omitempty"`
	ValueQuantity        *Quantity            `json:"valueQuantity,omitempty"`
	ValueString          string               `json:"valueString,omitempty"`
	ValueCodeableConcept *CodeableConcept     `json:"valueCodeableConcept,omitempty"`
	Comments             string               `json:"comments,omitempty"`
	Specimen             *Reference           `json:"specimen,omitempty"`
	Device               *Reference           `json:"device,omitempty"`
	Related              []ObservationRelated `json:"related,omitempty"`
}

type ObservationRelated struct {
	Type   string    `json:"type,omitempty"`
	Target Reference `json:"target"`
}

func (*Observation) Kind() Kind { return KindObservation }

type Procedure struct {
	DomainResource
	Identifier        []Identifier           `json:"identifier,omitempty"`
	Subject           *Reference             `json:"subject,omitempty"`
	Status            string                 `json:"status,omitempty"`
	Category          *CodeableConcept       `json:"category,omitempty"`
	Code              *CodeableConcept       `json:"code,omitempty"`
	NotPerformed      *bool                  `json:"notPerformed,omitempty"`
	Reason            *ConceptOrReference    `json:"reason,omitempty"`
	Performer         []ProcedurePerformer   `json:"performer,omitempty"`
	PerformedDateTime *time.Time             `json:"performedDateTime,omitempty"`
	PerformedPeriod   *Period                `json:"performedPeriod,omitempty"`
	Encounter         *Reference             `json:"encounter,omitempty"`
	Location          *Reference             `json:"location,omitempty"`
	Outcome           *CodeableConcept       `json:"outcome,omitempty"`
	Report            []Reference            `json:"report,omitempty"`
	Complication      []CodeableConcept      `json:"complication,omitempty"`
	Request           *Reference             `json:"request,omitempty"`
	FocalDevice       []ProcedureFocalDevice `json:"focalDevice,omitempty"`
	Used              []Reference            `json:"used,omitempty"`
	Notes             []Annotation           `json:"notes,omitempty"`
}

type ProcedurePerformer struct {
	Actor *Reference       `json:"actor,omitempty"`
	Role  *CodeableConcept `json:"role,omitempty"`
}

type ProcedureFocalDevice struct {
	Action      *CodeableConcept `json:"action,omitempty"`
	Manipulated Reference        `json:"manipulated"`
}

func (*Procedure) Kind() Kind { return KindProcedure }

type ProcedureRequest struct {
	DomainResource
	Identifier        []Identifier        `json:"identifier,omitempty"`
	Subject           *Reference          `json:"subject,omitempty"`
	Code              *CodeableConcept    `json:"code,omitempty"`
	Reason            *ConceptOrReference `json:"reason,omitempty"`
	ScheduledDateTime *time.Time          `json:"scheduledDateTime,omitempty"`
	Encounter         *Reference          `json:"encounter,omitempty"`
	Performer         *Reference          `json:"performer,omitempty"`
	Status            string              `json:"status,omitempty"`
	Notes             []Annotation        `json:"notes,omitempty"`
	OrderedOn         *time.Time          `json:"orderedOn,omitempty"`
	Orderer           *Reference          `json:"orderer,omitempty"`
	Priority          string              `json:"priority,omitempty"`
}

func (*ProcedureRequest) Kind() Kind { return KindProcedureRequest }

type ReferralRequest struct {
	DomainResource
	Identifier            []Identifier      `json:"identifier,omitempty"`
	Status                string            `json:"status,omitempty"`
	Type                  *CodeableConcept  `json:"type,omitempty"`
	Specialty             *CodeableConcept  `json:"specialty,omitempty"`
	Priority              *CodeableConcept  `json:"priority,omitempty"`
	Patient               *Reference        `json:"patient,omitempty"`
	Requester             *Reference        `json:"requester,omitempty"`
	Recipient             []Reference       `json:"recipient,omitempty"`
	Encounter             *Reference        `json:"encounter,omitempty"`
	DateSent              *time.Time        `json:"dateSent,omitempty"`
	Reason                *CodeableConcept  `json:"reason,omitempty"`
	Description           string            `json:"description,omitempty"`
	ServiceRequested      []CodeableConcept `json:"serviceRequested,omitempty"`
	SupportingInformation []Reference       `json:"supportingInformation,omitempty"`
	FulfillmentTime       *Period           `json:"fulfillmentTime,omitempty"`
}

func (*ReferralRequest) Kind() Kind { return KindReferralRequest }

type FamilyMemberHistory struct {
	DomainResource
	Identifier   []Identifier                   `json:"identifier,omitempty"`
	Patient      *Reference                     `json:"patient,omitempty"`
	Date         *time.Time                     `json:"date,omitempty"`
	Status       string                         `json:"status,omitempty"`
	Name         string                         `json:"name,omitempty"`
	Relationship *CodeableConcept               `json:"relationship,omitempty"`
	Gender       string                         `json:"gender,omitempty"`
	Condition    []FamilyMemberHistoryCondition `json:"condition,omitempty"`
	Note         *Annotation                    `json:"note,omitempty"`
}

type FamilyMemberHistoryCondition struct {
	Code    *CodeableConcept `json:"code,omitempty"`
	Outcome *CodeableConcept `json:"outcome,omitempty"`
	Note    *Annotation      `json:"note,omitempty"`
}

func (*FamilyMemberHistory) Kind() Kind { return KindFamilyMemberHistory }

type Flag struct {
	DomainResource
	Identifier []Identifier     `json:"identifier,omitempty"`
	Category   *CodeableConcept `json:"category,omitempty"`
	Status     string           `json:"status,omitempty"`
	Period     *Period          `json:"period,omitempty"`
	Subject    *Reference       `json:"subject,omitempty"`
	Encounter  *Reference       `json:"encounter,omitempty"`
	Author     *Reference       `json:"author,omitempty"`
	Code       *CodeableConcept `json:"code,omitempty"`
}

func (*Flag) Kind() Kind { return KindFlag }

type AllergyIntolerance struct {
	DomainResource
	Identifier   []Identifier     `json:"identifier,omitempty"`
	Onset        *time.Time       `json:"onset,omitempty"`
	RecordedDate *time.Time       `json:"recordedDate,omitempty"`
	Recorder     *Reference       `json:"recorder,omitempty"`
	Patient      *Reference       `json:"patient,omitempty"`
	Reporter     *Reference       `json:"reporter,omitempty"`
	Substance    *CodeableConcept `json:"substance,omitempty"`
	Status       string           `json:"status,omitempty"`
	Criticality  string           `json:"criticality,omitempty"`
	Type         string           `json:"type,omitempty"`
	Category     string           `json:"category,omitempty"`
	Note         *Annotation      `json:"note,omitempty"`
}

func (*AllergyIntolerance) Kind() Kind { return KindAllergyIntolerance }

type Immunization struct {
	DomainResource
	Identifier   []Identifier           `json:"identifier,omitempty"`
	Status       string                 `json:"status,omitempty"`
	Date         *time.Time             `json:"date,omitempty"`
	VaccineCode  *CodeableConcept       `json:"vaccineCode,omitempty"`
	Patient      *Reference             `json:"patient,omitempty"`
	WasNotGiven  *bool                  `json:"wasNotGiven,omitempty"`
	Reported     *bool                  `json:"reported,omitempty"`
	Performer    *Reference             `json:"performer,omitempty"`
	Requester    *Reference             `json:"requester,omitempty"`
	Encounter    *Reference             `json:"encounter,omitempty"`
	Manufacturer *Reference             `json:"manufacturer,omitempty"`
	Location     *Reference             `json:"location,omitempty"`
	LotNumber    string                 `json:"lotNumber,omitempty"`
	Site         *CodeableConcept       `json:"site,omitempty"`
	Route        *CodeableConcept       `json:"route,omitempty"`
	Reaction     []ImmunizationReaction `json:"reaction,omitempty"`
}

type ImmunizationReaction struct {
	Date     *time.Time `json:"date,omitempty"`
	Detail   *Reference `json:"detail,omitempty"`
	Reported *bool      `json:"reported,omitempty"`
}

func (*Immunization) Kind() Kind { return KindImmunization }

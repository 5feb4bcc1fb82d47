package fhirmodels

import "time"

type DiagnosticOrder struct {
	DomainResource
	Identifier            []Identifier           `json:"identifier,omitempty"`
	Subject               *Reference             `json:"subject,omitempty"`
	Orderer               *Reference             `json:"orderer,omitempty"`
	Encounter             *Reference             `json:"encounter,omitempty"`
	Reason                []CodeableConcept      `json:"reason,omitempty"`
	SupportingInformation []Reference            `json:"supportingInformation,omitempty"`
	Specimen              []Reference            `json:"specimen,omitempty"`
	Status                string                 `json:"status,omitempty"`
	Priority              string                 `json:"priority,omitempty"`
	Event                 []DiagnosticOrderEvent `json:"event,omitempty"`
	Item                  []DiagnosticOrderItem  `json:"item,omitempty"`
}

type DiagnosticOrderEvent struct {
	Status      string           `json:"status,omitempty"`
	Description *CodeableConcept `json:"description,omitempty"`
	DateTime    *time.Time       `json:"dateTime,omitempty"`
	Actor       *Reference       `json:"actor,omitempty"`
}

type DiagnosticOrderItem struct {
	Code     *CodeableConcept `json:"code,omitempty"`
	Specimen []Reference      `json:"specimen,omitempty"`
	Status   string           `json:"status,omitempty"`
}

func (*DiagnosticOrder) Kind() Kind { return KindDiagnosticOrder }

type DiagnosticReport struct {
	DomainResource
	Identifier        []Identifier     `json:"identifier,omitempty"`
	Status            string           `json:"status,omitempty"`
	Category          *CodeableConcept `json:"category,omitempty"`
	Code              *CodeableConcept `json:"code,omitempty"`
	Subject           *Reference       `json:"subject,omitempty"`
	Encounter         *Reference       `json:"encounter,omitempty"`
	EffectiveDateTime *time.Time       `json:"effectiveDateTime,omitempty"`
	Issued            *time.Time       `json:"issued,omitempty"`
	Performer         *Reference       `json:"performer,omitempty"`
	Request           []Reference      `json:"request,omitempty"`
	Specimen          []Reference      `json:"specimen,omitempty"`
	Result            []Reference      `json:"result,omitempty"`
	ImagingStudy      []Reference      `json:"imagingStudy,omitempty"`
	Conclusion        string           `json:"conclusion,omitempty"`
}

func (*DiagnosticReport) Kind() Kind { return KindDiagnosticReport }

type Specimen struct {
	DomainResource
	Identifier   []Identifier        `json:"identifier,omitempty"`
	Status       string              `json:"status,omitempty"`
	Type         *CodeableConcept    `json:"type,omitempty"`
	Parent       []Reference         `json:"parent,omitempty"`
	Subject      *Reference          `json:"subject,omitempty"`
	ReceivedTime *time.Time          `json:"receivedTime,omitempty"`
	Collection   *SpecimenCollection `json:"collection,omitempty"`
}

type SpecimenCollection struct {
	Collector         *Reference `json:"collector,omitempty"`
	Comment           []string   `json:"comment,omitempty"`
	CollectedDateTime *time.Time `json:"collectedDateTime,omitempty"`
}

func (*Specimen) Kind() Kind { return KindSpecimen }

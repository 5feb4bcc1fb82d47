package fhirmodels

import "time"

type MedicationOrder struct {
	DomainResource
	Identifier        []Identifier               `json:"identifier,omitempty"`
	DateWritten       *time.Time                 `json:"dateWritten,omitempty"`
	Status            string                     `json:"status,omitempty"`
	DateEnded         *time.Time                 `json:"dateEnded,omitempty"`
	Patient           *Reference                 `json:"patient,omitempty"`
	Prescriber        *Reference                 `json:"prescriber,omitempty"`
	Encounter         *Reference                 `json:"encounter,omitempty"`
	Reason            *ConceptOrReference        `json:"reason,omitempty"`
	Note              string                     `json:"note,omitempty"`
	Medication        *ConceptOrReference        `json:"medication,omitempty"`
	DosageInstruction []DosageInstruction        `json:"dosageInstruction,omitempty"`
	DispenseRequest   *MedicationDispenseRequest `json:"dispenseRequest,omitempty"`
	PriorPrescription *Reference                 `json:"priorPrescription,omitempty"`
}

type DosageInstruction struct {
	Text  string           `json:"text,omitempty"`
	Route *CodeableConcept `json:"route,omitempty"`
	Dose  *Quantity        `json:"doseQuantity,omitempty"`
}

type MedicationDispenseRequest struct {
	Medication             *ConceptOrReference `json:"medication,omitempty"`
	ValidityPeriod         *Period             `json:"validityPeriod,omitempty"`
	NumberOfRepeatsAllowed *int                `json:"numberOfRepeatsAllowed,omitempty"`
	Quantity               *Quantity           `json:"quantity,omitempty"`
}

func (*MedicationOrder) Kind() Kind { return KindMedicationOrder }

type MedicationStatement struct {
	DomainResource
	Identifier            []Identifier        `json:"identifier,omitempty"`
	Patient               *Reference          `json:"patient,omitempty"`
	InformationSource     *Reference          `json:"informationSource,omitempty"`
	DateAsserted          *time.Time          `json:"dateAsserted,omitempty"`
	Status                string              `json:"status,omitempty"`
	WasNotTaken           *bool               `json:"wasNotTaken,omitempty"`
	ReasonForUse          *ConceptOrReference `json:"reasonForUse,omitempty"`
	EffectivePeriod       *Period             `json:"effectivePeriod,omitempty"`
	Note                  string              `json:"note,omitempty"`
	SupportingInformation []Reference         `json:"supportingInformation,omitempty"`
	Medication            *ConceptOrReference `json:"medication,omitempty"`
	Dosage                []DosageInstruction `json:"dosage,omitempty"`
}

func (*MedicationStatement) Kind() Kind { return KindMedicationStatement }

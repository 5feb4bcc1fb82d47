package fhirmodels

import "time"

type Patient struct {
	DomainResource
	Identifier           []Identifier     `json:"identifier,omitempty"`
	Active               *bool            `json:"active,omitempty"`
	Name                 []HumanName      `json:"name,omitempty"`
	Telecom              []ContactPoint   `json:"telecom,omitempty"`
	Gender               string           `json:"gender,omitempty"`
	BirthDate            *time.Time       `json:"birthDate,omitempty"`
	DeceasedBoolean      *bool            `json:"deceasedBoolean,omitempty"`
	DeceasedDateTime     *time.Time       `json:"deceasedDateTime,omitempty"`
	Address              []Address        `json:"address,omitempty"`
	MaritalStatus        *CodeableConcept `json:"maritalStatus,omitempty"`
	Contact              []PatientContact `json:"contact,omitempty"`
	CareProvider         []Reference      `json:"careProvider,omitempty"`
	ManagingOrganization *Reference       `json:"managingOrganization,omitempty"`
	Link                 []PatientLink    `json:"link,omitempty"`
}

type PatientContact struct {
	Relationship []CodeableConcept `json:"relationship,omitempty"`
	Name         *HumanName        `json:"name,omitempty"`
	Telecom      []ContactPoint    `json:"telecom,omitempty"`
	Address      *Address          `json:"address,omitempty"`
	Gender       string            `json:"gender,omitempty"`
	Organization *Reference        `json:"organization,omitempty"`
	Period       *Period           `json:"period,omitempty"`
}

type PatientLink struct {
	Other Reference `json:"other"`
	Type  string    `json:"type,omitempty"`
}

func (*Patient) Kind() Kind { return KindPatient }

type Organization struct {
	DomainResource
	Identifier []Identifier     `json:"identifier,omitempty"`
	Active     *bool            `json:"active,omitempty"`
	Type       *CodeableConcept `json:"type,omitempty"`
	Name       string           `json:"name,omitempty"`
	Telecom    []ContactPoint   `json:"telecom,omitempty"`
	Address    []Address        `json:"address,omitempty"`
	PartOf     *Reference       `json:"partOf,omitempty"`
}

func (*Organization) Kind() Kind { return KindOrganization }

type Location struct {
	DomainResource
	Identifier           []Identifier     `json:"identifier,omitempty"`
	Status               string           `json:"status,omitempty"`
	Name                 string           `json:"name,omitempty"`
	Description          string           `json:"description,omitempty"`
	Mode                 string           `json:"mode,omitempty"`
	Type                 *CodeableConcept `json:"type,omitempty"`
	Telecom              []ContactPoint   `json:"telecom,omitempty"`
	Address              *Address         `json:"address,omitempty"`
	PhysicalType         *CodeableConcept `json:"physicalType,omitempty"`
	ManagingOrganization *Reference       `json:"managingOrganization,omitempty"`
	PartOf               *Reference       `json:"partOf,omitempty"`
}

func (*Location) Kind() Kind { return KindLocation }

type Practitioner struct {
	DomainResource
	Identifier       []Identifier       `json:"identifier,omitempty"`
	Active           *bool              `json:"active,omitempty"`
	Name             *HumanName         `json:"name,omitempty"`
	Telecom          []ContactPoint     `json:"telecom,omitempty"`
	Address          []Address          `json:"address,omitempty"`
	Gender           string             `json:"gender,omitempty"`
	BirthDate        *time.Time         `json:"birthDate,omitempty"`
	PractitionerRole []PractitionerRole `json:"practitionerRole,omitempty"`
}

type PractitionerRole struct {
	ManagingOrganization *Reference        `json:"managingOrganization,omitempty"`
	Role                 *CodeableConcept  `json:"role,omitempty"`
	Specialty            []CodeableConcept `json:"specialty,omitempty"`
	Period               *Period           `json:"period,omitempty"`
	Location             []Reference       `json:"location,omitempty"`
}

func (*Practitioner) Kind() Kind { return KindPractitioner }

type RelatedPerson struct {
	DomainResource
	Identifier   []Identifier     `json:"identifier,omitempty"`
	Patient      *Reference       `json:"patient,omitempty"`
	Relationship *CodeableConcept `json:"relationship,omitempty"`
	Name         *HumanName       `json:"name,omitempty"`
	Telecom      []ContactPoint   `json:"telecom,omitempty"`
	Gender       string           `json:"gender,omitempty"`
	BirthDate    *time.Time       `json:"birthDate,omitempty"`
	Address      []Address        `json:"address,omitempty"`
	Period       *Period          `json:"period,omitempty"`
}

func (*RelatedPerson) Kind() Kind { return KindRelatedPerson }

type Substance struct {
	DomainResource
	Identifier  []Identifier          `json:"identifier,omitempty"`
	Category    []CodeableConcept     `json:"category,omitempty"`
	Code        *CodeableConcept      `json:"code,omitempty"`
	Description string                `json:"description,omitempty"`
	Ingredient  []SubstanceIngredient `json:"ingredient,omitempty"`
}

type SubstanceIngredient struct {
	Quantity  *Quantity  `json:"quantity,omitempty"`
	Substance *Reference `json:"substance,omitempty"`
}

func (*Substance) Kind() Kind { return KindSubstance }

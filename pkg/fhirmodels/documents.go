package fhirmodels

import "time"

type List struct {
	DomainResource
	Identifier  []Identifier     `json:"identifier,omitempty"`
	Title       string           `json:"title,omitempty"`
	Code        *CodeableConcept `json:"code,omitempty"`
	Subject     *Reference       `json:"subject,omitempty"`
	Source      *Reference       `json:"source,omitempty"`
	Encounter   *Reference       `json:"encounter,omitempty"`
	Status      string           `json:"status,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	OrderedBy   *CodeableConcept `json:"orderedBy,omitempty"`
	Mode        string           `json:"mode,omitempty"`
	Note        string           `json:"note,omitempty"`
	Entry       []ListEntry      `json:"entry,omitempty"`
	EmptyReason *CodeableConcept `json:"emptyReason,omitempty"`
}

type ListEntry struct {
	Flag    *CodeableConcept `json:"flag,omitempty"`
	Deleted *bool            `json:"deleted,omitempty"`
	Date    *time.Time       `json:"date,omitempty"`
	Item    Reference        `json:"item"`
}

func (*List) Kind() Kind { return KindList }

type QuestionnaireResponse struct {
	DomainResource
	Identifier    *Identifier         `json:"identifier,omitempty"`
	Questionnaire *Reference          `json:"questionnaire,omitempty"`
	Status        string              `json:"status,omitempty"`
	Subject       *Reference          `json:"subject,omitempty"`
	Author        *Reference          `json:"author,omitempty"`
	Authored      *time.Time          `json:"authored,omitempty"`
	Source        *Reference          `json:"source,omitempty"`
	Encounter     *Reference          `json:"encounter,omitempty"`
	Group         *QuestionnaireGroup `json:"group,omitempty"`
}

type QuestionnaireGroup struct {
	LinkID   string                  `json:"linkId,omitempty"`
	Title    string                  `json:"title,omitempty"`
	Text     string                  `json:"text,omitempty"`
	Subject  *Reference              `json:"subject,omitempty"`
	Group    []QuestionnaireGroup    `json:"group,omitempty"`
	Question []QuestionnaireQuestion `json:"question,omitempty"`
}

type QuestionnaireQuestion struct {
	LinkID string                `json:"linkId,omitempty"`
	Text   string                `json:"text,omitempty"`
	Answer []QuestionnaireAnswer `json:"answer,omitempty"`
}

type QuestionnaireAnswer struct {
	ValueString    string               `json:"valueString,omitempty"`
	ValueBoolean   *bool                `json:"valueBoolean,omitempty"`
	ValueDateTime  *time.Time           `json:"valueDateTime,omitempty"`
	ValueCoding    *Coding              `json:"valueCoding,omitempty"`
	ValueReference *Reference           `json:"valueReference,omitempty"`
	Group          []QuestionnaireGroup `json:"group,omitempty"`
}

func (*QuestionnaireResponse) Kind() Kind { return KindQuestionnaireResponse }

// Parameters is a named bag of values used by feeds to carry
// patient-scoped instructions that are not resources in their own right.
type Parameters struct {
	DomainResource
	Parameter []ParametersParameter `json:"parameter,omitempty"`
}

type ParametersParameter struct {
	Name           string                `json:"name"`
	ValueString    string                `json:"valueString,omitempty"`
	ValueCode      string                `json:"valueCode,omitempty"`
	ValueBoolean   *bool                 `json:"valueBoolean,omitempty"`
	ValueDateTime  *time.Time            `json:"valueDateTime,omitempty"`
	ValueReference *Reference            `json:"valueReference,omitempty"`
	Resource       *Inline               `json:"resource,omitempty"`
	Part           []ParametersParameter `json:"part,omitempty"`
}

func (*Parameters) Kind() Kind { return KindParameters }

// Param returns the first top-level parameter with the given name.
func (p *Parameters) Param(name string) (*ParametersParameter, bool) {
	for i := range p.Parameter {
		if p.Parameter[i].Name == name {
			return &p.Parameter[i], true
		}
	}
	return nil, false
}

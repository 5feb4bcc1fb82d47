package fhirmodels

import "time"

type Appointment struct {
	DomainResource
	Identifier      []Identifier             `json:"identifier,omitempty"`
	Status          string                   `json:"status,omitempty"`
	Type            *CodeableConcept         `json:"type,omitempty"`
	Reason          *CodeableConcept         `json:"reason,omitempty"`
	Priority        *int                     `json:"priority,omitempty"`
	Description     string                   `json:"description,omitempty"`
	Start           *time.Time               `json:"start,omitempty"`
	End             *time.Time               `json:"end,omitempty"`
	MinutesDuration *int                     `json:"minutesDuration,omitempty"`
	Slot            []Reference              `json:"slot,omitempty"`
	Comment         string                   `json:"comment,omitempty"`
	Participant     []AppointmentParticipant `json:"participant,omitempty"`
}

type AppointmentParticipant struct {
	Type     []CodeableConcept `json:"type,omitempty"`
	Actor    *Reference        `json:"actor,omitempty"`
	Required string            `json:"required,omitempty"`
	Status   string            `json:"status,omitempty"`
}

func (*Appointment) Kind() Kind { return KindAppointment }

type Schedule struct {
	DomainResource
	Identifier      []Identifier      `json:"identifier,omitempty"`
	Type            []CodeableConcept `json:"type,omitempty"`
	Actor           *Reference        `json:"actor,omitempty"`
	PlanningHorizon *Period           `json:"planningHorizon,omitempty"`
	Comment         string            `json:"comment,omitempty"`
}

func (*Schedule) Kind() Kind { return KindSchedule }

type Slot struct {
	DomainResource
	Identifier   []Identifier     `json:"identifier,omitempty"`
	Type         *CodeableConcept `json:"type,omitempty"`
	Schedule     *Reference       `json:"schedule,omitempty"`
	FreeBusyType string           `json:"freeBusyType,omitempty"`
	Start        *time.Time       `json:"start,omitempty"`
	End          *time.Time       `json:"end,omitempty"`
	Overbooked   *bool            `json:"overbooked,omitempty"`
	Comment      string           `json:"comment,omitempty"`
}

func (*Slot) Kind() Kind { return KindSlot }

package fhirmodels

import "fmt"

// Kind names one of the closed set of resource kinds handled by the
// reconciliation engine.
type Kind string

const (
	KindPatient               Kind = "Patient"
	KindEncounter             Kind = "Encounter"
	KindCondition             Kind = "Condition"
	KindObservation           Kind = "Observation"
	KindOrganization          Kind = "Organization"
	KindLocation              Kind = "Location"
	KindPractitioner          Kind = "Practitioner"
	KindAppointment           Kind = "Appointment"
	KindSchedule              Kind = "Schedule"
	KindSlot                  Kind = "Slot"
	KindEpisodeOfCare         Kind = "EpisodeOfCare"
	KindMedicationOrder       Kind = "MedicationOrder"
	KindMedicationStatement   Kind = "MedicationStatement"
	KindImmunization          Kind = "Immunization"
	KindAllergyIntolerance    Kind = "AllergyIntolerance"
	KindDiagnosticOrder       Kind = "DiagnosticOrder"
	KindDiagnosticReport      Kind = "DiagnosticReport"
	KindSpecimen              Kind = "Specimen"
	KindProcedure             Kind = "Procedure"
	KindProcedureRequest      Kind = "ProcedureRequest"
	KindReferralRequest       Kind = "ReferralRequest"
	KindFamilyMemberHistory   Kind = "FamilyMemberHistory"
	KindFlag                  Kind = "Flag"
	KindList                  Kind = "List"
	KindQuestionnaireResponse Kind = "QuestionnaireResponse"
	KindSubstance             Kind = "Substance"
	KindParameters            Kind = "Parameters"
	KindRelatedPerson         Kind = "RelatedPerson"
)

// AllKinds lists every supported kind.
var AllKinds = []Kind{
	KindPatient,
	KindEncounter,
	KindCondition,
	KindObservation,
	KindOrganization,
	KindLocation,
	KindPractitioner,
	KindAppointment,
	KindSchedule,
	KindSlot,
	KindEpisodeOfCare,
	KindMedicationOrder,
	KindMedicationStatement,
	KindImmunization,
	KindAllergyIntolerance,
	KindDiagnosticOrder,
	KindDiagnosticReport,
	KindSpecimen,
	KindProcedure,
	KindProcedureRequest,
	KindReferralRequest,
	KindFamilyMemberHistory,
	KindFlag,
	KindList,
	KindQuestionnaireResponse,
	KindSubstance,
	KindParameters,
	KindRelatedPerson,
}

// ParseKind validates a resource type name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := constructors[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

func (k Kind) String() string { return string(k) }

// EncounterStatus values per FHIR DSTU2.
const (
	EncounterStatusPlanned    = "planned"
	EncounterStatusArrived    = "arrived"
	EncounterStatusInProgress = "in-progress"
	EncounterStatusOnLeave    = "onleave"
	EncounterStatusFinished   = "finished"
	EncounterStatusCancelled  = "cancelled"
)

// EncounterLocation status codes.
const (
	LocationStatusPlanned   = "planned"
	LocationStatusActive    = "active"
	LocationStatusReserved  = "reserved"
	LocationStatusCompleted = "completed"
)

// ParticipantType codes.
const (
	ParticipantAttender   = "ATND"
	ParticipantAdmitter   = "ADM"
	ParticipantConsultant = "CON"
	ParticipantReferrer   = "REF"
	ParticipantDischarger = "DIS"
)

// AdministrativeGender codes.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

package pipeline

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

// tiers orders kinds so that everything a resource may reference has been
// stored before the resource itself is merged.
var tiers = [][]fhirmodels.Kind{
	{fhirmodels.KindOrganization, fhirmodels.KindLocation, fhirmodels.KindPractitioner, fhirmodels.KindSubstance},
	{fhirmodels.KindPatient, fhirmodels.KindSchedule},
	{fhirmodels.KindRelatedPerson, fhirmodels.KindEpisodeOfCare, fhirmodels.KindSlot},
	{fhirmodels.KindAppointment},
	{fhirmodels.KindEncounter},
	{
		fhirmodels.KindCondition, fhirmodels.KindObservation, fhirmodels.KindProcedure,
		fhirmodels.KindProcedureRequest, fhirmodels.KindReferralRequest, fhirmodels.KindDiagnosticOrder,
		fhirmodels.KindDiagnosticReport, fhirmodels.KindSpecimen, fhirmodels.KindMedicationOrder,
		fhirmodels.KindMedicationStatement, fhirmodels.KindImmunization, fhirmodels.KindAllergyIntolerance,
		fhirmodels.KindFamilyMemberHistory, fhirmodels.KindFlag, fhirmodels.KindQuestionnaireResponse,
	},
	{fhirmodels.KindList, fhirmodels.KindParameters},
}

var tierOf = func() map[fhirmodels.Kind]int {
	m := make(map[fhirmodels.Kind]int)
	for i, kinds := range tiers {
		for _, k := range kinds {
			m[k] = i
		}
	}
	return m
}()

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func medicationOrderRefs(m *fhirmodels.MedicationOrder, v *visitor) {
	v.identifiers(m.Identifier)
	v.ref(m.Patient)
	v.ref(m.Prescriber)
	v.ref(m.Encounter)
	v.choice(m.Reason)
	v.choice(m.Medication)
	if m.DispenseRequest != nil {
		v.choice(m.DispenseRequest.Medication)
	}
	v.ref(m.PriorPrescription)
}

func medicationOrderOwner(m *fhirmodels.MedicationOrder) *fhirmodels.Reference { return m.Patient }

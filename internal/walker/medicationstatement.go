package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func medicationStatementRefs(m *fhirmodels.MedicationStatement, v *visitor) {
	v.identifiers(m.Identifier)
	v.ref(m.Patient)
	v.ref(m.InformationSource)
	v.choice(m.ReasonForUse)
	v.refs(m.SupportingInformation)
	v.choice(m.Medication)
}

func medicationStatementOwner(m *fhirmodels.MedicationStatement) *fhirmodels.Reference {
	return m.Patient
}

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func allergyIntoleranceRefs(a *fhirmodels.AllergyIntolerance, v *visitor) {
	v.identifiers(a.Identifier)
	v.ref(a.Patient)
	v.ref(a.Recorder)
	v.ref(a.Reporter)
}

func allergyIntoleranceOwner(a *fhirmodels.AllergyIntolerance) *fhirmodels.Reference {
	return a.Patient
}

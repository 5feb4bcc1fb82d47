package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func familyMemberHistoryRefs(f *fhirmodels.FamilyMemberHistory, v *visitor) {
	v.identifiers(f.Identifier)
	v.ref(f.Patient)
}

func familyMemberHistoryOwner(f *fhirmodels.FamilyMemberHistory) *fhirmodels.Reference {
	return f.Patient
}

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func relatedPersonRefs(r *fhirmodels.RelatedPerson, v *visitor) {
	v.identifiers(r.Identifier)
	v.ref(r.Patient)
}

func relatedPersonOwner(r *fhirmodels.RelatedPerson) *fhirmodels.Reference { return r.Patient }

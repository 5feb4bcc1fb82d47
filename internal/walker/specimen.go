package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func specimenRefs(s *fhirmodels.Specimen, v *visitor) {
	v.identifiers(s.Identifier)
	v.ref(s.Subject)
	v.refs(s.Parent)
	if s.Collection != nil {
		v.ref(s.Collection.Collector)
	}
}

func specimenOwner(s *fhirmodels.Specimen) *fhirmodels.Reference { return s.Subject }

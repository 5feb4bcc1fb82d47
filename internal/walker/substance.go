package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func substanceRefs(s *fhirmodels.Substance, v *visitor) {
	v.identifiers(s.Identifier)
	for i := range s.Ingredient {
		v.ref(s.Ingredient[i].Substance)
	}
}

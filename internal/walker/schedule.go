package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func scheduleRefs(s *fhirmodels.Schedule, v *visitor) {
	v.identifiers(s.Identifier)
	v.ref(s.Actor)
}

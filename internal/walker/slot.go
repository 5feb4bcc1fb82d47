package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func slotRefs(s *fhirmodels.Slot, v *visitor) {
	v.identifiers(s.Identifier)
	v.ref(s.Schedule)
}

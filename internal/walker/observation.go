package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func observationRefs(o *fhirmodels.Observation, v *visitor) {
	v.identifiers(o.Identifier)
	v.ref(o.Subject)
	v.ref(o.Encounter)
	v.refs(o.Performer)
	v.ref(o.Specimen)
	v.ref(o.Device)
	for i := range o.Related {
		v.ref(&o.Related[i].Target)
	}
}

func observationOwner(o *fhirmodels.Observation) *fhirmodels.Reference { return o.Subject }

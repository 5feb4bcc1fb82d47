package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func immunizationRefs(im *fhirmodels.Immunization, v *visitor) {
	v.identifiers(im.Identifier)
	v.ref(im.Patient)
	v.ref(im.Performer)
	v.ref(im.Requester)
	v.ref(im.Encounter)
	v.ref(im.Manufacturer)
	v.ref(im.Location)
	for i := range im.Reaction {
		v.ref(im.Reaction[i].Detail)
	}
}

func immunizationOwner(im *fhirmodels.Immunization) *fhirmodels.Reference { return im.Patient }

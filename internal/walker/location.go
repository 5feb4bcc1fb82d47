package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func locationRefs(l *fhirmodels.Location, v *visitor) {
	v.identifiers(l.Identifier)
	v.ref(l.ManagingOrganization)
	v.ref(l.PartOf)
}

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func organizationRefs(o *fhirmodels.Organization, v *visitor) {
	v.identifiers(o.Identifier)
	v.ref(o.PartOf)
}

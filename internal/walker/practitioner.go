package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func practitionerRefs(p *fhirmodels.Practitioner, v *visitor) {
	v.identifiers(p.Identifier)
	for i := range p.PractitionerRole {
		role := &p.PractitionerRole[i]
		v.ref(role.ManagingOrganization)
		v.refs(role.Location)
	}
}

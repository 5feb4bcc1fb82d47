package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func patientRefs(p *fhirmodels.Patient, v *visitor) {
	v.identifiers(p.Identifier)
	v.refs(p.CareProvider)
	v.ref(p.ManagingOrganization)
	for i := range p.Contact {
		v.ref(p.Contact[i].Organization)
	}
	for i := range p.Link {
		v.ref(&p.Link[i].Other)
	}
}

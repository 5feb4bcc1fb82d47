package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func procedureRefs(p *fhirmodels.Procedure, v *visitor) {
	v.identifiers(p.Identifier)
	v.ref(p.Subject)
	v.choice(p.Reason)
	for i := range p.Performer {
		v.ref(p.Performer[i].Actor)
	}
	v.ref(p.Encounter)
	v.ref(p.Location)
	v.refs(p.Report)
	v.ref(p.Request)
	for i := range p.FocalDevice {
		v.ref(&p.FocalDevice[i].Manipulated)
	}
	v.refs(p.Used)
}

func procedureOwner(p *fhirmodels.Procedure) *fhirmodels.Reference { return p.Subject }

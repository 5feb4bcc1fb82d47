package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func procedureRequestRefs(p *fhirmodels.ProcedureRequest, v *visitor) {
	v.identifiers(p.Identifier)
	v.ref(p.Subject)
	v.choice(p.Reason)
	v.ref(p.Encounter)
	v.ref(p.Performer)
	v.ref(p.Orderer)
}

func procedureRequestOwner(p *fhirmodels.ProcedureRequest) *fhirmodels.Reference { return p.Subject }

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func diagnosticOrderRefs(d *fhirmodels.DiagnosticOrder, v *visitor) {
	v.identifiers(d.Identifier)
	v.ref(d.Subject)
	v.ref(d.Orderer)
	v.ref(d.Encounter)
	v.refs(d.SupportingInformation)
	v.refs(d.Specimen)
	for i := range d.Event {
		v.ref(d.Event[i].Actor)
	}
	for i := range d.Item {
		v.refs(d.Item[i].Specimen)
	}
}

func diagnosticOrderOwner(d *fhirmodels.DiagnosticOrder) *fhirmodels.Reference { return d.Subject }

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func listRefs(l *fhirmodels.List, v *visitor) {
	v.identifiers(l.Identifier)
	v.ref(l.Subject)
	v.ref(l.Source)
	v.ref(l.Encounter)
	for i := range l.Entry {
		v.ref(&l.Entry[i].Item)
	}
}

func listOwner(l *fhirmodels.List) *fhirmodels.Reference { return l.Subject }

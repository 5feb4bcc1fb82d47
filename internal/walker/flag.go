package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func flagRefs(f *fhirmodels.Flag, v *visitor) {
	v.identifiers(f.Identifier)
	v.ref(f.Subject)
	v.ref(f.Encounter)
	v.ref(f.Author)
}

func flagOwner(f *fhirmodels.Flag) *fhirmodels.Reference { return f.Subject }

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func conditionRefs(c *fhirmodels.Condition, v *visitor) {
	v.identifiers(c.Identifier)
	v.ref(c.Patient)
	v.ref(c.Encounter)
	v.ref(c.Asserter)
	for i := range c.Evidence {
		v.refs(c.Evidence[i].Detail)
	}
}

func conditionOwner(c *fhirmodels.Condition) *fhirmodels.Reference { return c.Patient }

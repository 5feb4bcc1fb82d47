package merge

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

// Roles are keyed by organisation and role code so that the same job at a
// different organisation is kept as a separate role.
var practitionerRoles = keyedSpec[fhirmodels.PractitionerRole]{
	key: func(r *fhirmodels.PractitionerRole) string {
		return refKey(r.ManagingOrganization) + "|" + conceptKey(r.Role)
	},
	period: func(r *fhirmodels.PractitionerRole) **fhirmodels.Period { return &r.Period },
}

func mergePractitioner(existing, incoming *fhirmodels.Practitioner) error {
	existing.Identifier = appendIfNew(existing.Identifier, incoming.Identifier)
	replaceIfPresent(&existing.Active, incoming.Active)
	replaceIfPresent(&existing.Name, incoming.Name)
	existing.Telecom = appendIfNew(existing.Telecom, incoming.Telecom)
	existing.Address = appendIfNew(existing.Address, incoming.Address)
	replaceString(&existing.Gender, incoming.Gender)
	replaceIfPresent(&existing.BirthDate, incoming.BirthDate)

	before := len(existing.PractitionerRole)
	existing.PractitionerRole = mergeKeyed(existing.PractitionerRole, incoming.PractitionerRole, practitionerRoles)
	// Locations and specialties of a role that was folded into an existing
	// one would otherwise be lost.
	for i := range incoming.PractitionerRole {
		in := &incoming.PractitionerRole[i]
		k := practitionerRoles.key(in)
		for j := 0; j < before; j++ {
			ex := &existing.PractitionerRole[j]
			if practitionerRoles.key(ex) == k {
				ex.Location = appendIfNew(ex.Location, in.Location)
				ex.Specialty = appendIfNew(ex.Specialty, in.Specialty)
				break
			}
		}
	}
	return nil
}

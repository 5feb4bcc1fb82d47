package merge

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

func mergePatient(existing, incoming *fhirmodels.Patient) error {
	existing.Identifier = appendIfNew(existing.Identifier, incoming.Identifier)
	replaceIfPresent(&existing.Active, incoming.Active)
	existing.Name = appendIfNew(existing.Name, incoming.Name)
	existing.Telecom = appendIfNew(existing.Telecom, incoming.Telecom)
	replaceString(&existing.Gender, incoming.Gender)
	replaceIfPresent(&existing.BirthDate, incoming.BirthDate)

	// deceased[x] is a choice; whichever variant arrives replaces both.
	if incoming.DeceasedBoolean != nil || incoming.DeceasedDateTime != nil {
		existing.DeceasedBoolean = incoming.DeceasedBoolean
		existing.DeceasedDateTime = incoming.DeceasedDateTime
	}

	existing.Address = appendIfNew(existing.Address, incoming.Address)
	replaceIfPresent(&existing.MaritalStatus, incoming.MaritalStatus)
	existing.Contact = appendIfNew(existing.Contact, incoming.Contact)
	existing.CareProvider = appendIfNew(existing.CareProvider, incoming.CareProvider)
	replaceRef(&existing.ManagingOrganization, incoming.ManagingOrganization)
	existing.Link = appendIfNew(existing.Link, incoming.Link)
	return nil
}

package merge

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

func mergeOrganization(existing, incoming *fhirmodels.Organization) error {
	existing.Identifier = appendIfNew(existing.Identifier, incoming.Identifier)
	replaceIfPresent(&existing.Active, incoming.Active)
	replaceIfPresent(&existing.Type, incoming.Type)
	replaceString(&existing.Name, incoming.Name)
	existing.Telecom = appendIfNew(existing.Telecom, incoming.Telecom)
	existing.Address = appendIfNew(existing.Address, incoming.Address)
	replaceRef(&existing.PartOf, incoming.PartOf)
	return nil
}

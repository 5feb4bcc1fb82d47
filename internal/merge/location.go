package merge

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

func mergeLocation(existing, incoming *fhirmodels.Location) error {
	existing.Identifier = appendIfNew(existing.Identifier, incoming.Identifier)
	replaceString(&existing.Status, incoming.Status)
	replaceString(&existing.Name, incoming.Name)
	replaceString(&existing.Description, incoming.Description)
	replaceString(&existing.Mode, incoming.Mode)
	replaceIfPresent(&existing.Type, incoming.Type)
	existing.Telecom = appendIfNew(existing.Telecom, incoming.Telecom)
	replaceIfPresent(&existing.Address, incoming.Address)
	replaceIfPresent(&existing.PhysicalType, incoming.PhysicalType)
	replaceRef(&existing.ManagingOrganization, incoming.ManagingOrganization)
	replaceRef(&existing.PartOf, incoming.PartOf)
	return nil
}

package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func referralRequestRefs(r *fhirmodels.ReferralRequest, v *visitor) {
	v.identifiers(r.Identifier)
	v.ref(r.Patient)
	v.ref(r.Requester)
	v.refs(r.Recipient)
	v.ref(r.Encounter)
	v.refs(r.SupportingInformation)
}

func referralRequestOwner(r *fhirmodels.ReferralRequest) *fhirmodels.Reference { return r.Patient }

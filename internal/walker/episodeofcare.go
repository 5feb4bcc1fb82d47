package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func episodeOfCareRefs(e *fhirmodels.EpisodeOfCare, v *visitor) {
	v.identifiers(e.Identifier)
	v.refs(e.Condition)
	v.ref(e.Patient)
	v.ref(e.ManagingOrganization)
	v.refs(e.ReferralRequest)
	v.ref(e.CareManager)
	for i := range e.CareTeam {
		v.ref(e.CareTeam[i].Member)
	}
}

func episodeOfCareOwner(e *fhirmodels.EpisodeOfCare) *fhirmodels.Reference { return e.Patient }

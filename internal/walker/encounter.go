package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func encounterRefs(e *fhirmodels.Encounter, v *visitor) {
	v.identifiers(e.Identifier)
	v.ref(e.Patient)
	v.refs(e.EpisodeOfCare)
	v.refs(e.IncomingReferral)
	for i := range e.Participant {
		v.ref(e.Participant[i].Individual)
	}
	v.ref(e.Appointment)
	v.refs(e.Indication)
	if h := e.Hospitalization; h != nil {
		v.identifier(h.PreAdmissionIdentifier)
		v.ref(h.Origin)
		v.ref(h.Destination)
	}
	for i := range e.Location {
		v.ref(e.Location[i].Location)
	}
	v.ref(e.ServiceProvider)
	v.ref(e.PartOf)
}

func encounterOwner(e *fhirmodels.Encounter) *fhirmodels.Reference { return e.Patient }

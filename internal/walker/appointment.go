package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func appointmentRefs(a *fhirmodels.Appointment, v *visitor) {
	v.identifiers(a.Identifier)
	v.refs(a.Slot)
	for i := range a.Participant {
		v.ref(a.Participant[i].Actor)
	}
}

// appointmentOwner picks the first participant whose actor is a patient.
func appointmentOwner(a *fhirmodels.Appointment) *fhirmodels.Reference {
	for i := range a.Participant {
		actor := a.Participant[i].Actor
		if !actor.HasReference() {
			continue
		}
		if kind, _, err := actor.Target(); err == nil && kind == fhirmodels.KindPatient {
			return actor
		}
	}
	return nil
}

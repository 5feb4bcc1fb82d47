package merge

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

var encounterStatusHistory = keyedSpec[fhirmodels.EncounterStatusHistory]{
	key:    func(h *fhirmodels.EncounterStatusHistory) string { return h.Status },
	period: func(h *fhirmodels.EncounterStatusHistory) **fhirmodels.Period { return &h.Period },
}

var encounterLocations = keyedSpec[fhirmodels.EncounterLocation]{
	key:    func(l *fhirmodels.EncounterLocation) string { return refKey(l.Location) },
	period: func(l *fhirmodels.EncounterLocation) **fhirmodels.Period { return &l.Period },
	status: func(l *fhirmodels.EncounterLocation) *string { return &l.Status },
}

var encounterParticipants = keyedSpec[fhirmodels.EncounterParticipant]{
	key: func(p *fhirmodels.EncounterParticipant) string {
		roles := make([]*fhirmodels.CodeableConcept, 0, len(p.Type))
		for i := range p.Type {
			roles = append(roles, &p.Type[i])
		}
		return refKey(p.Individual) + "|" + conceptKey(roles...)
	},
	period: func(p *fhirmodels.EncounterParticipant) **fhirmodels.Period { return &p.Period },
}

func mergeEncounter(existing, incoming *fhirmodels.Encounter) error {
	if err := checkPatient(fhirmodels.KindEncounter, existing.ID, existing.Patient, incoming.Patient); err != nil {
		return err
	}

	existing.Identifier = appendIfNew(existing.Identifier, incoming.Identifier)
	mergeEncounterStatus(existing, incoming)
	replaceString(&existing.Class, incoming.Class)
	existing.Type = appendIfNew(existing.Type, incoming.Type)
	replaceIfPresent(&existing.Priority, incoming.Priority)

	if !incoming.Period.IsEmpty() {
		if p, ok := MergePeriod(existing.Period, incoming.Period); ok {
			existing.Period = p
		} else {
			existing.Period = incoming.Period
		}
	}

	existing.Participant = mergeKeyed(existing.Participant, incoming.Participant, encounterParticipants)
	replaceRef(&existing.Appointment, incoming.Appointment)
	existing.Reason = appendIfNew(existing.Reason, incoming.Reason)
	existing.Indication = appendIfNew(existing.Indication, incoming.Indication)
	existing.EpisodeOfCare = appendIfNew(existing.EpisodeOfCare, incoming.EpisodeOfCare)
	existing.IncomingReferral = appendIfNew(existing.IncomingReferral, incoming.IncomingReferral)
	mergeHospitalization(existing, incoming.Hospitalization)
	existing.Location = mergeKeyed(existing.Location, incoming.Location, encounterLocations)
	replaceRef(&existing.ServiceProvider, incoming.ServiceProvider)
	replaceRef(&existing.PartOf, incoming.PartOf)
	return nil
}

// mergeEncounterStatus archives the stored status into statusHistory when
// it changes, unless history already records it, then folds in any history
// the incoming version carries.
func mergeEncounterStatus(existing, incoming *fhirmodels.Encounter) {
	if incoming.Status != "" && existing.Status != "" && incoming.Status != existing.Status {
		archived := false
		for _, h := range existing.StatusHistory {
			if h.Status == existing.Status {
				archived = true
				break
			}
		}
		if !archived {
			existing.StatusHistory = append(existing.StatusHistory, fhirmodels.EncounterStatusHistory{
				Status: existing.Status,
				Period: &fhirmodels.Period{},
			})
		}
	}
	replaceString(&existing.Status, incoming.Status)
	existing.StatusHistory = mergeKeyed(existing.StatusHistory, incoming.StatusHistory, encounterStatusHistory)
}

func mergeHospitalization(existing *fhirmodels.Encounter, incoming *fhirmodels.EncounterHospitalization) {
	if incoming == nil {
		return
	}
	if existing.Hospitalization == nil {
		existing.Hospitalization = incoming
		return
	}
	h := existing.Hospitalization
	replaceIfPresent(&h.PreAdmissionIdentifier, incoming.PreAdmissionIdentifier)
	replaceRef(&h.Origin, incoming.Origin)
	replaceIfPresent(&h.AdmitSource, incoming.AdmitSource)
	replaceIfPresent(&h.ReAdmission, incoming.ReAdmission)
	replaceRef(&h.Destination, incoming.Destination)
	replaceIfPresent(&h.DischargeDisposition, incoming.DischargeDisposition)
}

package walker

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

func ref(s string) *fhirmodels.Reference { return &fhirmodels.Reference{Reference: s} }

func refv(s string) fhirmodels.Reference { return fhirmodels.Reference{Reference: s} }

func ids(assigner string) []fhirmodels.Identifier {
	return []fhirmodels.Identifier{{System: "urn:local", Value: "1", Assigner: ref(assigner)}}
}

func choiceRef(s string) *fhirmodels.ConceptOrReference {
	return &fhirmodels.ConceptOrReference{Reference: ref(s)}
}

func dom(id string) fhirmodels.DomainResource { return fhirmodels.DomainResource{ID: id} }

// fixtures returns, per kind, a resource with every reference field
// populated with a local key.
func fixtures() map[fhirmodels.Kind]func() fhirmodels.Resource {
	return map[fhirmodels.Kind]func() fhirmodels.Resource{
		fhirmodels.KindPatient: func() fhirmodels.Resource {
			return &fhirmodels.Patient{
				DomainResource:       dom("p1"),
				Identifier:           ids("Organization/nhs"),
				CareProvider:         []fhirmodels.Reference{refv("Practitioner/gp")},
				ManagingOrganization: ref("Organization/o1"),
				Contact:              []fhirmodels.PatientContact{{Organization: ref("Organization/o2")}},
				Link:                 []fhirmodels.PatientLink{{Other: refv("Patient/p0"), Type: "replaces"}},
			}
		},
		fhirmodels.KindEncounter: func() fhirmodels.Resource {
			return &fhirmodels.Encounter{
				DomainResource:   dom("e1"),
				Identifier:       ids("Organization/o1"),
				Patient:          ref("Patient/p1"),
				EpisodeOfCare:    []fhirmodels.Reference{refv("EpisodeOfCare/eoc1")},
				IncomingReferral: []fhirmodels.Reference{refv("ReferralRequest/rr1")},
				Participant:      []fhirmodels.EncounterParticipant{{Individual: ref("Practitioner/pr1")}},
				Appointment:      ref("Appointment/a1"),
				Indication:       []fhirmodels.Reference{refv("Condition/c1")},
				Hospitalization: &fhirmodels.EncounterHospitalization{
					PreAdmissionIdentifier: &fhirmodels.Identifier{Value: "pre", Assigner: ref("Organization/o3")},
					Origin:                 ref("Location/l0"),
					Destination:            ref("Location/l9"),
				},
				Location:        []fhirmodels.EncounterLocation{{Location: ref("Location/l1")}},
				ServiceProvider: ref("Organization/o1"),
				PartOf:          ref("Encounter/e0"),
			}
		},
		fhirmodels.KindCondition: func() fhirmodels.Resource {
			return &fhirmodels.Condition{
				DomainResource: dom("c1"),
				Identifier:     ids("Organization/o1"),
				Patient:        ref("Patient/p1"),
				Encounter:      ref("Encounter/e1"),
				Asserter:       ref("Practitioner/pr1"),
				Evidence:       []fhirmodels.ConditionEvidence{{Detail: []fhirmodels.Reference{refv("Observation/ob1")}}},
			}
		},
		fhirmodels.KindObservation: func() fhirmodels.Resource {
			return &fhirmodels.Observation{
				DomainResource: dom("ob1"),
				Identifier:     ids("Organization/o1"),
				Subject:        ref("Patient/p1"),
				Encounter:      ref("Encounter/e1"),
				Performer:      []fhirmodels.Reference{refv("Practitioner/pr1")},
				Specimen:       ref("Specimen/s1"),
				Device:         ref("Device/d1"),
				Related:        []fhirmodels.ObservationRelated{{Type: "has-member", Target: refv("Observation/ob2")}},
			}
		},
		fhirmodels.KindOrganization: func() fhirmodels.Resource {
			return &fhirmodels.Organization{
				DomainResource: dom("o1"),
				Identifier:     ids("Organization/root"),
				PartOf:         ref("Organization/root"),
			}
		},
		fhirmodels.KindLocation: func() fhirmodels.Resource {
			return &fhirmodels.Location{
				DomainResource:       dom("l1"),
				Identifier:           ids("Organization/o1"),
				ManagingOrganization: ref("Organization/o1"),
				PartOf:               ref("Location/site"),
			}
		},
		fhirmodels.KindPractitioner: func() fhirmodels.Resource {
			return &fhirmodels.Practitioner{
				DomainResource: dom("pr1"),
				Identifier:     ids("Organization/gmc"),
				PractitionerRole: []fhirmodels.PractitionerRole{{
					ManagingOrganization: ref("Organization/o1"),
					Location:             []fhirmodels.Reference{refv("Location/l1")},
				}},
			}
		},
		fhirmodels.KindAppointment: func() fhirmodels.Resource {
			return &fhirmodels.Appointment{
				DomainResource: dom("a1"),
				Identifier:     ids("Organization/o1"),
				Slot:           []fhirmodels.Reference{refv("Slot/sl1")},
				Participant: []fhirmodels.AppointmentParticipant{
					{Actor: ref("Practitioner/pr1")},
					{Actor: ref("Patient/p1")},
				},
			}
		},
		fhirmodels.KindSchedule: func() fhirmodels.Resource {
			return &fhirmodels.Schedule{
				DomainResource: dom("sc1"),
				Identifier:     ids("Organization/o1"),
				Actor:          ref("Practitioner/pr1"),
			}
		},
		fhirmodels.KindSlot: func() fhirmodels.Resource {
			return &fhirmodels.Slot{
				DomainResource: dom("sl1"),
				Identifier:     ids("Organization/o1"),
				Schedule:       ref("Schedule/sc1"),
			}
		},
		fhirmodels.KindEpisodeOfCare: func() fhirmodels.Resource {
			return &fhirmodels.EpisodeOfCare{
				DomainResource:       dom("eoc1"),
				Identifier:           ids("Organization/o1"),
				Condition:            []fhirmodels.Reference{refv("Condition/c1")},
				Patient:              ref("Patient/p1"),
				ManagingOrganization: ref("Organization/o1"),
				ReferralRequest:      []fhirmodels.Reference{refv("ReferralRequest/rr1")},
				CareManager:          ref("Practitioner/pr1"),
				CareTeam:             []fhirmodels.EpisodeCareTeam{{Member: ref("Practitioner/pr2")}},
			}
		},
		fhirmodels.KindMedicationOrder: func() fhirmodels.Resource {
			return &fhirmodels.MedicationOrder{
				DomainResource:    dom("mo1"),
				Identifier:        ids("Organization/o1"),
				Patient:           ref("Patient/p1"),
				Prescriber:        ref("Practitioner/pr1"),
				Encounter:         ref("Encounter/e1"),
				Reason:            choiceRef("Condition/c1"),
				Medication:        choiceRef("Medication/m1"),
				DispenseRequest:   &fhirmodels.MedicationDispenseRequest{Medication: choiceRef("Medication/m1")},
				PriorPrescription: ref("MedicationOrder/mo0"),
			}
		},
		fhirmodels.KindMedicationStatement: func() fhirmodels.Resource {
			return &fhirmodels.MedicationStatement{
				DomainResource:        dom("ms1"),
				Identifier:            ids("Organization/o1"),
				Patient:               ref("Patient/p1"),
				InformationSource:     ref("Practitioner/pr1"),
				ReasonForUse:          choiceRef("Condition/c1"),
				SupportingInformation: []fhirmodels.Reference{refv("Observation/ob1")},
				Medication:            choiceRef("Medication/m1"),
			}
		},
		fhirmodels.KindImmunization: func() fhirmodels.Resource {
			return &fhirmodels.Immunization{
				DomainResource: dom("im1"),
				Identifier:     ids("Organization/o1"),
				Patient:        ref("Patient/p1"),
				Performer:      ref("Practitioner/pr1"),
				Requester:      ref("Practitioner/pr2"),
				Encounter:      ref("Encounter/e1"),
				Manufacturer:   ref("Organization/pharma"),
				Location:       ref("Location/l1"),
				Reaction:       []fhirmodels.ImmunizationReaction{{Detail: ref("Observation/ob1")}},
			}
		},
		fhirmodels.KindAllergyIntolerance: func() fhirmodels.Resource {
			return &fhirmodels.AllergyIntolerance{
				DomainResource: dom("ai1"),
				Identifier:     ids("Organization/o1"),
				Patient:        ref("Patient/p1"),
				Recorder:       ref("Practitioner/pr1"),
				Reporter:       ref("RelatedPerson/rp1"),
			}
		},
		fhirmodels.KindDiagnosticOrder: func() fhirmodels.Resource {
			return &fhirmodels.DiagnosticOrder{
				DomainResource:        dom("do1"),
				Identifier:            ids("Organization/o1"),
				Subject:               ref("Patient/p1"),
				Orderer:               ref("Practitioner/pr1"),
				Encounter:             ref("Encounter/e1"),
				SupportingInformation: []fhirmodels.Reference{refv("Condition/c1")},
				Specimen:              []fhirmodels.Reference{refv("Specimen/s1")},
				Event:                 []fhirmodels.DiagnosticOrderEvent{{Status: "requested", Actor: ref("Practitioner/pr2")}},
				Item:                  []fhirmodels.DiagnosticOrderItem{{Specimen: []fhirmodels.Reference{refv("Specimen/s2")}}},
			}
		},
		fhirmodels.KindDiagnosticReport: func() fhirmodels.Resource {
			return &fhirmodels.DiagnosticReport{
				DomainResource: dom("dr1"),
				Identifier:     ids("Organization/o1"),
				Subject:        ref("Patient/p1"),
				Encounter:      ref("Encounter/e1"),
				Performer:      ref("Organization/lab"),
				Request:        []fhirmodels.Reference{refv("DiagnosticOrder/do1")},
				Specimen:       []fhirmodels.Reference{refv("Specimen/s1")},
				Result:         []fhirmodels.Reference{refv("Observation/ob1")},
				ImagingStudy:   []fhirmodels.Reference{refv("ImagingStudy/is1")},
			}
		},
		fhirmodels.KindSpecimen: func() fhirmodels.Resource {
			return &fhirmodels.Specimen{
				DomainResource: dom("s1"),
				Identifier:     ids("Organization/o1"),
				Subject:        ref("Patient/p1"),
				Parent:         []fhirmodels.Reference{refv("Specimen/s0")},
				Collection:     &fhirmodels.SpecimenCollection{Collector: ref("Practitioner/pr1")},
			}
		},
		fhirmodels.KindProcedure: func() fhirmodels.Resource {
			return &fhirmodels.Procedure{
				DomainResource: dom("proc1"),
				Identifier:     ids("Organization/o1"),
				Subject:        ref("Patient/p1"),
				Reason:         choiceRef("Condition/c1"),
				Performer:      []fhirmodels.ProcedurePerformer{{Actor: ref("Practitioner/pr1")}},
				Encounter:      ref("Encounter/e1"),
				Location:       ref("Location/l1"),
				Report:         []fhirmodels.Reference{refv("DiagnosticReport/dr1")},
				Request:        ref("ProcedureRequest/preq1"),
				FocalDevice:    []fhirmodels.ProcedureFocalDevice{{Manipulated: refv("Device/d1")}},
				Used:           []fhirmodels.Reference{refv("Device/d2")},
			}
		},
		fhirmodels.KindProcedureRequest: func() fhirmodels.Resource {
			return &fhirmodels.ProcedureRequest{
				DomainResource: dom("preq1"),
				Identifier:     ids("Organization/o1"),
				Subject:        ref("Patient/p1"),
				Reason:         choiceRef("Condition/c1"),
				Encounter:      ref("Encounter/e1"),
				Performer:      ref("Practitioner/pr1"),
				Orderer:        ref("Practitioner/pr2"),
			}
		},
		fhirmodels.KindReferralRequest: func() fhirmodels.Resource {
			return &fhirmodels.ReferralRequest{
				DomainResource:        dom("rr1"),
				Identifier:            ids("Organization/o1"),
				Patient:               ref("Patient/p1"),
				Requester:             ref("Practitioner/pr1"),
				Recipient:             []fhirmodels.Reference{refv("Organization/o2")},
				Encounter:             ref("Encounter/e1"),
				SupportingInformation: []fhirmodels.Reference{refv("Observation/ob1")},
			}
		},
		fhirmodels.KindFamilyMemberHistory: func() fhirmodels.Resource {
			return &fhirmodels.FamilyMemberHistory{
				DomainResource: dom("fmh1"),
				Identifier:     ids("Organization/o1"),
				Patient:        ref("Patient/p1"),
			}
		},
		fhirmodels.KindFlag: func() fhirmodels.Resource {
			return &fhirmodels.Flag{
				DomainResource: dom("f1"),
				Identifier:     ids("Organization/o1"),
				Subject:        ref("Patient/p1"),
				Encounter:      ref("Encounter/e1"),
				Author:         ref("Practitioner/pr1"),
			}
		},
		fhirmodels.KindList: func() fhirmodels.Resource {
			return &fhirmodels.List{
				DomainResource: dom("li1"),
				Identifier:     ids("Organization/o1"),
				Subject:        ref("Patient/p1"),
				Source:         ref("Practitioner/pr1"),
				Encounter:      ref("Encounter/e1"),
				Entry:          []fhirmodels.ListEntry{{Item: refv("Condition/c1")}},
			}
		},
		fhirmodels.KindQuestionnaireResponse: func() fhirmodels.Resource {
			return &fhirmodels.QuestionnaireResponse{
				DomainResource: dom("qr1"),
				Identifier:     &fhirmodels.Identifier{Value: "qr", Assigner: ref("Organization/o1")},
				Questionnaire:  ref("Questionnaire/q1"),
				Subject:        ref("Patient/p1"),
				Author:         ref("Practitioner/pr1"),
				Source:         ref("RelatedPerson/rp1"),
				Encounter:      ref("Encounter/e1"),
				Group: &fhirmodels.QuestionnaireGroup{
					Subject: ref("Patient/p1"),
					Group: []fhirmodels.QuestionnaireGroup{{
						Question: []fhirmodels.QuestionnaireQuestion{{
							Answer: []fhirmodels.QuestionnaireAnswer{{
								ValueReference: ref("Observation/ob1"),
								Group: []fhirmodels.QuestionnaireGroup{{
									Subject: ref("Condition/c1"),
								}},
							}},
						}},
					}},
				},
			}
		},
		fhirmodels.KindSubstance: func() fhirmodels.Resource {
			return &fhirmodels.Substance{
				DomainResource: dom("sub1"),
				Identifier:     ids("Organization/o1"),
				Ingredient:     []fhirmodels.SubstanceIngredient{{Substance: ref("Substance/sub0")}},
			}
		},
		fhirmodels.KindParameters: func() fhirmodels.Resource {
			return &fhirmodels.Parameters{
				DomainResource: dom("par1"),
				Parameter: []fhirmodels.ParametersParameter{
					{Name: "patient", ValueReference: ref("Patient/p1")},
					{Name: "encounter", Part: []fhirmodels.ParametersParameter{
						{Name: "ref", ValueReference: ref("Encounter/e1")},
					}},
					{Name: "flag", Resource: &fhirmodels.Inline{Resource: &fhirmodels.Flag{
						DomainResource: dom("inner"),
						Subject:        ref("Patient/p1"),
					}}},
				},
			}
		},
		fhirmodels.KindRelatedPerson: func() fhirmodels.Resource {
			return &fhirmodels.RelatedPerson{
				DomainResource: dom("rp1"),
				Identifier:     ids("Organization/o1"),
				Patient:        ref("Patient/p1"),
			}
		},
	}
}

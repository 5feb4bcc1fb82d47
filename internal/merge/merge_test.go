package merge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr/transforms/pkg/fhirmodels"
)

const patientRef = "Patient/0b6c7f8e-4a42-4b7c-9f0d-5b2f2b6a3c11"

func newEngine() *Engine {
	return NewEngine(DefaultRules(), zerolog.Nop())
}

func encounter(status string) *fhirmodels.Encounter {
	return &fhirmodels.Encounter{
		DomainResource: fhirmodels.DomainResource{ID: "enc-1"},
		Status:         status,
		Patient:        &fhirmodels.Reference{Reference: patientRef},
	}
}

func mergeEncounters(t *testing.T, existing, incoming *fhirmodels.Encounter) *fhirmodels.Encounter {
	t.Helper()
	out, err := newEngine().Merge("feedB", existing, incoming, time.Time{})
	require.NoError(t, err)
	return out.(*fhirmodels.Encounter)
}

func TestMerge_FirstSightReturnsIncoming(t *testing.T) {
	in := encounter("Active")
	out, err := newEngine().Merge("feedA", nil, in, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.NotSame(t, in, out)
}

func TestMerge_ActiveToDischargedWithLocation(t *testing.T) {
	existing := encounter("Active")
	incoming := encounter("Discharged")
	incoming.Location = []fhirmodels.EncounterLocation{{
		Location: &fhirmodels.Reference{Reference: "Location/ward-7"},
		Period:   period("2020-05-01", ""),
	}}

	got := mergeEncounters(t, existing, incoming)

	assert.Equal(t, "Discharged", got.Status)
	require.Len(t, got.StatusHistory, 1)
	assert.Equal(t, "Active", got.StatusHistory[0].Status)
	assert.True(t, got.StatusHistory[0].Period.IsEmpty())
	require.Len(t, got.Location, 1)
	assert.Equal(t, "Location/ward-7", got.Location[0].Location.Reference)
	assert.True(t, got.Location[0].Period.Start.Equal(*day("2020-05-01")))
	assert.Nil(t, got.Location[0].Period.End)

	assert.Empty(t, existing.StatusHistory, "inputs must not be modified")
}

func TestMerge_StatusHistoryNotDuplicated(t *testing.T) {
	first := mergeEncounters(t, encounter("Active"), encounter("Discharged"))
	second := mergeEncounters(t, first, encounter("Active"))

	assert.Equal(t, "Active", second.Status)
	var statuses []string
	for _, h := range second.StatusHistory {
		statuses = append(statuses, h.Status)
	}
	assert.Equal(t, []string{"Active", "Discharged"}, statuses)

	third := mergeEncounters(t, second, encounter("Discharged"))
	assert.Len(t, third.StatusHistory, 2)
}

func TestMerge_SameStatusAddsNoHistory(t *testing.T) {
	got := mergeEncounters(t, encounter("Active"), encounter("Active"))
	assert.Empty(t, got.StatusHistory)
}

func TestMerge_IncomingStatusHistoryFoldsIntoArchived(t *testing.T) {
	incoming := encounter("Discharged")
	incoming.StatusHistory = []fhirmodels.EncounterStatusHistory{
		{Status: "Active", Period: period("2020-05-01", "2020-05-03")},
	}
	got := mergeEncounters(t, encounter("Active"), incoming)

	require.Len(t, got.StatusHistory, 1)
	assert.True(t, fhirmodels.Equal(period("2020-05-01", "2020-05-03"), got.StatusHistory[0].Period))
}

func TestMerge_PatientInvariant(t *testing.T) {
	e := newEngine()

	noPatient := encounter("Discharged")
	noPatient.Patient = nil
	out, err := e.Merge("feedB", encounter("Active"), noPatient, time.Time{})
	assert.True(t, errors.Is(err, ErrMissingPatient))
	assert.Nil(t, out)

	storedWithout := encounter("Active")
	storedWithout.Patient = nil
	_, err = e.Merge("feedB", storedWithout, encounter("Active"), time.Time{})
	assert.True(t, errors.Is(err, ErrMissingPatient))

	other := encounter("Active")
	other.Patient = &fhirmodels.Reference{Reference: "Patient/someone-else"}
	_, err = e.Merge("feedB", encounter("Active"), other, time.Time{})
	assert.True(t, errors.Is(err, ErrPatientChanged))
}

func TestMerge_Superset(t *testing.T) {
	existing := encounter("Active")
	existing.Identifier = []fhirmodels.Identifier{{System: "urn:feedA", Value: "A1"}}
	existing.Type = []fhirmodels.CodeableConcept{{Text: "Inpatient"}}
	existing.Reason = []fhirmodels.CodeableConcept{{Text: "Chest pain"}}
	existing.Indication = []fhirmodels.Reference{{Reference: "Condition/c1"}}

	incoming := encounter("Active")
	incoming.Identifier = []fhirmodels.Identifier{
		{System: "urn:feedA", Value: "A1"},
		{System: "urn:feedB", Value: "B7"},
	}
	incoming.Type = []fhirmodels.CodeableConcept{{Text: "Inpatient"}}
	incoming.Reason = []fhirmodels.CodeableConcept{{Text: "Shortness of breath"}}
	incoming.IncomingReferral = []fhirmodels.Reference{{Reference: "ReferralRequest/r1"}}

	got := mergeEncounters(t, existing, incoming)

	assert.Len(t, got.Identifier, 2)
	assert.Len(t, got.Type, 1)
	assert.Len(t, got.Reason, 2)
	assert.Len(t, got.Indication, 1, "elements absent from incoming are kept")
	assert.Len(t, got.IncomingReferral, 1)
}

func TestMerge_ReplaceIfPresent(t *testing.T) {
	existing := encounter("Active")
	existing.Class = "inpatient"
	existing.Appointment = &fhirmodels.Reference{Reference: "Appointment/a1"}
	existing.ServiceProvider = &fhirmodels.Reference{Reference: "Organization/o1"}
	existing.Hospitalization = &fhirmodels.EncounterHospitalization{
		AdmitSource: &fhirmodels.CodeableConcept{Text: "GP referral"},
		Origin:      &fhirmodels.Reference{Reference: "Location/home"},
	}

	incoming := encounter("Active")
	incoming.Class = "emergency"
	incoming.ServiceProvider = &fhirmodels.Reference{Reference: "Organization/o2"}
	incoming.Hospitalization = &fhirmodels.EncounterHospitalization{
		DischargeDisposition: &fhirmodels.CodeableConcept{Text: "Home"},
	}

	got := mergeEncounters(t, existing, incoming)

	assert.Equal(t, "emergency", got.Class)
	assert.Equal(t, "Appointment/a1", got.Appointment.Reference)
	assert.Equal(t, "Organization/o2", got.ServiceProvider.Reference)
	assert.Equal(t, "GP referral", got.Hospitalization.AdmitSource.Text)
	assert.Equal(t, "Location/home", got.Hospitalization.Origin.Reference)
	assert.Equal(t, "Home", got.Hospitalization.DischargeDisposition.Text)
}

func TestMerge_LocationGating(t *testing.T) {
	ward := &fhirmodels.Reference{Reference: "Location/ward-7"}

	t.Run("compatible period updates in place", func(t *testing.T) {
		existing := encounter("Active")
		existing.Location = []fhirmodels.EncounterLocation{{Location: ward, Period: period("2020-05-01", "")}}
		incoming := encounter("Active")
		incoming.Location = []fhirmodels.EncounterLocation{{Location: ward, Period: period("2020-05-01", "2020-05-04"), Status: "completed"}}

		got := mergeEncounters(t, existing, incoming)
		require.Len(t, got.Location, 1)
		assert.True(t, fhirmodels.Equal(period("2020-05-01", "2020-05-04"), got.Location[0].Period))
		assert.Equal(t, "completed", got.Location[0].Status)
	})

	t.Run("no period and no status is dropped", func(t *testing.T) {
		existing := encounter("Active")
		existing.Location = []fhirmodels.EncounterLocation{{Location: ward, Period: period("2020-05-01", "")}}
		incoming := encounter("Active")
		incoming.Location = []fhirmodels.EncounterLocation{{Location: ward}}

		got := mergeEncounters(t, existing, incoming)
		require.Len(t, got.Location, 1)
		assert.True(t, fhirmodels.Equal(period("2020-05-01", ""), got.Location[0].Period))
	})

	// A conflicting period is kept as a separate stay rather than being
	// dropped or overwriting the stored one.
	t.Run("conflicting period appends a new element", func(t *testing.T) {
		existing := encounter("Active")
		existing.Location = []fhirmodels.EncounterLocation{{Location: ward, Period: period("2020-01-01", "2020-02-01")}}
		incoming := encounter("Active")
		incoming.Location = []fhirmodels.EncounterLocation{{Location: ward, Period: period("2020-03-01", "")}}

		got := mergeEncounters(t, existing, incoming)
		require.Len(t, got.Location, 2)
		assert.True(t, fhirmodels.Equal(period("2020-01-01", "2020-02-01"), got.Location[0].Period))
		assert.True(t, fhirmodels.Equal(period("2020-03-01", ""), got.Location[1].Period))
	})

	t.Run("new location is appended", func(t *testing.T) {
		existing := encounter("Active")
		existing.Location = []fhirmodels.EncounterLocation{{Location: ward}}
		incoming := encounter("Active")
		incoming.Location = []fhirmodels.EncounterLocation{{Location: &fhirmodels.Reference{Reference: "Location/icu"}}}

		got := mergeEncounters(t, existing, incoming)
		assert.Len(t, got.Location, 2)
	})
}

func TestMerge_ParticipantsKeyedByPersonAndRole(t *testing.T) {
	doc := &fhirmodels.Reference{Reference: "Practitioner/dr-who"}
	attender := []fhirmodels.CodeableConcept{{Coding: []fhirmodels.Coding{{Code: fhirmodels.ParticipantAttender}}}}
	admitter := []fhirmodels.CodeableConcept{{Coding: []fhirmodels.Coding{{Code: fhirmodels.ParticipantAdmitter}}}}

	existing := encounter("Active")
	existing.Participant = []fhirmodels.EncounterParticipant{{Individual: doc, Type: attender, Period: period("2020-05-01", "")}}
	incoming := encounter("Active")
	incoming.Participant = []fhirmodels.EncounterParticipant{
		{Individual: doc, Type: attender, Period: period("", "2020-05-02")},
		{Individual: doc, Type: admitter, Period: period("2020-05-01", "2020-05-01")},
	}

	got := mergeEncounters(t, existing, incoming)
	require.Len(t, got.Participant, 2)
	assert.True(t, fhirmodels.Equal(period("2020-05-01", "2020-05-02"), got.Participant[0].Period))
}

func TestMerge_EncounterPeriod(t *testing.T) {
	existing := encounter("Active")
	existing.Period = period("2020-05-01", "")
	incoming := encounter("Discharged")
	incoming.Period = period("", "2020-05-09")
	got := mergeEncounters(t, existing, incoming)
	assert.True(t, fhirmodels.Equal(period("2020-05-01", "2020-05-09"), got.Period))

	incoming.Period = period("2021-01-01", "")
	got = mergeEncounters(t, existing, incoming)
	assert.True(t, fhirmodels.Equal(period("2021-01-01", ""), got.Period))
}

func TestMerge_EffectiveDateStamped(t *testing.T) {
	eff := time.Date(2020, 5, 2, 9, 30, 0, 0, time.UTC)
	out, err := newEngine().Merge("feedB", encounter("Active"), encounter("Active"), eff)
	require.NoError(t, err)
	require.NotNil(t, out.Domain().Meta)
	assert.True(t, out.Domain().Meta.LastUpdated.Equal(eff))
}

func TestMerge_InvariantViolations(t *testing.T) {
	e := newEngine()
	_, err := e.Merge("f", encounter("Active"), &fhirmodels.Patient{DomainResource: fhirmodels.DomainResource{ID: "enc-1"}}, time.Time{})
	assert.True(t, errors.Is(err, ErrInvariant))

	other := encounter("Active")
	other.ID = "enc-2"
	_, err = e.Merge("f", encounter("Active"), other, time.Time{})
	assert.True(t, errors.Is(err, ErrInvariant))

	_, err = e.Merge("f", encounter("Active"), nil, time.Time{})
	assert.True(t, errors.Is(err, ErrInvariant))
}

func TestMerge_UnsupportedField(t *testing.T) {
	rules := DefaultRules()
	rules.Add("barts", fhirmodels.KindEncounter, "hospitalization.admitSource")
	e := NewEngine(rules, zerolog.Nop())

	withLength := encounter("Active")
	v := 3.0
	withLength.Length = &fhirmodels.Quantity{Value: &v, Unit: "d"}
	_, err := e.Merge("anything", encounter("Active"), withLength, time.Time{})
	assert.True(t, errors.Is(err, ErrUnsupportedField))

	withAdmit := encounter("Active")
	withAdmit.Hospitalization = &fhirmodels.EncounterHospitalization{AdmitSource: &fhirmodels.CodeableConcept{Text: "x"}}
	_, err = e.Merge("BARTS", encounter("Active"), withAdmit, time.Time{})
	assert.True(t, errors.Is(err, ErrUnsupportedField))

	_, err = e.Merge("homerton", encounter("Active"), withAdmit, time.Time{})
	assert.NoError(t, err)
}

func TestMerge_PatientPolicies(t *testing.T) {
	active := true
	existing := &fhirmodels.Patient{
		DomainResource: fhirmodels.DomainResource{ID: "p1"},
		Identifier:     []fhirmodels.Identifier{{System: "urn:mrn", Value: "1"}},
		Name:           []fhirmodels.HumanName{{Family: []string{"Smith"}}},
		Gender:         fhirmodels.GenderFemale,
		DeceasedBoolean: func() *bool {
			b := false
			return &b
		}(),
	}
	incoming := &fhirmodels.Patient{
		DomainResource:   fhirmodels.DomainResource{ID: "p1"},
		Identifier:       []fhirmodels.Identifier{{System: "urn:nhs", Value: "999"}},
		Name:             []fhirmodels.HumanName{{Family: []string{"Smith"}}},
		Active:           &active,
		DeceasedDateTime: day("2021-01-01"),
	}

	out, err := newEngine().Merge("feedB", existing, incoming, time.Time{})
	require.NoError(t, err)
	got := out.(*fhirmodels.Patient)

	assert.Len(t, got.Identifier, 2)
	assert.Len(t, got.Name, 1)
	assert.Equal(t, fhirmodels.GenderFemale, got.Gender)
	require.NotNil(t, got.Active)
	assert.True(t, *got.Active)
	assert.Nil(t, got.DeceasedBoolean)
	assert.NotNil(t, got.DeceasedDateTime)
}

func TestMerge_PractitionerRoles(t *testing.T) {
	gp := &fhirmodels.CodeableConcept{Coding: []fhirmodels.Coding{{Code: "GP"}}}
	existing := &fhirmodels.Practitioner{
		DomainResource: fhirmodels.DomainResource{ID: "pr1"},
		PractitionerRole: []fhirmodels.PractitionerRole{{
			ManagingOrganization: &fhirmodels.Reference{Reference: "Organization/o1"},
			Role:                 gp,
			Period:               period("2019-01-01", ""),
			Location:             []fhirmodels.Reference{{Reference: "Location/l1"}},
		}},
	}
	incoming := &fhirmodels.Practitioner{
		DomainResource: fhirmodels.DomainResource{ID: "pr1"},
		PractitionerRole: []fhirmodels.PractitionerRole{
			{
				ManagingOrganization: &fhirmodels.Reference{Reference: "Organization/o1"},
				Role:                 gp,
				Period:               period("", "2020-12-31"),
				Location:             []fhirmodels.Reference{{Reference: "Location/l2"}},
			},
			{
				ManagingOrganization: &fhirmodels.Reference{Reference: "Organization/o2"},
				Role:                 gp,
			},
		},
	}

	out, err := newEngine().Merge("feedB", existing, incoming, time.Time{})
	require.NoError(t, err)
	got := out.(*fhirmodels.Practitioner)

	require.Len(t, got.PractitionerRole, 2)
	assert.True(t, fhirmodels.Equal(period("2019-01-01", "2020-12-31"), got.PractitionerRole[0].Period))
	assert.Len(t, got.PractitionerRole[0].Location, 2)
}

func TestMerge_LocationAndOrganization(t *testing.T) {
	loc, err := newEngine().Merge("f",
		&fhirmodels.Location{DomainResource: fhirmodels.DomainResource{ID: "l1"}, Name: "Ward 7", Status: "active"},
		&fhirmodels.Location{DomainResource: fhirmodels.DomainResource{ID: "l1"}, Status: "inactive"},
		time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Ward 7", loc.(*fhirmodels.Location).Name)
	assert.Equal(t, "inactive", loc.(*fhirmodels.Location).Status)

	org, err := newEngine().Merge("f",
		&fhirmodels.Organization{DomainResource: fhirmodels.DomainResource{ID: "o1"}, Name: "Trust",
			Telecom: []fhirmodels.ContactPoint{{System: "phone", Value: "1"}}},
		&fhirmodels.Organization{DomainResource: fhirmodels.DomainResource{ID: "o1"},
			Telecom: []fhirmodels.ContactPoint{{System: "phone", Value: "2"}}},
		time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Trust", org.(*fhirmodels.Organization).Name)
	assert.Len(t, org.(*fhirmodels.Organization).Telecom, 2)
}

func flag(status, subject string) *fhirmodels.Flag {
	f := &fhirmodels.Flag{DomainResource: fhirmodels.DomainResource{ID: "f1"}, Status: status}
	if subject != "" {
		f.Subject = &fhirmodels.Reference{Reference: subject}
	}
	return f
}

func TestMerge_OtherKindsReplace(t *testing.T) {
	incoming := flag("inactive", patientRef)
	out, err := newEngine().Merge("f", flag("active", patientRef), incoming, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, incoming, out)
	assert.NotSame(t, incoming, out)

	sub := &fhirmodels.Substance{DomainResource: fhirmodels.DomainResource{ID: "s1"}}
	_, err = newEngine().Merge("f", sub, &fhirmodels.Substance{DomainResource: fhirmodels.DomainResource{ID: "s1"}}, time.Time{})
	require.NoError(t, err, "kinds without a patient skip the owner check")
}

func TestMerge_ReplacedKindsKeepTheirPatient(t *testing.T) {
	condition := func(patient string) *fhirmodels.Condition {
		c := &fhirmodels.Condition{DomainResource: fhirmodels.DomainResource{ID: "c1"}}
		if patient != "" {
			c.Patient = &fhirmodels.Reference{Reference: patient}
		}
		return c
	}
	other := "Patient/7d1e2c3b-0000-4000-8000-000000000002"

	tests := []struct {
		name     string
		existing fhirmodels.Resource
		incoming fhirmodels.Resource
		want     error
	}{
		{"condition moved to another patient", condition(patientRef), condition(other), ErrPatientChanged},
		{"condition loses its patient", condition(patientRef), condition(""), ErrMissingPatient},
		{"stored condition without patient", condition(""), condition(patientRef), ErrMissingPatient},
		{"flag moved to another patient", flag("active", patientRef), flag("active", other), ErrPatientChanged},
		{"flag without subject", flag("active", ""), flag("inactive", ""), ErrMissingPatient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newEngine().Merge("f", tt.existing, tt.incoming, time.Time{})
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestMerge_ResultIsIndependentOfIncoming(t *testing.T) {
	existing := encounter("Active")
	incoming := encounter("Active")
	incoming.Hospitalization = &fhirmodels.EncounterHospitalization{
		Destination: &fhirmodels.Reference{Reference: "Location/home"},
	}
	incoming.ServiceProvider = &fhirmodels.Reference{Reference: "Organization/trust"}

	got := mergeEncounters(t, existing, incoming)
	incoming.Hospitalization.Destination.Reference = "Location/changed"
	incoming.ServiceProvider.Reference = "Organization/changed"

	assert.Equal(t, "Location/home", got.Hospitalization.Destination.Reference)
	assert.Equal(t, "Organization/trust", got.ServiceProvider.Reference)
}

func TestMerge_ExtensionsAppended(t *testing.T) {
	existing := encounter("Active")
	existing.Extension = []fhirmodels.Extension{{URL: "urn:a", ValueString: "1"}}
	incoming := encounter("Active")
	incoming.Extension = []fhirmodels.Extension{{URL: "urn:a", ValueString: "1"}, {URL: "urn:b", ValueString: "2"}}
	got := mergeEncounters(t, existing, incoming)
	assert.Len(t, got.Extension, 2)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "feeds:\n  barts:\n    Encounter:\n      - hospitalization.admitSource\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"length", "hospitalization.admitSource"},
		rules.unsupported("barts", fhirmodels.KindEncounter))
	assert.Equal(t, []string{"length"}, rules.unsupported("other", fhirmodels.KindEncounter))
}

func TestLoadRules_UnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds:\n  barts:\n    Bundle: [entry]\n"), 0o644))
	_, err := LoadRules(path)
	assert.True(t, errors.Is(err, fhirmodels.ErrUnknownKind))
}

package fhirmodels

type Encounter struct {
	DomainResource
	Identifier       []Identifier              `json:"identifier,omitempty"`
	Status           string                    `json:"status,omitempty"`
	StatusHistory    []EncounterStatusHistory  `json:"statusHistory,omitempty"`
	Class            string                    `json:"class,omitempty"`
	Type             []CodeableConcept         `json:"type,omitempty"`
	Priority         *CodeableConcept          `json:"priority,omitempty"`
	Patient          *Reference                `json:"patient,omitempty"`
	EpisodeOfCare    []Reference               `json:"episodeOfCare,omitempty"`
	IncomingReferral []Reference               `json:"incomingReferral,omitempty"`
	Participant      []EncounterParticipant    `json:"participant,omitempty"`
	Appointment      *Reference                `json:"appointment,omitempty"`
	Period           *Period                   `json:"period,omitempty"`
	Length           *Quantity                 `json:"length,omitempty"`
	Reason           []CodeableConcept         `json:"reason,omitempty"`
	Indication       []Reference               `json:"indication,omitempty"`
	Hospitalization  *EncounterHospitalization `json:"hospitalization,omitempty"`
	Location         []EncounterLocation       `json:"location,omitempty"`
	ServiceProvider  *Reference                `json:"serviceProvider,omitempty"`
	PartOf           *Reference                `json:"partOf,omitempty"`
}

type EncounterStatusHistory struct {
	Status string  `json:"status"`
	Period *Period `json:"period,omitempty"`
}

type EncounterParticipant struct {
	Type       []CodeableConcept `json:"type,omitempty"`
	Period     *Period           `json:"period,omitempty"`
	Individual *Reference        `json:"individual,omitempty"`
}

type EncounterHospitalization struct {
	PreAdmissionIdentifier *Identifier      `json:"preAdmissionIdentifier,omitempty"`
	Origin                 *Reference       `json:"origin,omitempty"`
	AdmitSource            *CodeableConcept `json:"admitSource,omitempty"`
	ReAdmission            *CodeableConcept `json:"reAdmission,omitempty"`
	Destination            *Reference       `json:"destination,omitempty"`
	DischargeDisposition   *CodeableConcept `json:"dischargeDisposition,omitempty"`
}

type EncounterLocation struct {
	Location *Reference `json:"location,omitempty"`
	Status   string     `json:"status,omitempty"`
	Period   *Period    `json:"period,omitempty"`
}

func (*Encounter) Kind() Kind { return KindEncounter }

type EpisodeOfCare struct {
	DomainResource
	Identifier           []Identifier           `json:"identifier,omitempty"`
	Status               string                 `json:"status,omitempty"`
	StatusHistory        []EpisodeStatusHistory `json:"statusHistory,omitempty"`
	Type                 []CodeableConcept      `json:"type,omitempty"`
	Condition            []Reference            `json:"condition,omitempty"`
	Patient              *Reference             `json:"patient,omitempty"`
	ManagingOrganization *Reference             `json:"managingOrganization,omitempty"`
	Period               *Period                `json:"period,omitempty"`
	ReferralRequest      []Reference            `json:"referralRequest,omitempty"`
	CareManager          *Reference             `json:"careManager,omitempty"`
	CareTeam             []EpisodeCareTeam      `json:"careTeam,omitempty"`
}

type EpisodeStatusHistory struct {
	Status string  `json:"status"`
	Period *Period `json:"period,omitempty"`
}

type EpisodeCareTeam struct {
	Role   []CodeableConcept `json:"role,omitempty"`
	Period *Period           `json:"period,omitempty"`
	Member *Reference        `json:"member,omitempty"`
}

func (*EpisodeOfCare) Kind() Kind { return KindEpisodeOfCare }

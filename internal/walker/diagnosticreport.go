package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func diagnosticReportRefs(d *fhirmodels.DiagnosticReport, v *visitor) {
	v.identifiers(d.Identifier)
	v.ref(d.Subject)
	v.ref(d.Encounter)
	v.ref(d.Performer)
	v.refs(d.Request)
	v.refs(d.Specimen)
	v.refs(d.Result)
	v.refs(d.ImagingStudy)
}

func diagnosticReportOwner(d *fhirmodels.DiagnosticReport) *fhirmodels.Reference { return d.Subject }

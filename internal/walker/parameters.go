package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

const patientParameter = "patient"

func parametersRefs(p *fhirmodels.Parameters, v *visitor) {
	parameterRefs(p.Parameter, v)
}

func parameterRefs(params []fhirmodels.ParametersParameter, v *visitor) {
	for i := range params {
		v.ref(params[i].ValueReference)
		if params[i].Resource != nil {
			v.walk(params[i].Resource.Resource)
		}
		parameterRefs(params[i].Part, v)
	}
}

func parametersOwner(p *fhirmodels.Parameters) *fhirmodels.Reference {
	if param, ok := p.Param(patientParameter); ok {
		return param.ValueReference
	}
	return nil
}

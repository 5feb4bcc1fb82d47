package walker

import "github.com/ehr/transforms/pkg/fhirmodels"

func questionnaireResponseRefs(q *fhirmodels.QuestionnaireResponse, v *visitor) {
	v.identifier(q.Identifier)
	v.ref(q.Questionnaire)
	v.ref(q.Subject)
	v.ref(q.Author)
	v.ref(q.Source)
	v.ref(q.Encounter)
	if q.Group != nil {
		questionnaireGroupRefs(q.Group, v)
	}
}

// Groups nest through both sub-groups and answers.
func questionnaireGroupRefs(g *fhirmodels.QuestionnaireGroup, v *visitor) {
	v.ref(g.Subject)
	for i := range g.Group {
		questionnaireGroupRefs(&g.Group[i], v)
	}
	for i := range g.Question {
		answers := g.Question[i].Answer
		for j := range answers {
			v.ref(answers[j].ValueReference)
			for k := range answers[j].Group {
				questionnaireGroupRefs(&answers[j].Group[k], v)
			}
		}
	}
}

func questionnaireResponseOwner(q *fhirmodels.QuestionnaireResponse) *fhirmodels.Reference {
	return q.Subject
}

package merge

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

// replaceIfPresent overwrites *dst with src when src carries a value.
func replaceIfPresent[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func replaceRef(dst **fhirmodels.Reference, src *fhirmodels.Reference) {
	if !src.IsEmpty() {
		*dst = src
	}
}

func replaceString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// appendIfNew adds each incoming element that has no semantically equal
// counterpart in existing. Existing elements are never removed.
func appendIfNew[T any](existing, incoming []T) []T {
	for _, in := range incoming {
		dup := false
		for i := range existing {
			if fhirmodels.Equal(existing[i], in) {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, in)
		}
	}
	return existing
}

// keyedSpec describes a list whose elements carry a period and are grouped
// by an identity key.
type keyedSpec[T any] struct {
	key    func(*T) string
	period func(*T) **fhirmodels.Period
	// status is nil for elements without a status of their own.
	status func(*T) *string
}

func (s keyedSpec[T]) hasInfo(e *T) bool {
	if !(*s.period(e)).IsEmpty() {
		return true
	}
	return s.status != nil && *s.status(e) != ""
}

// mergeKeyed applies period-merge with gating. An incoming element whose
// key is unseen is appended. One whose key exists but which carries neither
// a period nor a status adds nothing and is dropped. Otherwise its period
// is folded into the first existing element of that key it is compatible
// with; if it conflicts with all of them it is appended as a new element.
func mergeKeyed[T any](existing, incoming []T, s keyedSpec[T]) []T {
	for i := range incoming {
		in := incoming[i]
		k := s.key(&in)

		var candidates []int
		for j := range existing {
			if s.key(&existing[j]) == k {
				candidates = append(candidates, j)
			}
		}
		if len(candidates) == 0 {
			existing = append(existing, in)
			continue
		}
		if !s.hasInfo(&in) {
			continue
		}

		handled := false
		for _, j := range candidates {
			p, ok := MergePeriod(*s.period(&existing[j]), *s.period(&in))
			if !ok {
				continue
			}
			*s.period(&existing[j]) = p
			if s.status != nil {
				replaceString(s.status(&existing[j]), *s.status(&in))
			}
			handled = true
			break
		}
		if !handled {
			existing = append(existing, in)
		}
	}
	return existing
}

func refKey(r *fhirmodels.Reference) string {
	if r.HasReference() {
		return r.Reference
	}
	return ""
}

func conceptKey(cs ...*fhirmodels.CodeableConcept) string {
	var k string
	for _, c := range cs {
		for _, code := range c.Codes() {
			k += code + ";"
		}
	}
	return k
}

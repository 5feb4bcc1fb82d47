package merge

import (
	"github.com/ehr/transforms/pkg/fhirmodels"
)

// MergePeriod folds incoming into existing. It returns ok=false when the
// periods positively conflict: both starts known and different, both ends
// known and different, or incoming lying wholly before or after existing.
// Otherwise the result is the union of known bounds, with incoming only
// filling bounds that existing lacked.
func MergePeriod(existing, incoming *fhirmodels.Period) (*fhirmodels.Period, bool) {
	if incoming.IsEmpty() {
		return copyPeriod(existing), true
	}
	if existing.IsEmpty() {
		return copyPeriod(incoming), true
	}

	if existing.Start != nil && incoming.Start != nil && !existing.Start.Equal(*incoming.Start) {
		return nil, false
	}
	if existing.End != nil && incoming.End != nil && !existing.End.Equal(*incoming.End) {
		return nil, false
	}
	if incoming.Start != nil && existing.End != nil && incoming.Start.After(*existing.End) {
		return nil, false
	}
	if incoming.End != nil && existing.Start != nil && incoming.End.Before(*existing.Start) {
		return nil, false
	}

	out := copyPeriod(existing)
	if out.Start == nil {
		out.Start = incoming.Start
	}
	if out.End == nil {
		out.End = incoming.End
	}
	return out, true
}

func copyPeriod(p *fhirmodels.Period) *fhirmodels.Period {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

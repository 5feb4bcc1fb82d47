package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/ehr/transforms/pkg/fhirmodels"
)

var validate = validator.New()

// Record is one partial resource delivered by a source feed. Resource ids
// and references are local to Scope.
type Record struct {
	Scope         string `validate:"required"`
	Feed          string `validate:"required"`
	Resource      fhirmodels.Resource `validate:"required"`
	Deleted       bool
	EffectiveDate time.Time
}

func (r Record) validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if r.Resource.GetID() == "" {
		return fmt.Errorf("%w: %s has no id", ErrInvalidRecord, r.Resource.Kind())
	}
	if _, ok := tierOf[r.Resource.Kind()]; !ok {
		return fmt.Errorf("%w: %w: %s", ErrInvalidRecord, fhirmodels.ErrUnknownKind, r.Resource.Kind())
	}
	return nil
}

// envelope is the NDJSON line format read by ReadRecords.
type envelope struct {
	Scope         string          `json:"scope" validate:"required"`
	Feed          string          `json:"feed" validate:"required"`
	Deleted       bool            `json:"deleted"`
	EffectiveDate *time.Time      `json:"effectiveDate"`
	Resource      json.RawMessage `json:"resource" validate:"required"`
}

// ReadRecords decodes one envelope per line:
//
//	{"scope":"trust-a","feed":"pas","effectiveDate":"2020-05-01T10:00:00Z","resource":{"resourceType":"Encounter",...}}
//
// Blank lines are ignored. The first malformed line stops the read and is
// reported with its line number.
func ReadRecords(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var out []Record
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var env envelope
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrInvalidRecord, err)
		}
		if err := validate.Struct(env); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrInvalidRecord, err)
		}
		res, err := fhirmodels.Unmarshal(env.Resource)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrInvalidRecord, err)
		}
		rec := Record{Scope: env.Scope, Feed: env.Feed, Deleted: env.Deleted, Resource: res}
		if env.EffectiveDate != nil {
			rec.EffectiveDate = *env.EffectiveDate
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return out, nil
}

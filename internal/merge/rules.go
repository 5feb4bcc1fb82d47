package merge

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/viper"

	"github.com/ehr/transforms/pkg/fhirmodels"
)

// AnyFeed keys rules that apply to every feed.
const AnyFeed = "*"

// Rules lists, per feed and kind, the fields the merge engine cannot merge
// for that feed. Field paths use FHIR JSON names joined by dots, e.g.
// "hospitalization.admitSource". Keys are matched case-insensitively.
type Rules struct {
	feeds map[string]map[string][]string
}

// DefaultRules returns the rules the engine ships with: encounter length is
// derived downstream and never merged.
func DefaultRules() Rules {
	r := Rules{feeds: map[string]map[string][]string{}}
	r.Add(AnyFeed, fhirmodels.KindEncounter, "length")
	return r
}

// Add marks fields of kind as unsupported for feed.
func (r *Rules) Add(feed string, kind fhirmodels.Kind, fields ...string) {
	if r.feeds == nil {
		r.feeds = map[string]map[string][]string{}
	}
	f := strings.ToLower(feed)
	if r.feeds[f] == nil {
		r.feeds[f] = map[string][]string{}
	}
	k := strings.ToLower(string(kind))
	r.feeds[f][k] = append(r.feeds[f][k], fields...)
}

func (r Rules) unsupported(feed string, kind fhirmodels.Kind) []string {
	k := strings.ToLower(string(kind))
	out := append([]string(nil), r.feeds[AnyFeed][k]...)
	if f := strings.ToLower(feed); f != AnyFeed {
		out = append(out, r.feeds[f][k]...)
	}
	return out
}

type rulesFile struct {
	Feeds map[string]map[string][]string `mapstructure:"feeds"`
}

// LoadRules reads rules from a YAML, JSON or TOML file and adds them to the
// defaults:
//
//	feeds:
//	  barts:
//	    Encounter: [hospitalization.admitSource]
func LoadRules(path string) (Rules, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Rules{}, fmt.Errorf("read merge rules %s: %w", path, err)
	}
	var f rulesFile
	if err := v.Unmarshal(&f); err != nil {
		return Rules{}, fmt.Errorf("parse merge rules %s: %w", path, err)
	}

	rules := DefaultRules()
	for feed, byKind := range f.Feeds {
		for kind, fields := range byKind {
			k, ok := kindFold(kind)
			if !ok {
				return Rules{}, fmt.Errorf("merge rules %s: feed %s: %w: %q", path, feed, fhirmodels.ErrUnknownKind, kind)
			}
			rules.Add(feed, k, fields...)
		}
	}
	return rules, nil
}

// kindFold resolves a kind name regardless of case, since viper lowercases
// map keys.
func kindFold(name string) (fhirmodels.Kind, bool) {
	for _, k := range fhirmodels.AllKinds {
		if strings.EqualFold(string(k), name) {
			return k, true
		}
	}
	return "", false
}

// validate fails with ErrUnsupportedField when incoming populates a field
// listed as unsupported for its feed.
func (r Rules) validate(feed string, incoming fhirmodels.Resource) error {
	fields := r.unsupported(feed, incoming.Kind())
	if len(fields) == 0 {
		return nil
	}
	data, err := fhirmodels.Marshal(incoming)
	if err != nil {
		return err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, field := range fields {
		if populated(doc, strings.Split(field, ".")) {
			return fmt.Errorf("%w: %s.%s from feed %s", ErrUnsupportedField, incoming.Kind(), field, feed)
		}
	}
	return nil
}

func populated(node interface{}, path []string) bool {
	if len(path) == 0 {
		switch v := node.(type) {
		case nil:
			return false
		case string:
			return v != ""
		case []interface{}:
			return len(v) > 0
		case map[string]interface{}:
			return len(v) > 0
		}
		return true
	}
	switch v := node.(type) {
	case map[string]interface{}:
		return populated(v[path[0]], path[1:])
	case []interface{}:
		for _, e := range v {
			if populated(e, path) {
				return true
			}
		}
	}
	return false
}

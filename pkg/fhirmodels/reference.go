package fhirmodels

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var ErrInvalidReference = errors.New("invalid reference")

// Reference points at another resource either by a reference string or by
// an inline resource, never both. Callers must check HasReference before
// reading Reference and fall back to InlineResource otherwise.
type Reference struct {
	Reference string  `json:"reference,omitempty"`
	Display   string  `json:"display,omitempty"`
	Inline    *Inline `json:"resource,omitempty"`
}

// ReferenceTo builds a reference string reference.
func ReferenceTo(kind Kind, id string) *Reference {
	return &Reference{Reference: string(kind) + "/" + id}
}

func (r *Reference) HasReference() bool {
	return r != nil && r.Reference != ""
}

// IsContained reports whether the reference is a local "#id" pointer into
// the parent's contained resources.
func (r *Reference) IsContained() bool {
	return r.HasReference() && strings.HasPrefix(r.Reference, "#")
}

// InlineResource returns the inline resource, or nil.
func (r *Reference) InlineResource() Resource {
	if r == nil || r.Inline == nil {
		return nil
	}
	return r.Inline.Resource
}

// IsEmpty reports whether the reference carries neither form.
func (r *Reference) IsEmpty() bool {
	return !r.HasReference() && r.InlineResource() == nil
}

// Target splits a "Type/id" reference string.
func (r *Reference) Target() (Kind, string, error) {
	if !r.HasReference() {
		return "", "", fmt.Errorf("%w: no reference string", ErrInvalidReference)
	}
	return ParseReference(r.Reference)
}

// ParseReference splits "Type/id" into its type and id. The type must look
// like a FHIR resource type name but may lie outside AllKinds, since
// references also point at kinds this package does not model (Device,
// ImagingStudy, Questionnaire).
func ParseReference(s string) (Kind, string, error) {
	typ, id, ok := strings.Cut(s, "/")
	if !ok || id == "" || strings.Contains(id, "/") || !isTypeName(typ) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}
	return Kind(typ), id, nil
}

func isTypeName(s string) bool {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// Inline wraps a resource embedded in another one (contained resources,
// inline references, Parameters values).
type Inline struct {
	Resource Resource
}

func (i Inline) MarshalJSON() ([]byte, error) {
	if i.Resource == nil {
		return []byte("null"), nil
	}
	return Marshal(i.Resource)
}

func (i *Inline) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		i.Resource = nil
		return nil
	}
	r, err := Unmarshal(data)
	if err != nil {
		return err
	}
	i.Resource = r
	return nil
}

// ConceptOrReference holds a field that is either a coded value or a
// reference, e.g. medication[x] or reason[x]. At most one side is set.
type ConceptOrReference struct {
	Concept   *CodeableConcept
	Reference *Reference
}

// AsReference returns the reference variant if that is what is held.
func (c *ConceptOrReference) AsReference() (*Reference, bool) {
	if c == nil || c.Reference == nil {
		return nil, false
	}
	return c.Reference, true
}

// AsConcept returns the coded variant if that is what is held.
func (c *ConceptOrReference) AsConcept() (*CodeableConcept, bool) {
	if c == nil || c.Concept == nil {
		return nil, false
	}
	return c.Concept, true
}

func (c ConceptOrReference) MarshalJSON() ([]byte, error) {
	switch {
	case c.Reference != nil:
		return json.Marshal(c.Reference)
	case c.Concept != nil:
		return json.Marshal(c.Concept)
	}
	return []byte("null"), nil
}

func (c *ConceptOrReference) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	*c = ConceptOrReference{}
	if probe == nil {
		return nil
	}
	_, hasRef := probe["reference"]
	_, hasInline := probe["resource"]
	_, hasDisplay := probe["display"]
	if hasRef || hasInline || hasDisplay {
		c.Reference = &Reference{}
		return json.Unmarshal(data, c.Reference)
	}
	c.Concept = &CodeableConcept{}
	return json.Unmarshal(data, c.Concept)
}

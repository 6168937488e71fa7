// Package mutate applies partial updates to a record field by field against an
// explicit per-entity whitelist of (field name -> validator + setter) pairs.
// Unknown fields are provably ignored rather than accidentally applied, and
// every applied field is recorded in a before/after change log.
package mutate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Change holds the stringified previous and new values of one applied field.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type ChangeSet map[string]Change

// Field is one caller-supplied field in submission order. Order matters:
// validation is fail-fast, so a later field is never reached once an earlier
// one fails.
type Field struct {
	Name  string
	Value json.RawMessage
}

// Error is a whole-request rejection. Details carries extra response keys
// (e.g. the offending field names on a whitelist violation).
type Error struct {
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

// ParseFields reads the top-level JSON object of an edit request preserving
// the caller's field order. A duplicate key keeps its first position with the
// last value, matching ordinary JSON object semantics.
func ParseFields(body []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.New("invalid JSON body")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("request body must be a JSON object")
	}

	var fields []Field
	index := map[string]int{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.New("invalid JSON body")
		}

		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("invalid JSON body")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.New("invalid JSON body")
		}

		if i, seen := index[key]; seen {
			fields[i].Value = raw
			continue
		}

		index[key] = len(fields)
		fields = append(fields, Field{Name: key, Value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.New("invalid JSON body")
	}

	return fields, nil
}

// Rule validates and renders one mutable field of a record.
type Rule struct {
	// Column is the storage column the validated value is written to.
	Column string

	// Old renders the record's current value for the change log.
	Old func() string

	// New validates the incoming raw JSON value and returns the value to
	// persist plus its change-log rendering.
	New func(raw json.RawMessage) (value any, display string, err error)
}

// Spec is the mutation whitelist for one entity instance.
type Spec struct {
	// Immutable maps identity fields to the rejection returned when the field
	// appears in the input at all.
	Immutable map[string]*Error

	// Skip lists fields silently dropped without error or application.
	Skip []string

	// Allowed, when non-nil, restricts which fields may be submitted; any
	// other field fails the whole request via DisallowedErr.
	Allowed       []string
	DisallowedErr func(invalid []string) *Error

	Rules map[string]Rule
}

// Update is the validated result of a batch edit: parallel column/value slices
// for a single transactional UPDATE, plus the change log.
type Update struct {
	Columns []string
	Values  []any
	Changes ChangeSet
}

// Apply validates the batch in caller-supplied order. The first invalid field
// aborts the whole request; no partial-apply state is ever observable.
func (s Spec) Apply(fields []Field) (Update, error) {
	for _, f := range fields {
		if rejection, ok := s.Immutable[f.Name]; ok {
			return Update{}, rejection
		}
	}

	if s.Allowed != nil {
		var invalid []string
		for _, f := range fields {
			if !contains(s.Allowed, f.Name) {
				invalid = append(invalid, f.Name)
			}
		}
		if len(invalid) > 0 {
			return Update{}, s.DisallowedErr(invalid)
		}
	}

	upd := Update{Changes: ChangeSet{}}

	for _, f := range fields {
		if contains(s.Skip, f.Name) {
			continue
		}

		rule, ok := s.Rules[f.Name]
		if !ok {
			// not a field of this record: ignored, not an error
			continue
		}

		value, display, err := rule.New(f.Value)
		if err != nil {
			var reqErr *Error
			if errors.As(err, &reqErr) {
				return Update{}, reqErr
			}
			return Update{}, &Error{Message: err.Error()}
		}

		upd.Columns = append(upd.Columns, rule.Column)
		upd.Values = append(upd.Values, value)
		upd.Changes[f.Name] = Change{Old: rule.Old(), New: display}
	}

	return upd, nil
}

// HasField reports whether a parsed batch names the given field.
func HasField(fields []Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// DecodeString unwraps a JSON string value for a text field.
func DecodeString(field string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("Field %s must be a string", field)
	}
	return s, nil
}

// DecodeNumber unwraps a JSON number value for a numeric field.
func DecodeNumber(field string, raw json.RawMessage) (float64, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("Field %s must be a number", field)
	}
	return n, nil
}

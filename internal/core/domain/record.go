package domain

import (
	"encoding/json"
	"maps"
	"strings"
)

// IDField is the reserved key of the record identifier, both in the
// persisted document and as an import header.
const IDField = "id"

// Record is one entity instance within a module.
// Values are string-typed at storage level; a missing key reads as "".
type Record struct {
	// ID is globally unique and immutable for the record's lifetime.
	ID string

	// Values maps field id to value.
	Values map[string]string
}

// NewRecord creates a record with the given id and a copy of values.
func NewRecord(id string, values map[string]string) Record {
	r := Record{ID: id, Values: maps.Clone(values)}
	if r.Values == nil {
		r.Values = make(map[string]string)
	}
	delete(r.Values, IDField)
	for k, v := range r.Values {
		r.Values[k] = NormalizeValue(v)
	}
	return r
}

// NormalizeValue stores line breaks as "\n". A CSV reader folds "\r\n"
// inside quoted cells, so values kept this way survive export and import.
func NormalizeValue(v string) string {
	return strings.ReplaceAll(v, "\r\n", "\n")
}

// Get returns the value for a field id, or "" when absent.
func (r Record) Get(fieldID string) string {
	if fieldID == IDField {
		return r.ID
	}
	return r.Values[fieldID]
}

// Merge returns a copy of r with every key of partial overwritten.
// Keys absent from partial keep their prior values. The id never changes.
func (r Record) Merge(partial map[string]string) Record {
	out := r.Clone()
	for k, v := range partial {
		if k == IDField {
			continue
		}
		out.Values[k] = NormalizeValue(v)
	}
	return out
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return NewRecord(r.ID, r.Values)
}

// MarshalJSON encodes the record as one flat object with the id under "id".
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Values)+1)
	maps.Copy(flat, r.Values)
	flat[IDField] = r.ID
	return json.Marshal(flat)
}

// UnmarshalJSON decodes a flat object. Non-string scalars are kept in their
// JSON text form so older or hand-edited documents still load.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			values[k] = s
			continue
		}
		if string(v) == "null" {
			continue
		}
		values[k] = string(v)
	}

	id := values[IDField]
	*r = NewRecord(id, values)
	return nil
}

// DuplicateGroup is an advisory cluster of records that share a normalised
// value on one matching-key field. It is derived and never persisted.
type DuplicateGroup struct {
	FieldID    string   `json:"field_id"`
	FieldLabel string   `json:"field_label"`
	Key        string   `json:"key"`
	RecordIDs  []string `json:"record_ids"`
}

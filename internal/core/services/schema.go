package services

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

// Ensure SchemaService implements the interface.
var _ driving.SchemaService = (*SchemaService)(nil)

// SchemaService manages the ordered field list of each module.
type SchemaService struct {
	ws *Workspace
}

// NewSchemaService creates a schema service over ws.
func NewSchemaService(ws *Workspace) *SchemaService {
	return &SchemaService{ws: ws}
}

// Fields returns a copy of the module's fields in schema order.
func (s *SchemaService) Fields(_ context.Context, moduleID string) ([]domain.FieldDefinition, error) {
	var out []domain.FieldDefinition
	err := s.ws.view(moduleID, func(st *moduleState) {
		out = cloneFields(st.fields)
	})
	return out, err
}

// AddField appends a field to the module.
func (s *SchemaService) AddField(_ context.Context, moduleID string, field domain.FieldDefinition) error {
	if err := validateField(field); err != nil {
		return err
	}
	if field.ID == domain.IDField {
		return &domain.ValidationError{Field: "id", Message: "\"id\" is reserved for the record identifier"}
	}
	return s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		if st.hasField(field.ID) {
			return false, &domain.ValidationError{Field: "id", Message: "field " + field.ID + " already exists"}
		}
		st.fields = append(st.fields, field.Clone())
		return true, nil
	})
}

// UpdateField merges update into the field. The merged definition must be
// valid; an unknown field id is a no-op.
func (s *SchemaService) UpdateField(_ context.Context, moduleID, fieldID string, update domain.FieldUpdate) error {
	return s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		i := st.fieldIndex(fieldID)
		if i < 0 || update.IsEmpty() {
			return false, nil
		}
		merged := update.Apply(st.fields[i])
		if err := validateField(merged); err != nil {
			return false, err
		}
		st.fields[i] = merged
		return true, nil
	})
}

// DeleteField removes the field. Record values under its id are kept.
func (s *SchemaService) DeleteField(_ context.Context, moduleID, fieldID string) error {
	return s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		i := st.fieldIndex(fieldID)
		if i < 0 {
			return false, nil
		}
		st.fields = append(st.fields[:i], st.fields[i+1:]...)
		return true, nil
	})
}

// ReorderField moves the field at from to position to, preserving the
// relative order of the others. Out-of-range indices are a no-op.
func (s *SchemaService) ReorderField(_ context.Context, moduleID string, from, to int) error {
	return s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		n := len(st.fields)
		if from < 0 || from >= n || to < 0 || to >= n || from == to {
			return false, nil
		}
		moved := st.fields[from]
		st.fields = append(st.fields[:from], st.fields[from+1:]...)
		st.fields = append(st.fields[:to], append([]domain.FieldDefinition{moved}, st.fields[to:]...)...)
		return true, nil
	})
}

// Check reports advisory problems of values against the module schema.
func (s *SchemaService) Check(_ context.Context, moduleID string, values map[string]string) ([]domain.FieldIssue, error) {
	var issues []domain.FieldIssue
	err := s.ws.view(moduleID, func(st *moduleState) {
		issues = checkValues(st.fields, values)
	})
	return issues, err
}

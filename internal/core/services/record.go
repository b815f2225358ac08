package services

import (
	"context"
	"fmt"
	"maps"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService manages the record collection of each module.
type RecordService struct {
	ws *Workspace
}

// NewRecordService creates a record service over ws.
func NewRecordService(ws *Workspace) *RecordService {
	return &RecordService{ws: ws}
}

// List returns a copy of the module's records in insertion order.
func (s *RecordService) List(_ context.Context, moduleID string) ([]domain.Record, error) {
	var out []domain.Record
	err := s.ws.view(moduleID, func(st *moduleState) {
		out = cloneRecords(st.records)
	})
	return out, err
}

// Get returns a copy of one record.
func (s *RecordService) Get(_ context.Context, moduleID, recordID string) (*domain.Record, error) {
	var out *domain.Record
	err := s.ws.view(moduleID, func(st *moduleState) {
		if i := st.recordIndex(recordID); i >= 0 {
			r := st.records[i].Clone()
			out = &r
		}
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("record %s: %w", recordID, domain.ErrNotFound)
	}
	return out, nil
}

// Add appends a record. An empty id is replaced by a generated one.
func (s *RecordService) Add(_ context.Context, moduleID string, record domain.Record) (*domain.Record, error) {
	stored := record.Clone()
	if stored.ID == "" {
		stored.ID = s.ws.newID()
	}
	err := s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		if st.recordIndex(stored.ID) >= 0 {
			return false, &domain.ValidationError{Field: "id", Message: "record " + stored.ID + " already exists"}
		}
		st.records = append(st.records, stored.Clone())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update merges partial into the record. Only supplied keys change; the
// id is never changed. An unknown record id is a no-op.
func (s *RecordService) Update(_ context.Context, moduleID, recordID string, partial map[string]string) error {
	return s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		i := st.recordIndex(recordID)
		if i < 0 {
			return false, nil
		}
		merged := st.records[i].Merge(partial)
		if maps.Equal(merged.Values, st.records[i].Values) {
			return false, nil
		}
		st.records[i] = merged
		return true, nil
	})
}

// Delete removes the record. Idempotent.
func (s *RecordService) Delete(_ context.Context, moduleID, recordID string) error {
	return s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		i := st.recordIndex(recordID)
		if i < 0 {
			return false, nil
		}
		st.records = append(st.records[:i], st.records[i+1:]...)
		return true, nil
	})
}

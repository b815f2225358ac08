package services

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

// Ensure ModuleService implements the interface.
var _ driving.ModuleService = (*ModuleService)(nil)

// ModuleService reports on the fixed module catalog.
type ModuleService struct {
	ws *Workspace
}

// NewModuleService creates a module service over ws.
func NewModuleService(ws *Workspace) *ModuleService {
	return &ModuleService{ws: ws}
}

// List returns every module's summary in catalog order.
func (s *ModuleService) List(ctx context.Context) ([]domain.ModuleSummary, error) {
	modules := s.ws.Modules()
	out := make([]domain.ModuleSummary, 0, len(modules))
	for _, m := range modules {
		summary, err := s.Get(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *summary)
	}
	return out, nil
}

// Get returns one module's summary. DuplicateCount is the size of the
// last duplicate result, 0 before detection has run.
func (s *ModuleService) Get(_ context.Context, moduleID string) (*domain.ModuleSummary, error) {
	m, err := s.ws.Module(moduleID)
	if err != nil {
		return nil, err
	}
	summary := &domain.ModuleSummary{Module: m}
	err = s.ws.view(moduleID, func(st *moduleState) {
		summary.FieldCount = len(st.fields)
		summary.RecordCount = len(st.records)
		summary.DuplicateCount = len(st.duplicates)
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

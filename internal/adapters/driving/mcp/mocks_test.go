package mcp

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/services"
	"github.com/custodia-labs/recordbook/internal/tabular"
)

// newTestPorts wires real services over the built-in catalog.
func newTestPorts() *Ports {
	catalog := domain.DefaultCatalog()
	ws := services.NewWorkspace(catalog, domain.DefaultSnapshot(catalog))
	return &Ports{
		Modules:    services.NewModuleService(ws),
		Schema:     services.NewSchemaService(ws),
		Records:    services.NewRecordService(ws),
		Search:     services.NewSearchService(ws, nil),
		Duplicates: services.NewDuplicateService(ws),
		Transfer:   services.NewTransferService(ws, tabular.Default()),
	}
}

// mockModuleService is a mock implementation of driving.ModuleService.
type mockModuleService struct {
	summaries []domain.ModuleSummary
	err       error
}

func (m *mockModuleService) List(_ context.Context) ([]domain.ModuleSummary, error) {
	return m.summaries, m.err
}

func (m *mockModuleService) Get(_ context.Context, _ string) (*domain.ModuleSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.summaries[0], nil
}

// mockSchemaService is a mock implementation of driving.SchemaService.
type mockSchemaService struct {
	fields []domain.FieldDefinition
	issues []domain.FieldIssue
	err    error
}

func (m *mockSchemaService) Fields(_ context.Context, _ string) ([]domain.FieldDefinition, error) {
	return m.fields, m.err
}

func (m *mockSchemaService) AddField(_ context.Context, _ string, _ domain.FieldDefinition) error {
	return m.err
}

func (m *mockSchemaService) UpdateField(_ context.Context, _, _ string, _ domain.FieldUpdate) error {
	return m.err
}

func (m *mockSchemaService) DeleteField(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockSchemaService) ReorderField(_ context.Context, _ string, _, _ int) error {
	return m.err
}

func (m *mockSchemaService) Check(_ context.Context, _ string, _ map[string]string) ([]domain.FieldIssue, error) {
	return m.issues, m.err
}

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	records []domain.Record
	err     error
}

func (m *mockRecordService) List(_ context.Context, _ string) ([]domain.Record, error) {
	return m.records, m.err
}

func (m *mockRecordService) Get(_ context.Context, _, _ string) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &m.records[0], nil
}

func (m *mockRecordService) Add(_ context.Context, _ string, rec domain.Record) (*domain.Record, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &rec, nil
}

func (m *mockRecordService) Update(_ context.Context, _, _ string, _ map[string]string) error {
	return m.err
}

func (m *mockRecordService) Delete(_ context.Context, _, _ string) error {
	return m.err
}

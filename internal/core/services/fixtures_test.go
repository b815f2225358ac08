package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// recordingSink captures every scheduled snapshot.
type recordingSink struct {
	mu        sync.Mutex
	snapshots []domain.Snapshot
}

func (s *recordingSink) Schedule(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snap)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

func (s *recordingSink) last() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[len(s.snapshots)-1]
}

// failingStore fails every operation.
type failingStore struct {
	err error
}

func (s *failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, s.err
}

func (s *failingStore) Put(context.Context, string, []byte) error {
	return s.err
}

// sequentialIDs returns rec-1, rec-2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("rec-%d", n)
	}
}

func testCatalog() []domain.ModuleTemplate {
	return []domain.ModuleTemplate{
		{
			Module: domain.Module{ID: "clients", Name: "Clients"},
			Fields: []domain.FieldDefinition{
				{ID: "name", Label: "Name", Type: domain.FieldText, Required: true},
				{ID: "email", Label: "Email", Type: domain.FieldEmail},
				{ID: "phone", Label: "Phone", Type: domain.FieldPhone},
				{ID: "segment", Label: "Segment", Type: domain.FieldSelect, Options: []string{"SMB", "Enterprise"}},
				{ID: "revenue", Label: "Revenue", Type: domain.FieldCurrency},
			},
			SampleRecords: []domain.Record{
				domain.NewRecord("c1", map[string]string{"name": "Northwind", "email": "a@x.com", "segment": "SMB"}),
				domain.NewRecord("c2", map[string]string{"name": "Contoso", "email": "A@X.com ", "segment": "Enterprise"}),
				domain.NewRecord("c3", map[string]string{"name": "Fabrikam", "email": "b@y.com"}),
			},
		},
		{
			Module: domain.Module{ID: "brokers", Name: "Brokers"},
		},
	}
}

type testEnv struct {
	ws         *Workspace
	sink       *recordingSink
	schema     *SchemaService
	records    *RecordService
	duplicates *DuplicateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	catalog := testCatalog()
	sink := &recordingSink{}
	ws := NewWorkspace(catalog, domain.DefaultSnapshot(catalog),
		WithSnapshotSink(sink), WithIDGenerator(sequentialIDs()))
	return &testEnv{
		ws:         ws,
		sink:       sink,
		schema:     NewSchemaService(ws),
		records:    NewRecordService(ws),
		duplicates: NewDuplicateService(ws),
	}
}

func fieldIDs(fields []domain.FieldDefinition) []string {
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
	}
	return ids
}

func recordIDs(records []domain.Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

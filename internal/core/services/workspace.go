package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// SnapshotSink receives the complete state after every mutation.
// Schedule must not block.
type SnapshotSink interface {
	Schedule(snapshot domain.Snapshot)
}

// moduleState is the mutable state of one module.
type moduleState struct {
	fields  []domain.FieldDefinition
	records []domain.Record

	// duplicates is the last detection result. Derived, never persisted.
	duplicates []domain.DuplicateGroup
	detected   bool
}

func (s *moduleState) hasField(id string) bool {
	return s.fieldIndex(id) >= 0
}

func (s *moduleState) fieldIndex(id string) int {
	for i := range s.fields {
		if s.fields[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *moduleState) recordIndex(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// Workspace owns the fields and records of every catalog module.
// It is safe for concurrent use.
type Workspace struct {
	mu      sync.RWMutex
	modules []domain.Module
	states  map[string]*moduleState
	sink    SnapshotSink
	newID   func() string
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithSnapshotSink sets the receiver of post-mutation snapshots.
func WithSnapshotSink(sink SnapshotSink) WorkspaceOption {
	return func(w *Workspace) {
		w.sink = sink
	}
}

// WithIDGenerator replaces the record id generator.
func WithIDGenerator(gen func() string) WorkspaceOption {
	return func(w *Workspace) {
		w.newID = gen
	}
}

// NewWorkspace creates a workspace for the catalog seeded from snapshot.
// Catalog modules absent from the snapshot start with no fields and no
// records. Snapshot entries for modules outside the catalog are ignored.
func NewWorkspace(catalog []domain.ModuleTemplate, snapshot domain.Snapshot, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		states: make(map[string]*moduleState, len(catalog)),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(w)
	}

	seeded := snapshot.Clone()
	for _, tmpl := range catalog {
		id := tmpl.Module.ID
		w.modules = append(w.modules, tmpl.Module)
		st := &moduleState{
			fields:  seeded.Fields[id],
			records: seeded.Records[id],
		}
		if st.fields == nil {
			st.fields = []domain.FieldDefinition{}
		}
		if st.records == nil {
			st.records = []domain.Record{}
		}
		w.states[id] = st
	}
	return w
}

// Modules returns the catalog modules in catalog order.
func (w *Workspace) Modules() []domain.Module {
	out := make([]domain.Module, len(w.modules))
	copy(out, w.modules)
	return out
}

// Module returns one catalog module.
func (w *Workspace) Module(moduleID string) (domain.Module, error) {
	for _, m := range w.modules {
		if m.ID == moduleID {
			return m, nil
		}
	}
	return domain.Module{}, domain.ErrUnknownModule
}

// Snapshot returns a deep copy of the persistable state.
func (w *Workspace) Snapshot() domain.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshotLocked()
}

func (w *Workspace) snapshotLocked() domain.Snapshot {
	snap := domain.NewSnapshot()
	for id, st := range w.states {
		snap.Fields[id] = st.fields
		snap.Records[id] = st.records
	}
	return snap.Clone()
}

// view runs fn with read access to one module's state.
// fn must copy anything it returns.
func (w *Workspace) view(moduleID string, fn func(st *moduleState)) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	st, ok := w.states[moduleID]
	if !ok {
		return domain.ErrUnknownModule
	}
	fn(st)
	return nil
}

// mutate runs fn with write access to one module's state. When fn reports
// a persistable change, the new snapshot is handed to the sink before the
// lock is released so snapshots arrive in mutation order.
func (w *Workspace) mutate(moduleID string, fn func(st *moduleState) (bool, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	st, ok := w.states[moduleID]
	if !ok {
		return domain.ErrUnknownModule
	}
	changed, err := fn(st)
	if err != nil {
		return err
	}
	if changed && w.sink != nil {
		w.sink.Schedule(w.snapshotLocked())
	}
	return nil
}

// cloneFields deep-copies a field list.
func cloneFields(fields []domain.FieldDefinition) []domain.FieldDefinition {
	out := make([]domain.FieldDefinition, len(fields))
	for i, f := range fields {
		out[i] = f.Clone()
	}
	return out
}

// cloneRecords deep-copies a record list.
func cloneRecords(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// cloneGroups deep-copies duplicate groups.
func cloneGroups(groups []domain.DuplicateGroup) []domain.DuplicateGroup {
	if groups == nil {
		return nil
	}
	out := make([]domain.DuplicateGroup, len(groups))
	for i, g := range groups {
		g.RecordIDs = append([]string(nil), g.RecordIDs...)
		out[i] = g
	}
	return out
}

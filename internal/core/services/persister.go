package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
	"github.com/custodia-labs/recordbook/internal/logger"
)

// SnapshotKey is the durable slot holding the complete state.
const SnapshotKey = "recordbook-state-v1"

// Ensure Persister implements SnapshotSink.
var _ SnapshotSink = (*Persister)(nil)

// Persister writes snapshots to a KeyValueStore on a background goroutine.
// Only the latest pending snapshot is written; intermediate ones are dropped.
// Failures are logged and never reported to the mutator.
type Persister struct {
	store  driven.KeyValueStore
	key    string
	encode func(domain.Snapshot) ([]byte, error)

	mu        sync.Mutex
	pending   *domain.Snapshot
	scheduled uint64
	written   uint64
	idle      chan struct{}
	closed    bool

	wake    chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// PersisterOption configures a Persister.
type PersisterOption func(*Persister)

// WithSnapshotKey overrides the slot key.
func WithSnapshotKey(key string) PersisterOption {
	return func(p *Persister) {
		p.key = key
	}
}

// WithEncoder overrides snapshot encoding.
func WithEncoder(encode func(domain.Snapshot) ([]byte, error)) PersisterOption {
	return func(p *Persister) {
		p.encode = encode
	}
}

// NewPersister creates a persister and starts its writer goroutine.
// Call Close to drain and stop it.
func NewPersister(store driven.KeyValueStore, opts ...PersisterOption) *Persister {
	p := &Persister{
		store:   store,
		key:     SnapshotKey,
		encode:  encodeSnapshot,
		idle:    make(chan struct{}),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.run()
	return p
}

func encodeSnapshot(s domain.Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// Schedule queues snapshot for writing and returns immediately.
func (p *Persister) Schedule(snapshot domain.Snapshot) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		logger.Debug("persister closed, dropping snapshot")
		return
	}
	p.pending = &snapshot
	p.scheduled++
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every snapshot scheduled before the call is written
// or ctx is done.
func (p *Persister) Flush(ctx context.Context) error {
	p.mu.Lock()
	if p.written >= p.scheduled {
		p.mu.Unlock()
		return nil
	}
	idle := p.idle
	p.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any pending snapshot and stops the writer.
// Snapshots scheduled after Close are dropped.
func (p *Persister) Close(ctx context.Context) error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		close(p.quit)
	})

	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Persister) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.wake:
			p.drain()
		case <-p.quit:
			p.drain()
			return
		}
	}
}

func (p *Persister) drain() {
	for {
		p.mu.Lock()
		if p.pending == nil {
			p.mu.Unlock()
			return
		}
		snap := *p.pending
		seq := p.scheduled
		p.pending = nil
		p.mu.Unlock()

		p.write(snap)

		p.mu.Lock()
		p.written = seq
		if p.written >= p.scheduled {
			close(p.idle)
			p.idle = make(chan struct{})
		}
		p.mu.Unlock()
	}
}

// write never returns an error: a failed encode skips the write so the
// previous durable snapshot stays whole.
func (p *Persister) write(snap domain.Snapshot) {
	data, err := p.encode(snap)
	if err != nil {
		logger.Warnw("snapshot not written", "err", &domain.PersistenceError{Op: "encode", Key: p.key, Err: err})
		return
	}
	// No deadline: a slow store only delays later snapshots.
	if err := p.store.Put(context.Background(), p.key, data); err != nil {
		logger.Warnw("snapshot not written", "err", &domain.PersistenceError{Op: "write", Key: p.key, Err: err})
		return
	}
	logger.Debug("snapshot written to %q (%d bytes)", p.key, len(data))
}

// LoadSnapshot reads the durable slot. A missing, unreadable or corrupt
// slot yields the catalog defaults and a warning. Catalog modules absent
// from a restored snapshot get empty fields and records.
func LoadSnapshot(ctx context.Context, store driven.KeyValueStore, key string, catalog []domain.ModuleTemplate) domain.Snapshot {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warnw("no saved state, using built-in defaults", "key", key)
		} else {
			logger.Warnw("saved state unreadable, using built-in defaults", "key", key,
				"err", &domain.PersistenceError{Op: "read", Key: key, Err: err})
		}
		return domain.DefaultSnapshot(catalog)
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Warnw("saved state corrupt, using built-in defaults", "key", key,
			"err", &domain.PersistenceError{Op: "decode", Key: key, Err: err})
		return domain.DefaultSnapshot(catalog)
	}
	if snap.Records == nil {
		snap.Records = make(map[string][]domain.Record)
	}
	if snap.Fields == nil {
		snap.Fields = make(map[string][]domain.FieldDefinition)
	}

	repairSnapshot(snap)

	for _, tmpl := range catalog {
		id := tmpl.Module.ID
		if snap.Fields[id] == nil {
			snap.Fields[id] = []domain.FieldDefinition{}
		}
		if snap.Records[id] == nil {
			snap.Records[id] = []domain.Record{}
		}
	}
	return snap
}

// repairSnapshot restores id uniqueness in a hand-edited or older document.
// Records with an empty or repeated id get a fresh one; repeated field ids
// keep their first definition.
func repairSnapshot(snap domain.Snapshot) {
	for moduleID, records := range snap.Records {
		seen := make(map[string]struct{}, len(records))
		for i := range records {
			id := records[i].ID
			if _, dup := seen[id]; id == "" || dup {
				fresh := uuid.NewString()
				logger.Warnw("saved record had an empty or repeated id, assigned a new one",
					"module", moduleID, "old", id, "new", fresh)
				records[i].ID = fresh
				id = fresh
			}
			seen[id] = struct{}{}
		}
	}

	for moduleID, fields := range snap.Fields {
		seen := make(map[string]struct{}, len(fields))
		kept := fields[:0]
		for _, f := range fields {
			if _, dup := seen[f.ID]; dup {
				logger.Warnw("saved field id repeated, dropping later definition",
					"module", moduleID, "field", f.ID)
				continue
			}
			seen[f.ID] = struct{}{}
			kept = append(kept, f)
		}
		snap.Fields[moduleID] = kept
	}
}

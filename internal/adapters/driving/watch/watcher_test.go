package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/services"
	"github.com/custodia-labs/recordbook/internal/tabular"
)

type resultLog struct {
	mu      sync.Mutex
	results []Result
}

func (l *resultLog) add(r Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, r)
}

func (l *resultLog) snapshot() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Result(nil), l.results...)
}

func newTestTransfer() (*services.Workspace, *services.TransferService) {
	catalog := domain.DefaultCatalog()
	ws := services.NewWorkspace(catalog, domain.DefaultSnapshot(catalog))
	return ws, services.NewTransferService(ws, tabular.Default())
}

func TestWatcher_ImportsDroppedFile(t *testing.T) {
	dir := t.TempDir()
	ws, transfer := newTestTransfer()
	log := &resultLog{}

	w := New(transfer, tabular.Default(), "clients", dir,
		WithDebounce(50*time.Millisecond),
		WithOnImport(log.add),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "batch.csv"),
		[]byte("name,email\nFabrikam,ops@fabrikam.example\n"), 0600))

	assert.Eventually(t, func() bool {
		return len(log.snapshot()) > 0
	}, 5*time.Second, 20*time.Millisecond)

	for _, r := range log.snapshot() {
		assert.Equal(t, "batch.csv", filepath.Base(r.Path))
		require.NoError(t, r.Err)
		assert.Equal(t, 1, r.Import.Imported)
	}

	snap := ws.Snapshot()
	var names []string
	for _, rec := range snap.Records["clients"] {
		names = append(names, rec.Get("name"))
	}
	assert.Contains(t, names, "Fabrikam")
}

func TestWatcher_RunMissingDir(t *testing.T) {
	_, transfer := newTestTransfer()
	w := New(transfer, tabular.Default(), "clients", filepath.Join(t.TempDir(), "missing"))

	err := w.Run(context.Background())

	assert.Error(t, err)
}

func TestWatcher_RunNotADir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.csv")
	require.NoError(t, os.WriteFile(file, []byte("name\n"), 0600))
	_, transfer := newTestTransfer()
	w := New(transfer, tabular.Default(), "clients", file)

	err := w.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	_, transfer := newTestTransfer()
	w := New(transfer, tabular.Default(), "clients", t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_Handle(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		op        fsnotify.Op
		scheduled bool
	}{
		{"create csv", "a.csv", fsnotify.Create, true},
		{"write xlsx", "a.xlsx", fsnotify.Write, true},
		{"upper case extension", "A.XLS", fsnotify.Create, true},
		{"remove is ignored", "a.csv", fsnotify.Remove, false},
		{"chmod is ignored", "a.csv", fsnotify.Chmod, false},
		{"rename is ignored", "a.csv", fsnotify.Rename, false},
		{"unsupported extension", "a.json", fsnotify.Create, false},
		{"hidden file", ".a.csv", fsnotify.Create, false},
		{"office lock file", "~$a.xlsx", fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, transfer := newTestTransfer()
			w := New(transfer, tabular.Default(), "clients", t.TempDir(), WithDebounce(time.Hour))
			defer w.stop()

			w.handle(context.Background(), fsnotify.Event{Name: filepath.Join("/drop", tt.file), Op: tt.op})

			w.mu.Lock()
			n := len(w.timers)
			w.mu.Unlock()
			if tt.scheduled {
				assert.Equal(t, 1, n)
			} else {
				assert.Zero(t, n)
			}
		})
	}
}

func TestWatcher_DebouncesPerPath(t *testing.T) {
	_, transfer := newTestTransfer()
	w := New(transfer, tabular.Default(), "clients", t.TempDir(), WithDebounce(time.Hour))
	defer w.stop()
	ctx := context.Background()

	w.handle(ctx, fsnotify.Event{Name: "/drop/a.csv", Op: fsnotify.Create})
	w.handle(ctx, fsnotify.Event{Name: "/drop/a.csv", Op: fsnotify.Write})
	w.handle(ctx, fsnotify.Event{Name: "/drop/b.csv", Op: fsnotify.Create})

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Len(t, w.timers, 2)
}

func TestWatcher_ScheduleAfterStopIsIgnored(t *testing.T) {
	_, transfer := newTestTransfer()
	w := New(transfer, tabular.Default(), "clients", t.TempDir(), WithDebounce(time.Millisecond))
	w.stop()

	w.schedule(context.Background(), "/drop/a.csv")

	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Empty(t, w.timers)
}

func TestWatcher_ImportFileMissing(t *testing.T) {
	_, transfer := newTestTransfer()
	var got Result
	w := New(transfer, tabular.Default(), "clients", t.TempDir(), WithOnImport(func(r Result) { got = r }))

	w.importFile(context.Background(), filepath.Join(t.TempDir(), "gone.csv"))

	assert.Error(t, got.Err)
	assert.Nil(t, got.Import)
}

package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// Store keeps each slot as a file in one directory.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates a file store in dir, creating the directory if needed.
// If dir is empty, defaults to ~/.recordbook/data.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".recordbook", "data")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the file holding key. Keys are path-escaped so any key
// maps to a single file inside the directory.
func (s *Store) PathFor(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

// Get returns the contents of the slot file.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.PathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", key, err)
	}
	return data, nil
}

// Put atomically replaces the slot file.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.PathFor(key), value, 0600); err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	return nil
}

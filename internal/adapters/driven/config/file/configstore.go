package file

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
)

// FileName is the settings file inside the config directory.
const FileName = "config.toml"

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in a TOML document. Dot keys address nested
// tables, so "search.limit" lives under [search]. The in-memory tree always
// matches the file: a Set that cannot be written changes nothing.
type ConfigStore struct {
	mu   sync.RWMutex
	path string
	tree map[string]any
}

// NewConfigStore opens dir/config.toml, creating dir when needed. An empty
// dir means ~/.recordbook. A missing file is an empty configuration.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".recordbook")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{path: filepath.Join(dir, FileName)}
	tree, err := readTree(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	s.tree = tree
	return s, nil
}

func readTree(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// Get returns the value at a dot key. Tables are not values.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parts := strings.Split(key, ".")
	node := s.tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := node[part].(map[string]any)
		if !ok {
			return nil, false
		}
		node = next
	}
	val, ok := node[parts[len(parts)-1]]
	if _, isTable := val.(map[string]any); isTable {
		return nil, false
	}
	return val, ok
}

func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt reads TOML integers, which decode as int64, and whole floats
// such as "limit = 5.0".
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return 0
}

func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set stores value at key and rewrites the file. It fails, leaving the
// configuration as it was, when key crosses an existing value or names an
// existing table, when value has no TOML form, or when the write fails.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree := cloneTree(s.tree)
	if err := put(tree, key, value); err != nil {
		return err
	}
	data, err := toml.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return err
	}
	s.tree = tree
	return nil
}

// Path returns the settings file path.
func (s *ConfigStore) Path() string {
	return s.path
}

func put(tree map[string]any, key string, value any) error {
	parts := strings.Split(key, ".")
	node := tree
	for i, part := range parts[:len(parts)-1] {
		switch child := node[part].(type) {
		case nil:
			next := map[string]any{}
			node[part] = next
			node = next
		case map[string]any:
			node = child
		default:
			return fmt.Errorf("config key %q conflicts with value at %q", key, strings.Join(parts[:i+1], "."))
		}
	}
	leaf := parts[len(parts)-1]
	if _, isTable := node[leaf].(map[string]any); isTable {
		return fmt.Errorf("config key %q conflicts with table of the same name", key)
	}
	node[leaf] = value
	return nil
}

func cloneTree(tree map[string]any) map[string]any {
	out := maps.Clone(tree)
	for k, v := range out {
		if sub, ok := v.(map[string]any); ok {
			out[k] = cloneTree(sub)
		}
	}
	return out
}

// writeAtomic replaces path through a 0600 temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+FileName+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

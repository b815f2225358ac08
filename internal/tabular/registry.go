package tabular

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
	"github.com/custodia-labs/recordbook/internal/tabular/csv"
	"github.com/custodia-labs/recordbook/internal/tabular/xls"
	"github.com/custodia-labs/recordbook/internal/tabular/xlsx"
)

// Ensure Registry implements the interface.
var _ driven.TabularRegistry = (*Registry)(nil)

// Registry maps lowercase extensions to parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]driven.TabularParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]driven.TabularParser)}
}

// Default returns a registry for .csv, .xls and .xlsx.
func Default() *Registry {
	r := NewRegistry()
	r.Register(csv.New())
	r.Register(xls.New())
	r.Register(xlsx.New())
	return r
}

// Register adds p for each of its extensions, replacing earlier parsers.
func (r *Registry) Register(p driven.TabularParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range p.Extensions() {
		r.parsers[strings.ToLower(ext)] = p
	}
}

// ForFile returns the parser for name's extension, case-insensitively.
func (r *Registry) ForFile(name string) (driven.TabularParser, error) {
	ext := strings.ToLower(filepath.Ext(name))

	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.parsers[ext]; ok && ext != "" {
		return p, nil
	}
	return nil, &domain.UnsupportedFormatError{FileName: name, Extension: ext}
}

// Supports reports whether name has a registered extension.
func (r *Registry) Supports(name string) bool {
	_, err := r.ForFile(name)
	return err == nil
}

// Extensions returns the registered extensions.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		out = append(out, ext)
	}
	return out
}

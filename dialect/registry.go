package dialect

import (
	"sort"
	"strings"
	"sync"
)

// Registry manages the available dialects, keyed by lower-cased name.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		dialects: make(map[string]Dialect),
	}
}

// DefaultRegistry returns a registry holding the H2 and HSQLDB dialects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewHSQLDB())
	r.Register(NewH2())
	return r
}

// Register adds a dialect, replacing any dialect with the same name.
func (r *Registry) Register(d Dialect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialects[strings.ToLower(d.Name())] = d
}

// Get looks a dialect up by name, ignoring case.
func (r *Registry) Get(name string) (Dialect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dialects[strings.ToLower(name)]
	return d, ok
}

// List returns the registered dialect names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialects))
	for _, d := range r.dialects {
		names = append(names, d.Name())
	}
	sort.Strings(names)
	return names
}

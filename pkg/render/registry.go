package render

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/modelviewer/pkg/model"
)

// Registry selects renderers by element kind. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	byKind   map[string]Renderer
	fallback Renderer
}

// NewRegistry returns a registry that selects fallback for unregistered kinds.
// fallback may be nil, in which case unregistered kinds are skipped.
func NewRegistry(fallback Renderer) *Registry {
	return &Registry{byKind: make(map[string]Renderer), fallback: fallback}
}

// Register sets the renderer for kind. A nil renderer skips elements of that kind.
func (r *Registry) Register(kind string, rd Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[kind] = rd
}

// Select returns the renderer registered for e.Kind, or the fallback.
func (r *Registry) Select(e *model.Element) Renderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rd, ok := r.byKind[e.Kind]; ok {
		return rd
	}
	return r.fallback
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.byKind))
}

package model

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"sync"
)

// Format decodes the top-level elements of a model file.
type Format interface {
	Name() string
	Decode(r io.Reader) ([]*Element, error)
}

// Registry maps file extensions to formats. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]Format
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Format)}
}

// DefaultRegistry returns a registry with the built-in formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	xmi := XMIFormat{}
	for _, ext := range []string{"xmi", "uml", "ecore", "xml"} {
		r.Register(ext, xmi)
	}
	r.Register("json", JSONFormat)
	r.Register("yaml", YAMLFormat)
	r.Register("yml", YAMLFormat)
	r.Register("toml", TOMLFormat)
	return r
}

// Register associates ext (with or without the leading dot) with f.
func (r *Registry) Register(ext string, f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byExt[normalizeExt(ext)] = f
}

// ForPath returns the format registered for the extension of p.
func (r *Registry) ForPath(p string) (Format, error) {
	ext := normalizeExt(path.Ext(p))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.byExt[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, p)
	}
	return nil, fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

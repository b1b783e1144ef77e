package model

import (
	"context"
	"errors"
	"fmt"
)

// ResourceSet creates and owns resources. It is not safe for concurrent use;
// create one set per operation.
type ResourceSet struct {
	registry  *Registry
	opener    Opener
	resources []*Resource
}

// Option configures a [ResourceSet].
type Option func(*ResourceSet)

// WithRegistry sets the format registry. The default is [DefaultRegistry].
func WithRegistry(r *Registry) Option {
	return func(rs *ResourceSet) { rs.registry = r }
}

// WithOpener sets how model files are opened. The default is [OSOpener].
func WithOpener(o Opener) Option {
	return func(rs *ResourceSet) { rs.opener = o }
}

// NewResourceSet creates an empty resource set.
func NewResourceSet(opts ...Option) *ResourceSet {
	rs := &ResourceSet{}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.registry == nil {
		rs.registry = DefaultRegistry()
	}
	if rs.opener == nil {
		rs.opener = OSOpener()
	}
	return rs
}

// CreateResource adds an unloaded resource for location to the set.
func (rs *ResourceSet) CreateResource(location string) (*Resource, error) {
	p, err := LocationPath(location)
	if err != nil {
		return nil, err
	}
	format, err := rs.registry.ForPath(p)
	if err != nil {
		return nil, err
	}
	r := &Resource{
		location: location,
		path:     p,
		format:   format,
		opener:   rs.opener,
	}
	rs.resources = append(rs.resources, r)
	return r, nil
}

// Load creates a resource for location and loads it. The resource stays in the
// set even when loading fails, so [ResourceSet.Unload] covers it.
func (rs *ResourceSet) Load(ctx context.Context, location string, opts LoadOptions) (*Resource, error) {
	r, err := rs.CreateResource(location)
	if err != nil {
		return nil, err
	}
	if err := r.Load(ctx, opts); err != nil {
		return nil, err
	}
	return r, nil
}

// Resources returns the resources created so far.
func (rs *ResourceSet) Resources() []*Resource {
	return rs.resources
}

// Unload unloads every resource in the set. A panic raised while unloading a
// resource (for example by an observer) is converted into an error; the
// remaining resources are still unloaded.
func (rs *ResourceSet) Unload() error {
	var errs []error
	for _, r := range rs.resources {
		if err := unloadOne(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func unloadOne(r *Resource) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unload %s: panic: %v", r.location, p)
		}
	}()
	r.Unload()
	return nil
}

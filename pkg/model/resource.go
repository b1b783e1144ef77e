package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
)

var (
	// ErrMalformed is returned when a model file cannot be decoded.
	ErrMalformed = errors.New("malformed model")

	// ErrUnsupportedFormat is returned when no format is registered for a file extension.
	ErrUnsupportedFormat = errors.New("unsupported model format")

	// ErrUnsupportedScheme is returned for locations that are neither plain paths nor file URIs.
	ErrUnsupportedScheme = errors.New("unsupported location scheme")
)

// LoadOptions control how a resource is loaded.
type LoadOptions struct {
	// DisableNotify suppresses observer notifications for this load and the
	// matching unload. Transient, read-only loads should set it.
	DisableNotify bool
}

// Opener opens model files by path.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to the [Opener] interface.
type OpenerFunc func(ctx context.Context, name string) (io.ReadCloser, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return f(ctx, name)
}

// OSOpener opens files on the local filesystem.
func OSOpener() Opener {
	return OpenerFunc(func(_ context.Context, name string) (io.ReadCloser, error) {
		return os.Open(name)
	})
}

// FSOpener opens files from fsys. Leading slashes are stripped so that
// absolute-looking locations resolve inside fsys.
func FSOpener(fsys fs.FS) Opener {
	return OpenerFunc(func(_ context.Context, name string) (io.ReadCloser, error) {
		name = path.Clean(strings.TrimLeft(name, "/"))
		return fsys.Open(name)
	})
}

// LocationPath converts a model location into a filesystem path. Plain paths are
// returned unchanged; file URIs are reduced to their path.
func LocationPath(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Not a URI, or a Windows drive letter.
		return location, nil
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if u.Path == "" {
		return u.Opaque, nil
	}
	return u.Path, nil
}

// Resource is a model loaded from a single location.
type Resource struct {
	location string
	path     string
	format   Format
	opener   Opener

	contents  []*Element
	index     map[string]*Element
	loaded    bool
	deliver   bool
	observers []Observer
}

// Location returns the location the resource was created for.
func (r *Resource) Location() string { return r.location }

// Format returns the format used to decode the resource.
func (r *Resource) Format() Format { return r.format }

// Contents returns the top-level elements. It is empty until the resource is loaded.
func (r *Resource) Contents() []*Element { return r.contents }

// IsLoaded reports whether the resource currently holds content.
func (r *Resource) IsLoaded() bool { return r.loaded }

// Observe registers an observer for load and unload notifications.
func (r *Resource) Observe(o Observer) {
	r.observers = append(r.observers, o)
}

// Resolve returns the element with the given ID.
func (r *Resource) Resolve(id string) (*Element, bool) {
	e, ok := r.index[id]
	return e, ok
}

// Len returns the number of elements in the resource, at any depth.
func (r *Resource) Len() int {
	return len(r.index)
}

// Load reads and decodes the resource. Loading an already loaded resource is a no-op.
func (r *Resource) Load(ctx context.Context, opts LoadOptions) error {
	if r.loaded {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rc, err := r.opener.Open(ctx, r.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", r.location, err)
	}
	defer rc.Close()

	contents, err := r.format.Decode(rc)
	if err != nil {
		return fmt.Errorf("decode %s: %w", r.location, err)
	}
	index, err := link(contents)
	if err != nil {
		return fmt.Errorf("decode %s: %w", r.location, err)
	}

	r.contents = contents
	r.index = index
	r.loaded = true
	r.deliver = !opts.DisableNotify

	if r.deliver {
		for _, c := range contents {
			c.Walk(func(e *Element) bool {
				r.notify(Notification{Type: Added, Resource: r, Element: e})
				return true
			})
		}
	}
	return nil
}

// Unload discards the resource content. Unloading a resource that is not
// loaded is a no-op.
func (r *Resource) Unload() {
	if !r.loaded {
		return
	}
	r.contents = nil
	r.index = nil
	r.loaded = false
	if r.deliver {
		r.notify(Notification{Type: Unloaded, Resource: r})
	}
}

func (r *Resource) notify(n Notification) {
	for _, o := range r.observers {
		o(n)
	}
}

// link assigns parents and missing IDs and builds the ID index.
func link(contents []*Element) (map[string]*Element, error) {
	index := make(map[string]*Element)
	var visit func(e *Element, parent *Element, pathID string) error
	visit = func(e *Element, parent *Element, pathID string) error {
		e.Parent = parent
		if e.ID == "" {
			e.ID = pathID
		}
		if _, dup := index[e.ID]; dup {
			return fmt.Errorf("%w: duplicate element ID %q", ErrMalformed, e.ID)
		}
		index[e.ID] = e
		for i, c := range e.Children {
			if err := visit(c, e, pathID+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		return nil
	}
	for i, c := range contents {
		if err := visit(c, nil, "/"+strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	return index, nil
}

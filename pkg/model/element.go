package model

import (
	"maps"
	"slices"
)

// Element is a node in a model tree.
type Element struct {
	ID         string            // Unique within its resource
	Kind       string            // Metaclass name, e.g. "Class" or "Package"
	Name       string            // Display name (may be empty)
	Attributes map[string]string // Plain-valued features
	Children   []*Element        // Contained elements, in document order
	References []Reference       // Cross references to other elements by ID

	// Parent is the containing element, nil for top-level contents.
	Parent *Element
}

// Reference is a named, non-containment link to another element.
type Reference struct {
	Name   string
	Target string // ID of the target element
}

// Label returns the element name, falling back to its ID.
func (e *Element) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// AttributeKeys returns the attribute names in sorted order.
func (e *Element) AttributeKeys() []string {
	return slices.Sorted(maps.Keys(e.Attributes))
}

// Walk calls fn for e and every element it contains, depth first, in document
// order. It stops descending into an element when fn returns false.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Depth returns the number of containers above e.
func (e *Element) Depth() int {
	d := 0
	for p := e.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Resolver looks up elements by ID.
type Resolver interface {
	Resolve(id string) (*Element, bool)
}

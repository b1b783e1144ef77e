package render

import (
	"github.com/matzehuels/modelviewer/pkg/dot"
	"github.com/matzehuels/modelviewer/pkg/model"
)

// Session renders the elements of one DOT document.
//
// A Session is not safe for concurrent use.
type Session struct {
	w        *dot.Writer
	selector Selector
	resolver model.Resolver

	rendered map[*model.Element]bool
	nodes    map[*model.Element]bool
	deferred []func(*Session)
}

// NewSession returns a session writing to w. resolver is used to look up
// reference targets and may be nil.
func NewSession(w *dot.Writer, selector Selector, resolver model.Resolver) *Session {
	return &Session{
		w:        w,
		selector: selector,
		resolver: resolver,
		rendered: make(map[*model.Element]bool),
		nodes:    make(map[*model.Element]bool),
	}
}

// Writer returns the document writer.
func (s *Session) Writer() *dot.Writer {
	return s.w
}

// RenderAll renders elems in order and then runs the deferred functions.
func (s *Session) RenderAll(elems []*model.Element) {
	for _, e := range elems {
		s.Render(e)
	}
	// Deferred functions may defer more work.
	for len(s.deferred) > 0 {
		fn := s.deferred[0]
		s.deferred = s.deferred[1:]
		fn(s)
	}
}

// Render renders e with the selected renderer unless it was already rendered
// in this session. It reports whether the renderer wrote anything.
func (s *Session) Render(e *model.Element) bool {
	if e == nil || s.rendered[e] {
		return false
	}
	s.rendered[e] = true
	if s.selector == nil {
		return false
	}
	r := s.selector.Select(e)
	if r == nil {
		return false
	}
	return r.Render(s, e)
}

// IsRendered reports whether e has been handed to [Session.Render].
func (s *Session) IsRendered(e *model.Element) bool {
	return s.rendered[e]
}

// Defer schedules fn to run after all top-level elements are rendered. Edges
// between elements are usually written this way, once every node exists.
func (s *Session) Defer(fn func(*Session)) {
	s.deferred = append(s.deferred, fn)
}

// Resolve looks up an element by ID.
func (s *Session) Resolve(id string) (*model.Element, bool) {
	if s.resolver == nil {
		return nil, false
	}
	return s.resolver.Resolve(id)
}

// NodeID returns the DOT identifier used for e.
func (s *Session) NodeID(e *model.Element) string {
	return dot.ID(e.ID)
}

// Node writes a node statement for e and records it as a node.
func (s *Session) Node(e *model.Element, attrs ...dot.Attr) {
	s.w.Println(joinStmt(s.NodeID(e), dot.AttrList(attrs...)))
	s.nodes[e] = true
}

// HasNode reports whether a node statement was written for e.
func (s *Session) HasNode(e *model.Element) bool {
	return s.nodes[e]
}

// Edge writes an undirected edge statement between two elements.
func (s *Session) Edge(from, to *model.Element, attrs ...dot.Attr) {
	s.w.Println(joinStmt(s.NodeID(from)+" -- "+s.NodeID(to), dot.AttrList(attrs...)))
}

func joinStmt(head, attrs string) string {
	if attrs == "" {
		return head
	}
	return head + " " + attrs
}

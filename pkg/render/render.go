package render

import "github.com/matzehuels/modelviewer/pkg/model"

// Renderer writes the DOT statements for one element. It reports whether
// anything was written.
type Renderer interface {
	Render(s *Session, e *model.Element) bool
}

// RendererFunc adapts a function to the [Renderer] interface.
type RendererFunc func(s *Session, e *model.Element) bool

// Render calls f.
func (f RendererFunc) Render(s *Session, e *model.Element) bool {
	return f(s, e)
}

// Selector picks the renderer for an element. A nil result skips the element.
type Selector interface {
	Select(e *model.Element) Renderer
}

// SelectorFunc adapts a function to the [Selector] interface.
type SelectorFunc func(e *model.Element) Renderer

// Select calls f.
func (f SelectorFunc) Select(e *model.Element) Renderer {
	return f(e)
}

// Package render turns model elements into DOT statements.
//
// # Overview
//
// Rendering is driven by a [Session]: it owns the [dot.Writer] for one document
// and asks a [Selector] which [Renderer] handles each element. Renderers write
// statements through the session and recurse into children with
// [Session.Render]. Each element is rendered at most once per session, so
// renderers may freely render elements out of order (for example, a reference
// target before its container).
//
//	w := dot.Begin(&buf, "OrderModel")
//	s := render.NewSession(w, generic.NewSelector(), resource)
//	s.RenderAll(resource.Contents())
//	err := dot.End(w)
//
// # Selectors
//
// A [Registry] is the usual [Selector]: renderers are registered per element
// kind with a fallback for everything else. A nil renderer means the element
// is skipped.
//
// [dot.Writer]: github.com/matzehuels/modelviewer/pkg/dot.Writer
package render

// Package generic renders arbitrary models without knowledge of their metamodel.
//
// Containers (models and packages) become clusters; every other element becomes
// a plaintext node whose label is a small table showing its kind, name, and
// attributes. Containment is drawn with a diamond at the container end and
// references as dashed, labelled edges.
package generic

import (
	"html"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/modelviewer/pkg/dot"
	"github.com/matzehuels/modelviewer/pkg/model"
	"github.com/matzehuels/modelviewer/pkg/render"
)

// ContainerKinds are the element kinds rendered as clusters.
var ContainerKinds = []string{"Model", "Package", "EPackage"}

// NewSelector returns a registry with [Cluster] registered for the container
// kinds and [Node] as the fallback.
func NewSelector() *render.Registry {
	r := render.NewRegistry(render.RendererFunc(Node))
	for _, kind := range ContainerKinds {
		r.Register(kind, render.RendererFunc(Cluster))
	}
	return r
}

// Cluster renders e as a subgraph cluster containing its children.
func Cluster(s *render.Session, e *model.Element) bool {
	w := s.Writer()
	w.Println("subgraph ", dot.ID("cluster_"+e.ID), " {")
	w.EnterLevel()
	dot.AddAttribute(w, "label", dot.HTML(header(e)))
	dot.AddAttribute(w, "style", "rounded")
	for _, c := range e.Children {
		s.Render(c)
	}
	w.ExitLevel()
	w.Println("}")
	return true
}

// Node renders e as a table node, followed by its children and containment
// edges. Reference edges are written once all elements are rendered.
func Node(s *render.Session, e *model.Element) bool {
	s.Node(e, dot.Attr{Name: "label", Value: dot.HTML(tableLabel(e))})
	for _, c := range e.Children {
		if s.Render(c) && s.HasNode(c) {
			s.Edge(e, c,
				dot.Attr{Name: "dir", Value: "back"},
				dot.Attr{Name: "arrowtail", Value: "diamond"},
			)
		}
	}
	if len(e.References) > 0 {
		s.Defer(func(s *render.Session) { references(s, e) })
	}
	return true
}

// references draws edges to targets that were rendered as nodes. Targets
// outside the resource or rendered as clusters are left out.
func references(s *render.Session, e *model.Element) {
	for _, ref := range e.References {
		target, ok := s.Resolve(ref.Target)
		if !ok || !s.HasNode(target) {
			continue
		}
		s.Edge(e, target,
			dot.Attr{Name: "label", Value: text(ref.Name)},
			dot.Attr{Name: "style", Value: "dashed"},
			dot.Attr{Name: "dir", Value: "forward"},
		)
	}
}

func header(e *model.Element) string {
	h := "«" + text(e.Kind) + "»"
	if e.Name != "" {
		h += "<br/><b>" + text(e.Name) + "</b>"
	}
	return h
}

func tableLabel(e *model.Element) string {
	var b strings.Builder
	b.WriteString(`<table border="0" cellborder="1" cellspacing="0" cellpadding="4">`)
	b.WriteString("<tr><td>" + header(e) + "</td></tr>")
	if keys := e.AttributeKeys(); len(keys) > 0 {
		b.WriteString(`<tr><td align="left" balign="left">`)
		for i, k := range keys {
			if i > 0 {
				b.WriteString("<br/>")
			}
			b.WriteString(text(k) + " = " + text(e.Attributes[k]))
		}
		b.WriteString("</td></tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

// text prepares s for an HTML-like label.
func text(s string) string {
	s = html.EscapeString(norm.NFC.String(strings.ToValidUTF8(s, "\uFFFD")))
	return strings.ReplaceAll(s, "\n", "<br/>")
}

// Package pkg provides the core libraries for modelviewer.
//
// # Overview
//
// Modelviewer renders structured models (XMI, Ecore, JSON, YAML, TOML) as
// Graphviz diagrams. The pkg directory is organized into these areas:
//
//  1. [model] - Resources, elements, and model file formats
//  2. [render] - Rendering sessions and renderer selection; [render/generic]
//     holds the default renderers
//  3. [dot] - DOT document assembly
//  4. [viewer] - DOT generation with scoped teardown, and the content provider
//  5. [export] - Graphviz bridge for images and file exports
//  6. [cache] - Artifact caches (file, Redis, MongoDB)
//  7. [config], [errors], [observability], [buildinfo] - Ambient concerns
//
// # Architecture
//
// The typical data flow:
//
//	Model file
//	    ↓
//	[model] package (load resource into a ResourceSet)
//	    ↓
//	[render] package (select a renderer per element, write DOT)
//	    ↓
//	[viewer] package (document framing, unload, diagnostics)
//	    ↓
//	[export] package (Graphviz layout, cache, image scaling)
//	    ↓
//	PNG/JPG/SVG/XDOT/DOT output
//
// # Quick Start
//
//	gen := viewer.NewGenerator()
//	doc, err := gen.GenerateDOT(ctx, "shop.uml")
//	if err != nil {
//	    return err
//	}
//	if doc == nil {
//	    // nothing to render
//	}
//
//	provider := viewer.NewContentProvider(gen, export.NewGraphvizBridge())
//	err = provider.SaveImage(ctx, image.Point{}, "shop.uml", "shop.svg", export.FormatSVG)
package pkg

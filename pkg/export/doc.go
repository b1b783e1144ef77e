// Package export turns DOT documents into images and files using Graphviz.
//
// # Overview
//
// [GraphvizBridge] is the [Bridge] used by the viewer. It runs the Graphviz
// build embedded in github.com/goccy/go-graphviz (WebAssembly, no system
// install required), so the same binary renders on every platform.
//
//	b := export.NewGraphvizBridge(export.WithEngine(export.EngineNeato))
//	img, err := b.RenderImage(ctx, dot, image.Pt(800, 600))
//	err = b.RenderFile(ctx, dot, "model.svg", export.FormatSVG)
//
// # Caching
//
// Rendered bytes are cached by content: the key combines the SHA-256 of the DOT
// source with the output format and layout engine. Any [cache.Cache] backend
// can be plugged in with [WithCache].
//
// # Empty Input
//
// An empty DOT document means there was nothing to render. [Bridge.RenderImage]
// then returns a 1×1 transparent [Placeholder] and [Bridge.RenderFile] writes
// an empty file; Graphviz is not invoked in either case.
//
// [cache.Cache]: github.com/matzehuels/modelviewer/pkg/cache.Cache
package export

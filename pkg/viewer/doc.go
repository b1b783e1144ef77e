// Package viewer generates DOT documents from model files and hands them to
// an export bridge.
//
// # Generation
//
// [Generator.GenerateDOT] loads a model into a fresh [ResourceContainer],
// renders its top-level contents through a [render.Selector], and returns the
// finished document. The container is unloaded exactly once whatever happens:
//
//   - success: the DOT bytes are returned
//   - the model file does not exist: (nil, nil), since a file removed between
//     request and load is a normal race
//   - anything else, including panics raised while loading or rendering: a
//     single RENDER_ERROR carrying the cause
//
// Errors and panics raised while unloading are logged and never returned.
//
// # Content Provider
//
// [ContentProvider] is the entry point for image and file requests. It maps
// an empty request or an absent model to the 1×1 placeholder image, and
// passes empty DOT through to file exports so that an output file is always
// written.
//
// [render.Selector]: github.com/matzehuels/modelviewer/pkg/render.Selector
package viewer

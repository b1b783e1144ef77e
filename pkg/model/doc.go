// Package model loads model resources into memory.
//
// # Overview
//
// A model resource is a tree of [Element] values read from one file. Resources
// are created and owned by a [ResourceSet], which is the unit of teardown: a
// caller creates a fresh set, loads what it needs, and calls
// [ResourceSet.Unload] when it is done.
//
//	rs := model.NewResourceSet()
//	defer rs.Unload()
//	res, err := rs.Load(ctx, "models/OrderModel.uml", model.LoadOptions{DisableNotify: true})
//	if errors.Is(err, fs.ErrNotExist) {
//	    // the file is gone
//	}
//
// # Formats
//
// Resources are decoded by a [Format] chosen from the file extension:
//
//   - .xmi, .uml, .ecore, .xml: XMI documents ([XMIFormat])
//   - .json, .yaml, .yml, .toml: element documents ([DocumentFormat])
//
// Additional formats can be registered on a [Registry].
//
// # Errors
//
// Loading fails with an error wrapping [fs.ErrNotExist] when the file does not
// exist, [ErrMalformed] when its content cannot be decoded, and
// [ErrUnsupportedFormat] when no format is registered for its extension.
package model

package dot

import (
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Begin writes the graph header and default attribute blocks to out and returns
// a Writer positioned one level inside the graph body.
func Begin(out io.Writer, name string) *Writer {
	w := NewWriter(out)
	w.Println("graph ", ID(name), " {")
	w.EnterLevel()
	AddAttribute(w, "ranksep", 0.8)
	AddAttribute(w, "nodesep", 0.85)
	AddAttribute(w, "nojustify", true)

	// Reserved for layout hints.
	w.Println("graph [")
	w.EnterLevel()
	w.ExitLevel()
	w.Println("]")

	w.Println("node [")
	w.EnterLevel()
	AddAttribute(w, "fontsize", 12)
	AddAttribute(w, "shape", "plaintext")
	w.ExitLevel()
	w.Println("]")

	w.Println("edge [")
	w.EnterLevel()
	AddAttribute(w, "fontsize", 9)
	w.ExitLevel()
	w.Println("]")
	return w
}

// End closes the graph opened by [Begin] and returns the first write error.
func End(w *Writer) error {
	w.ExitLevel()
	w.Println()
	w.Println("}")
	return w.Err()
}

// GraphName derives a graph name from a model location by taking its last path
// segment and stripping the file extension. Both plain paths and URIs are
// accepted.
func GraphName(location string) string {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		p = u.Path
		if p == "" {
			p = u.Opaque
		}
	}
	p = filepath.ToSlash(p)
	p = strings.TrimRight(p, "/")
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Package dot writes Graphviz DOT documents.
//
// # Overview
//
// The package has three parts:
//
//   - [Writer]: an indentation-aware line writer. Renderers call
//     [Writer.EnterLevel] and [Writer.ExitLevel] around nested blocks and every
//     line is prefixed with the current indentation.
//   - [Begin] and [End]: the document assembler. Begin writes the graph header and
//     the default graph, node, and edge attribute blocks; End closes the graph.
//   - [ID], [AddAttribute], [HTML]: identifier quoting and attribute helpers.
//
// # Usage
//
//	var buf bytes.Buffer
//	w := dot.Begin(&buf, dot.GraphName("file:///models/OrderModel.uml"))
//	w.Println(dot.ID("a") + " -- " + dot.ID("b"))
//	if err := dot.End(w); err != nil {
//	    return err
//	}
//
// The resulting document starts with "graph OrderModel {" and ends with "}".
// Names that are not valid DOT identifiers are double-quoted by [ID].
package dot

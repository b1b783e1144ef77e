package dot

import (
	"fmt"
	"io"
	"strings"
)

// DefaultIndent is the string written once per indentation level.
const DefaultIndent = "    "

// Writer is a line-oriented writer that prefixes every non-empty line with the
// current indentation. It records the first write error and turns subsequent
// writes into no-ops; callers check [Writer.Err] once at the end.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	indent string
	level  int
	bol    bool // at beginning of line
	err    error
}

// NewWriter returns a Writer writing to w with [DefaultIndent].
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, indent: DefaultIndent, bol: true}
}

// SetIndent changes the per-level indentation string.
func (w *Writer) SetIndent(indent string) {
	w.indent = indent
}

// EnterLevel increases the indentation by one level.
func (w *Writer) EnterLevel() {
	w.level++
}

// ExitLevel decreases the indentation by one level. It never goes below zero.
func (w *Writer) ExitLevel() {
	if w.level > 0 {
		w.level--
	}
}

// Level returns the current indentation level.
func (w *Writer) Level() int {
	return w.level
}

// Print writes s without a trailing newline. Embedded newlines start new
// indented lines.
func (w *Writer) Print(s string) {
	for s != "" {
		line, rest, found := strings.Cut(s, "\n")
		if line != "" {
			if w.bol {
				w.write(strings.Repeat(w.indent, w.level))
			}
			w.write(line)
			w.bol = false
		}
		if !found {
			return
		}
		w.write("\n")
		w.bol = true
		s = rest
	}
}

// Println writes the concatenation of parts followed by a newline. Called
// without arguments it writes an empty line.
func (w *Writer) Println(parts ...string) {
	w.Print(strings.Join(parts, ""))
	w.write("\n")
	w.bol = true
}

// Printf formats according to format and writes the result as a full line.
func (w *Writer) Printf(format string, args ...any) {
	w.Println(fmt.Sprintf(format, args...))
}

// Err returns the first error encountered while writing.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

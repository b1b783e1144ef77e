package dot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// HTML is an HTML-like label. It is emitted between angle brackets instead of
// being quoted.
type HTML string

var (
	identRe   = regexp.MustCompile(`^[A-Za-z_\x{0080}-\x{10FFFF}][A-Za-z_0-9\x{0080}-\x{10FFFF}]*$`)
	numeralRe = regexp.MustCompile(`^-?(\.[0-9]+|[0-9]+(\.[0-9]*)?)$`)
)

var keywords = map[string]bool{
	"node":     true,
	"edge":     true,
	"graph":    true,
	"digraph":  true,
	"subgraph": true,
	"strict":   true,
}

// ID returns s as a DOT identifier. Plain identifiers and numerals are returned
// unchanged; anything else, including the DOT keywords, the empty string, and
// invalid UTF-8, is passed through [Quote].
func ID(s string) string {
	if s != "" && utf8.ValidString(s) && !keywords[strings.ToLower(s)] &&
		(identRe.MatchString(s) || numeralRe.MatchString(s)) {
		return s
	}
	return Quote(s)
}

// Quote always returns s as a double-quoted DOT string. Distinct inputs give
// distinct outputs: backslashes and quotes are escaped, line breaks become
// \n and \r, and bytes that are not valid UTF-8 are written as \xNN.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02X`, s[i])
			i++
			continue
		}
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

// Value formats an attribute value.
func Value(v any) string {
	switch v := v.(type) {
	case HTML:
		return "<" + string(v) + ">"
	case string:
		return ID(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return ID(v.String())
	default:
		return ID(fmt.Sprint(v))
	}
}

// AddAttribute writes name=value as its own line.
func AddAttribute(w *Writer, name string, value any) {
	w.Println(ID(name), "=", Value(value))
}

// Attr is a single name/value attribute in an attribute list.
type Attr struct {
	Name  string
	Value any
}

// AttrList formats attrs as an inline DOT attribute list, "[a=1, b=2]".
// An empty list yields the empty string.
func AttrList(attrs ...Attr) string {
	if len(attrs) == 0 {
		return ""
	}
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = ID(a.Name) + "=" + Value(a.Value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

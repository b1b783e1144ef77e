package model

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// XMIFormat decodes XMI and plain XML model files.
//
// Every XML element becomes an [Element]. The kind comes from xmi:type or
// xsi:type (without the namespace prefix), falling back to the tag name; the ID
// from xmi:id or id; the name from the name attribute. Other unqualified
// attributes become element attributes, except those whose every
// whitespace-separated token is the ID of an element in the same document:
// those become references.
//
// When the document root is an xmi:XMI wrapper its children are the top-level
// contents; otherwise the root element is the only top-level element.
type XMIFormat struct{}

// Name returns "xmi".
func (XMIFormat) Name() string { return "xmi" }

// Decode parses r.
func (XMIFormat) Decode(r io.Reader) ([]*Element, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Element
	var root *Element
	rootIsWrapper := false
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("%w: unexpected element %s after document end", ErrMalformed, t.Name.Local)
			}
			elem := newXMIElement(t)
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
				rootIsWrapper = t.Name.Local == "XMI" && isXMINamespace(t.Name.Space)
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	if !rootClosed {
		return nil, fmt.Errorf("%w: unexpected end of document", ErrMalformed)
	}

	contents := []*Element{root}
	if rootIsWrapper {
		contents = root.Children
	}
	resolveIDRefs(contents)
	return contents, nil
}

func newXMIElement(t xml.StartElement) *Element {
	e := &Element{Kind: t.Name.Local}
	var plainID string
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns"):
			// namespace declaration
		case a.Name.Local == "type" && (isXMINamespace(a.Name.Space) || isXSINamespace(a.Name.Space)):
			e.Kind = localName(a.Value)
		case a.Name.Local == "id" && isXMINamespace(a.Name.Space):
			e.ID = a.Value
		case a.Name.Space != "":
			// other qualified attributes (xmi:version, xsi:schemaLocation, ...)
		case a.Name.Local == "id":
			plainID = a.Value
		case a.Name.Local == "name":
			e.Name = a.Value
		default:
			if e.Attributes == nil {
				e.Attributes = make(map[string]string)
			}
			e.Attributes[a.Name.Local] = a.Value
		}
	}
	if e.ID == "" {
		e.ID = plainID
	}
	return e
}

// resolveIDRefs turns attributes that hold IDs of other elements into references.
func resolveIDRefs(contents []*Element) {
	ids := make(map[string]bool)
	for _, c := range contents {
		c.Walk(func(e *Element) bool {
			if e.ID != "" {
				ids[e.ID] = true
			}
			return true
		})
	}
	for _, c := range contents {
		c.Walk(func(e *Element) bool {
			for _, k := range e.AttributeKeys() {
				tokens := strings.Fields(e.Attributes[k])
				if len(tokens) == 0 || !allKnown(tokens, ids) {
					continue
				}
				for _, tok := range tokens {
					e.References = append(e.References, Reference{Name: k, Target: tok})
				}
				delete(e.Attributes, k)
			}
			return true
		})
	}
}

func allKnown(tokens []string, ids map[string]bool) bool {
	for _, tok := range tokens {
		if !ids[tok] {
			return false
		}
	}
	return true
}

func localName(qualified string) string {
	if i := strings.LastIndexByte(qualified, ':'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func isXMINamespace(space string) bool {
	s := strings.ToLower(space)
	return s == "xmi" || strings.HasPrefix(s, "http://www.omg.org/xmi") || strings.HasPrefix(s, "http://www.omg.org/spec/xmi")
}

func isXSINamespace(space string) bool {
	return space == "xsi" || space == "http://www.w3.org/2001/XMLSchema-instance"
}

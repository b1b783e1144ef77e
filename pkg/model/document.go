package model

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DocumentFormat decodes element documents written in a generic data language.
// The document is a map with a "contents" list; each element is a map with the
// keys id, kind, name, attributes, children, and references:
//
//	contents:
//	  - id: order
//	    kind: Class
//	    name: Order
//	    attributes: {abstract: false}
//	    references:
//	      - {name: customer, target: customer}
//
// Attribute values are converted to strings. Unknown keys are rejected.
type DocumentFormat struct {
	FormatName string
	Unmarshal  func(data []byte, v any) error
}

// Built-in document formats.
var (
	JSONFormat = DocumentFormat{FormatName: "json", Unmarshal: json.Unmarshal}
	YAMLFormat = DocumentFormat{FormatName: "yaml", Unmarshal: yaml.Unmarshal}
	TOMLFormat = DocumentFormat{FormatName: "toml", Unmarshal: toml.Unmarshal}
)

// Name returns the format name.
func (f DocumentFormat) Name() string { return f.FormatName }

type rawDocument struct {
	Contents []rawElement `mapstructure:"contents"`
}

type rawElement struct {
	ID         string            `mapstructure:"id"`
	Kind       string            `mapstructure:"kind"`
	Name       string            `mapstructure:"name"`
	Attributes map[string]string `mapstructure:"attributes"`
	Children   []rawElement      `mapstructure:"children"`
	References []rawReference    `mapstructure:"references"`
}

type rawReference struct {
	Name   string `mapstructure:"name"`
	Target string `mapstructure:"target"`
}

// Decode reads the whole document and maps it onto elements.
func (f DocumentFormat) Decode(r io.Reader) ([]*Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := f.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var doc rawDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       scalarToString,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	contents := make([]*Element, 0, len(doc.Contents))
	for _, re := range doc.Contents {
		e, err := re.toElement()
		if err != nil {
			return nil, err
		}
		contents = append(contents, e)
	}
	return contents, nil
}

// scalarToString renders booleans and numbers the way they were written,
// where weak typing would turn true into "1".
func scalarToString(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(data), nil
	}
	return data, nil
}

func (re rawElement) toElement() (*Element, error) {
	if re.Kind == "" {
		return nil, fmt.Errorf("%w: element %q has no kind", ErrMalformed, re.ID)
	}
	e := &Element{
		ID:         re.ID,
		Kind:       re.Kind,
		Name:       re.Name,
		Attributes: re.Attributes,
	}
	for _, ref := range re.References {
		if ref.Target == "" {
			return nil, fmt.Errorf("%w: reference %q of %q has no target", ErrMalformed, ref.Name, re.ID)
		}
		e.References = append(e.References, Reference{Name: ref.Name, Target: ref.Target})
	}
	for _, rc := range re.Children {
		c, err := rc.toElement()
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, c)
	}
	return e, nil
}

package export

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/modelviewer/pkg/errors"
)

// Format is an output file format.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatSVG  Format = "svg"
	FormatXDOT Format = "xdot" // DOT with layout information
	FormatDOT  Format = "dot"  // DOT source, written unchanged
)

var formats = []Format{FormatPNG, FormatJPG, FormatSVG, FormatXDOT, FormatDOT}

// Formats returns the supported formats.
func Formats() []Format {
	return slices.Clone(formats)
}

// ParseFormat parses a format name. "jpeg" is accepted for [FormatJPG].
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "jpeg" {
		return FormatJPG, nil
	}
	if f := Format(s); slices.Contains(formats, f) {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (valid: %s)", s, joinFormats())
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// ContentType returns the media type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/vnd.graphviz"
	}
}

// graphviz returns the Graphviz output format, or false for [FormatDOT].
func (f Format) graphviz() (graphviz.Format, bool) {
	switch f {
	case FormatPNG:
		return graphviz.PNG, true
	case FormatJPG:
		return graphviz.JPG, true
	case FormatSVG:
		return graphviz.SVG, true
	case FormatXDOT:
		return graphviz.XDOT, true
	}
	return "", false
}

func joinFormats() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Engine is a Graphviz layout engine.
type Engine string

// Supported layout engines.
const (
	EngineDot       Engine = Engine(graphviz.DOT)
	EngineNeato     Engine = Engine(graphviz.NEATO)
	EngineFdp       Engine = Engine(graphviz.FDP)
	EngineCirco     Engine = Engine(graphviz.CIRCO)
	EngineTwopi     Engine = Engine(graphviz.TWOPI)
	EngineSfdp      Engine = Engine(graphviz.SFDP)
	EngineOsage     Engine = Engine(graphviz.OSAGE)
	EnginePatchwork Engine = Engine(graphviz.PATCHWORK)
)

var engines = []Engine{EngineDot, EngineNeato, EngineFdp, EngineCirco, EngineTwopi, EngineSfdp, EngineOsage, EnginePatchwork}

// Engines returns the supported layout engines.
func Engines() []Engine {
	return slices.Clone(engines)
}

// ParseEngine parses a layout engine name. The empty string selects [EngineDot].
func ParseEngine(s string) (Engine, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return EngineDot, nil
	}
	if e := Engine(s); slices.Contains(engines, e) {
		return e, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown layout engine %q", s)
}

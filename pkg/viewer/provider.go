package viewer

import (
	"context"
	"image"

	"github.com/matzehuels/modelviewer/pkg/export"
)

// DOTGenerator produces DOT documents. A nil document with a nil error means
// there is nothing to render.
type DOTGenerator interface {
	GenerateDOT(ctx context.Context, location string) ([]byte, error)
}

// ContentProvider serves images and file exports for model locations.
type ContentProvider struct {
	gen    DOTGenerator
	bridge export.Bridge
}

// NewContentProvider combines a generator with an export bridge.
func NewContentProvider(gen DOTGenerator, bridge export.Bridge) *ContentProvider {
	return &ContentProvider{gen: gen, bridge: bridge}
}

// LoadImage returns the image for the model at input, scaled to fit
// desiredSize. An empty input or a missing model yields the 1×1 placeholder
// without calling the bridge; an empty input does not even load.
func (p *ContentProvider) LoadImage(ctx context.Context, desiredSize image.Point, input string) (image.Image, error) {
	if input == "" {
		return export.Placeholder(), nil
	}
	dot, err := p.gen.GenerateDOT(ctx, input)
	if err != nil {
		return nil, err
	}
	if len(dot) == 0 {
		return export.Placeholder(), nil
	}
	return p.bridge.RenderImage(ctx, dot, desiredSize)
}

// SaveImage writes the model at input to outputPath in format. When the model
// is missing the empty document is still handed to the bridge, which writes
// an empty file. suggestedSize is advisory; exports keep the size Graphviz
// lays out.
func (p *ContentProvider) SaveImage(ctx context.Context, suggestedSize image.Point, input, outputPath string, format export.Format) error {
	dot, err := p.gen.GenerateDOT(ctx, input)
	if err != nil {
		return err
	}
	if dot == nil {
		dot = []byte{}
	}
	return p.bridge.RenderFile(ctx, dot, outputPath, format)
}

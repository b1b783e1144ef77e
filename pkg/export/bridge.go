package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/modelviewer/pkg/cache"
	"github.com/matzehuels/modelviewer/pkg/errors"
	"github.com/matzehuels/modelviewer/pkg/observability"
)

// Bridge produces images and files from DOT documents.
type Bridge interface {
	// RenderImage renders dot and scales the result to fit desiredSize.
	RenderImage(ctx context.Context, dot []byte, desiredSize image.Point) (image.Image, error)

	// RenderFile renders dot in format and writes it to outputPath.
	RenderFile(ctx context.Context, dot []byte, outputPath string, format Format) error
}

// GraphvizBridge renders with the embedded Graphviz. It is safe for
// concurrent use; every render runs in its own Graphviz instance.
type GraphvizBridge struct {
	engine Engine
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

// Option configures a [GraphvizBridge].
type Option func(*GraphvizBridge)

// WithEngine sets the layout engine. The default is [EngineDot].
func WithEngine(e Engine) Option {
	return func(b *GraphvizBridge) { b.engine = e }
}

// WithCache caches rendered bytes in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(b *GraphvizBridge) {
		b.cache = c
		b.ttl = ttl
	}
}

// WithKeyer sets how cache keys are built.
func WithKeyer(k cache.Keyer) Option {
	return func(b *GraphvizBridge) { b.keyer = k }
}

// WithLogger sets the logger. The default discards debug output.
func WithLogger(l *log.Logger) Option {
	return func(b *GraphvizBridge) { b.logger = l }
}

// NewGraphvizBridge creates a bridge. Without [WithCache] nothing is cached.
func NewGraphvizBridge(opts ...Option) *GraphvizBridge {
	b := &GraphvizBridge{
		engine: EngineDot,
		cache:  cache.NewNullCache(),
		keyer:  cache.NewDefaultKeyer(),
		ttl:    cache.TTLArtifact,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Engine returns the configured layout engine.
func (b *GraphvizBridge) Engine() Engine {
	return b.engine
}

// RenderImage implements [Bridge].
func (b *GraphvizBridge) RenderImage(ctx context.Context, dot []byte, desiredSize image.Point) (image.Image, error) {
	if len(dot) == 0 {
		return Placeholder(), nil
	}
	data, err := b.Render(ctx, dot, FormatPNG)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "decode png")
	}
	return Fit(img, desiredSize), nil
}

// RenderFile implements [Bridge]. Empty input produces an empty file.
func (b *GraphvizBridge) RenderFile(ctx context.Context, dot []byte, outputPath string, format Format) error {
	if err := errors.ValidateOutputPath(outputPath); err != nil {
		return err
	}
	var data []byte
	if len(dot) > 0 {
		var err error
		if data, err = b.Render(ctx, dot, format); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", outputPath)
	}
	b.logger.Debug("wrote export", "path", outputPath, "format", format, "bytes", len(data))
	return nil
}

// Render returns dot rendered in format, using the cache when possible.
// [FormatDOT] returns dot unchanged.
func (b *GraphvizBridge) Render(ctx context.Context, dot []byte, format Format) ([]byte, error) {
	gvFormat, ok := format.graphviz()
	if !ok {
		if format == FormatDOT {
			return bytes.Clone(dot), nil
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}

	key := b.keyer.ArtifactKey(cache.Hash(dot), cache.ArtifactKeyOpts{
		Format: string(format),
		Engine: string(b.engine),
	})
	if data, hit, err := b.cache.Get(ctx, key); err != nil {
		b.logger.Warn("cache read failed", "err", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Export()
	hooks.OnExportStart(ctx, string(format), string(b.engine))
	start := time.Now()
	data, err := b.renderGraphviz(ctx, dot, gvFormat)
	hooks.OnExportComplete(ctx, string(format), string(b.engine), len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if format == FormatSVG {
		data = normalizeViewBox(data)
	}
	b.logger.Debug("rendered", "format", format, "engine", b.engine, "bytes", len(data), "elapsed", time.Since(start).Round(time.Millisecond))

	if err := b.cache.Set(ctx, key, data, b.ttl); err != nil {
		b.logger.Warn("cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}

func (b *GraphvizBridge) renderGraphviz(ctx context.Context, dot []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.SetLayout(graphviz.Layout(b.engine)).Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and scales with its container in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	loc := svgTagRe.FindIndex(svg)
	if loc == nil {
		return svg
	}
	out := make([]byte, 0, len(svg))
	out = append(out, svg[:loc[0]]...)
	out = append(out, root...)
	return append(out, svg[loc[1]:]...)
}

var _ Bridge = (*GraphvizBridge)(nil)

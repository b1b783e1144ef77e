package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modelviewer/pkg/config"
	"github.com/matzehuels/modelviewer/pkg/dot"
	mverrors "github.com/matzehuels/modelviewer/pkg/errors"
	"github.com/matzehuels/modelviewer/pkg/model"
	"github.com/matzehuels/modelviewer/pkg/observability"
	"github.com/matzehuels/modelviewer/pkg/render"
	"github.com/matzehuels/modelviewer/pkg/render/generic"
)

// ID identifies this component in errors and log output.
const ID = "modelviewer"

// Generator produces DOT documents from model locations.
// It holds no per-call state and is safe for concurrent use as long as its
// selector is.
type Generator struct {
	selector     render.Selector
	diagnostics  config.Diagnostics
	logger       *log.Logger
	newContainer ContainerFactory
	stdout       io.Writer
	memStats     func() MemoryStats
}

// Option configures a [Generator].
type Option func(*Generator)

// WithSelector sets the renderer selector. The default is [generic.NewSelector].
func WithSelector(s render.Selector) Option {
	return func(g *Generator) { g.selector = s }
}

// WithDiagnostics enables diagnostic output.
func WithDiagnostics(d config.Diagnostics) Option {
	return func(g *Generator) { g.diagnostics = d }
}

// WithLogger sets the logger. The default is the global logger with the
// component prefix.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithContainerFactory sets how resource containers are created.
func WithContainerFactory(f ContainerFactory) Option {
	return func(g *Generator) { g.newContainer = f }
}

// WithOpener reads models through opener, using resource sets as containers.
func WithOpener(opener model.Opener) Option {
	return WithContainerFactory(ResourceSetFactory(opener))
}

// WithStdout sets where memory diagnostics are printed. The default is os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(g *Generator) { g.stdout = w }
}

// NewGenerator creates a generator reading models from the local filesystem.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		selector:     generic.NewSelector(),
		logger:       log.Default().WithPrefix(ID),
		newContainer: ResourceSetFactory(model.OSOpener()),
		stdout:       os.Stdout,
		memStats:     readMemoryStats,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateDOT loads the model at location and renders it as a DOT document.
// It returns (nil, nil) when the model file does not exist and a RENDER_ERROR
// for every other failure. No partial output is ever returned.
func (g *Generator) GenerateDOT(ctx context.Context, location string) (out []byte, err error) {
	hooks := observability.Generator()
	hooks.OnGenerateStart(ctx, location)
	start := time.Now()
	defer func() {
		hooks.OnGenerateComplete(ctx, location, len(out), time.Since(start), err)
	}()

	container := g.newContainer()
	defer g.unload(container, location)
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = renderError(location, fmt.Errorf("panic: %v", p))
		}
	}()

	res, err := container.Load(ctx, location, model.LoadOptions{DisableNotify: true})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Debug("model not found", "location", location)
			return nil, nil
		}
		return nil, renderError(location, err)
	}

	var buf bytes.Buffer
	w := dot.Begin(&buf, dot.GraphName(location))
	render.NewSession(w, g.selector, res).RenderAll(res.Contents())
	if err := dot.End(w); err != nil {
		return nil, renderError(location, err)
	}

	out = buf.Bytes()
	g.logger.Debug("generated", "location", location, "elements", res.Len(), "bytes", len(out))
	g.diagnose(location, out)
	return out, nil
}

// unload releases the container. Failures are logged only: the generation
// result is already decided.
func (g *Generator) unload(c ResourceContainer, location string) {
	defer func() {
		if p := recover(); p != nil {
			g.logger.Error("unload panicked", "location", location, "panic", p)
		}
	}()
	if err := c.Unload(); err != nil {
		g.logger.Error("unload failed", "location", location, "err", err)
	}
}

func renderError(location string, cause error) error {
	return mverrors.Wrap(mverrors.ErrCodeRender, cause, "render %s", location).In(ID)
}

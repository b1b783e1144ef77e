// Package server exposes the model viewer over HTTP.
//
// Models are addressed by paths relative to a root directory and are never
// read from outside it. Routes:
//
//	GET /healthz
//	GET /api/v1/dot?model=<path>
//	GET /api/v1/image?model=<path>&width=<px>&height=<px>
//	GET /api/v1/export?model=<path>&format=<png|jpg|svg|xdot|dot>
//	GET /metrics (only with a gatherer)
package server

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mverrors "github.com/matzehuels/modelviewer/pkg/errors"
	"github.com/matzehuels/modelviewer/pkg/export"
	"github.com/matzehuels/modelviewer/pkg/model"
	"github.com/matzehuels/modelviewer/pkg/viewer"
)

const shutdownTimeout = 5 * time.Second

// Server serves DOT documents, images, and exports for models under a root.
type Server struct {
	root     string
	tmpDir   string
	logger   *log.Logger
	gatherer prometheus.Gatherer
	genOpts  []viewer.Option

	gen      *viewer.Generator
	provider *viewer.ContentProvider
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithGatherer mounts /metrics backed by g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithTempDir sets where exports are staged. Defaults to os.TempDir().
func WithTempDir(dir string) Option {
	return func(s *Server) { s.tmpDir = dir }
}

// WithGeneratorOptions passes extra options to the DOT generator. The opener
// is always bound to the server root.
func WithGeneratorOptions(opts ...viewer.Option) Option {
	return func(s *Server) { s.genOpts = append(s.genOpts, opts...) }
}

// New creates a Server that resolves models inside root and renders through bridge.
func New(root string, bridge export.Bridge, opts ...Option) *Server {
	s := &Server{
		root:   root,
		tmpDir: os.TempDir(),
		logger: log.Default().WithPrefix("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	genOpts := append([]viewer.Option{viewer.WithLogger(s.logger)}, s.genOpts...)
	genOpts = append(genOpts, viewer.WithOpener(model.FSOpener(os.DirFS(root))))
	s.gen = viewer.NewGenerator(genOpts...)
	s.provider = viewer.NewContentProvider(s.gen, bridge)
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dot", s.handleDOT)
		r.Get("/image", s.handleImage)
		r.Get("/export", s.handleExport)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "root", s.root)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.modelParam(w, r)
	if !ok {
		return
	}
	dot, err := s.gen.GenerateDOT(r.Context(), loc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write(dot)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.modelParam(w, r)
	if !ok {
		return
	}
	size, err := sizeParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	img, err := s.provider.LoadImage(r.Context(), size, loc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", export.FormatPNG.ContentType())
	if err := png.Encode(w, img); err != nil {
		s.logger.Warn("encode image", "model", loc, "err", err)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.modelParam(w, r)
	if !ok {
		return
	}
	format := export.FormatSVG
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := export.ParseFormat(f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = parsed
	}

	out := filepath.Join(s.tmpDir, uuid.NewString()+"."+string(format))
	defer os.Remove(out)
	if err := s.provider.SaveImage(r.Context(), image.Point{}, loc, out, format); err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := os.ReadFile(out)
	if err != nil {
		s.writeError(w, r, mverrors.Wrap(mverrors.ErrCodeInternal, err, "read export"))
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportName(loc, format)+`"`)
	_, _ = w.Write(data)
}

// modelParam validates the model query parameter and writes a 400 on failure.
func (s *Server) modelParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	loc := r.URL.Query().Get("model")
	if err := mverrors.ValidateModelPath(loc); err != nil {
		s.writeError(w, r, err)
		return "", false
	}
	return loc, true
}

func sizeParams(r *http.Request) (image.Point, error) {
	var size image.Point
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &size.X}, {"height", &size.Y}} {
		v := r.URL.Query().Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return image.Point{}, mverrors.New(mverrors.ErrCodeInvalidInput, "invalid %s %q", p.name, v)
		}
		*p.dst = n
	}
	return size, nil
}

func exportName(loc string, format export.Format) string {
	base := filepath.Base(loc)
	return base[:len(base)-len(filepath.Ext(base))] + "." + string(format)
}

type errorBody struct {
	Code    mverrors.Code `json:"code"`
	Message string        `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "err", err)
	}
	code := mverrors.GetCode(err)
	if code == "" {
		code = mverrors.ErrCodeInternal
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Code: code, Message: mverrors.UserMessage(err)})
}

func statusFor(err error) int {
	switch mverrors.GetCode(err) {
	case mverrors.ErrCodeInvalidInput, mverrors.ErrCodeInvalidFormat, mverrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case mverrors.ErrCodeNotFound:
		return http.StatusNotFound
	case mverrors.ErrCodeRender:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

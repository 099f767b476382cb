// Package server exposes a workspace over HTTP.
//
// The API mirrors the workspace operations: boards and notes are edited with
// JSON requests under /api, pointer gestures are streamed as
// /api/pointer/{down,move,up,leave} calls, and the canvas itself is served
// as HTML (/), SVG (/canvas.svg) or any pipeline format (/render/{format}).
//
// Errors are returned as {"code": ..., "message": ...} with the status code
// derived from the error code.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/pipeline"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// SaveFunc persists a project snapshot.
type SaveFunc func(ctx context.Context, p *board.Project) error

// Server serves one workspace.
type Server struct {
	ws       *workspace.Workspace
	runner   *pipeline.Runner
	save     SaveFunc
	gatherer prometheus.Gatherer
	logger   *log.Logger
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithRunner renders /render/{format} through r. Without it the server uses
// an uncached runner.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) { s.runner = r }
}

// WithSave enables POST /api/save.
func WithSave(fn SaveFunc) Option {
	return func(s *Server) { s.save = fn }
}

// WithMetrics exposes g on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds the router for ws.
func New(ws *workspace.Workspace, opts ...Option) *Server {
	s := &Server{ws: ws, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleCanvasHTML)
	r.Get("/canvas.svg", s.handleCanvasSVG)
	r.Get("/render/{format}", s.handleRender)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/kinds", s.handleKinds)
		r.Get("/layout", s.handleLayout)

		r.Get("/project", s.handleProject)
		r.Patch("/project", s.handleUpdateProject)
		r.Post("/save", s.handleSave)

		r.Post("/gear", s.handleAddGear)
		r.Delete("/gear/{id}", s.handleRemoveGear)

		r.Get("/boards", s.handleListBoards)
		r.Post("/boards", s.handleAddBoard)
		r.Route("/boards/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)
			r.Patch("/", s.handleUpdateBoard)
			r.Delete("/", s.handleRemoveBoard)
			r.Get("/frame", s.handleFrame)
			r.Post("/notes", s.handleAddNote)
			r.Patch("/notes/{note}", s.handleUpdateNote)
			r.Delete("/notes/{note}", s.handleRemoveNote)

			r.Get("/image", s.handleImageState)
			r.Post("/image", s.handleUploadImage)
			r.Post("/image/request", s.handleRequestUpload)
			r.Put("/image/prompt", s.handleImagePrompt)
			r.Post("/image/generate", s.handleGenerateImage)
		})

		r.Put("/fullscreen/{id}", s.handleSetFullscreen)
		r.Delete("/fullscreen", s.handleCloseFullscreen)

		r.Post("/pointer/down", s.handlePointerDown)
		r.Post("/pointer/move", s.handlePointerMove)
		r.Post("/pointer/up", s.handlePointerUp)
		r.Post("/pointer/leave", s.handlePointerLeave)
	})
	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Package api implements the HTTP API for live word-cloud sessions.
//
// The server exposes session and submission CRUD plus artifact
// endpoints that run the full pipeline on the session's current
// submissions. Artifact responses carry ETags derived from the
// rendered content, so polling clients get cheap 304s while the
// submission list is unchanged.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/classkit/wordcloud/pkg/observability"
	"github.com/classkit/wordcloud/pkg/pipeline"
	"github.com/classkit/wordcloud/pkg/store"
)

// Server handles HTTP requests for sessions, submissions, and rendered
// clouds. It implements http.Handler.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router

	// Defaults seeds the pipeline options of artifact requests; query
	// parameters override individual fields. Set before serving.
	Defaults pipeline.Options
}

// NewServer creates the API server with its routes mounted.
func NewServer(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		store:  st,
		runner: runner,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP dispatches to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/end", s.handleEndSession)

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", s.handleListSubmissions)
				r.Post("/", s.handleCreateSubmission)
				r.Put("/{sid}", s.handleUpdateSubmission)
				r.Delete("/{sid}", s.handleDeleteSubmission)
			})

			r.Get("/cloud.svg", s.handleCloud(pipeline.FormatSVG))
			r.Get("/cloud.png", s.handleCloud(pipeline.FormatPNG))
			r.Get("/cloud.json", s.handleCloud(pipeline.FormatJSON))
			r.Get("/cloud.dot", s.handleCloud(pipeline.FormatDOT))
		})
	})

	return r
}

// logRequests logs every request with its status and duration and
// feeds the HTTP observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

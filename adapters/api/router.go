// Package api exposes the analysis service as a JSON HTTP API.
package api

import (
	stdlog "log"
	"net/http"

	"boxplot/app"
	"boxplot/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Prefix is where the API is mounted
const Prefix = "/api/v1"

// multipartOverhead leaves room for form boundaries around an upload
const multipartOverhead = 64 << 10

// Options configures the API router
type Options struct {
	MaxUploadBytes int64
	Logger         *internal.Logger
}

// Handler serves the JSON API
type Handler struct {
	service        *app.AnalysisService
	maxUploadBytes int64
	logger         *internal.Logger
}

// NewRouter builds the chi router serving every API route under Prefix
func NewRouter(service *app.AnalysisService, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = internal.DefaultLogger
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}

	h := &Handler{
		service:        service,
		maxUploadBytes: opts.MaxUploadBytes,
		logger:         opts.Logger.With("component", "API"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  stdlog.New(h.logger.Writer(), "", 0),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route(Prefix, func(r chi.Router) {
		r.Post("/summary", h.handleSummary)
		r.Post("/summary/batch", h.handleBatch)
		r.Post("/upload", h.handleUpload)
		r.Get("/analyses", h.handleListAnalyses)
		r.Get("/analyses/{id}", h.handleGetAnalysis)
		r.Delete("/analyses/{id}", h.handleDeleteAnalysis)
		r.Get("/samples", h.handleSamples)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound("route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: errorBody{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"}})
	})

	return r
}

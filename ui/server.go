package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"boxplot/adapters/export"
	"boxplot/app"
	"boxplot/internal"
	"boxplot/internal/content"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Deps are the collaborators the web UI needs
type Deps struct {
	Service        *app.AnalysisService
	Guides         *content.Library
	Exporter       *export.Exporter
	API            http.Handler
	Metrics        http.Handler
	Logger         *internal.Logger
	MaxUploadBytes int64
}

// Server represents the web server for the box plot UI
type Server struct {
	router         *gin.Engine
	service        *app.AnalysisService
	guides         *content.Library
	exporter       *export.Exporter
	templates      *template.Template
	logger         *internal.Logger
	maxUploadBytes int64
}

// NewServer creates the web server and registers every route. API requests
// under /api are handed to deps.API and /metrics to deps.Metrics when set.
func NewServer(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		deps.Logger = internal.DefaultLogger
	}
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = 5 << 20
	}

	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:         gin.New(),
		service:        deps.Service,
		guides:         deps.Guides,
		exporter:       deps.Exporter,
		templates:      templates,
		logger:         deps.Logger.With("component", "UI"),
		maxUploadBytes: deps.MaxUploadBytes,
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes(deps.API, deps.Metrics)
	return s, nil
}

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() error {
	s.router.Use(gin.LoggerWithWriter(s.logger.Writer()))
	s.router.Use(gin.Recovery())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(api, metrics http.Handler) {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.GET("/samples/:index", s.handleSample)

	s.router.GET("/analyses/:id", s.handleAnalysis)
	s.router.GET("/analyses/:id/chart.png", s.handleChart)
	s.router.GET("/analyses/:id/export.csv", s.handleExport(export.KindCSV))
	s.router.GET("/analyses/:id/export.xlsx", s.handleExport(export.KindXLSX))

	s.router.GET("/guides", s.handleGuides)
	s.router.GET("/guides/:slug", s.handleGuide)

	s.router.GET("/healthz", s.handleHealth)
	if metrics != nil {
		s.router.GET("/metrics", gin.WrapH(metrics))
	}

	if api != nil {
		s.router.Any("/api/*path", gin.WrapH(api))
	}

	s.router.NoRoute(func(c *gin.Context) {
		s.renderError(c, http.StatusNotFound, "Page not found")
	})
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting box plot UI on http://%s", addr)
	return s.router.Run(addr)
}

package container

import (
	"context"
	"fmt"
	"net/http"

	"boxplot/adapters/api"
	"boxplot/adapters/chart"
	"boxplot/adapters/export"
	"boxplot/adapters/memory"
	"boxplot/adapters/postgres"
	"boxplot/app"
	"boxplot/internal"
	"boxplot/internal/config"
	"boxplot/internal/content"
	"boxplot/internal/metrics"
	"boxplot/internal/migration"
	"boxplot/ports"
	"boxplot/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB       *sqlx.DB
	Migrator migration.Migrator

	// Repositories (data access layer)
	AnalysisRepo ports.AnalysisRepository

	// Application services
	AnalysisService *app.AnalysisService
	Guides          *content.Library
	Exporter        *export.Exporter
	Metrics         *metrics.Metrics

	// HTTP surfaces
	API http.Handler
}

// New creates a container backed by the in-memory analysis store. Call
// InitWithDatabase to switch to Postgres.
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	guides, err := content.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load guides: %w", err)
	}

	c := &Container{
		Config:       cfg,
		Logger:       logger,
		Migrator:     migration.NewRunner(),
		AnalysisRepo: memory.NewAnalysisRepository(),
		Guides:       guides,
		Exporter:     export.NewExporter(ChartOptions(cfg)),
	}
	c.initServices()
	return c, nil
}

// InitWithDatabase runs migrations and moves analysis storage to Postgres
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := c.Migrator.Run(ctx, db); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	c.Logger.Info("[Container] schema at version %s", c.Migrator.Version())

	c.DB = db
	c.AnalysisRepo = postgres.NewAnalysisRepository(db)
	c.initServices()
	return nil
}

func (c *Container) initServices() {
	c.AnalysisService = app.NewAnalysisService(c.AnalysisRepo, app.ServiceConfig{
		MaxUploadBytes:   c.Config.Server.MaxUploadBytes,
		BatchConcurrency: c.Config.Engine.BatchConcurrency,
		MemoCapacity:     c.Config.Engine.MemoCapacity,
		RecentLimit:      c.Config.Server.RecentLimit,
	}, c.Logger)

	// A fresh registry per service: the cache collectors are bound to its memo.
	c.Metrics = metrics.New()
	c.Metrics.RegisterCache(c.AnalysisService.CacheStats)
	c.AnalysisService.WithRecorder(c.Metrics)

	c.API = api.NewRouter(c.AnalysisService, api.Options{
		MaxUploadBytes: c.Config.Server.MaxUploadBytes,
		Logger:         c.Logger,
	})
}

// UIServer builds the web UI on top of the container's services
func (c *Container) UIServer() (*ui.Server, error) {
	return ui.NewServer(ui.Deps{
		Service:        c.AnalysisService,
		Guides:         c.Guides,
		Exporter:       c.Exporter,
		API:            c.API,
		Metrics:        c.Metrics.Handler(),
		Logger:         c.Logger,
		MaxUploadBytes: c.Config.Server.MaxUploadBytes,
	})
}

// ChartOptions returns chart defaults sized from configuration
func ChartOptions(cfg *config.Config) chart.Options {
	opts := chart.DefaultOptions()
	if cfg.Chart.Width > 0 {
		opts.Width = cfg.Chart.Width
	}
	if cfg.Chart.Height > 0 {
		opts.Height = cfg.Chart.Height
	}
	return opts
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	logErr := c.Logger.Close()
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return err
		}
	}
	return logErr
}

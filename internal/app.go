package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"panorama/internal/config"
	"panorama/internal/http"
	"panorama/internal/jobs"
	"panorama/internal/logging"
	"panorama/internal/report"
	"panorama/internal/snapshots"
	"panorama/internal/source"
)

// Application wires the data source, pipeline, scheduler and HTTP server.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     *snapshots.Store
	Scheduler *jobs.Scheduler
	Fiber     *fiber.App
}

// NewApp creates a new application instance with default settings
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig creates a new application with the provided config
func NewAppWithConfig(cfg *config.Config) (*Application, error) {
	logger := logging.NewLogger(cfg)

	// Data source: upstream client when configured, pure mock otherwise.
	// Landing-card calls always go through the mock fallback.
	mock := source.NewMock()
	var primary source.DataSource = mock
	if cfg.HasAPIBaseURL() {
		primary = source.NewClient(cfg.APIBaseURL, cfg.APIKey, cfg.FetchTimeout())
	}
	src := source.NewFallbackSource(primary, mock, logger)

	store := snapshots.NewStore()
	builder := report.NewBuilder(src, logger, cfg)

	scheduler, err := jobs.NewScheduler(builder, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jobs: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})

	handler := http.NewHandler(store, src, logger)
	health := http.NewHealthHandler(store)
	MountAppRoutes(app, handler, health)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Scheduler: scheduler,
		Fiber:     app,
	}, nil
}

// StartAsync starts the scheduler and the HTTP listener without blocking.
func (a *Application) StartAsync() error {
	if err := a.Scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	go func() {
		addr := ":" + a.Config.AppPort
		a.Logger.Info("HTTP server listening", slog.String("addr", addr))
		if err := a.Fiber.Listen(addr); err != nil {
			a.Logger.Error("HTTP server stopped", slog.Any("error", err))
		}
	}()

	return nil
}

// Shutdown stops the scheduler and drains the HTTP server.
func (a *Application) Shutdown(ctx context.Context) error {
	a.Scheduler.Stop()
	a.Store.Reset()

	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

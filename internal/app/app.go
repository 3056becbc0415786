package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ctreport/internal/config"
	apierrors "ctreport/internal/errors"
	"ctreport/internal/infrastructure"
	customMiddleware "ctreport/internal/middleware"
	renderpdf "ctreport/internal/render"
	"ctreport/internal/services"
	handlers "ctreport/internal/transport/http"
	"ctreport/internal/validation"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	ReportService *services.ReportService
	HealthService *services.HealthService
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", config.AppName),
		slog.Int("port", cfg.Server.Port))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices constructs the service layer
func (a *Application) initializeServices() {
	renderer := renderpdf.NewPDFRenderer(renderpdf.Options{
		ChartsPerPage: a.Config.Render.ChartsPerPage,
		ChartWidth:    a.Config.Render.ChartWidth,
		ChartHeight:   a.Config.Render.ChartHeight,
	}, a.Logger)

	a.ReportService = services.NewReportService(a.Logger, renderer, a.OTelProviders, a.Config.Upload.MaxSizeBytes)
	a.HealthService = services.NewHealthService(a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware ordering: RequestID → RealIP → OTel → Logger → Recoverer
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
		if err != nil {
			a.Logger.Error("failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	// Prometheus endpoint stays outside the middleware group.
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/healthz", healthHandler.Healthz)

	validator := validation.NewReportValidator(a.Logger, a.Config.Upload.MaxSizeBytes)
	reportHandler := handlers.NewReportHandler(
		a.ReportService,
		validator,
		a.Logger,
		errorHandler,
		a.Config.Upload.MaxSizeBytes,
	)

	// Rendering can take a while on large reports, so it gets the write
	// timeout rather than the read timeout.
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout, a.Logger))
		r.Mount("/api/reports", reportHandler.Routes())
	})
}

// createServer builds the HTTP server from configuration
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the HTTP server and blocks until shutdown
func (a *Application) Run() error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Info("HTTP server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the server and flushes telemetry
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return err
	}

	if a.OTelProviders != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()
	a.Logger.Info("application stopped")
	return nil
}

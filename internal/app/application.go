package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/adapters/api"
	"github.com/kiervincent5/travel-planner/internal/adapters/infrastructure"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/core/auth"
	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/internal/core/travel"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Application struct {
	config *config.Config

	// Use Cases
	authUseCase    *auth.UseCase
	travelUseCase  *travel.UseCase
	plannerUseCase *planner.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewApplicationFromConfig(cfg)
}

// NewApplicationFromConfig wires the production dependencies for cfg
func NewApplicationFromConfig(cfg *config.Config) (*Application, error) {
	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies builds the application over an existing
// container, e.g. one backed by sqlite and fake upstreams in tests
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	authUseCase, err := auth.NewUseCase(auth.UseCaseDependencies{
		Users:      a.ports.UserRepository,
		Hasher:     a.ports.PasswordHasher,
		Tokens:     a.ports.TokenManager,
		UserStores: a.ports.UserStores,
		Logger:     a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create auth use case: %w", err)
	}
	a.authUseCase = authUseCase

	travelUseCase, err := travel.NewUseCase(travel.UseCaseDependencies{
		Places:   a.ports.PlaceProvider,
		Weather:  a.ports.WeatherProvider,
		Airports: a.ports.AirportProvider,
		Flights:  a.ports.FlightProvider,
		Cache:    a.ports.LookupCache,
		Config:   a.ports.ConfigProvider,
		Logger:   a.ports.Logger,
		Metrics:  a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create travel use case: %w", err)
	}
	a.travelUseCase = travelUseCase

	plannerUseCase, err := planner.NewUseCase(planner.UseCaseDependencies{
		UserStores: a.ports.UserStores,
		Travel:     a.travelUseCase,
		Logger:     a.ports.Logger,
		Metrics:    a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create planner use case: %w", err)
	}
	a.plannerUseCase = plannerUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	metricsCollector := infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		ProviderInfo: a.travelUseCase.GetProviderInfo,
		CacheMetrics: a.ports.CacheMetrics,
		Breakers:     a.deps.Breakers(),
	})

	systemHealthChecker := infrastructure.NewSystemHealthChecker(
		a.deps.HealthCheckers(a.ports.WeatherProvider.GetProviderInfo))

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Environment:      a.config.App.Environment,
		AuthUseCase:      a.authUseCase,
		TravelUseCase:    a.travelUseCase,
		PlannerUseCase:   a.plannerUseCase,
		HealthChecker:    systemHealthChecker,
		MetricsCollector: metricsCollector,
		RequestObserver:  a.deps.Recorder(),
		MetricsHandler:   promhttp.HandlerFor(a.deps.Registry(), promhttp.HandlerOpts{}),
		Logger:           a.ports.Logger,
		AllowedOrigins:   a.config.CORS.AllowedOrigins,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	// Store router for testing access
	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

// Start blocks serving HTTP until Shutdown is called
func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server",
		"port", a.config.Server.Port,
		"environment", a.config.App.Environment)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

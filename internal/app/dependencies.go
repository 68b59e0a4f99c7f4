package app

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kiervincent5/travel-planner/internal/adapters/database"
	"github.com/kiervincent5/travel-planner/internal/adapters/external"
	"github.com/kiervincent5/travel-planner/internal/adapters/infrastructure"
	"github.com/kiervincent5/travel-planner/internal/adapters/security"
	"github.com/kiervincent5/travel-planner/internal/adapters/storage"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type DependencyContainer struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	registry *prometheus.Registry
	recorder *metrics.Recorder
	ports    *ports.ApplicationPorts

	weatherGuards []infrastructure.BreakerReporter
	placeGuards   []infrastructure.BreakerReporter
	airportGuards []infrastructure.BreakerReporter
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}
	container.recorder = metrics.NewRecorder(container.registry)

	if err := container.initializeDatabase(); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if err := container.initializeRedis(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeDatabase() error {
	slog.Info("Initializing database connection...", "driver", c.config.Database.Driver.String())

	db, err := database.Open(c.config.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	slog.Info("Running database migrations...")
	if err := database.RunMigrations(db); err != nil {
		_ = database.Close(db)
		return fmt.Errorf("run migrations: %w", err)
	}

	c.db = db
	slog.Info("Database connection established successfully")
	return nil
}

// initializeRedis connects only when the store or the lookup cache needs it
func (c *DependencyContainer) initializeRedis() error {
	needsRedis := c.config.Store.Type == config.StoreTypeRedis ||
		(c.config.Cache.Enabled && c.config.Cache.Type == config.CacheTypeRedis)
	if !needsRedis {
		return nil
	}

	client, err := storage.NewRedisClient(&c.config.Redis)
	if err != nil {
		return err
	}
	c.redis = client
	slog.Info("Redis connection established", "addr", c.config.Redis.Addr)
	return nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	logger := c.buildLogger()

	store, err := storage.NewStoreFactory(c.db, c.redis).CreateStore(&c.config.Store)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	slog.Info("Planner store initialized", "type", c.config.Store.Type.String())

	cache, err := external.NewCacheProviderFactory(c.redis).CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	slog.Info("Lookup cache initialized",
		"enabled", c.config.Cache.Enabled,
		"type", c.config.Cache.Type.String())

	tokens, err := security.NewJWTManager(security.JWTManagerParams{
		Secret: c.config.Auth.JWTSecret,
		Expiry: c.config.Auth.JWTExpiry,
		Issuer: c.config.Auth.JWTIssuer,
	})
	if err != nil {
		return fmt.Errorf("create token manager: %w", err)
	}

	c.ports = &ports.ApplicationPorts{
		PlaceProvider:   c.buildPlaceProvider(logger),
		WeatherProvider: c.buildWeatherProvider(logger),
		AirportProvider: c.buildAirportProvider(logger),
		FlightProvider:  external.NewMockFlightProvider(rand.NewSource(time.Now().UnixNano())),
		LookupCache:     cache,
		CacheMetrics:    cache,

		UserStores: storage.NewUserStores(store, c.config.Store.KeyPrefix),
		Store:      store,

		UserRepository: database.NewUserRepositoryAdapter(c.db),
		PasswordHasher: security.NewBcryptHasher(c.config.Auth.BcryptCost),
		TokenManager:   tokens,

		ConfigProvider: infrastructure.NewConfigProviderAdapter(c.config),
		Logger:         logger,
		Metrics:        c.recorder,
		Database:       c.db,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// buildLogger tees provider logs into a file when one is configured
func (c *DependencyContainer) buildLogger() ports.Logger {
	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(slog.Default())

	path := c.config.Provider.LogFilePath
	if !c.config.Provider.EnableLogging || path == "" {
		return logger
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(path)
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return logger
	}
	slog.Info("File logging enabled", "path", path)
	return infrastructure.NewTeeLogger(logger, fileLogger)
}

func (c *DependencyContainer) guard(name string, logger ports.Logger) *external.ProviderGuard {
	return external.NewProviderGuard(name, external.GuardSettings{
		ConsecutiveFailures: uint32(c.config.Provider.BreakerFailures),
		Cooldown:            time.Duration(c.config.Provider.BreakerCooldownSeconds) * time.Second,
	}, c.recorder, logger)
}

func (c *DependencyContainer) timeout() time.Duration {
	return time.Duration(c.config.Provider.TimeoutSeconds) * time.Second
}

func (c *DependencyContainer) buildPlaceProvider(logger ports.Logger) ports.PlaceProvider {
	nominatim := external.NewNominatimProviderAdapter(external.NominatimProviderParams{
		BaseURL:   c.config.Places.BaseURL,
		UserAgent: c.config.Places.UserAgent,
		Timeout:   c.timeout(),
		Logger:    logger,
	})
	guard := c.guard(nominatim.GetProviderName(), logger)
	c.placeGuards = append(c.placeGuards, guard)
	return external.NewGuardedPlaceProvider(nominatim, guard)
}

// buildWeatherProvider chains the keyed providers, each behind its own
// breaker so one failing upstream does not stop the fallback
func (c *DependencyContainer) buildWeatherProvider(logger ports.Logger) ports.WeatherProviderManager {
	decorate := func(p ports.WeatherProvider) ports.WeatherProvider {
		guard := c.guard(p.GetProviderName(), logger)
		c.weatherGuards = append(c.weatherGuards, guard)
		var guarded ports.WeatherProvider = external.NewGuardedWeatherProvider(p, guard)
		if c.config.Provider.EnableLogging {
			guarded = external.NewWeatherProviderLoggingDecorator(guarded, logger)
		}
		return guarded
	}

	var manager ports.WeatherProviderManager = external.NewWeatherProviderManagerAdapter(external.ProviderManagerConfig{
		WeatherAPIKey:     c.config.Weather.WeatherAPIKey,
		WeatherAPIBaseURL: c.config.Weather.WeatherAPIBaseURL,
		OpenWeatherKey:    c.config.Weather.OpenWeatherMapKey,
		OpenWeatherURL:    c.config.Weather.OpenWeatherMapBaseURL,
		ProviderOrder:     c.config.Weather.ProviderOrder,
		Timeout:           c.timeout(),
		Logger:            logger,
		Decorate:          decorate,
	})
	if len(c.weatherGuards) == 0 {
		slog.Warn("No weather provider API keys configured, weather lookups will fail")
	}

	if c.config.Provider.EnableLogging {
		manager = external.NewWeatherProviderManagerLoggingDecorator(manager, logger)
		slog.Info("Weather provider logging enabled")
	}
	return manager
}

// buildAirportProvider puts Aviationstack in front of the built-in directory
// when a key is configured
func (c *DependencyContainer) buildAirportProvider(logger ports.Logger) ports.AirportProvider {
	directory := external.NewAirportDirectory()
	if c.config.Flights.AviationstackKey == "" {
		return directory
	}

	aviationstack := external.NewAviationstackProviderAdapter(external.AviationstackProviderParams{
		APIKey:  c.config.Flights.AviationstackKey,
		BaseURL: c.config.Flights.AviationstackBaseURL,
		Timeout: c.timeout(),
		Logger:  logger,
	})
	guard := c.guard(aviationstack.GetProviderName(), logger)
	c.airportGuards = append(c.airportGuards, guard)
	return external.NewFallbackAirportProvider(external.NewGuardedAirportProvider(aviationstack, guard), directory, logger)
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Database() *gorm.DB {
	return c.db
}

// Recorder returns the Prometheus recorder shared by every component
func (c *DependencyContainer) Recorder() *metrics.Recorder {
	return c.recorder
}

// Registry returns the registry scraped by /metrics
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// Breakers returns every provider circuit breaker
func (c *DependencyContainer) Breakers() []infrastructure.BreakerReporter {
	all := make([]infrastructure.BreakerReporter, 0, len(c.weatherGuards)+len(c.placeGuards)+len(c.airportGuards))
	all = append(all, c.weatherGuards...)
	all = append(all, c.placeGuards...)
	return append(all, c.airportGuards...)
}

// HealthCheckers builds one checker per component reported by /api/health
func (c *DependencyContainer) HealthCheckers(providerInfo func() map[string]interface{}) map[string]ports.HealthChecker {
	checkers := map[string]ports.HealthChecker{
		"database": infrastructure.NewDatabaseHealthChecker(c.db),
		"store":    infrastructure.NewStoreHealthChecker(c.ports.Store, c.config.Store.Type.String()),
		"weather":  infrastructure.NewProviderHealthChecker("weather", providerInfo, c.weatherGuards...),
		"places":   infrastructure.NewProviderHealthChecker("places", nil, c.placeGuards...),
	}
	if len(c.airportGuards) > 0 {
		checkers["airports"] = infrastructure.NewProviderHealthChecker("airports", nil, c.airportGuards...)
	}
	return checkers
}

// Cleanup closes the redis client and the database
func (c *DependencyContainer) Cleanup() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			slog.Warn("Error closing redis client", "error", err)
		}
		c.redis = nil
	}
	if c.db != nil {
		err := database.Close(c.db)
		c.db = nil
		return err
	}
	return nil
}

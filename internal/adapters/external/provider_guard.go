package external

import (
	"context"
	"fmt"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GuardSettings configures the circuit breaker shared by one provider
type GuardSettings struct {
	// ConsecutiveFailures trips the breaker
	ConsecutiveFailures uint32
	Cooldown            time.Duration
}

// ProviderGuard runs outbound calls of one provider through a circuit
// breaker, a trace span and the provider call metrics
type ProviderGuard struct {
	name    string
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
	metrics ports.MetricsRecorder
	logger  ports.Logger
}

func NewProviderGuard(name string, settings GuardSettings, metrics ports.MetricsRecorder, logger ports.Logger) *ProviderGuard {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := settings.Cooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	g := &ProviderGuard{
		name:    name,
		tracer:  otel.Tracer("travel-planner/external"),
		metrics: metrics,
		logger:  logger,
	}
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Client-side problems say nothing about provider health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.IsNotFoundError(err) || errors.IsValidationError(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if logger != nil {
				logger.Warn("Circuit breaker state changed",
					ports.F("provider", name),
					ports.F("from", from.String()),
					ports.F("to", to.String()))
			}
		},
	})
	return g
}

// Name returns the provider name the guard protects
func (g *ProviderGuard) Name() string {
	return g.name
}

// State reports the breaker state, e.g. for health checks
func (g *ProviderGuard) State() gobreaker.State {
	return g.breaker.State()
}

// Execute runs call unless the breaker is open
func (g *ProviderGuard) Execute(ctx context.Context, operation string, call func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ctx, span := g.tracer.Start(ctx, g.name+"."+operation)
	defer span.End()
	span.SetAttributes(attribute.String("provider", g.name))

	start := time.Now()
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return call(ctx)
	})
	duration := time.Since(start)

	if g.metrics != nil {
		g.metrics.RecordProviderCall(g.name, err == nil, duration)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errors.NewExternalAPIError(fmt.Sprintf("%s is temporarily unavailable", g.name), err)
		}
		return nil, err
	}
	return result, nil
}

// GuardedWeatherProvider protects a weather provider with a ProviderGuard
type GuardedWeatherProvider struct {
	provider ports.WeatherProvider
	guard    *ProviderGuard
}

func NewGuardedWeatherProvider(provider ports.WeatherProvider, guard *ProviderGuard) *GuardedWeatherProvider {
	return &GuardedWeatherProvider{provider: provider, guard: guard}
}

func (p *GuardedWeatherProvider) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	result, err := p.guard.Execute(ctx, "current_weather", func(ctx context.Context) (interface{}, error) {
		return p.provider.GetCurrentWeather(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	weather, _ := result.(*ports.WeatherData)
	return weather, nil
}

func (p *GuardedWeatherProvider) GetProviderName() string {
	return p.provider.GetProviderName()
}

// GuardedPlaceProvider protects a place provider with a ProviderGuard
type GuardedPlaceProvider struct {
	provider ports.PlaceProvider
	guard    *ProviderGuard
}

func NewGuardedPlaceProvider(provider ports.PlaceProvider, guard *ProviderGuard) *GuardedPlaceProvider {
	return &GuardedPlaceProvider{provider: provider, guard: guard}
}

func (p *GuardedPlaceProvider) SearchPlaces(ctx context.Context, query string, limit int) ([]ports.PlaceSuggestion, error) {
	result, err := p.guard.Execute(ctx, "search_places", func(ctx context.Context) (interface{}, error) {
		return p.provider.SearchPlaces(ctx, query, limit)
	})
	if err != nil {
		return nil, err
	}
	places, _ := result.([]ports.PlaceSuggestion)
	return places, nil
}

func (p *GuardedPlaceProvider) Geocode(ctx context.Context, address string) (*ports.GeoLocation, error) {
	result, err := p.guard.Execute(ctx, "geocode", func(ctx context.Context) (interface{}, error) {
		return p.provider.Geocode(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	location, _ := result.(*ports.GeoLocation)
	return location, nil
}

func (p *GuardedPlaceProvider) GetProviderName() string {
	return p.provider.GetProviderName()
}

// GuardedAirportProvider protects an airport provider with a ProviderGuard
type GuardedAirportProvider struct {
	provider ports.AirportProvider
	guard    *ProviderGuard
}

func NewGuardedAirportProvider(provider ports.AirportProvider, guard *ProviderGuard) *GuardedAirportProvider {
	return &GuardedAirportProvider{provider: provider, guard: guard}
}

func (p *GuardedAirportProvider) SearchAirports(ctx context.Context, query string) ([]ports.Airport, error) {
	result, err := p.guard.Execute(ctx, "search_airports", func(ctx context.Context) (interface{}, error) {
		return p.provider.SearchAirports(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	airports, _ := result.([]ports.Airport)
	return airports, nil
}

func (p *GuardedAirportProvider) GetProviderName() string {
	return p.provider.GetProviderName()
}

func formatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

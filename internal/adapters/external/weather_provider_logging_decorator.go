package external

import (
	"context"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
)

// WeatherProviderLoggingDecorator decorates weather providers with structured logging
type WeatherProviderLoggingDecorator struct {
	provider ports.WeatherProvider
	logger   ports.Logger
}

// NewWeatherProviderLoggingDecorator creates a new logging decorator for weather providers
func NewWeatherProviderLoggingDecorator(provider ports.WeatherProvider, logger ports.Logger) ports.WeatherProvider {
	return &WeatherProviderLoggingDecorator{
		provider: provider,
		logger:   logger,
	}
}

// GetCurrentWeather wraps the provider call with structured logging
func (d *WeatherProviderLoggingDecorator) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	providerName := d.provider.GetProviderName()
	target := queryTarget(query)

	d.logger.Info("Weather API request started",
		ports.F("provider", providerName),
		ports.F("target", target),
		ports.F("units", query.Units),
		ports.F("event", "request"))

	startTime := time.Now()
	weatherData, err := d.provider.GetCurrentWeather(ctx, query)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather API request failed",
			ports.F("provider", providerName),
			ports.F("target", target),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather API request completed",
		ports.F("provider", providerName),
		ports.F("target", target),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("temperature", weatherData.Temp),
		ports.F("description", weatherData.Description))

	return weatherData, nil
}

// GetProviderName returns the wrapped provider name unchanged so chain
// ordering and metrics labels stay stable
func (d *WeatherProviderLoggingDecorator) GetProviderName() string {
	return d.provider.GetProviderName()
}

// WeatherProviderManagerLoggingDecorator decorates the provider manager with logging
type WeatherProviderManagerLoggingDecorator struct {
	manager ports.WeatherProviderManager
	logger  ports.Logger
}

// NewWeatherProviderManagerLoggingDecorator creates a new logging decorator for weather provider manager
func NewWeatherProviderManagerLoggingDecorator(manager ports.WeatherProviderManager, logger ports.Logger) ports.WeatherProviderManager {
	return &WeatherProviderManagerLoggingDecorator{
		manager: manager,
		logger:  logger,
	}
}

// GetWeather wraps the manager call with structured logging
func (d *WeatherProviderManagerLoggingDecorator) GetWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	target := queryTarget(query)
	d.logger.Info("Weather provider chain started",
		ports.F("target", target),
		ports.F("event", "chain_start"))

	startTime := time.Now()
	weatherData, err := d.manager.GetWeather(ctx, query)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Weather provider chain failed",
			ports.F("target", target),
			ports.F("event", "chain_error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Weather provider chain completed",
		ports.F("target", target),
		ports.F("event", "chain_success"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("temperature", weatherData.Temp))

	return weatherData, nil
}

// GetProviderInfo delegates to the wrapped manager
func (d *WeatherProviderManagerLoggingDecorator) GetProviderInfo() map[string]interface{} {
	info := d.manager.GetProviderInfo()
	info["logging_enabled"] = true
	return info
}

func queryTarget(query ports.WeatherQuery) string {
	if query.ByCity() {
		return query.City
	}
	return formatCoordinates(query.Lat, query.Lng)
}

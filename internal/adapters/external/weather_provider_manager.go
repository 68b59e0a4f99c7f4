package external

import (
	"context"
	"fmt"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// WeatherProviderManagerAdapter implements Chain of Responsibility pattern for weather providers
// This adapter manages multiple weather providers and implements automatic failover
type WeatherProviderManagerAdapter struct {
	providers []ports.WeatherProvider
	logger    ports.Logger
}

// ProviderManagerConfig holds configuration for creating the provider manager
type ProviderManagerConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string
	OpenWeatherKey    string
	OpenWeatherURL    string
	ProviderOrder     []string
	Timeout           time.Duration
	Logger            ports.Logger
	// Decorate wraps every created provider, e.g. with logging or a breaker
	Decorate func(ports.WeatherProvider) ports.WeatherProvider
}

// NewWeatherProviderManagerAdapter builds the providers that have an API key
// and chains them in the configured order
func NewWeatherProviderManagerAdapter(config ProviderManagerConfig) *WeatherProviderManagerAdapter {
	providerMap := createProviderMap(config)

	var providers []ports.WeatherProvider
	for _, providerName := range config.ProviderOrder {
		if provider, exists := providerMap[providerName]; exists {
			providers = append(providers, provider)
			delete(providerMap, providerName)
		}
	}

	// Providers missing from the order go last, in a fixed order
	for _, providerName := range []string{"openweathermap", "weatherapi"} {
		if provider, exists := providerMap[providerName]; exists {
			providers = append(providers, provider)
		}
	}

	return NewWeatherProviderChain(config.Logger, providers...)
}

// NewWeatherProviderChain chains already-built providers
func NewWeatherProviderChain(logger ports.Logger, providers ...ports.WeatherProvider) *WeatherProviderManagerAdapter {
	return &WeatherProviderManagerAdapter{
		providers: providers,
		logger:    logger,
	}
}

func createProviderMap(config ProviderManagerConfig) map[string]ports.WeatherProvider {
	providers := make(map[string]ports.WeatherProvider)
	decorate := config.Decorate
	if decorate == nil {
		decorate = func(p ports.WeatherProvider) ports.WeatherProvider { return p }
	}

	if config.OpenWeatherKey != "" {
		providers["openweathermap"] = decorate(NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
			APIKey:  config.OpenWeatherKey,
			BaseURL: config.OpenWeatherURL,
			Timeout: config.Timeout,
			Logger:  config.Logger,
		}))
	}

	if config.WeatherAPIKey != "" {
		providers["weatherapi"] = decorate(NewWeatherAPIProviderAdapter(WeatherAPIProviderParams{
			APIKey:  config.WeatherAPIKey,
			BaseURL: config.WeatherAPIBaseURL,
			Timeout: config.Timeout,
			Logger:  config.Logger,
		}))
	}

	return providers
}

// GetWeather implements Chain of Responsibility - tries each provider until one succeeds
func (m *WeatherProviderManagerAdapter) GetWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	if len(m.providers) == 0 {
		return nil, errors.NewExternalAPIError("no weather providers configured", nil)
	}

	var lastErr error
	for i, provider := range m.providers {
		providerName := provider.GetProviderName()

		m.debug("Trying weather provider",
			ports.F("provider", providerName),
			ports.F("attempt", i+1))

		weather, err := provider.GetCurrentWeather(ctx, query)
		if err == nil {
			return weather, nil
		}

		lastErr = err
		if m.logger != nil {
			m.logger.Warn("Weather provider failed, trying next",
				ports.F("provider", providerName),
				ports.F("error", err.Error()))
		}

		if ctx.Err() != nil {
			break
		}
	}

	if m.logger != nil {
		m.logger.Error("All weather providers failed",
			ports.F("providers_tried", len(m.providers)),
			ports.F("last_error", lastErr.Error()))
	}

	return nil, fmt.Errorf("all weather providers failed (tried %d providers): %w", len(m.providers), lastErr)
}

// GetProviderInfo returns information about configured providers
func (m *WeatherProviderManagerAdapter) GetProviderInfo() map[string]interface{} {
	providerNames := make([]string, len(m.providers))
	for i, provider := range m.providers {
		providerNames[i] = provider.GetProviderName()
	}

	return map[string]interface{}{
		"total_providers":  len(m.providers),
		"provider_order":   providerNames,
		"chain_enabled":    true,
		"fallback_enabled": len(m.providers) > 1,
	}
}

func (m *WeatherProviderManagerAdapter) debug(msg string, fields ...ports.Field) {
	if m.logger != nil {
		m.logger.Debug(msg, fields...)
	}
}

package infrastructure

import (
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetAppConfig returns application configuration
func (c *ConfigProviderAdapter) GetAppConfig() ports.AppConfig {
	return ports.AppConfig{
		Environment: c.config.App.Environment,
	}
}

// GetLookupConfig returns the settings of the travel lookups
func (c *ConfigProviderAdapter) GetLookupConfig() ports.LookupConfig {
	return ports.LookupConfig{
		EnableCache:     c.config.Cache.Enabled,
		CacheTTL:        c.config.Cache.TTL(),
		SearchLimit:     c.config.Places.SearchLimit,
		DefaultUnits:    c.config.Weather.DefaultUnits,
		DefaultCurrency: c.config.Flights.DefaultCurrency,
	}
}

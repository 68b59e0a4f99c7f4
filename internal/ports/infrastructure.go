package ports

import "time"

// AppConfig represents application configuration
type AppConfig struct {
	Environment string
}

// LookupConfig holds the settings shared by the place, weather and flight lookups
type LookupConfig struct {
	EnableCache     bool
	CacheTTL        time.Duration
	SearchLimit     int
	DefaultUnits    string
	DefaultCurrency string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetAppConfig() AppConfig
	GetLookupConfig() LookupConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsRecorder defines the contract for domain metrics
type MetricsRecorder interface {
	RecordLookupCacheHit(kind string)
	RecordLookupCacheMiss(kind string)
	RecordProviderCall(provider string, success bool, duration time.Duration)
	RecordWizardTransition(from, to string, outcome string)
	RecordPlanWrite(operation string)
}

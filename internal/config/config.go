package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxPortNumber      = 65535
	minJWTSecretLength = 16
	minBcryptCost      = 4
	maxBcryptCost      = 31
)

// Config represents the application configuration structure
type Config struct {
	App      AppConfig      `split_words:"true"`
	Server   ServerConfig   `split_words:"true"`
	Database DatabaseConfig `split_words:"true"`
	Auth     AuthConfig     `split_words:"true"`
	Store    StoreConfig    `split_words:"true"`
	Cache    CacheConfig    `split_words:"true"`
	Redis    RedisConfig    `split_words:"true"`
	Places   PlacesConfig   `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Flights  FlightsConfig  `split_words:"true"`
	Provider ProviderConfig `split_words:"true"`
	CORS     CORSConfig     `split_words:"true"`
	Tracing  TracingConfig  `split_words:"true"`
}

type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// IsProduction reports whether the service runs with production settings
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"3000"`
}

// DatabaseDriver selects the gorm dialector
type DatabaseDriver int

const (
	DatabaseDriverUnknown DatabaseDriver = iota
	DatabaseDriverPostgres
	DatabaseDriverSQLite
)

func (d DatabaseDriver) String() string {
	switch d {
	case DatabaseDriverPostgres:
		return "postgres"
	case DatabaseDriverSQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

func (d DatabaseDriver) IsValid() bool {
	return d == DatabaseDriverPostgres || d == DatabaseDriverSQLite
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (d *DatabaseDriver) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "postgres", "postgresql":
		*d = DatabaseDriverPostgres
	case "sqlite", "sqlite3":
		*d = DatabaseDriverSQLite
	default:
		*d = DatabaseDriverUnknown
	}
	return nil
}

type DatabaseConfig struct {
	Driver     DatabaseDriver `envconfig:"DB_DRIVER" default:"postgres"`
	Host       string         `envconfig:"DB_HOST" default:"localhost"`
	Port       int            `envconfig:"DB_PORT" default:"5432"`
	User       string         `envconfig:"DB_USER" default:"postgres"`
	Password   string         `envconfig:"DB_PASSWORD" default:"postgres"`
	Name       string         `envconfig:"DB_NAME" default:"travel_planner"`
	SSLMode    string         `envconfig:"DB_SSL_MODE" default:"disable"`
	SQLitePath string         `envconfig:"DB_SQLITE_PATH" default:"data/travel_planner.db"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type AuthConfig struct {
	JWTSecret  string        `envconfig:"JWT_SECRET"`
	JWTExpiry  time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	JWTIssuer  string        `envconfig:"JWT_ISSUER" default:"travel-planner"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`
}

// StoreType represents the backend of the per-user key/value store
type StoreType int

const (
	StoreTypeUnknown StoreType = iota
	StoreTypeMemory
	StoreTypeRedis
	StoreTypeDatabase
)

// String returns the string representation of store type
func (s StoreType) String() string {
	switch s {
	case StoreTypeMemory:
		return "memory"
	case StoreTypeRedis:
		return "redis"
	case StoreTypeDatabase:
		return "database"
	default:
		return "unknown"
	}
}

func (s StoreType) IsValid() bool {
	return s == StoreTypeMemory || s == StoreTypeRedis || s == StoreTypeDatabase
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (s *StoreType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "memory":
		*s = StoreTypeMemory
	case "redis":
		*s = StoreTypeRedis
	case "database":
		*s = StoreTypeDatabase
	default:
		*s = StoreTypeUnknown
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (s StoreType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type StoreConfig struct {
	Type      StoreType `envconfig:"STORE_TYPE" default:"memory"`
	KeyPrefix string    `envconfig:"STORE_KEY_PREFIX" default:"travelplanner"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Enabled    bool      `envconfig:"CACHE_ENABLED" default:"true"`
	Type       CacheType `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes int       `envconfig:"CACHE_TTL_MINUTES" default:"10"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type PlacesConfig struct {
	BaseURL     string `envconfig:"NOMINATIM_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent   string `envconfig:"NOMINATIM_USER_AGENT" default:"TravelPlannerApp/1.0"`
	SearchLimit int    `envconfig:"NOMINATIM_SEARCH_LIMIT" default:"5"`
}

type WeatherConfig struct {
	OpenWeatherMapKey     string   `envconfig:"OPENWEATHER_API_KEY"`
	OpenWeatherMapBaseURL string   `envconfig:"OPENWEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	WeatherAPIKey         string   `envconfig:"WEATHER_API_KEY"`
	WeatherAPIBaseURL     string   `envconfig:"WEATHER_API_BASE_URL" default:"https://api.weatherapi.com/v1"`
	ProviderOrder         []string `envconfig:"WEATHER_PROVIDER_ORDER" default:"openweathermap,weatherapi"`
	DefaultUnits          string   `envconfig:"WEATHER_DEFAULT_UNITS" default:"metric"`
}

type FlightsConfig struct {
	AviationstackKey     string `envconfig:"AVIATIONSTACK_API_KEY"`
	AviationstackBaseURL string `envconfig:"AVIATIONSTACK_BASE_URL" default:"http://api.aviationstack.com/v1"`
	DefaultCurrency      string `envconfig:"FLIGHTS_DEFAULT_CURRENCY" default:"PHP"`
}

type ProviderConfig struct {
	TimeoutSeconds         int    `envconfig:"PROVIDER_TIMEOUT_SECONDS" default:"10"`
	BreakerFailures        int    `envconfig:"PROVIDER_BREAKER_FAILURES" default:"5"`
	BreakerCooldownSeconds int    `envconfig:"PROVIDER_BREAKER_COOLDOWN_SECONDS" default:"30"`
	EnableLogging          bool   `envconfig:"PROVIDER_ENABLE_LOGGING" default:"true"`
	LogFilePath            string `envconfig:"PROVIDER_LOG_FILE" default:""`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type TracingConfig struct {
	Enabled     bool   `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName string `envconfig:"TRACING_SERVICE_NAME" default:"travel-planner"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	validators := []func() error{
		c.Server.Validate,
		c.Database.Validate,
		c.Auth.Validate,
		c.Store.Validate,
		c.Cache.Validate,
		c.Places.Validate,
		c.Weather.Validate,
		c.Flights.Validate,
		c.Provider.Validate,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}

	if c.Store.Type == StoreTypeRedis || (c.Cache.Enabled && c.Cache.Type == CacheTypeRedis) {
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DatabaseDriverSQLite:
		if d.SQLitePath == "" {
			return errors.NewConfigurationError("DB_SQLITE_PATH cannot be empty when DB_DRIVER=sqlite", nil)
		}
		return nil
	case DatabaseDriverPostgres:
	default:
		return errors.NewConfigurationError("DB_DRIVER must be one of: postgres, sqlite", nil)
	}

	if d.Host == "" {
		return errors.NewConfigurationError("DB_HOST cannot be empty", nil)
	}
	if d.Port < 1 || d.Port > maxPortNumber {
		return errors.NewConfigurationError("DB_PORT must be between 1 and 65535", nil)
	}
	if d.User == "" {
		return errors.NewConfigurationError("DB_USER cannot be empty", nil)
	}
	if d.Name == "" {
		return errors.NewConfigurationError("DB_NAME cannot be empty", nil)
	}
	return d.ValidateSSLMode()
}

func (d *DatabaseConfig) ValidateSSLMode() error {
	validSSLModes := []string{"disable", "require", "verify-ca", "verify-full"}
	for _, mode := range validSSLModes {
		if d.SSLMode == mode {
			return nil
		}
	}
	return errors.NewConfigurationError(
		fmt.Sprintf("DB_SSL_MODE must be one of: %s", strings.Join(validSSLModes, ", ")), nil)
}

func (a *AuthConfig) Validate() error {
	if len(a.JWTSecret) < minJWTSecretLength {
		return errors.NewConfigurationError(
			fmt.Sprintf("JWT_SECRET must be at least %d characters", minJWTSecretLength), nil)
	}
	if a.JWTExpiry <= 0 {
		return errors.NewConfigurationError("JWT_EXPIRY must be positive", nil)
	}
	if a.BcryptCost < minBcryptCost || a.BcryptCost > maxBcryptCost {
		return errors.NewConfigurationError("BCRYPT_COST must be between 4 and 31", nil)
	}
	return nil
}

func (s *StoreConfig) Validate() error {
	if !s.Type.IsValid() {
		return errors.NewConfigurationError("STORE_TYPE must be one of: memory, redis, database", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.TTLMinutes < 1 || c.TTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	return nil
}

// TTL returns the lookup cache lifetime
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when Redis is used", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (p *PlacesConfig) Validate() error {
	if err := validateBaseURL("NOMINATIM_BASE_URL", p.BaseURL); err != nil {
		return err
	}
	if p.UserAgent == "" {
		return errors.NewConfigurationError("NOMINATIM_USER_AGENT cannot be empty", nil)
	}
	if p.SearchLimit < 1 || p.SearchLimit > 50 {
		return errors.NewConfigurationError("NOMINATIM_SEARCH_LIMIT must be between 1 and 50", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if w.OpenWeatherMapKey == "" && w.WeatherAPIKey == "" {
		return errors.NewConfigurationError("at least one weather provider API key must be configured", nil)
	}
	if w.OpenWeatherMapKey != "" {
		if err := validateBaseURL("OPENWEATHER_API_BASE_URL", w.OpenWeatherMapBaseURL); err != nil {
			return err
		}
	}
	if w.WeatherAPIKey != "" {
		if err := validateBaseURL("WEATHER_API_BASE_URL", w.WeatherAPIBaseURL); err != nil {
			return err
		}
	}
	if w.DefaultUnits != "metric" && w.DefaultUnits != "imperial" {
		return errors.NewConfigurationError("WEATHER_DEFAULT_UNITS must be one of: metric, imperial", nil)
	}

	validProviders := map[string]bool{
		"openweathermap": true,
		"weatherapi":     true,
	}
	for _, provider := range w.ProviderOrder {
		if !validProviders[provider] {
			return errors.NewConfigurationError(fmt.Sprintf("invalid weather provider in order: %s", provider), nil)
		}
	}
	return nil
}

func (f *FlightsConfig) Validate() error {
	if f.AviationstackKey != "" {
		if err := validateBaseURL("AVIATIONSTACK_BASE_URL", f.AviationstackBaseURL); err != nil {
			return err
		}
	}
	if len(f.DefaultCurrency) != 3 {
		return errors.NewConfigurationError("FLIGHTS_DEFAULT_CURRENCY must be a 3-letter currency code", nil)
	}
	return nil
}

func (p *ProviderConfig) Validate() error {
	if p.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("PROVIDER_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	if p.BreakerFailures < 1 {
		return errors.NewConfigurationError("PROVIDER_BREAKER_FAILURES must be at least 1", nil)
	}
	if p.BreakerCooldownSeconds < 1 {
		return errors.NewConfigurationError("PROVIDER_BREAKER_COOLDOWN_SECONDS must be at least 1 second", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

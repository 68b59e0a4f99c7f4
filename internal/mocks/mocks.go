// Package mocks holds testify mocks for the ports. Constructors register
// AssertExpectations as a test cleanup.
package mocks

import (
	"context"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// Logger

type Logger struct{ mock.Mock }

func NewLogger(t testingT) *Logger {
	m := &Logger{}
	register(t, &m.Mock)
	return m
}

// AllowAll accepts any log call at any level
func (m *Logger) AllowAll() *Logger {
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	return m
}

func (m *Logger) Debug(msg string, fields ...ports.Field) { m.Called(msg, fields) }
func (m *Logger) Info(msg string, fields ...ports.Field)  { m.Called(msg, fields) }
func (m *Logger) Warn(msg string, fields ...ports.Field)  { m.Called(msg, fields) }
func (m *Logger) Error(msg string, fields ...ports.Field) { m.Called(msg, fields) }

// MetricsRecorder

type MetricsRecorder struct{ mock.Mock }

func NewMetricsRecorder(t testingT) *MetricsRecorder {
	m := &MetricsRecorder{}
	register(t, &m.Mock)
	return m
}

func (m *MetricsRecorder) AllowAll() *MetricsRecorder {
	m.On("RecordLookupCacheHit", mock.Anything).Maybe()
	m.On("RecordLookupCacheMiss", mock.Anything).Maybe()
	m.On("RecordProviderCall", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("RecordWizardTransition", mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("RecordPlanWrite", mock.Anything).Maybe()
	return m
}

func (m *MetricsRecorder) RecordLookupCacheHit(kind string)  { m.Called(kind) }
func (m *MetricsRecorder) RecordLookupCacheMiss(kind string) { m.Called(kind) }
func (m *MetricsRecorder) RecordProviderCall(provider string, success bool, duration time.Duration) {
	m.Called(provider, success, duration)
}
func (m *MetricsRecorder) RecordWizardTransition(from, to string, outcome string) {
	m.Called(from, to, outcome)
}
func (m *MetricsRecorder) RecordPlanWrite(operation string) { m.Called(operation) }

// KeyValueStore

type KeyValueStore struct{ mock.Mock }

func NewKeyValueStore(t testingT) *KeyValueStore {
	m := &KeyValueStore{}
	register(t, &m.Mock)
	return m
}

func (m *KeyValueStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KeyValueStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *KeyValueStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// PlaceProvider

type PlaceProvider struct{ mock.Mock }

func NewPlaceProvider(t testingT) *PlaceProvider {
	m := &PlaceProvider{}
	register(t, &m.Mock)
	return m
}

func (m *PlaceProvider) SearchPlaces(ctx context.Context, query string, limit int) ([]ports.PlaceSuggestion, error) {
	args := m.Called(ctx, query, limit)
	places, _ := args.Get(0).([]ports.PlaceSuggestion)
	return places, args.Error(1)
}

func (m *PlaceProvider) Geocode(ctx context.Context, address string) (*ports.GeoLocation, error) {
	args := m.Called(ctx, address)
	location, _ := args.Get(0).(*ports.GeoLocation)
	return location, args.Error(1)
}

func (m *PlaceProvider) GetProviderName() string {
	return m.Called().String(0)
}

// WeatherProviderManager

type WeatherProviderManager struct{ mock.Mock }

func NewWeatherProviderManager(t testingT) *WeatherProviderManager {
	m := &WeatherProviderManager{}
	register(t, &m.Mock)
	return m
}

func (m *WeatherProviderManager) GetWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	args := m.Called(ctx, query)
	weather, _ := args.Get(0).(*ports.WeatherData)
	return weather, args.Error(1)
}

func (m *WeatherProviderManager) GetProviderInfo() map[string]interface{} {
	info, _ := m.Called().Get(0).(map[string]interface{})
	return info
}

// AirportProvider

type AirportProvider struct{ mock.Mock }

func NewAirportProvider(t testingT) *AirportProvider {
	m := &AirportProvider{}
	register(t, &m.Mock)
	return m
}

func (m *AirportProvider) SearchAirports(ctx context.Context, query string) ([]ports.Airport, error) {
	args := m.Called(ctx, query)
	airports, _ := args.Get(0).([]ports.Airport)
	return airports, args.Error(1)
}

func (m *AirportProvider) GetProviderName() string {
	return m.Called().String(0)
}

// FlightProvider

type FlightProvider struct{ mock.Mock }

func NewFlightProvider(t testingT) *FlightProvider {
	m := &FlightProvider{}
	register(t, &m.Mock)
	return m
}

func (m *FlightProvider) SearchFlights(ctx context.Context, query ports.FlightSearchQuery) ([]ports.FlightOffer, error) {
	args := m.Called(ctx, query)
	offers, _ := args.Get(0).([]ports.FlightOffer)
	return offers, args.Error(1)
}

func (m *FlightProvider) GetProviderName() string {
	return m.Called().String(0)
}

// TravelService is the lookup surface used by the planner wizard

type TravelService struct{ mock.Mock }

func NewTravelService(t testingT) *TravelService {
	m := &TravelService{}
	register(t, &m.Mock)
	return m
}

func (m *TravelService) Geocode(ctx context.Context, address string) (*ports.GeoLocation, error) {
	args := m.Called(ctx, address)
	location, _ := args.Get(0).(*ports.GeoLocation)
	return location, args.Error(1)
}

func (m *TravelService) CurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	args := m.Called(ctx, query)
	weather, _ := args.Get(0).(*ports.WeatherData)
	return weather, args.Error(1)
}

func (m *TravelService) SearchFlights(ctx context.Context, query ports.FlightSearchQuery) ([]ports.FlightOffer, error) {
	args := m.Called(ctx, query)
	offers, _ := args.Get(0).([]ports.FlightOffer)
	return offers, args.Error(1)
}

// CacheProvider

type CacheProvider struct{ mock.Mock }

func NewCacheProvider(t testingT) *CacheProvider {
	m := &CacheProvider{}
	register(t, &m.Mock)
	return m
}

func (m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	value, _ := args.Get(0).([]byte)
	return value, args.Error(1)
}

func (m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *CacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *CacheProvider) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// ConfigProvider

type ConfigProvider struct{ mock.Mock }

func NewConfigProvider(t testingT) *ConfigProvider {
	m := &ConfigProvider{}
	register(t, &m.Mock)
	return m
}

func (m *ConfigProvider) GetAppConfig() ports.AppConfig {
	cfg, _ := m.Called().Get(0).(ports.AppConfig)
	return cfg
}

func (m *ConfigProvider) GetLookupConfig() ports.LookupConfig {
	cfg, _ := m.Called().Get(0).(ports.LookupConfig)
	return cfg
}

// UserRepository

type UserRepository struct{ mock.Mock }

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(t, &m.Mock)
	return m
}

func (m *UserRepository) Create(ctx context.Context, user *ports.UserData) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*ports.UserData, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*ports.UserData)
	return user, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*ports.UserData, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*ports.UserData)
	return user, args.Error(1)
}

func (m *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

// PasswordHasher

type PasswordHasher struct{ mock.Mock }

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(t, &m.Mock)
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

// TokenManager

type TokenManager struct{ mock.Mock }

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(t, &m.Mock)
	return m
}

func (m *TokenManager) Generate(ctx context.Context, claims ports.TokenClaims) (string, error) {
	args := m.Called(ctx, claims)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Validate(ctx context.Context, token string) (*ports.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*ports.TokenClaims)
	return claims, args.Error(1)
}

// HealthChecker

type HealthChecker struct{ mock.Mock }

func NewHealthChecker(t testingT) *HealthChecker {
	m := &HealthChecker{}
	register(t, &m.Mock)
	return m
}

func (m *HealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status, _ := m.Called(ctx).Get(0).(ports.HealthStatus)
	return status
}

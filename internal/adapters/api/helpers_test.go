package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/adapters/database"
	"github.com/kiervincent5/travel-planner/internal/adapters/external"
	"github.com/kiervincent5/travel-planner/internal/adapters/infrastructure"
	"github.com/kiervincent5/travel-planner/internal/adapters/security"
	"github.com/kiervincent5/travel-planner/internal/adapters/storage"
	"github.com/kiervincent5/travel-planner/internal/config"
	"github.com/kiervincent5/travel-planner/internal/core/auth"
	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/internal/core/travel"
	"github.com/kiervincent5/travel-planner/internal/mocks"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

type testServer struct {
	router  *gin.Engine
	places  *mocks.PlaceProvider
	weather *mocks.WeatherProviderManager
	store   *mocks.HealthChecker
}

// newTestServer wires the real use cases over in-memory storage and sqlite;
// only the place and weather providers are mocked
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := mocks.NewLogger(t).AllowAll()
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	db, err := database.Open(config.DatabaseConfig{Driver: config.DatabaseDriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { _ = database.Close(db) })

	userStores := storage.NewUserStores(storage.NewMemoryStore(), "test")
	tokens, err := security.NewJWTManager(security.JWTManagerParams{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "travel-planner-test",
	})
	require.NoError(t, err)

	authUseCase, err := auth.NewUseCase(auth.UseCaseDependencies{
		Users:      database.NewUserRepositoryAdapter(db),
		Hasher:     security.NewBcryptHasher(bcrypt.MinCost),
		Tokens:     tokens,
		UserStores: userStores,
		Logger:     logger,
	})
	require.NoError(t, err)

	places := mocks.NewPlaceProvider(t)
	weather := mocks.NewWeatherProviderManager(t)
	cfg := &config.Config{
		App:     config.AppConfig{Environment: "test"},
		Cache:   config.CacheConfig{Enabled: false},
		Places:  config.PlacesConfig{SearchLimit: 5},
		Weather: config.WeatherConfig{DefaultUnits: "metric"},
		Flights: config.FlightsConfig{DefaultCurrency: "PHP"},
	}

	travelUseCase, err := travel.NewUseCase(travel.UseCaseDependencies{
		Places:   places,
		Weather:  weather,
		Airports: external.NewAirportDirectory(),
		Flights:  external.NewMockFlightProvider(rand.NewSource(7)),
		Cache:    external.NewMemoryCacheProvider(),
		Config:   infrastructure.NewConfigProviderAdapter(cfg),
		Logger:   logger,
		Metrics:  recorder,
	})
	require.NoError(t, err)

	plannerUseCase, err := planner.NewUseCase(planner.UseCaseDependencies{
		UserStores: userStores,
		Travel:     travelUseCase,
		Logger:     logger,
		Metrics:    recorder,
		Clock:      func() time.Time { return testNow },
	})
	require.NoError(t, err)

	storeHealth := mocks.NewHealthChecker(t)

	server, err := NewHTTPServerAdapter(ServerOptions{
		Environment:    "test",
		AuthUseCase:    authUseCase,
		TravelUseCase:  travelUseCase,
		PlannerUseCase: plannerUseCase,
		HealthChecker:  infrastructure.NewSystemHealthChecker(map[string]ports.HealthChecker{"store": storeHealth}),
		MetricsCollector: infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
			ProviderInfo: travelUseCase.GetProviderInfo,
		}),
		RequestObserver: recorder,
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:          logger,
		AllowedOrigins:  []string{"http://localhost:3000"},
		Clock:           func() time.Time { return testNow },
	})
	require.NoError(t, err)

	return &testServer{router: server.GetRouter(), places: places, weather: weather, store: storeHealth}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// signUp registers a user and returns the session token
func (s *testServer) signUp(t *testing.T, username string) string {
	t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", auth.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[auth.Result](t, w).Token
}

// expectDestination stubs the geocode and weather calls made when Cebu is
// picked as the destination
func (s *testServer) expectDestination() {
	s.places.On("Geocode", mock.Anything, "Cebu City, Cebu, Philippines").
		Return(&ports.GeoLocation{Lat: 10.3157, Lng: 123.8854, FormattedAddress: "Cebu City, Central Visayas, Philippines"}, nil).Once()
	s.weather.On("GetWeather", mock.Anything, ports.WeatherQuery{Lat: 10.3157, Lng: 123.8854, Units: "metric"}).
		Return(&ports.WeatherData{Temp: 30.2, FeelsLike: 34, Humidity: 70, Description: "scattered clouds", WindSpeed: 3.1, Pressure: 1009, Location: "Cebu City", Units: "metric", Timestamp: testNow}, nil).Once()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, w).Error
}

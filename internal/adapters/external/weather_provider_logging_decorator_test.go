package external

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherProviderLoggingDecorator_Success(t *testing.T) {
	logger := &testLogger{}
	provider := &testWeatherProvider{
		name:     "test-provider",
		response: &ports.WeatherData{Temp: 21.5, Description: "Sunny"},
	}
	decorated := NewWeatherProviderLoggingDecorator(provider, logger)

	weather, err := decorated.GetCurrentWeather(context.Background(), ports.WeatherQuery{City: "Cebu", Units: "metric"})

	require.NoError(t, err)
	assert.Equal(t, 21.5, weather.Temp)
	assert.Equal(t, "test-provider", decorated.GetProviderName())

	entries := logger.snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, "Weather API request started", entries[0].message)
	assert.Equal(t, "Cebu", entries[0].fields["target"])
	assert.Equal(t, "metric", entries[0].fields["units"])
	assert.Equal(t, "Weather API request completed", entries[1].message)
	assert.Equal(t, 21.5, entries[1].fields["temperature"])
	assert.Contains(t, entries[1].fields, "duration_ms")
}

func TestWeatherProviderLoggingDecorator_Error(t *testing.T) {
	logger := &testLogger{}
	provider := &testWeatherProvider{name: "test-provider", err: fmt.Errorf("boom")}
	decorated := NewWeatherProviderLoggingDecorator(provider, logger)

	weather, err := decorated.GetCurrentWeather(context.Background(), ports.WeatherQuery{Lat: 10.31573, Lng: 123.88541})

	assert.Nil(t, weather)
	assert.EqualError(t, err, "boom")

	entries := logger.snapshot()
	require.Len(t, entries, 2)
	assert.Equal(t, "error", entries[1].level)
	assert.Equal(t, "10.3157,123.8854", entries[1].fields["target"])
	assert.Equal(t, "boom", entries[1].fields["error"])
}

func TestWeatherProviderManagerLoggingDecorator(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		logger := &testLogger{}
		manager := &testWeatherProviderManager{response: &ports.WeatherData{Temp: 18}}
		decorated := NewWeatherProviderManagerLoggingDecorator(manager, logger)

		weather, err := decorated.GetWeather(context.Background(), ports.WeatherQuery{City: "Baguio"})

		require.NoError(t, err)
		assert.Equal(t, 18.0, weather.Temp)
		entries := logger.snapshot()
		require.Len(t, entries, 2)
		assert.Equal(t, "chain_start", entries[0].fields["event"])
		assert.Equal(t, "chain_success", entries[1].fields["event"])
	})

	t.Run("failure", func(t *testing.T) {
		logger := &testLogger{}
		manager := &testWeatherProviderManager{err: fmt.Errorf("all down")}
		decorated := NewWeatherProviderManagerLoggingDecorator(manager, logger)

		_, err := decorated.GetWeather(context.Background(), ports.WeatherQuery{City: "Baguio"})

		require.Error(t, err)
		entries := logger.snapshot()
		require.Len(t, entries, 2)
		assert.Equal(t, "chain_error", entries[1].fields["event"])
	})

	t.Run("provider info", func(t *testing.T) {
		decorated := NewWeatherProviderManagerLoggingDecorator(&testWeatherProviderManager{}, &testLogger{})

		info := decorated.GetProviderInfo()

		assert.Equal(t, true, info["logging_enabled"])
		assert.Equal(t, 1, info["total_providers"])
	})
}

type testWeatherProvider struct {
	name     string
	response *ports.WeatherData
	err      error
	calls    int
}

func (p *testWeatherProvider) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.response, nil
}

func (p *testWeatherProvider) GetProviderName() string {
	return p.name
}

type testWeatherProviderManager struct {
	response *ports.WeatherData
	err      error
}

func (m *testWeatherProviderManager) GetWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *testWeatherProviderManager) GetProviderInfo() map[string]interface{} {
	return map[string]interface{}{"total_providers": 1}
}

type logEntry struct {
	level   string
	message string
	fields  map[string]interface{}
}

// testLogger records entries so tests can assert on structured fields
type testLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *testLogger) Debug(msg string, fields ...ports.Field) { l.add("debug", msg, fields) }
func (l *testLogger) Info(msg string, fields ...ports.Field)  { l.add("info", msg, fields) }
func (l *testLogger) Warn(msg string, fields ...ports.Field)  { l.add("warn", msg, fields) }
func (l *testLogger) Error(msg string, fields ...ports.Field) { l.add("error", msg, fields) }

func (l *testLogger) add(level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	l.entries = append(l.entries, logEntry{level: level, message: msg, fields: m})
}

func (l *testLogger) snapshot() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

package external

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
	now     func() time.Time
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  ports.Logger
}

// OpenWeatherMapResponse represents the response from OpenWeatherMap API
type OpenWeatherMapResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) *OpenWeatherMapProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(params.Timeout),
		logger:  params.Logger,
		now:     time.Now,
	}
}

// GetCurrentWeather retrieves weather data from OpenWeatherMap. Units are
// passed through; the API already speaks metric, imperial and standard.
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	if p.apiKey == "" {
		return nil, errors.NewConfigurationError("OpenWeatherMap API key is not configured", nil)
	}

	params := url.Values{}
	if query.ByCity() {
		params.Set("q", query.City)
	} else {
		params.Set("lat", strconv.FormatFloat(query.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(query.Lng, 'f', -1, 64))
	}
	units := query.Units
	if units == "" {
		units = "metric"
	}
	params.Set("units", units)
	params.Set("appid", p.apiKey)

	var apiResp OpenWeatherMapResponse
	if err := getJSON(ctx, p.client, p.logger, "OpenWeatherMap", p.baseURL+"/weather", params, nil, &apiResp); err != nil {
		return nil, upstreamError(err, "city not found")
	}

	description := "Clear"
	if len(apiResp.Weather) > 0 {
		description = apiResp.Weather[0].Description
	}
	location := apiResp.Name
	if location == "" {
		location = query.City
	}

	return &ports.WeatherData{
		Temp:        apiResp.Main.Temp,
		FeelsLike:   apiResp.Main.FeelsLike,
		Humidity:    apiResp.Main.Humidity,
		Description: description,
		WindSpeed:   apiResp.Wind.Speed,
		Pressure:    apiResp.Main.Pressure,
		Location:    location,
		Units:       units,
		Timestamp:   p.now(),
	}, nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

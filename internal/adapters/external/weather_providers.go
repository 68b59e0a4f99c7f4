package external

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

const kelvinOffset = 273.15

// WeatherAPIProviderAdapter implements WeatherProvider port for WeatherAPI.com
type WeatherAPIProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
	now     func() time.Time
}

// WeatherAPIProviderParams holds parameters for creating WeatherAPI provider
type WeatherAPIProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  ports.Logger
}

// WeatherAPIResponse represents the response from WeatherAPI.com
type WeatherAPIResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC      float64 `json:"temp_c"`
		TempF      float64 `json:"temp_f"`
		FeelsLikeC float64 `json:"feelslike_c"`
		FeelsLikeF float64 `json:"feelslike_f"`
		Humidity   float64 `json:"humidity"`
		WindKph    float64 `json:"wind_kph"`
		WindMph    float64 `json:"wind_mph"`
		PressureMb float64 `json:"pressure_mb"`
		Condition  struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// NewWeatherAPIProviderAdapter creates a new WeatherAPI provider adapter
func NewWeatherAPIProviderAdapter(params WeatherAPIProviderParams) *WeatherAPIProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://api.weatherapi.com/v1"
	}

	return &WeatherAPIProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(params.Timeout),
		logger:  params.Logger,
		now:     time.Now,
	}
}

// GetCurrentWeather retrieves weather data from WeatherAPI.com and converts
// it to the requested unit system
func (p *WeatherAPIProviderAdapter) GetCurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	if p.apiKey == "" {
		return nil, errors.NewConfigurationError("WeatherAPI key is not configured", nil)
	}

	q := query.City
	if !query.ByCity() {
		q = fmt.Sprintf("%g,%g", query.Lat, query.Lng)
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", q)

	var apiResp WeatherAPIResponse
	if err := getJSON(ctx, p.client, p.logger, "WeatherAPI", p.baseURL+"/current.json", params, nil, &apiResp); err != nil {
		// WeatherAPI answers 400 when no location matches
		if se, ok := err.(*statusError); ok && se.status == http.StatusBadRequest {
			return nil, errors.NewNotFoundError("city not found")
		}
		return nil, upstreamError(err, "city not found")
	}

	c := apiResp.Current
	data := &ports.WeatherData{
		Humidity:    c.Humidity,
		Description: c.Condition.Text,
		Pressure:    c.PressureMb,
		Location:    apiResp.Location.Name,
		Timestamp:   p.now(),
	}

	switch query.Units {
	case "imperial":
		data.Temp, data.FeelsLike, data.WindSpeed = c.TempF, c.FeelsLikeF, c.WindMph
		data.Units = "imperial"
	case "standard":
		data.Temp, data.FeelsLike, data.WindSpeed = c.TempC+kelvinOffset, c.FeelsLikeC+kelvinOffset, kphToMps(c.WindKph)
		data.Units = "standard"
	default:
		data.Temp, data.FeelsLike, data.WindSpeed = c.TempC, c.FeelsLikeC, kphToMps(c.WindKph)
		data.Units = "metric"
	}
	if data.Location == "" {
		data.Location = query.City
	}
	return data, nil
}

// GetProviderName returns the name of this weather provider
func (p *WeatherAPIProviderAdapter) GetProviderName() string {
	return "weatherapi"
}

func kphToMps(kph float64) float64 {
	return kph / 3.6
}

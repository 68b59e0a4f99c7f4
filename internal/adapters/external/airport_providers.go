package external

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

const (
	aviationstackLimit = 10
	unknownCity        = "Unknown"
)

// AviationstackProviderAdapter implements AirportProvider on the Aviationstack API
type AviationstackProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

type AviationstackProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  ports.Logger
}

type aviationstackResponse struct {
	Data []struct {
		AirportName  string `json:"airport_name"`
		IATACode     string `json:"iata_code"`
		ICAOCode     string `json:"icao_code"`
		CityName     string `json:"city_name"`
		Municipality string `json:"municipality"`
		CountryName  string `json:"country_name"`
	} `json:"data"`
}

func NewAviationstackProviderAdapter(params AviationstackProviderParams) *AviationstackProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "http://api.aviationstack.com/v1"
	}
	return &AviationstackProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(params.Timeout),
		logger:  params.Logger,
	}
}

func (p *AviationstackProviderAdapter) SearchAirports(ctx context.Context, query string) ([]ports.Airport, error) {
	if p.apiKey == "" {
		return nil, errors.NewConfigurationError("Aviationstack API key is not configured", nil)
	}

	params := url.Values{}
	params.Set("access_key", p.apiKey)
	params.Set("search", query)
	params.Set("limit", "10")

	var resp aviationstackResponse
	if err := getJSON(ctx, p.client, p.logger, "Aviationstack", p.baseURL+"/airports", params, nil, &resp); err != nil {
		return nil, upstreamError(err, "")
	}

	airports := make([]ports.Airport, 0, len(resp.Data))
	for _, a := range resp.Data {
		code := firstNonEmpty(a.IATACode, a.ICAOCode, "N/A")
		airports = append(airports, ports.Airport{
			Code:    code,
			Name:    a.AirportName,
			City:    firstNonEmpty(a.CityName, a.Municipality, unknownCity),
			Country: a.CountryName,
		})
		if len(airports) == aviationstackLimit {
			break
		}
	}
	return airports, nil
}

func (p *AviationstackProviderAdapter) GetProviderName() string {
	return "aviationstack"
}

// AirportDirectory is the built-in airport table used when no airport API
// is configured or the API fails
type AirportDirectory struct {
	airports []ports.Airport
}

func NewAirportDirectory() *AirportDirectory {
	return &AirportDirectory{airports: defaultAirports()}
}

// SearchAirports matches a case-insensitive substring of code, name or city
func (d *AirportDirectory) SearchAirports(ctx context.Context, query string) ([]ports.Airport, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	matches := []ports.Airport{}
	for _, a := range d.airports {
		if strings.Contains(strings.ToLower(a.Code), needle) ||
			strings.Contains(strings.ToLower(a.Name), needle) ||
			strings.Contains(strings.ToLower(a.City), needle) {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

func (d *AirportDirectory) GetProviderName() string {
	return "airport-directory"
}

// FallbackAirportProvider asks the primary provider first and answers from
// the fallback when the primary fails or finds nothing
type FallbackAirportProvider struct {
	primary  ports.AirportProvider
	fallback ports.AirportProvider
	logger   ports.Logger
}

func NewFallbackAirportProvider(primary, fallback ports.AirportProvider, logger ports.Logger) *FallbackAirportProvider {
	return &FallbackAirportProvider{primary: primary, fallback: fallback, logger: logger}
}

func (f *FallbackAirportProvider) SearchAirports(ctx context.Context, query string) ([]ports.Airport, error) {
	if f.primary != nil {
		airports, err := f.primary.SearchAirports(ctx, query)
		if err == nil && len(airports) > 0 {
			return airports, nil
		}
		if err != nil && f.logger != nil {
			f.logger.Warn("Airport provider failed, using fallback",
				ports.F("provider", f.primary.GetProviderName()),
				ports.F("error", err.Error()))
		}
	}
	return f.fallback.SearchAirports(ctx, query)
}

func (f *FallbackAirportProvider) GetProviderName() string {
	if f.primary == nil {
		return f.fallback.GetProviderName()
	}
	return f.primary.GetProviderName() + "+" + f.fallback.GetProviderName()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func defaultAirports() []ports.Airport {
	return []ports.Airport{
		{Code: "MNL", Name: "Ninoy Aquino International Airport", City: "Manila", Country: "Philippines"},
		{Code: "CEB", Name: "Mactan-Cebu International Airport", City: "Cebu", Country: "Philippines"},
		{Code: "DVO", Name: "Francisco Bangoy International Airport", City: "Davao", Country: "Philippines"},
		{Code: "ILO", Name: "Iloilo International Airport", City: "Iloilo", Country: "Philippines"},
		{Code: "CRK", Name: "Clark International Airport", City: "Angeles", Country: "Philippines"},
		{Code: "CGY", Name: "Laguindingan Airport", City: "Cagayan de Oro", Country: "Philippines"},
		{Code: "BCD", Name: "Bacolod-Silay Airport", City: "Bacolod", Country: "Philippines"},
		{Code: "TAG", Name: "Tagbilaran Airport", City: "Tagbilaran", Country: "Philippines"},
		{Code: "KLO", Name: "Kalibo International Airport", City: "Kalibo", Country: "Philippines"},
		{Code: "PPS", Name: "Puerto Princesa International Airport", City: "Puerto Princesa", Country: "Philippines"},
		{Code: "GES", Name: "General Santos International Airport", City: "General Santos", Country: "Philippines"},
		{Code: "ZAM", Name: "Zamboanga International Airport", City: "Zamboanga", Country: "Philippines"},
		{Code: "SFO", Name: "San Francisco International Airport", City: "San Francisco", Country: "USA"},
		{Code: "LAX", Name: "Los Angeles International Airport", City: "Los Angeles", Country: "USA"},
		{Code: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "USA"},
		{Code: "CDG", Name: "Charles de Gaulle Airport", City: "Paris", Country: "France"},
		{Code: "LHR", Name: "Heathrow Airport", City: "London", Country: "UK"},
		{Code: "NRT", Name: "Narita International Airport", City: "Tokyo", Country: "Japan"},
		{Code: "HND", Name: "Haneda Airport", City: "Tokyo", Country: "Japan"},
		{Code: "SYD", Name: "Sydney Airport", City: "Sydney", Country: "Australia"},
		{Code: "DXB", Name: "Dubai International Airport", City: "Dubai", Country: "UAE"},
		{Code: "SIN", Name: "Singapore Changi Airport", City: "Singapore", Country: "Singapore"},
		{Code: "ICN", Name: "Incheon International Airport", City: "Seoul", Country: "South Korea"},
		{Code: "BKK", Name: "Suvarnabhumi Airport", City: "Bangkok", Country: "Thailand"},
	}
}

package external

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

const nominatimProviderName = "nominatim"

// NominatimProviderAdapter implements PlaceProvider on OpenStreetMap Nominatim
type NominatimProviderAdapter struct {
	baseURL   string
	userAgent string
	client    HTTPClient
	logger    ports.Logger
}

type NominatimProviderParams struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    ports.Logger
}

// nominatimPlace is one entry of the /search response
type nominatimPlace struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Name        string      `json:"name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
}

func NewNominatimProviderAdapter(params NominatimProviderParams) *NominatimProviderAdapter {
	baseURL := params.BaseURL
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = "TravelPlannerApp/1.0"
	}

	return &NominatimProviderAdapter{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    newHTTPClient(params.Timeout),
		logger:    params.Logger,
	}
}

func (p *NominatimProviderAdapter) SearchPlaces(ctx context.Context, query string, limit int) ([]ports.PlaceSuggestion, error) {
	if query == "" {
		return nil, errors.NewValidationError("query cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	places, err := p.search(ctx, query, limit, true)
	if err != nil {
		return nil, err
	}

	suggestions := make([]ports.PlaceSuggestion, 0, len(places))
	for _, place := range places {
		suggestions = append(suggestions, ports.PlaceSuggestion{
			Description:   place.DisplayName,
			PrimaryName:   primaryName(place),
			SecondaryText: place.DisplayName,
			PlaceID:       place.PlaceID.String(),
		})
	}
	return suggestions, nil
}

func (p *NominatimProviderAdapter) Geocode(ctx context.Context, address string) (*ports.GeoLocation, error) {
	if address == "" {
		return nil, errors.NewValidationError("address cannot be empty")
	}

	places, err := p.search(ctx, address, 1, false)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, errors.NewExternalAPIError("nominatim returned an invalid latitude", err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, errors.NewExternalAPIError("nominatim returned an invalid longitude", err)
	}

	return &ports.GeoLocation{
		Lat:              lat,
		Lng:              lng,
		FormattedAddress: places[0].DisplayName,
	}, nil
}

func (p *NominatimProviderAdapter) GetProviderName() string {
	return nominatimProviderName
}

func (p *NominatimProviderAdapter) search(ctx context.Context, q string, limit int, details bool) ([]nominatimPlace, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	if details {
		params.Set("addressdetails", "1")
	}

	var places []nominatimPlace
	err := getJSON(ctx, p.client, p.logger, "Nominatim", p.baseURL+"/search", params,
		map[string]string{"User-Agent": p.userAgent}, &places)
	if err != nil {
		return nil, upstreamError(err, "")
	}
	return places, nil
}

// primaryName is the place name, or the first part of its display name
func primaryName(place nominatimPlace) string {
	if place.Name != "" {
		return place.Name
	}
	return strings.TrimSpace(strings.Split(place.DisplayName, ",")[0])
}

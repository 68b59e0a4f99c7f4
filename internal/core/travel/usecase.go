package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

type UseCase struct {
	places   ports.PlaceProvider
	weather  ports.WeatherProviderManager
	airports ports.AirportProvider
	flights  ports.FlightProvider
	cache    ports.CacheProvider
	config   ports.ConfigProvider
	logger   ports.Logger
	metrics  ports.MetricsRecorder
}

type UseCaseDependencies struct {
	Places   ports.PlaceProvider
	Weather  ports.WeatherProviderManager
	Airports ports.AirportProvider
	Flights  ports.FlightProvider
	Cache    ports.CacheProvider
	Config   ports.ConfigProvider
	Logger   ports.Logger
	Metrics  ports.MetricsRecorder
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Places == nil {
		return nil, errors.NewValidationError("place provider is required")
	}
	if deps.Weather == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Airports == nil {
		return nil, errors.NewValidationError("airport provider is required")
	}
	if deps.Flights == nil {
		return nil, errors.NewValidationError("flight provider is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		places:   deps.Places,
		weather:  deps.Weather,
		airports: deps.Airports,
		flights:  deps.Flights,
		cache:    deps.Cache,
		config:   deps.Config,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}, nil
}

func (uc *UseCase) SearchPlaces(ctx context.Context, input string) ([]ports.PlaceSuggestion, error) {
	input = strings.TrimSpace(input)
	if len([]rune(input)) < MinQueryLength {
		return nil, errors.NewValidationError("Input must be at least 2 characters")
	}

	limit := uc.config.GetLookupConfig().SearchLimit
	key := fmt.Sprintf("places:%d:%s", limit, normalizeKey(input))

	var places []ports.PlaceSuggestion
	err := uc.withCache(ctx, KindPlaces, key, &places, func() (interface{}, error) {
		found, err := uc.places.SearchPlaces(ctx, input, limit)
		if err != nil {
			return nil, providerError("place search failed", err)
		}
		if found == nil {
			found = []ports.PlaceSuggestion{}
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	return places, nil
}

// Geocode returns nil without error when the address matches nothing
func (uc *UseCase) Geocode(ctx context.Context, address string) (*ports.GeoLocation, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.NewValidationError("Missing address")
	}

	var location *ports.GeoLocation
	err := uc.withCache(ctx, KindGeocode, "geocode:"+normalizeKey(address), &location, func() (interface{}, error) {
		found, err := uc.places.Geocode(ctx, address)
		if err != nil {
			return nil, providerError("geocoding failed", err)
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (uc *UseCase) CurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error) {
	units, err := NormalizeUnits(query.Units, uc.config.GetLookupConfig().DefaultUnits)
	if err != nil {
		return nil, err
	}
	query.Units = units
	query.City = strings.TrimSpace(query.City)
	if err := validateWeatherQuery(query); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("weather:%s:%.4f,%.4f", units, query.Lat, query.Lng)
	if query.ByCity() {
		key = fmt.Sprintf("weather:%s:city:%s", units, normalizeKey(query.City))
	}

	var weather *ports.WeatherData
	err = uc.withCache(ctx, KindWeather, key, &weather, func() (interface{}, error) {
		found, err := uc.weather.GetWeather(ctx, query)
		if err != nil {
			return nil, providerError("weather provider failed", err)
		}
		if found == nil {
			return nil, errors.NewNotFoundError("no weather data for location")
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Weather retrieved",
		ports.F("location", weather.Location),
		ports.F("temperature", weather.Temp))
	return weather, nil
}

func (uc *UseCase) SearchAirports(ctx context.Context, query string) ([]ports.Airport, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return nil, errors.NewValidationError("Query must be at least 2 characters")
	}

	airports, err := uc.airports.SearchAirports(ctx, query)
	if err != nil {
		return nil, providerError("airport search failed", err)
	}
	if airports == nil {
		airports = []ports.Airport{}
	}
	return airports, nil
}

// SearchFlights is never cached; offers are priced per request
func (uc *UseCase) SearchFlights(ctx context.Context, query ports.FlightSearchQuery) ([]ports.FlightOffer, error) {
	query, err := NormalizeFlightQuery(query, uc.config.GetLookupConfig().DefaultCurrency)
	if err != nil {
		return nil, err
	}

	offers, err := uc.flights.SearchFlights(ctx, query)
	if err != nil {
		return nil, providerError("flight search failed", err)
	}
	if offers == nil {
		offers = []ports.FlightOffer{}
	}
	return offers, nil
}

func (uc *UseCase) GetProviderInfo() map[string]interface{} {
	return map[string]interface{}{
		"places":   uc.places.GetProviderName(),
		"weather":  uc.weather.GetProviderInfo(),
		"airports": uc.airports.GetProviderName(),
		"flights":  uc.flights.GetProviderName(),
	}
}

// withCache decodes a cached value into target, or calls fetch and caches
// its JSON. Cache failures are logged and never fail the lookup. Nil results
// are not cached.
func (uc *UseCase) withCache(ctx context.Context, kind, key string, target interface{}, fetch func() (interface{}, error)) error {
	cfg := uc.config.GetLookupConfig()

	if cfg.EnableCache {
		if raw, err := uc.cache.Get(ctx, key); err == nil {
			if err := json.Unmarshal(raw, target); err == nil {
				uc.metrics.RecordLookupCacheHit(kind)
				uc.logger.Debug("Lookup served from cache", ports.F("kind", kind), ports.F("key", key))
				return nil
			}
			uc.logger.Warn("Dropping undecodable cache entry", ports.F("key", key))
		} else if !errors.IsNotFoundError(err) {
			uc.logger.Warn("Cache read failed", ports.F("key", key), ports.F("error", err))
		}
		uc.metrics.RecordLookupCacheMiss(kind)
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s result: %w", kind, err)
	}
	if err := json.Unmarshal(encoded, target); err != nil {
		return fmt.Errorf("decode %s result: %w", kind, err)
	}

	if cfg.EnableCache && string(encoded) != "null" {
		if err := uc.cache.Set(ctx, key, encoded, cfg.CacheTTL); err != nil {
			uc.logger.Warn("Failed to cache lookup result",
				ports.F("key", key),
				ports.F("error", err))
		}
	}
	return nil
}

// providerError keeps typed provider errors and wraps anything else as an
// external API failure.
func providerError(message string, err error) error {
	if errors.TypeOf(err) != errors.ErrorTypeUnknown {
		return err
	}
	return errors.NewExternalAPIError(message, err)
}

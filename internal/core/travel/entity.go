// Package travel fronts the place, weather, airport and flight lookups with
// input validation and a shared lookup cache.
package travel

import (
	"strings"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/kiervincent5/travel-planner/pkg/validation"
)

const (
	MinQueryLength = 2

	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
	UnitsStandard = "standard"

	KindPlaces   = "places"
	KindGeocode  = "geocode"
	KindWeather  = "weather"
	KindAirports = "airports"
)

const dateLayout = "2006-01-02"

// NormalizeUnits returns the unit system to request, falling back to def
func NormalizeUnits(units, def string) (string, error) {
	units = strings.ToLower(strings.TrimSpace(units))
	if units == "" {
		units = def
	}
	if units == "" {
		units = UnitsMetric
	}
	switch units {
	case UnitsMetric, UnitsImperial, UnitsStandard:
		return units, nil
	default:
		return "", errors.NewValidationError("units must be metric, imperial or standard")
	}
}

func validateWeatherQuery(q ports.WeatherQuery) error {
	if q.ByCity() {
		if !validation.IsNotEmpty(q.City) {
			return errors.NewValidationError("Provide lat/lon or q (city name)")
		}
		return nil
	}
	if q.Lat < -90 || q.Lat > 90 {
		return errors.NewValidationError("lat must be between -90 and 90")
	}
	if q.Lng < -180 || q.Lng > 180 {
		return errors.NewValidationError("lon must be between -180 and 180")
	}
	return nil
}

// NormalizeFlightQuery validates a search and fills its defaults
func NormalizeFlightQuery(q ports.FlightSearchQuery, defaultCurrency string) (ports.FlightSearchQuery, error) {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))
	q.Date = strings.TrimSpace(q.Date)

	if q.Origin == "" || q.Destination == "" || q.Date == "" {
		return q, errors.NewValidationError("Missing origin, destination, or date")
	}
	if !validation.IsValidAirportCode(q.Origin) || !validation.IsValidAirportCode(q.Destination) {
		return q, errors.NewValidationError("airport codes must be 3 letters")
	}
	if _, err := time.Parse(dateLayout, q.Date); err != nil {
		return q, errors.NewValidationError("date must be formatted YYYY-MM-DD")
	}
	if q.Adults < 0 {
		return q, errors.NewValidationError("adults must be at least 1")
	}
	if q.Adults == 0 {
		q.Adults = 1
	}

	q.Currency = strings.ToUpper(strings.TrimSpace(q.Currency))
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}
	return q, nil
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

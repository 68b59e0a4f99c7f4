package ports

import (
	"context"
	"time"
)

// PlaceSuggestion is one place-search match
type PlaceSuggestion struct {
	Description   string
	PrimaryName   string
	SecondaryText string
	PlaceID       string
}

// GeoLocation is a resolved address
type GeoLocation struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
}

// PlaceProvider resolves free text to places and coordinates.
// Geocode returns nil without error when nothing matches.
type PlaceProvider interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]PlaceSuggestion, error)
	Geocode(ctx context.Context, address string) (*GeoLocation, error)
	GetProviderName() string
}

// WeatherQuery selects a location by city name or, when City is empty, by coordinates
type WeatherQuery struct {
	Lat   float64
	Lng   float64
	City  string
	Units string
}

// ByCity reports whether the query addresses a city name
func (q WeatherQuery) ByCity() bool {
	return q.City != ""
}

// WeatherData represents current conditions at one location
type WeatherData struct {
	Temp        float64
	FeelsLike   float64
	Humidity    float64
	Description string
	WindSpeed   float64
	Pressure    float64
	Location    string
	Units       string
	Timestamp   time.Time
}

// WeatherProvider defines the contract for weather data providers
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, query WeatherQuery) (*WeatherData, error)
	GetProviderName() string
}

// WeatherProviderManager defines the contract for managing multiple weather providers
type WeatherProviderManager interface {
	GetWeather(ctx context.Context, query WeatherQuery) (*WeatherData, error)
	GetProviderInfo() map[string]interface{}
}

// Airport is an airport directory entry
type Airport struct {
	Code    string
	Name    string
	City    string
	Country string
}

// AirportProvider searches airports by code, name or city
type AirportProvider interface {
	SearchAirports(ctx context.Context, query string) ([]Airport, error)
	GetProviderName() string
}

// FlightSearchQuery describes a one-way search
type FlightSearchQuery struct {
	Origin      string
	Destination string
	Date        string
	Adults      int
	Currency    string
}

// FlightOffer is one bookable flight
type FlightOffer struct {
	Airline      string
	FlightNumber string
	Departure    string
	Arrival      string
	Duration     string
	Price        float64
	Currency     string
}

// FlightProvider searches flight offers
type FlightProvider interface {
	SearchFlights(ctx context.Context, query FlightSearchQuery) ([]FlightOffer, error)
	GetProviderName() string
}

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kiervincent5/travel-planner/internal/ports"
	errorspkg "github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/kiervincent5/travel-planner/pkg/validation"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// RegisterValidators installs the custom binding tags used by the request
// structs of this package
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errorspkg.NewConfigurationError("unexpected binding validator engine", nil)
	}
	return v.RegisterValidation("airportcode", validateAirportCode)
}

func validateAirportCode(fl validator.FieldLevel) bool {
	return validation.IsValidAirportCode(fl.Field().String())
}

type PredictionResponse struct {
	Description          string               `json:"description"`
	PlaceID              string               `json:"place_id"`
	StructuredFormatting StructuredFormatting `json:"structured_formatting"`
}

type StructuredFormatting struct {
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

type AutocompleteResponse struct {
	Predictions []PredictionResponse `json:"predictions"`
	Status      string               `json:"status"`
}

type GeocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
	Status  string          `json:"status"`
}

// WeatherResponse keeps the field layout of the OpenWeatherMap payload the
// front end reads
type WeatherResponse struct {
	Name    string             `json:"name"`
	Main    WeatherMain        `json:"main"`
	Weather []WeatherCondition `json:"weather"`
	Wind    WeatherWind        `json:"wind"`
	Units   string             `json:"units"`
	Time    int64              `json:"dt"`
}

type WeatherMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	Pressure  float64 `json:"pressure"`
}

type WeatherCondition struct {
	Description string `json:"description"`
}

type WeatherWind struct {
	Speed float64 `json:"speed"`
}

type AirportResponse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type AirportsResponse struct {
	Data []AirportResponse `json:"data"`
}

type FlightResponse struct {
	Airline      string  `json:"airline"`
	FlightNumber string  `json:"flightNumber"`
	Departure    string  `json:"departure"`
	Arrival      string  `json:"arrival"`
	Duration     string  `json:"duration"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
}

type FlightSearchResponse struct {
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Date        string           `json:"date"`
	Adults      int              `json:"adults"`
	Flights     []FlightResponse `json:"flights"`
}

type flightSearchRequest struct {
	Origin      string `form:"origin" binding:"required,airportcode"`
	Destination string `form:"destination" binding:"required,airportcode"`
	Date        string `form:"date" binding:"required"`
	Adults      int    `form:"adults" binding:"omitempty,min=1"`
	Currency    string `form:"currency"`
}

// placeAutocomplete handles GET /api/maps/autocomplete
func (s *HTTPServerAdapter) placeAutocomplete(c *gin.Context) {
	places, err := s.travelUseCase.SearchPlaces(c.Request.Context(), c.Query("input"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	predictions := make([]PredictionResponse, len(places))
	for i, place := range places {
		predictions[i] = PredictionResponse{
			Description: place.Description,
			PlaceID:     place.PlaceID,
			StructuredFormatting: StructuredFormatting{
				MainText:      place.PrimaryName,
				SecondaryText: place.SecondaryText,
			},
		}
	}

	c.JSON(http.StatusOK, AutocompleteResponse{Predictions: predictions, Status: statusOK})
}

// geocode handles GET /api/maps/geocode
func (s *HTTPServerAdapter) geocode(c *gin.Context) {
	location, err := s.travelUseCase.Geocode(c.Request.Context(), c.Query("address"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	if location == nil {
		c.JSON(http.StatusOK, GeocodeResponse{Results: []GeocodeResult{}, Status: statusZeroResults})
		return
	}

	var result GeocodeResult
	result.FormattedAddress = location.FormattedAddress
	result.Geometry.Location.Lat = location.Lat
	result.Geometry.Location.Lng = location.Lng

	c.JSON(http.StatusOK, GeocodeResponse{Results: []GeocodeResult{result}, Status: statusOK})
}

// currentWeather handles GET /api/weather/current. Coordinates win over a
// city name when both are given.
func (s *HTTPServerAdapter) currentWeather(c *gin.Context) {
	query, err := weatherQueryFrom(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	weather, err := s.travelUseCase.CurrentWeather(c.Request.Context(), query)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, WeatherResponse{
		Name: weather.Location,
		Main: WeatherMain{
			Temp:      weather.Temp,
			FeelsLike: weather.FeelsLike,
			Humidity:  weather.Humidity,
			Pressure:  weather.Pressure,
		},
		Weather: []WeatherCondition{{Description: weather.Description}},
		Wind:    WeatherWind{Speed: weather.WindSpeed},
		Units:   weather.Units,
		Time:    weather.Timestamp.Unix(),
	})
}

func weatherQueryFrom(c *gin.Context) (ports.WeatherQuery, error) {
	query := ports.WeatherQuery{Units: c.Query("units")}
	lat, lon := strings.TrimSpace(c.Query("lat")), strings.TrimSpace(c.Query("lon"))

	switch {
	case lat != "" && lon != "":
		var err error
		if query.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
			return query, errorspkg.NewValidationError("lat and lon must be numbers")
		}
		if query.Lng, err = strconv.ParseFloat(lon, 64); err != nil {
			return query, errorspkg.NewValidationError("lat and lon must be numbers")
		}
	case strings.TrimSpace(c.Query("q")) != "":
		query.City = c.Query("q")
	default:
		return query, errorspkg.NewValidationError("Provide lat/lon or q (city name)")
	}
	return query, nil
}

// airportAutocomplete handles GET /api/flights/airports
func (s *HTTPServerAdapter) airportAutocomplete(c *gin.Context) {
	airports, err := s.travelUseCase.SearchAirports(c.Request.Context(), c.Query("query"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	data := make([]AirportResponse, len(airports))
	for i, a := range airports {
		data[i] = AirportResponse{Code: a.Code, Name: a.Name, City: a.City, Country: a.Country}
	}

	c.JSON(http.StatusOK, AirportsResponse{Data: data})
}

// searchFlights handles GET /api/flights/search
func (s *HTTPServerAdapter) searchFlights(c *gin.Context) {
	var req flightSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		s.handleError(c, flightSearchError(err))
		return
	}

	query := ports.FlightSearchQuery{
		Origin:      strings.ToUpper(strings.TrimSpace(req.Origin)),
		Destination: strings.ToUpper(strings.TrimSpace(req.Destination)),
		Date:        strings.TrimSpace(req.Date),
		Adults:      req.Adults,
		Currency:    req.Currency,
	}
	if query.Adults == 0 {
		query.Adults = 1
	}

	offers, err := s.travelUseCase.SearchFlights(c.Request.Context(), query)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, FlightSearchResponse{
		Origin:      query.Origin,
		Destination: query.Destination,
		Date:        query.Date,
		Adults:      query.Adults,
		Flights:     flightResponses(offers),
	})
}

// flightSearchError turns a binding failure into the message users see
func flightSearchError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorspkg.NewValidationError("adults must be a number")
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return errorspkg.NewValidationError("Missing origin, destination, or date")
		case "airportcode":
			return errorspkg.NewValidationError("airport codes must be 3 letters")
		}
	}
	return errorspkg.NewValidationError("adults must be at least 1")
}

func flightResponses(offers []ports.FlightOffer) []FlightResponse {
	flights := make([]FlightResponse, len(offers))
	for i, o := range offers {
		flights[i] = FlightResponse{
			Airline:      o.Airline,
			FlightNumber: o.FlightNumber,
			Departure:    o.Departure,
			Arrival:      o.Arrival,
			Duration:     o.Duration,
			Price:        o.Price,
			Currency:     o.Currency,
		}
	}
	return flights
}

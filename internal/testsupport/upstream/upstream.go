// Package upstream serves canned responses in the shape of the Nominatim,
// OpenWeatherMap, WeatherAPI and Aviationstack APIs so the service can run
// end to end without network access.
package upstream

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Path prefixes, to be appended to the upstream base URL in the config
const (
	NominatimPrefix     = "/nominatim"
	OpenWeatherPrefix   = "/openweathermap"
	WeatherAPIPrefix    = "/weatherapi"
	AviationstackPrefix = "/aviationstack"
)

// Magic queries that make every upstream fail
const (
	QueryServerError = "servererror"
	QueryUnknown     = "atlantis"
)

type place struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type city struct {
	place       place
	tempC       float64
	feelsLikeC  float64
	humidity    float64
	windKph     float64
	pressureMb  float64
	description string
}

var cities = []city{
	{
		place:       place{PlaceID: 1001, DisplayName: "Cebu City, Cebu, Central Visayas, Philippines", Name: "Cebu City", Lat: "10.3157", Lon: "123.8854"},
		tempC:       30.2,
		feelsLikeC:  35.1,
		humidity:    70,
		windKph:     14.4,
		pressureMb:  1009,
		description: "scattered clouds",
	},
	{
		place:       place{PlaceID: 1002, DisplayName: "Manila, Metro Manila, Philippines", Name: "Manila", Lat: "14.5995", Lon: "120.9842"},
		tempC:       31,
		feelsLikeC:  36,
		humidity:    66,
		windKph:     16.6,
		pressureMb:  1008,
		description: "few clouds",
	},
	{
		place:       place{PlaceID: 1003, DisplayName: "Baguio, Benguet, Philippines", Name: "Baguio", Lat: "16.4023", Lon: "120.5960"},
		tempC:       18,
		feelsLikeC:  18,
		humidity:    88,
		windKph:     7.2,
		pressureMb:  1012,
		description: "light rain",
	},
}

type airport struct {
	AirportName string `json:"airport_name"`
	IATACode    string `json:"iata_code"`
	ICAOCode    string `json:"icao_code"`
	CityName    string `json:"city_name"`
	CountryName string `json:"country_name"`
}

var airports = []airport{
	{AirportName: "Ninoy Aquino International", IATACode: "MNL", ICAOCode: "RPLL", CityName: "Manila", CountryName: "Philippines"},
	{AirportName: "Mactan-Cebu International", IATACode: "CEB", ICAOCode: "RPVM", CityName: "Lapu-Lapu", CountryName: "Philippines"},
	{AirportName: "Francisco Bangoy International", IATACode: "DVO", ICAOCode: "RPMD", CityName: "Davao", CountryName: "Philippines"},
}

// NewRouter returns the handler for all four fake upstreams
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET(NominatimPrefix+"/search", nominatimSearch)
	r.GET(OpenWeatherPrefix+"/weather", openWeatherCurrent)
	r.GET(WeatherAPIPrefix+"/current.json", weatherAPICurrent)
	r.GET(AviationstackPrefix+"/airports", aviationstackAirports)

	return r
}

func nominatimSearch(c *gin.Context) {
	if c.GetHeader("User-Agent") == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "User-Agent required"})
		return
	}
	q := strings.ToLower(c.Query("q"))
	if q == QueryServerError {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Only the first part of "City, Province, Country" is matched
	head := strings.TrimSpace(strings.Split(q, ",")[0])
	places := []place{}
	for _, ct := range cities {
		if head != "" && strings.Contains(strings.ToLower(ct.place.DisplayName), head) {
			places = append(places, ct.place)
		}
	}
	c.JSON(http.StatusOK, places)
}

// findCity matches a city name or, failing that, the nearest known coordinates
func findCity(name, lat, lon string) (city, bool) {
	name = strings.ToLower(strings.Split(name, ",")[0])
	for _, ct := range cities {
		if name != "" && strings.HasPrefix(strings.ToLower(ct.place.Name), name) {
			return ct, true
		}
		if name == "" && lat != "" && strings.HasPrefix(lat, ct.place.Lat[:4]) && strings.HasPrefix(lon, ct.place.Lon[:4]) {
			return ct, true
		}
	}
	return city{}, false
}

func openWeatherCurrent(c *gin.Context) {
	if c.Query("appid") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"cod": 401, "message": "Invalid API key"})
		return
	}
	if strings.EqualFold(c.Query("q"), QueryServerError) {
		c.JSON(http.StatusInternalServerError, gin.H{"cod": 500, "message": "Internal error"})
		return
	}

	ct, ok := findCity(c.Query("q"), c.Query("lat"), c.Query("lon"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"cod": "404", "message": "city not found"})
		return
	}

	temp, feels, wind := ct.tempC, ct.feelsLikeC, ct.windKph/3.6
	if c.Query("units") == "imperial" {
		temp, feels, wind = temp*9/5+32, feels*9/5+32, ct.windKph/1.609344
	}
	c.JSON(http.StatusOK, gin.H{
		"name":    ct.place.Name,
		"main":    gin.H{"temp": temp, "feels_like": feels, "humidity": ct.humidity, "pressure": ct.pressureMb},
		"weather": []gin.H{{"description": ct.description}},
		"wind":    gin.H{"speed": wind},
	})
}

func weatherAPICurrent(c *gin.Context) {
	if c.Query("key") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": 1002, "message": "API key is invalid"}})
		return
	}
	q := c.Query("q")
	if strings.EqualFold(q, QueryServerError) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": 9999, "message": "Internal application error"}})
		return
	}

	var (
		ct city
		ok bool
	)
	if parts := strings.Split(q, ","); len(parts) == 2 && strings.ContainsAny(parts[0], "0123456789") {
		ct, ok = findCity("", parts[0], parts[1])
	} else {
		ct, ok = findCity(q, "", "")
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": 1006, "message": "No matching location found."}})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location": gin.H{"name": ct.place.Name},
		"current": gin.H{
			"temp_c":      ct.tempC,
			"temp_f":      ct.tempC*9/5 + 32,
			"feelslike_c": ct.feelsLikeC,
			"feelslike_f": ct.feelsLikeC*9/5 + 32,
			"humidity":    ct.humidity,
			"wind_kph":    ct.windKph,
			"wind_mph":    ct.windKph / 1.609344,
			"pressure_mb": ct.pressureMb,
			"condition":   gin.H{"text": ct.description},
		},
	})
}

func aviationstackAirports(c *gin.Context) {
	if c.Query("access_key") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "missing_access_key"}})
		return
	}
	search := strings.ToLower(c.Query("search"))
	if search == QueryServerError {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal_error"}})
		return
	}

	data := []airport{}
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.AirportName+" "+a.IATACode+" "+a.CityName), search) {
			data = append(data, a)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() planner.Document {
	plan := planner.TripPlan{
		ID:        "a7c1",
		Title:     "Cebu Getaway",
		StartDate: planner.MustParseDate("2024-12-20"),
		EndDate:   planner.MustParseDate("2024-12-23"),
		Travelers: 2,
		Destination: &planner.Destination{
			Name: "Cebu City", FullAddress: "Cebu City, Central Visayas, Philippines",
			Lat: 10.3157, Lng: 123.8854,
		},
		Weather: &planner.WeatherSnapshot{Temp: 30.4, FeelsLike: 35.6, Humidity: 70, Description: "scattered clouds", WindSpeed: 3.1, Pressure: 1009},
		Flight: &planner.Flight{
			Airline: "Cebu Pacific", FlightNumber: "5J123", Price: 2500, Currency: "PHP",
			Origin: "MNL", Destination: "CEB",
			Departure: "2024-12-20T12:00:00", Arrival: "2024-12-20T14:45:00", Duration: "2h 45m",
		},
	}
	user := &planner.SessionUser{ID: 1, Username: "maria"}
	return planner.Render(plan, user, time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{in: "", want: FormatJSON},
		{in: "json", want: FormatJSON},
		{in: "TEXT", want: FormatText},
		{in: "txt", want: FormatText},
		{in: " pdf ", want: FormatPDF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseFormat("docx")
	assert.True(t, errors.IsValidationError(err))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "cebu-getaway.pdf", Filename("Cebu Getaway!", FormatPDF))
	assert.Equal(t, "cebu-getaway.txt", Filename("  Cebu   Getaway ", FormatText))
	assert.Equal(t, "trip-itinerary.json", Filename("***", FormatJSON))
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
}

func TestText(t *testing.T) {
	out := Text(sampleDocument())

	assert.Contains(t, out, "TRIP ITINERARY\nCebu Getaway\n")
	assert.Contains(t, out, "Generated on December 1, 2024 9:30 AM by maria")
	assert.Contains(t, out, "Trip Information\n----------------\n")
	assert.Contains(t, out, "Duration: 4 days\n")
	assert.Contains(t, out, "Start Date: Friday, December 20, 2024\n")
	assert.Contains(t, out, "Coordinates: 10.3157, 123.8854\n")
	assert.Contains(t, out, "Temperature: 30°C\n")
	assert.Contains(t, out, "Route: MNL → CEB\n")
	assert.Contains(t, out, "Departure: Dec 20, 2024, 12:00 PM\n")
	assert.Contains(t, out, "Total for 2 travelers: PHP 5,000\n")
	assert.Contains(t, out, "Please verify all details with service providers before traveling\n")
}

func TestText_MinimalPlan(t *testing.T) {
	doc := planner.Render(planner.TripPlan{
		Title:     "Day trip",
		StartDate: planner.MustParseDate("2024-05-01"),
		EndDate:   planner.MustParseDate("2024-05-01"),
	}, nil, time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC))

	out := Text(doc)

	assert.Contains(t, out, "Duration: 1 day\n")
	assert.NotContains(t, out, " by ")
	assert.NotContains(t, out, "Destination\n")
	assert.NotContains(t, out, "Total for")
}

func TestPDF(t *testing.T) {
	data, err := PDF(sampleDocument())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Greater(t, len(data), 1000)
}

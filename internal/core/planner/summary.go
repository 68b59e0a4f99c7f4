package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	displayDateLayout   = "Monday, January 2, 2006"
	displayFlightLayout = "Jan 2, 2006, 3:04 PM"
)

// Line is one labelled value of a summary section
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Section struct {
	Heading string `json:"heading"`
	Lines   []Line `json:"lines"`
}

// CostLine is the total flight cost for a group
type CostLine struct {
	Travelers int     `json:"travelers"`
	Currency  string  `json:"currency"`
	Amount    float64 `json:"amount"`
	Display   string  `json:"display"`
}

// Document is a rendered itinerary, independent of output format
type Document struct {
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	GeneratedBy  string    `json:"generatedBy,omitempty"`
	GeneratedAt  time.Time `json:"generatedAt"`
	DurationDays int       `json:"durationDays"`
	Sections     []Section `json:"sections"`
	TotalCost    *CostLine `json:"totalCost,omitempty"`
	Footer       []string  `json:"footer"`
}

// Render builds the itinerary for plan. It has no side effects.
func Render(plan TripPlan, user *SessionUser, generatedAt time.Time) Document {
	days := DurationDays(plan.StartDate, plan.EndDate)

	doc := Document{
		Title:        "Trip Itinerary",
		Subtitle:     plan.Title,
		GeneratedAt:  generatedAt,
		DurationDays: days,
		Footer: []string{
			"This itinerary was created using Travel Planner",
			"Please verify all details with service providers before traveling",
		},
	}
	if user != nil {
		doc.GeneratedBy = user.Username
	}

	doc.Sections = append(doc.Sections, tripSection(plan, days))

	if plan.Destination != nil {
		doc.Sections = append(doc.Sections, destinationSection(*plan.Destination))
		if plan.Weather != nil {
			doc.Sections = append(doc.Sections, weatherSection(*plan.Weather))
		}
	}

	if plan.Flight != nil {
		doc.Sections = append(doc.Sections, flightSection(*plan.Flight))
		if total := TotalFlightCost(plan); total != nil {
			doc.TotalCost = total
		}
	}

	return doc
}

// DurationDays counts both endpoints, so a same-day trip lasts one day.
// Missing dates give zero.
func DurationDays(start, end Date) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	diff := end.Time().Sub(start.Time()).Hours() / 24
	return int(math.Ceil(diff)) + 1
}

// DurationLabel formats a day count as "1 day" or "N days"
func DurationLabel(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// TotalFlightCost is price times travelers; nil unless travelers > 1
func TotalFlightCost(plan TripPlan) *CostLine {
	if plan.Flight == nil || plan.Travelers <= 1 {
		return nil
	}
	travelers := int(plan.Travelers)
	amount := plan.Flight.Price * float64(travelers)
	return &CostLine{
		Travelers: travelers,
		Currency:  plan.Flight.Currency,
		Amount:    amount,
		Display:   strings.TrimSpace(plan.Flight.Currency + " " + formatAmount(amount)),
	}
}

func tripSection(plan TripPlan, days int) Section {
	lines := []Line{
		{Label: "Trip Title", Value: plan.Title},
		{Label: "Duration", Value: DurationLabel(days)},
		{Label: "Start Date", Value: formatDisplayDate(plan.StartDate)},
		{Label: "End Date", Value: formatDisplayDate(plan.EndDate)},
		{Label: "Travelers", Value: fmt.Sprintf("%d person(s)", plan.Headcount())},
	}
	if plan.Budget != "" {
		lines = append(lines, Line{Label: "Budget", Value: plan.Budget})
	}
	if plan.Notes != "" {
		lines = append(lines, Line{Label: "Notes", Value: plan.Notes})
	}
	return Section{Heading: "Trip Information", Lines: lines}
}

func destinationSection(d Destination) Section {
	return Section{
		Heading: "Destination",
		Lines: []Line{
			{Label: "Location", Value: d.Name},
			{Label: "Full Address", Value: d.FullAddress},
			{Label: "Coordinates", Value: fmt.Sprintf("%.4f, %.4f", d.Lat, d.Lng)},
		},
	}
}

func weatherSection(w WeatherSnapshot) Section {
	return Section{
		Heading: "Weather Forecast",
		Lines: []Line{
			{Label: "Temperature", Value: fmt.Sprintf("%d°C", roundInt(w.Temp))},
			{Label: "Conditions", Value: w.Description},
			{Label: "Feels like", Value: fmt.Sprintf("%d°C", roundInt(w.FeelsLike))},
			{Label: "Humidity", Value: formatNumber(w.Humidity) + "%"},
			{Label: "Wind", Value: formatNumber(w.WindSpeed) + " m/s"},
			{Label: "Pressure", Value: formatNumber(w.Pressure) + " hPa"},
		},
	}
}

func flightSection(f Flight) Section {
	return Section{
		Heading: "Flight Details",
		Lines: []Line{
			{Label: "Airline", Value: f.Airline},
			{Label: "Price", Value: strings.TrimSpace(f.Currency + " " + formatNumber(f.Price))},
			{Label: "Flight Number", Value: f.FlightNumber},
			{Label: "Route", Value: f.Origin + " → " + f.Destination},
			{Label: "Departure", Value: formatFlightTime(f.Departure)},
			{Label: "Arrival", Value: formatFlightTime(f.Arrival)},
			{Label: "Duration", Value: f.Duration},
		},
	}
}

func formatDisplayDate(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(displayDateLayout)
}

var flightTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func formatFlightTime(raw string) string {
	for _, layout := range flightTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayFlightLayout)
		}
	}
	return raw
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatAmount groups thousands: 12500 -> "12,500", 1234.5 -> "1,234.5"
func formatAmount(v float64) string {
	raw := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	whole, frac, hasFrac := strings.Cut(raw, ".")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

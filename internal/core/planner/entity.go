// Package planner holds the trip-plan domain: the per-user plan list, the
// session record, the four-step planning wizard and the itinerary renderer.
package planner

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Keys of the per-user key/value namespace
const (
	KeyToken           = "token"
	KeyUser            = "user"
	KeyTripPlans       = "tripPlans"
	KeyEditingPlan     = "editingPlan"
	KeyCurrentViewPlan = "currentViewPlan"
	KeyPlannerDraft    = "plannerDraft"
)

const dateLayout = "2006-01-02"

// Date is a calendar date encoded as YYYY-MM-DD. The zero Date means "not set".
type Date struct {
	t time.Time
}

// ParseDate parses YYYY-MM-DD. Full RFC 3339 timestamps are accepted and
// truncated to their date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// NewDate builds a Date at UTC midnight
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MustParseDate is ParseDate for literals known to be valid
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the date at UTC midnight
func (d Date) Time() time.Time { return d.t }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON never fails: a stored value that is not a date decodes as
// the zero Date so one odd record cannot make the whole plan list unreadable.
func (d *Date) UnmarshalJSON(data []byte) error {
	*d = Date{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if parsed, err := ParseDate(s); err == nil {
		*d = parsed
	}
	return nil
}

// TravelerCount decodes both numbers and numeric strings; older records
// stored the raw form value. Anything else decodes as zero (unset).
type TravelerCount int

func (c *TravelerCount) UnmarshalJSON(data []byte) error {
	*c = 0
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = TravelerCount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*c = TravelerCount(n)
	}
	return nil
}

// Destination is the selected place of a trip
type Destination struct {
	Name        string  `json:"name"`
	FullAddress string  `json:"fullAddress"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// WeatherSnapshot is captured once, when the destination is selected
type WeatherSnapshot struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"windSpeed"`
	Pressure    float64 `json:"pressure"`
}

// Flight is a selected flight offer plus its route
type Flight struct {
	Airline      string  `json:"airline"`
	FlightNumber string  `json:"flightNumber"`
	Departure    string  `json:"departure"`
	Arrival      string  `json:"arrival"`
	Duration     string  `json:"duration"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
}

// TripPlan is a persisted plan record
type TripPlan struct {
	ID          string           `json:"id,omitempty"`
	Title       string           `json:"title"`
	StartDate   Date             `json:"startDate"`
	EndDate     Date             `json:"endDate"`
	Travelers   TravelerCount    `json:"travelers"`
	Budget      string           `json:"budget,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Destination *Destination     `json:"destination,omitempty"`
	Weather     *WeatherSnapshot `json:"weather,omitempty"`
	Flight      *Flight          `json:"flight,omitempty"`
	CreatedAt   *time.Time       `json:"createdAt,omitempty"`
}

// Headcount returns the number of travelers, treating unset as one
func (p TripPlan) Headcount() int {
	if p.Travelers < 1 {
		return 1
	}
	return int(p.Travelers)
}

// SessionUser is the public part of a user account
type SessionUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the signed-in state of one user
type Session struct {
	Token string
	User  SessionUser
}

// PlanStats summarizes a plan list
type PlanStats struct {
	Total              int `json:"total"`
	Upcoming           int `json:"upcoming"`
	UniqueDestinations int `json:"uniqueDestinations"`
}

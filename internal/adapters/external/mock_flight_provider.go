package external

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
)

// flightTemplate is one scheduled service; price is base plus a random
// integer in [0, spread)
type flightTemplate struct {
	airline      string
	flightNumber string
	departure    string
	arrival      string
	duration     string
	base         int
	spread       int
}

var flightSchedule = []flightTemplate{
	{airline: "Philippine Airlines", flightNumber: "PR101", departure: "08:00:00", arrival: "10:30:00", duration: "2h 30m", base: 100, spread: 300},
	{airline: "Cebu Pacific", flightNumber: "5J123", departure: "12:00:00", arrival: "14:45:00", duration: "2h 45m", base: 80, spread: 250},
	{airline: "AirAsia", flightNumber: "Z2456", departure: "16:30:00", arrival: "19:00:00", duration: "2h 30m", base: 60, spread: 200},
}

// MockFlightProvider generates offers locally; no flight API is called
type MockFlightProvider struct {
	mutex sync.Mutex
	rng   *rand.Rand
}

// NewMockFlightProvider uses src for prices, or a time-seeded source when nil
func NewMockFlightProvider(src rand.Source) *MockFlightProvider {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &MockFlightProvider{rng: rand.New(src)}
}

func (p *MockFlightProvider) SearchFlights(ctx context.Context, query ports.FlightSearchQuery) ([]ports.FlightOffer, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	offers := make([]ports.FlightOffer, 0, len(flightSchedule))
	for _, f := range flightSchedule {
		offers = append(offers, ports.FlightOffer{
			Airline:      f.airline,
			FlightNumber: f.flightNumber,
			Departure:    query.Date + "T" + f.departure,
			Arrival:      query.Date + "T" + f.arrival,
			Duration:     f.duration,
			Price:        float64(f.base + p.rng.Intn(f.spread)),
			Currency:     query.Currency,
		})
	}
	return offers, nil
}

func (p *MockFlightProvider) GetProviderName() string {
	return "mock-flights"
}

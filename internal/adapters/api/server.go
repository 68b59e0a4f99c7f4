// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/core/auth"
	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	environment      string
	authUseCase      AuthUseCase
	travelUseCase    TravelUseCase
	plannerUseCase   PlannerUseCase
	healthChecker    ports.SystemHealthChecker
	metricsCollector MetricsCollector
	requestObserver  RequestObserver
	metricsHandler   http.Handler
	logger           ports.Logger
	allowedOrigins   []string
	now              func() time.Time
}

// Use case interfaces that the HTTP adapter depends on
type AuthUseCase interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.Result, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.Result, error)
	Authenticate(ctx context.Context, token string) (*planner.Session, error)
	Me(ctx context.Context, user planner.SessionUser) (*planner.SessionUser, error)
	Logout(ctx context.Context, user planner.SessionUser) error
	Status(ctx context.Context, token string) planner.AuthView
}

type TravelUseCase interface {
	SearchPlaces(ctx context.Context, input string) ([]ports.PlaceSuggestion, error)
	Geocode(ctx context.Context, address string) (*ports.GeoLocation, error)
	CurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error)
	SearchAirports(ctx context.Context, query string) ([]ports.Airport, error)
	SearchFlights(ctx context.Context, query ports.FlightSearchQuery) ([]ports.FlightOffer, error)
}

type PlannerUseCase interface {
	StartWizard(ctx context.Context, user planner.SessionUser) (*planner.Draft, error)
	GetDraft(ctx context.Context, user planner.SessionUser) (*planner.Draft, error)
	DiscardWizard(ctx context.Context, user planner.SessionUser) error
	Advance(ctx context.Context, user planner.SessionUser, step planner.Step, form *planner.DetailsForm) (*planner.Draft, error)
	SelectDestination(ctx context.Context, user planner.SessionUser, place planner.PlaceSelection) (*planner.Draft, error)
	SearchFlights(ctx context.Context, user planner.SessionUser, origin, destination string) ([]ports.FlightOffer, error)
	SelectFlight(ctx context.Context, user planner.SessionUser, flight planner.Flight) (*planner.Draft, error)
	ClearFlight(ctx context.Context, user planner.SessionUser) (*planner.Draft, error)
	Review(ctx context.Context, user planner.SessionUser) (*planner.Document, error)
	Finalize(ctx context.Context, user planner.SessionUser) (*planner.FinalizeResult, error)

	ListPlans(ctx context.Context, user planner.SessionUser) ([]planner.PlanEntry, error)
	Stats(ctx context.Context, user planner.SessionUser) (planner.PlanStats, error)
	GetPlan(ctx context.Context, user planner.SessionUser, ref string) (*planner.PlanEntry, error)
	DeletePlan(ctx context.Context, user planner.SessionUser, ref string) error
	EditPlan(ctx context.Context, user planner.SessionUser, ref string) (*planner.EditHandoff, error)
	ViewPlan(ctx context.Context, user planner.SessionUser, ref string) (*planner.TripPlan, error)
	CurrentViewPlan(ctx context.Context, user planner.SessionUser) (*planner.Document, *planner.TripPlan, error)
	PlanSummary(ctx context.Context, user planner.SessionUser, ref string) (*planner.Document, *planner.TripPlan, error)
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// RequestObserver receives one observation per served request
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Environment      string
	AuthUseCase      AuthUseCase
	TravelUseCase    TravelUseCase
	PlannerUseCase   PlannerUseCase
	HealthChecker    ports.SystemHealthChecker
	MetricsCollector MetricsCollector
	RequestObserver  RequestObserver
	// MetricsHandler serves /metrics; promhttp.Handler() when nil
	MetricsHandler http.Handler
	Logger         ports.Logger
	AllowedOrigins []string
	Clock          func() time.Time
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	server := &HTTPServerAdapter{
		router:           gin.New(),
		environment:      opts.Environment,
		authUseCase:      opts.AuthUseCase,
		travelUseCase:    opts.TravelUseCase,
		plannerUseCase:   opts.PlannerUseCase,
		healthChecker:    opts.HealthChecker,
		metricsCollector: opts.MetricsCollector,
		requestObserver:  opts.RequestObserver,
		metricsHandler:   opts.MetricsHandler,
		logger:           opts.Logger,
		allowedOrigins:   opts.AllowedOrigins,
		now:              opts.Clock,
	}
	if server.metricsHandler == nil {
		server.metricsHandler = promhttp.Handler()
	}
	if server.now == nil {
		server.now = time.Now
	}

	server.setupMiddleware()
	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.AuthUseCase == nil {
		return errors.NewValidationError("auth use case is required")
	}
	if opts.TravelUseCase == nil {
		return errors.NewValidationError("travel use case is required")
	}
	if opts.PlannerUseCase == nil {
		return errors.NewValidationError("planner use case is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

func (s *HTTPServerAdapter) setupMiddleware() {
	s.router.Use(
		gin.Recovery(),
		requestID(),
		corsMiddleware(s.allowedOrigins),
		s.accessLog(),
	)
	if s.requestObserver != nil {
		s.router.Use(requestMetrics(s.requestObserver))
	}
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)

		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
		api.GET("/auth/status", s.authStatus)

		api.GET("/maps/autocomplete", s.placeAutocomplete)
		api.GET("/maps/geocode", s.geocode)
		api.GET("/weather/current", s.currentWeather)

		api.GET("/flights/airports", s.airportAutocomplete)
		api.GET("/flights/search", s.searchFlights)
		api.GET("/skyscanner/autocomplete", s.airportAutocomplete)
		api.GET("/skyscanner/search", s.searchFlights)
	}

	protected := api.Group("", s.requireAuth())
	{
		protected.GET("/auth/me", s.me)
		protected.POST("/auth/logout", s.logout)

		protected.POST("/planner", s.startWizard)
		protected.GET("/planner", s.getDraft)
		protected.DELETE("/planner", s.discardWizard)
		protected.POST("/planner/steps", s.advanceWizard)
		protected.POST("/planner/destination", s.selectDestination)
		protected.GET("/planner/flights", s.searchWizardFlights)
		protected.POST("/planner/flight", s.selectFlight)
		protected.DELETE("/planner/flight", s.clearFlight)
		protected.GET("/planner/review", s.reviewDraft)
		protected.POST("/planner/finalize", s.finalizeDraft)

		protected.GET("/plans", s.listPlans)
		protected.GET("/plans/stats", s.planStats)
		protected.GET("/plans/view", s.currentViewPlan)
		protected.GET("/plans/:id", s.getPlan)
		protected.DELETE("/plans/:id", s.deletePlan)
		protected.POST("/plans/:id/edit", s.editPlan)
		protected.POST("/plans/:id/view", s.viewPlan)
		protected.GET("/plans/:id/summary", s.planSummary)
	}

	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

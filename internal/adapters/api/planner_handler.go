package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// DraftResponse is a wizard draft plus the readable name of its step
type DraftResponse struct {
	*planner.Draft
	StepName string `json:"stepName"`
}

type AdvanceRequest struct {
	Step    planner.Step         `json:"step" binding:"required"`
	Details *planner.DetailsForm `json:"details"`
}

type WizardFlightsResponse struct {
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Flights     []FlightResponse `json:"flights"`
}

func newDraftResponse(draft *planner.Draft) DraftResponse {
	return DraftResponse{Draft: draft, StepName: draft.CurrentStep.String()}
}

// startWizard handles POST /api/planner. A pending edit handoff is picked up
// here.
func (s *HTTPServerAdapter) startWizard(c *gin.Context) {
	draft, err := s.plannerUseCase.StartWizard(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newDraftResponse(draft))
}

func (s *HTTPServerAdapter) getDraft(c *gin.Context) {
	draft, err := s.plannerUseCase.GetDraft(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDraftResponse(draft))
}

func (s *HTTPServerAdapter) discardWizard(c *gin.Context) {
	if err := s.plannerUseCase.DiscardWizard(c.Request.Context(), currentUser(c)); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Draft discarded"})
}

// advanceWizard handles POST /api/planner/steps
func (s *HTTPServerAdapter) advanceWizard(c *gin.Context) {
	var req AdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Request binding error", ports.F("error", err))
		s.handleError(c, errors.NewValidationError("step is required"))
		return
	}

	draft, err := s.plannerUseCase.Advance(c.Request.Context(), currentUser(c), req.Step, req.Details)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDraftResponse(draft))
}

// selectDestination handles POST /api/planner/destination
func (s *HTTPServerAdapter) selectDestination(c *gin.Context) {
	var place planner.PlaceSelection
	if err := c.ShouldBindJSON(&place); err != nil {
		s.logger.Debug("Request binding error", ports.F("error", err))
		s.handleError(c, errors.NewValidationError("Please select a destination"))
		return
	}

	draft, err := s.plannerUseCase.SelectDestination(c.Request.Context(), currentUser(c), place)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDraftResponse(draft))
}

// searchWizardFlights handles GET /api/planner/flights; date and headcount
// come from the draft
func (s *HTTPServerAdapter) searchWizardFlights(c *gin.Context) {
	origin := strings.ToUpper(strings.TrimSpace(c.Query("origin")))
	destination := strings.ToUpper(strings.TrimSpace(c.Query("destination")))

	offers, err := s.plannerUseCase.SearchFlights(c.Request.Context(), currentUser(c), origin, destination)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, WizardFlightsResponse{
		Origin:      origin,
		Destination: destination,
		Flights:     flightResponses(offers),
	})
}

func (s *HTTPServerAdapter) selectFlight(c *gin.Context) {
	var flight planner.Flight
	if err := c.ShouldBindJSON(&flight); err != nil {
		s.logger.Debug("Request binding error", ports.F("error", err))
		s.handleError(c, errors.NewValidationError("invalid flight"))
		return
	}

	draft, err := s.plannerUseCase.SelectFlight(c.Request.Context(), currentUser(c), flight)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDraftResponse(draft))
}

func (s *HTTPServerAdapter) clearFlight(c *gin.Context) {
	draft, err := s.plannerUseCase.ClearFlight(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newDraftResponse(draft))
}

func (s *HTTPServerAdapter) reviewDraft(c *gin.Context) {
	doc, err := s.plannerUseCase.Review(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// finalizeDraft handles POST /api/planner/finalize; 201 for a new plan, 200
// when an edited plan was replaced
func (s *HTTPServerAdapter) finalizeDraft(c *gin.Context) {
	result, err := s.plannerUseCase.Finalize(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Updated {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/adapters/render"
	"github.com/kiervincent5/travel-planner/internal/core/planner"
)

type PlansResponse struct {
	Plans []planner.PlanEntry `json:"plans"`
}

// SummaryResponse is the JSON form of a rendered itinerary
type SummaryResponse struct {
	Summary *planner.Document `json:"summary"`
	Plan    *planner.TripPlan `json:"plan"`
}

func (s *HTTPServerAdapter) listPlans(c *gin.Context) {
	plans, err := s.plannerUseCase.ListPlans(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PlansResponse{Plans: plans})
}

func (s *HTTPServerAdapter) planStats(c *gin.Context) {
	stats, err := s.plannerUseCase.Stats(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// getPlan handles GET /api/plans/:id; legacy plans without an id are
// addressed by index
func (s *HTTPServerAdapter) getPlan(c *gin.Context) {
	entry, err := s.plannerUseCase.GetPlan(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (s *HTTPServerAdapter) deletePlan(c *gin.Context) {
	if err := s.plannerUseCase.DeletePlan(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Plan deleted"})
}

// editPlan handles POST /api/plans/:id/edit; the next POST /api/planner
// opens the plan in the wizard
func (s *HTTPServerAdapter) editPlan(c *gin.Context) {
	handoff, err := s.plannerUseCase.EditPlan(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, handoff)
}

func (s *HTTPServerAdapter) viewPlan(c *gin.Context) {
	plan, err := s.plannerUseCase.ViewPlan(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// currentViewPlan handles GET /api/plans/view
func (s *HTTPServerAdapter) currentViewPlan(c *gin.Context) {
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	doc, plan, err := s.plannerUseCase.CurrentViewPlan(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.writeDocument(c, format, doc, plan)
}

// planSummary handles GET /api/plans/:id/summary?format=json|text|pdf
func (s *HTTPServerAdapter) planSummary(c *gin.Context) {
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	doc, plan, err := s.plannerUseCase.PlanSummary(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.writeDocument(c, format, doc, plan)
}

func (s *HTTPServerAdapter) writeDocument(c *gin.Context, format render.Format, doc *planner.Document, plan *planner.TripPlan) {
	var body []byte
	switch format {
	case render.FormatText:
		body = []byte(render.Text(*doc))
	case render.FormatPDF:
		pdf, err := render.PDF(*doc)
		if err != nil {
			s.handleError(c, err)
			return
		}
		body = pdf
	default:
		c.JSON(http.StatusOK, SummaryResponse{Summary: doc, Plan: plan})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.Filename(plan.Title, format)))
	c.Data(http.StatusOK, format.ContentType(), body)
}

package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// savePlan runs the wizard end to end and returns the stored plan
func savePlan(t *testing.T, s *testServer, token, title string) planner.TripPlan {
	t.Helper()
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/planner", nil, token).Code)
	walkToReview(t, s, token, title)

	w := s.do(http.MethodPost, "/api/planner/finalize", nil, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[planner.FinalizeResult](t, w).Plan
}

func TestPlans_ListGetDelete(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "maria")
	first := savePlan(t, s, token, "Cebu Getaway")
	second := savePlan(t, s, token, "Cebu Again")

	w := s.do(http.MethodGet, "/api/plans", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	plans := decode[PlansResponse](t, w).Plans
	require.Len(t, plans, 2)
	assert.Equal(t, 0, plans[0].Index)
	assert.Equal(t, first.ID, plans[0].ID)
	assert.Equal(t, 1, plans[1].Index)

	w = s.do(http.MethodGet, "/api/plans/"+second.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cebu Again", decode[planner.PlanEntry](t, w).Title)

	w = s.do(http.MethodGet, "/api/plans/stats", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, planner.PlanStats{Total: 2, Upcoming: 2, UniqueDestinations: 1}, decode[planner.PlanStats](t, w))

	w = s.do(http.MethodDelete, "/api/plans/"+first.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/plans/"+first.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "plan not found", errorOf(t, w))

	w = s.do(http.MethodGet, "/api/plans", nil, token)
	plans = decode[PlansResponse](t, w).Plans
	require.Len(t, plans, 1)
	assert.Equal(t, 0, plans[0].Index, "indexes follow the current list")
}

func TestPlans_AreIsolatedPerUser(t *testing.T) {
	s := newTestServer(t)
	maria := s.signUp(t, "maria")
	jose := s.signUp(t, "jose")
	plan := savePlan(t, s, maria, "Cebu Getaway")

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/plans/"+plan.ID, nil, jose).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/plans/"+plan.ID, nil, jose).Code)

	w := s.do(http.MethodGet, "/api/plans", nil, jose)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[PlansResponse](t, w).Plans)
}

func TestPlans_EditRoundTrip(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "maria")
	original := savePlan(t, s, token, "Cebu Getaway")

	w := s.do(http.MethodPost, "/api/plans/"+original.ID+"/edit", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	handoff := decode[planner.EditHandoff](t, w)
	assert.Equal(t, 0, handoff.Index)
	assert.Equal(t, original.ID, handoff.ID)

	w = s.do(http.MethodPost, "/api/planner", nil, token)
	require.Equal(t, http.StatusCreated, w.Code)
	draft := decode[DraftResponse](t, w)
	assert.Equal(t, original.ID, draft.EditingPlanID)
	assert.Equal(t, "Cebu Getaway", draft.Plan.Title, "the wizard opens pre-filled")

	walkToReview(t, s, token, "Cebu Getaway (long weekend)")

	w = s.do(http.MethodPost, "/api/planner/finalize", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[planner.FinalizeResult](t, w)
	assert.True(t, result.Updated)
	assert.Equal(t, original.ID, result.Plan.ID)

	w = s.do(http.MethodGet, "/api/plans", nil, token)
	plans := decode[PlansResponse](t, w).Plans
	require.Len(t, plans, 1, "editing replaces instead of appending")
	assert.Equal(t, "Cebu Getaway (long weekend)", plans[0].Title)
}

func TestPlans_EditOfDeletedPlan(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "maria")
	plan := savePlan(t, s, token, "Cebu Getaway")

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/plans/"+plan.ID+"/edit", nil, token).Code)
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/planner", nil, token).Code)
	walkToReview(t, s, token, "Edited")
	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/plans/"+plan.ID, nil, token).Code)

	w := s.do(http.MethodPost, "/api/planner/finalize", nil, token)

	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/plans", nil, token)
	assert.Empty(t, decode[PlansResponse](t, w).Plans, "a deleted plan is not re-added")
}

func TestPlans_ViewHandoff(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "maria")

	w := s.do(http.MethodGet, "/api/plans/view", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No Plan to Display", errorOf(t, w))

	plan := savePlan(t, s, token, "Cebu Getaway")
	w = s.do(http.MethodPost, "/api/plans/"+plan.ID+"/view", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, plan.ID, decode[planner.TripPlan](t, w).ID)

	w = s.do(http.MethodGet, "/api/plans/view", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[SummaryResponse](t, w)
	require.NotNil(t, summary.Summary)
	assert.Equal(t, "Cebu Getaway", summary.Summary.Subtitle)
	assert.Equal(t, "maria", summary.Summary.GeneratedBy)
	assert.Equal(t, plan.ID, summary.Plan.ID)
}

func TestPlans_Summary(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "maria")
	plan := savePlan(t, s, token, "Cebu Getaway")
	path := "/api/plans/" + plan.ID + "/summary"

	t.Run("json", func(t *testing.T) {
		w := s.do(http.MethodGet, path, nil, token)

		require.Equal(t, http.StatusOK, w.Code)
		summary := decode[SummaryResponse](t, w)
		assert.Equal(t, "Trip Itinerary", summary.Summary.Title)
		assert.Equal(t, 4, summary.Summary.DurationDays)
	})

	t.Run("text", func(t *testing.T) {
		w := s.do(http.MethodGet, path+"?format=text", nil, token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="cebu-getaway.txt"`, w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Body.String(), "TRIP ITINERARY")
		assert.Contains(t, w.Body.String(), "Total for 2 travelers: PHP 5,000")
	})

	t.Run("pdf", func(t *testing.T) {
		w := s.do(http.MethodGet, path+"?format=pdf", nil, token)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	})

	t.Run("unknown format", func(t *testing.T) {
		w := s.do(http.MethodGet, path+"?format=docx", nil, token)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "unsupported summary format: docx", errorOf(t, w))
	})

	t.Run("unknown plan", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/plans/missing/summary", nil, token)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

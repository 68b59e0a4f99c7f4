package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums the counter samples of family name whose labels include want
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range m.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			matches := true
			for k, v := range want {
				if labels[k] != v {
					matches = false
				}
			}
			if !matches {
				continue
			}
			if m.GetCounter() != nil {
				total += m.GetCounter().GetValue()
			}
			if m.GetHistogram() != nil {
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return total
}

func TestRecorder_LookupCache(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := NewRecorder(reg)

	recorder.RecordLookupCacheHit("places")
	recorder.RecordLookupCacheHit("places")
	recorder.RecordLookupCacheMiss("weather")

	assert.Equal(t, 2.0, counterValue(t, reg, "travel_planner_lookup_cache_hits_total", map[string]string{"kind": "places"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "travel_planner_lookup_cache_misses_total", map[string]string{"kind": "weather"}))
}

func TestRecorder_ProviderCalls(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := NewRecorder(reg)

	recorder.RecordProviderCall("nominatim", true, 120*time.Millisecond)
	recorder.RecordProviderCall("nominatim", false, 2*time.Second)

	assert.Equal(t, 1.0, counterValue(t, reg, "travel_planner_provider_calls_total",
		map[string]string{"provider": "nominatim", "outcome": "success"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "travel_planner_provider_calls_total",
		map[string]string{"provider": "nominatim", "outcome": "failure"}))
	assert.Equal(t, 2.0, counterValue(t, reg, "travel_planner_provider_call_duration_seconds",
		map[string]string{"provider": "nominatim"}))
}

func TestRecorder_PlannerEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := NewRecorder(reg)

	recorder.RecordWizardTransition("details", "destination", "ok")
	recorder.RecordWizardTransition("details", "destination", "rejected")
	recorder.RecordPlanWrite("append")

	assert.Equal(t, 2.0, counterValue(t, reg, "travel_planner_wizard_transitions_total",
		map[string]string{"from": "details", "to": "destination"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "travel_planner_plan_writes_total",
		map[string]string{"operation": "append"}))
}

func TestRecorder_HTTPRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := NewRecorder(reg)

	recorder.ObserveHTTPRequest("GET", "/api/plans/:id", 200, 5*time.Millisecond)
	recorder.ObserveHTTPRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, reg, "travel_planner_http_requests_total",
		map[string]string{"route": "/api/plans/:id", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "travel_planner_http_requests_total",
		map[string]string{"route": "unmatched", "status": "404"}))
}

func TestNewRecorder_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRecorder(prometheus.NewRegistry())
		NewRecorder(prometheus.NewRegistry())
	})
}

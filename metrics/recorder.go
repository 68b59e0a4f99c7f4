// Package metrics exposes the service counters and histograms to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travel_planner"

// Recorder implements ports.MetricsRecorder and the HTTP request metrics
type Recorder struct {
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	ProviderCalls      *prometheus.CounterVec
	ProviderLatency    *prometheus.HistogramVec
	WizardTransitions  *prometheus.CounterVec
	PlanWrites         *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// NewRecorder registers the collectors on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		CacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookup_cache_hits_total",
				Help:      "The total number of lookup cache hits",
			},
			[]string{"kind"},
		),
		CacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookup_cache_misses_total",
				Help:      "The total number of lookup cache misses",
			},
			[]string{"kind"},
		),
		ProviderCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_calls_total",
				Help:      "Outbound provider calls by outcome",
			},
			[]string{"provider", "outcome"},
		),
		ProviderLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_call_duration_seconds",
				Help:      "Outbound provider call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		WizardTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wizard_transitions_total",
				Help:      "Planner wizard step changes by outcome",
			},
			[]string{"from", "to", "outcome"},
		),
		PlanWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plan_writes_total",
				Help:      "Writes to saved trip plans",
			},
			[]string{"operation"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (r *Recorder) RecordLookupCacheHit(kind string) {
	r.CacheHits.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLookupCacheMiss(kind string) {
	r.CacheMisses.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordProviderCall(provider string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.ProviderCalls.WithLabelValues(provider, outcome).Inc()
	r.ProviderLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

func (r *Recorder) RecordWizardTransition(from, to string, outcome string) {
	r.WizardTransitions.WithLabelValues(from, to, outcome).Inc()
}

func (r *Recorder) RecordPlanWrite(operation string) {
	r.PlanWrites.WithLabelValues(operation).Inc()
}

// ObserveHTTPRequest records one served request; route is the gin route
// pattern so plan IDs do not explode the label set
func (r *Recorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

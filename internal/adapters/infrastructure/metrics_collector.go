package infrastructure

import (
	"context"

	"github.com/kiervincent5/travel-planner/internal/ports"
)

// MetricsCollectorAdapter builds the JSON metrics summary from the lookup
// providers and the cache
type MetricsCollectorAdapter struct {
	providerInfo func() map[string]interface{}
	cacheMetrics ports.CacheMetrics
	breakers     []BreakerReporter
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	ProviderInfo func() map[string]interface{}
	CacheMetrics ports.CacheMetrics
	Breakers     []BreakerReporter
}

// NewMetricsCollectorAdapter creates a new metrics collector adapter
func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	return &MetricsCollectorAdapter{
		providerInfo: config.ProviderInfo,
		cacheMetrics: config.CacheMetrics,
		breakers:     config.Breakers,
	}
}

// GetMetrics returns aggregated metrics from all monitored services
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := map[string]interface{}{}

	if m.providerInfo != nil {
		metrics["providers"] = m.providerInfo()
	}

	if m.cacheMetrics != nil {
		cacheStats := m.cacheMetrics.GetStats()
		metrics["cache"] = map[string]interface{}{
			"hits":      cacheStats.Hits,
			"misses":    cacheStats.Misses,
			"total_ops": cacheStats.TotalOps,
			"hit_ratio": cacheStats.HitRatio,
			"updated":   cacheStats.LastUpdated,
		}
	}

	if len(m.breakers) > 0 {
		states := make(map[string]string, len(m.breakers))
		for _, b := range m.breakers {
			states[b.Name()] = b.State().String()
		}
		metrics["circuit_breakers"] = states
	}

	return metrics, nil
}

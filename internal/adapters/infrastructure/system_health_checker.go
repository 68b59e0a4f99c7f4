package infrastructure

import (
	"context"

	"github.com/kiervincent5/travel-planner/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers map[string]ports.HealthChecker
}

// NewSystemHealthChecker takes checkers keyed by the component name reported
// under "components"; nil checkers are skipped
func NewSystemHealthChecker(checkers map[string]ports.HealthChecker) *SystemHealthChecker {
	filtered := make(map[string]ports.HealthChecker, len(checkers))
	for name, checker := range checkers {
		if checker != nil {
			filtered[name] = checker
		}
	}
	return &SystemHealthChecker{checkers: filtered}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers))
	for name, checker := range s.checkers {
		results[name] = checker.Check(ctx)
	}
	return results
}

// AllHealthy reports whether every result is healthy
func AllHealthy(results map[string]ports.HealthStatus) bool {
	for _, result := range results {
		if result.Status != ports.HealthStatusHealthy {
			return false
		}
	}
	return true
}

package infrastructure

import (
	"context"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/sony/gobreaker"
)

const healthProbeKey = "__health__"

// StoreHealthChecker round-trips a probe key through the key/value store
type StoreHealthChecker struct {
	store     ports.KeyValueStore
	storeType string
}

func NewStoreHealthChecker(store ports.KeyValueStore, storeType string) *StoreHealthChecker {
	return &StoreHealthChecker{store: store, storeType: storeType}
}

func (s *StoreHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "store",
		Details:   map[string]interface{}{"type": s.storeType},
	}

	if s.store == nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "store is not configured"
		return status
	}

	if err := s.store.Set(ctx, healthProbeKey, "ok"); err != nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = errors.MessageOf(err, "store write failed")
		return status
	}
	if _, err := s.store.Get(ctx, healthProbeKey); err != nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = errors.MessageOf(err, "store read failed")
		return status
	}
	_ = s.store.Remove(ctx, healthProbeKey)

	status.Status = ports.HealthStatusHealthy
	return status
}

// BreakerReporter exposes the circuit breaker of one provider
type BreakerReporter interface {
	Name() string
	State() gobreaker.State
}

// ProviderHealthChecker reports a provider group from its circuit breakers.
// The group is unhealthy only when every breaker is open.
type ProviderHealthChecker struct {
	component string
	breakers  []BreakerReporter
	info      func() map[string]interface{}
}

// NewProviderHealthChecker takes an optional info func whose result is
// merged into the details
func NewProviderHealthChecker(component string, info func() map[string]interface{}, breakers ...BreakerReporter) *ProviderHealthChecker {
	return &ProviderHealthChecker{component: component, breakers: breakers, info: info}
}

func (p *ProviderHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: p.component,
		Status:    ports.HealthStatusHealthy,
		Details:   make(map[string]interface{}),
	}
	if p.info != nil {
		for k, v := range p.info() {
			status.Details[k] = v
		}
	}

	if len(p.breakers) == 0 {
		status.Details["configured"] = false
		return status
	}

	states := make(map[string]string, len(p.breakers))
	open := 0
	for _, b := range p.breakers {
		state := b.State()
		states[b.Name()] = state.String()
		if state == gobreaker.StateOpen {
			open++
		}
	}
	status.Details["configured"] = true
	status.Details["breakers"] = states

	if open == len(p.breakers) {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "all providers are unavailable"
	}
	return status
}

package infrastructure

import (
	"context"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"gorm.io/gorm"
)

// DatabaseHealthChecker implements database health checking
type DatabaseHealthChecker struct {
	db *gorm.DB
}

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "database instance is nil"
		status.Details["connected"] = false
		return status
	}
	status.Details["dialect"] = d.db.Dialector.Name()

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "failed to get underlying database connection"
		status.Details["connected"] = false
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = err.Error()
		status.Details["connected"] = false
		return status
	}

	status.Status = ports.HealthStatusHealthy
	status.Details["connected"] = true
	return status
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/ports"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string                        `json:"status"`
	Message     string                        `json:"message"`
	Timestamp   string                        `json:"timestamp"`
	Environment string                        `json:"environment"`
	Components  map[string]ports.HealthStatus `json:"components"`
}

// getHealth handles GET /api/health; any unhealthy component turns the
// response into a 503
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	components := s.healthChecker.CheckAll(c.Request.Context())

	response := HealthResponse{
		Status:      "ok",
		Message:     "Travel Planner API is running",
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		Environment: s.environment,
		Components:  components,
	}
	statusCode := http.StatusOK

	for name, component := range components {
		if component.Status != ports.HealthStatusHealthy {
			s.logger.Warn("Health check failed",
				ports.F("component", name),
				ports.F("error", component.Error))
			response.Status = "error"
			response.Message = "One or more components are unhealthy"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, response)
}

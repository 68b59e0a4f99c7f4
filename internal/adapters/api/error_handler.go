package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

const msgInternalError = "Internal server error"

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an application error type to its HTTP status and whether
// the error message is safe to show to the caller
func statusFor(errType errors.ErrorType) (int, bool) {
	switch errType {
	case errors.ErrorTypeValidation:
		return http.StatusBadRequest, true
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound, true
	case errors.ErrorTypeAlreadyExists, errors.ErrorTypeInvalidState:
		return http.StatusConflict, true
	case errors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized, true
	case errors.ErrorTypeForbidden, errors.ErrorTypeToken:
		return http.StatusForbidden, true
	case errors.ErrorTypeExternalAPI:
		return http.StatusServiceUnavailable, true
	case errors.ErrorTypeConfiguration:
		return http.StatusInternalServerError, true
	default:
		return http.StatusInternalServerError, false
	}
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	statusCode, exposed := statusFor(errors.TypeOf(err))

	message := msgInternalError
	if exposed {
		message = errors.MessageOf(err, msgInternalError)
	}

	if statusCode >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			ports.F("path", c.FullPath()),
			ports.F("status", statusCode),
			ports.F("error", err))
	} else {
		s.logger.Debug("Request rejected",
			ports.F("path", c.FullPath()),
			ports.F("status", statusCode),
			ports.F("error", err))
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiervincent5/travel-planner/internal/core/auth"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// MessageResponse is the body of requests that only report an outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// register handles POST /api/auth/register
func (s *HTTPServerAdapter) register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Request binding error", ports.F("error", err))
		s.handleError(c, errors.NewValidationError("All fields are required"))
		return
	}

	result, err := s.authUseCase.Register(c.Request.Context(), req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// login handles POST /api/auth/login
func (s *HTTPServerAdapter) login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Request binding error", ports.F("error", err))
		s.handleError(c, errors.NewValidationError("Email and password are required"))
		return
	}

	result, err := s.authUseCase.Login(c.Request.Context(), req)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// authStatus handles GET /api/auth/status. It never fails; a missing or
// stale token reports the signed-out view.
func (s *HTTPServerAdapter) authStatus(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	c.JSON(http.StatusOK, s.authUseCase.Status(c.Request.Context(), token))
}

func (s *HTTPServerAdapter) me(c *gin.Context) {
	user, err := s.authUseCase.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *HTTPServerAdapter) logout(c *gin.Context) {
	if err := s.authUseCase.Logout(c.Request.Context(), currentUser(c)); err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: auth.MessageLoggedOut})
}

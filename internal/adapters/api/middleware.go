package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	headerRequestID = "X-Request-ID"

	contextRequestID   = "request_id"
	contextSessionUser = "session_user"
)

var tracer = otel.Tracer("travel-planner/api")

// requestID propagates the caller's X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// corsMiddleware allows every origin when the list is empty or holds "*"
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", headerRequestID},
		ExposeHeaders: []string{headerRequestID, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}

	var allowed []string
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowed = nil
			break
		}
		if strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowed
	}

	return cors.New(cfg)
}

func (s *HTTPServerAdapter) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info("HTTP request",
			ports.F("request_id", c.GetString(contextRequestID)),
			ports.F("method", c.Request.Method),
			ports.F("path", c.Request.URL.Path),
			ports.F("route", c.FullPath()),
			ports.F("status", c.Writer.Status()),
			ports.F("duration_ms", time.Since(start).Milliseconds()),
			ports.F("client_ip", c.ClientIP()))
	}
}

// requestMetrics labels by route pattern, never by raw path
func requestMetrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		observer.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// requireAuth resolves the bearer token to a live session
func (s *HTTPServerAdapter) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "api.require_auth")
		defer span.End()

		token := bearerToken(c.GetHeader("Authorization"))
		span.SetAttributes(attribute.Bool("auth.token_present", token != ""))

		session, err := s.authUseCase.Authenticate(ctx, token)
		if err != nil {
			span.RecordError(err)
			s.handleError(c, err)
			c.Abort()
			return
		}

		span.SetAttributes(attribute.Int64("user.id", int64(session.User.ID)))
		c.Set(contextSessionUser, session.User)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// currentUser returns the user stored by requireAuth
func currentUser(c *gin.Context) planner.SessionUser {
	value, _ := c.Get(contextSessionUser)
	user, _ := value.(planner.SessionUser)
	return user
}

package api

import (
	"net/http"
	"testing"

	"github.com/kiervincent5/travel-planner/internal/core/auth"
	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/register", auth.RegisterRequest{
		Username: "maria",
		Email:    "maria@example.com",
		Password: "secret123",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)
	result := decode[auth.Result](t, w)
	assert.Equal(t, auth.MessageRegistered, result.Message)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "maria", result.User.Username)
	assert.NotZero(t, result.User.ID)
}

func TestRegister_Rejections(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "maria")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing fields",
			body:           auth.RegisterRequest{Username: "x"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "All fields are required",
		},
		{
			name:           "short password",
			body:           auth.RegisterRequest{Username: "jose", Email: "jose@example.com", Password: "12345"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Password must be at least 6 characters",
		},
		{
			name:           "bad email",
			body:           auth.RegisterRequest{Username: "jose", Email: "jose", Password: "secret123"},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid email format",
		},
		{
			name:           "duplicate email",
			body:           auth.RegisterRequest{Username: "other", Email: "maria@example.com", Password: "secret123"},
			expectedStatus: http.StatusConflict,
			expectedError:  "User already exists",
		},
		{
			name:           "malformed body",
			body:           "not an object",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "All fields are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/auth/register", tt.body, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedError, errorOf(t, w))
		})
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	first := s.signUp(t, "maria")

	t.Run("success replaces the session", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: "maria@example.com", Password: "secret123"}, "")

		require.Equal(t, http.StatusOK, w.Code)
		result := decode[auth.Result](t, w)
		assert.Equal(t, auth.MessageLoggedIn, result.Message)

		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/auth/me", nil, result.Token).Code)
		if result.Token != first {
			assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/auth/me", nil, first).Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: "maria@example.com", Password: "nope-nope"}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", errorOf(t, w))
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/auth/login", auth.LoginRequest{Email: "maria@example.com"}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email and password are required", errorOf(t, w))
	})
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", errorOf(t, w))

	w = s.do(http.MethodGet, "/api/plans", nil, "not-a-jwt")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or expired token", errorOf(t, w))
}

func TestMeAndLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "maria")

	w := s.do(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[planner.SessionUser](t, w)
	assert.Equal(t, "maria@example.com", me.Email)

	w = s.do(http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, auth.MessageLoggedOut, decode[MessageResponse](t, w).Message)

	w = s.do(http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code, "token of an ended session is rejected")
}

func TestAuthStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "maria")

	w := s.do(http.MethodGet, "/api/auth/status", nil, token)
	assert.Equal(t, planner.AuthView{LoggedIn: true, Username: "maria", Action: planner.AuthActionLogout}, decode[planner.AuthView](t, w))

	w = s.do(http.MethodGet, "/api/auth/status", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, planner.AuthView{Action: planner.AuthActionLogin}, decode[planner.AuthView](t, w))
}

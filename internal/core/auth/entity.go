// Package auth registers and signs in users and guards the per-user session.
package auth

import (
	"strings"

	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/kiervincent5/travel-planner/pkg/validation"
)

const (
	MinPasswordLength = 6

	MessageRegistered = "User registered successfully"
	MessageLoggedIn   = "Login successful"
	MessageLoggedOut  = "Logged out successfully"

	msgAllFieldsRequired   = "All fields are required"
	msgPasswordTooShort    = "Password must be at least 6 characters"
	msgInvalidEmail        = "Invalid email format"
	msgUserExists          = "User already exists"
	msgCredentialsRequired = "Email and password are required"
	msgInvalidCredentials  = "Invalid credentials"
	msgTokenRequired       = "Access token required"
	msgTokenInvalid        = "Invalid or expired token"
)

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IsValid applies the sign-up rules in the order users see them
func (r RegisterRequest) IsValid() error {
	if !validation.IsNotEmpty(r.Username) || !validation.IsNotEmpty(r.Email) || r.Password == "" {
		return errors.NewValidationError(msgAllFieldsRequired)
	}
	if len(r.Password) < MinPasswordLength {
		return errors.NewValidationError(msgPasswordTooShort)
	}
	if !validation.IsValidEmail(r.Email) {
		return errors.NewValidationError(msgInvalidEmail)
	}
	return nil
}

// Normalize trims the identity fields; the password is used as typed
func (r RegisterRequest) Normalize() RegisterRequest {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) IsValid() error {
	if !validation.IsNotEmpty(r.Email) || r.Password == "" {
		return errors.NewValidationError(msgCredentialsRequired)
	}
	return nil
}

// Result is returned by register and login
type Result struct {
	Message string              `json:"message"`
	Token   string              `json:"token"`
	User    planner.SessionUser `json:"user"`
}

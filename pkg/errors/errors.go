package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeAlreadyExists
	ErrorTypeInvalidState
	ErrorTypeUnauthorized
	ErrorTypeForbidden
	ErrorTypeToken

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeDatabase
	ErrorTypeStorage
	ErrorTypeExternalAPI

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeAlreadyExists:
		return "ALREADY_EXISTS_ERROR"
	case ErrorTypeInvalidState:
		return "INVALID_STATE_ERROR"
	case ErrorTypeUnauthorized:
		return "UNAUTHORIZED_ERROR"
	case ErrorTypeForbidden:
		return "FORBIDDEN_ERROR"
	case ErrorTypeToken:
		return "TOKEN_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeStorage:
		return "STORAGE_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

func NewAlreadyExistsError(message string) *AppError {
	return New(ErrorTypeAlreadyExists, message)
}

func NewInvalidStateError(message string) *AppError {
	return New(ErrorTypeInvalidState, message)
}

func NewUnauthorizedError(message string) *AppError {
	return New(ErrorTypeUnauthorized, message)
}

func NewForbiddenError(message string) *AppError {
	return New(ErrorTypeForbidden, message)
}

func NewTokenError(message string, cause error) *AppError {
	return Wrap(ErrorTypeToken, message, cause)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDatabase, message, cause)
}

func NewStorageError(message string, cause error) *AppError {
	return Wrap(ErrorTypeStorage, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ErrorTypeExternalAPI, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

func IsTokenError(err error) bool {
	return TypeOf(err) == ErrorTypeToken
}

func IsAlreadyExistsError(err error) bool {
	return TypeOf(err) == ErrorTypeAlreadyExists
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

func IsInvalidStateError(err error) bool {
	return TypeOf(err) == ErrorTypeInvalidState
}

func IsUnauthorizedError(err error) bool {
	return TypeOf(err) == ErrorTypeUnauthorized
}

func IsDatabaseError(err error) bool {
	return TypeOf(err) == ErrorTypeDatabase
}

func IsExternalAPIError(err error) bool {
	return TypeOf(err) == ErrorTypeExternalAPI
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ErrorTypeConfiguration
}

func IsForbiddenError(err error) bool {
	return TypeOf(err) == ErrorTypeForbidden
}

func IsStorageError(err error) bool {
	return TypeOf(err) == ErrorTypeStorage
}

// MessageOf returns the user-facing message of the first AppError in err's
// chain, or fallback when there is none.
func MessageOf(err error, fallback string) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeBanned             = "BANNED"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}

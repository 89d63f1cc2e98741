package errors

import (
	"fmt"
	"net/http"
)

// StandardError is the error shape every HTTP boundary returns.
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g. "InsufficientStock", "TokenNotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (location, available stock, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidRequest", "ValidationFailed", "InsufficientStock":
		return http.StatusBadRequest
	case "LocationNotFound", "TokenNotFound":
		return http.StatusNotFound
	case "DuplicateBuyOrder", "Conflict":
		return http.StatusConflict
	case "GatewayUnavailable":
		return http.StatusServiceUnavailable
	case "DatabaseError", "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError("InvalidRequest", message, details)
}

func NewValidationFailed(message, field string) *StandardError {
	return NewStandardError("ValidationFailed", message, fmt.Sprintf("Field: %s", field))
}

func NewLocationNotFound(locationRef string) *StandardError {
	return NewStandardError("LocationNotFound", "location not found", fmt.Sprintf("Location: %s", locationRef))
}

func NewInsufficientStock(available, requested int) *StandardError {
	return NewStandardError("InsufficientStock", "insufficient stock available",
		fmt.Sprintf("Available: %d, Requested: %d", available, requested))
}

func NewTokenNotFound(token string) *StandardError {
	return NewStandardError("TokenNotFound", "transaction not found for token", fmt.Sprintf("Token: %s", token))
}

func NewGatewayUnavailable(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("GatewayUnavailable", "payment gateway unavailable", details)
}

func NewDatabaseError(operation string, err error) *StandardError {
	return NewStandardError("DatabaseError", fmt.Sprintf("database operation failed: %s", operation), err.Error())
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}

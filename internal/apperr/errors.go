package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

const (
	// Validation (400)
	ErrCodeValidationInvalidLat    ErrorCode = "validation_invalid_latitude"
	ErrCodeValidationInvalidLon    ErrorCode = "validation_invalid_longitude"
	ErrCodeValidationMissingField  ErrorCode = "validation_missing_required_field"
	ErrCodeValidationInvalidNumber ErrorCode = "validation_invalid_number"
	ErrCodeValidationInvalidSafety ErrorCode = "validation_invalid_safety_level"

	// Not Found (404)
	ErrCodeNotFoundSpot     ErrorCode = "not_found_spot"
	ErrCodeNotFoundStation  ErrorCode = "not_found_station"
	ErrCodeNotFoundForecast ErrorCode = "not_found_forecast"
	ErrCodeNotFoundRoute    ErrorCode = "not_found_route"

	// Internal/Upstream (500/502)
	ErrCodeInternalDB          ErrorCode = "internal_database_error"
	ErrCodeInternalUnexpected  ErrorCode = "internal_unexpected_error"
	ErrCodeUpstreamCWA         ErrorCode = "upstream_cwa_unavailable"
	ErrCodeUpstreamGeocoder    ErrorCode = "upstream_geocoder_unavailable"
	ErrCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
	ErrCodeUpstreamRateLimited ErrorCode = "upstream_rate_limited"
)

// HTTPStatus maps an ErrorCode to its HTTP status code by prefix.
// Unrecognized codes map to 500.
func (c ErrorCode) HTTPStatus() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "validation_"):
		return http.StatusBadRequest
	case strings.HasPrefix(s, "not_found_"):
		return http.StatusNotFound
	case s == string(ErrCodeUpstreamRateLimited):
		return http.StatusServiceUnavailable
	case strings.HasPrefix(s, "upstream_"):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the error type surfaced to API callers.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code corresponding to this error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error with details merged in.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{Code: e.Code, Message: e.Message, Err: e.Err, Details: merged}
}

// NewAppError creates a new AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrVendorNotFound is returned when a vendor is not found.
	ErrVendorNotFound = errors.New("vendor not found")
	// ErrListingNotFound is returned when a listing does not exist or belongs to another vendor.
	ErrListingNotFound = errors.New("listing not found")
	// ErrVendorAlreadyExists is returned when a license number is already registered.
	ErrVendorAlreadyExists = errors.New("vendor with this FSSAI number already registered")
	// ErrInvalidCredentials is returned when the license number or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid FSSAI number or password")
	// ErrInvalidToken covers every bearer token failure.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrVerificationFailed is returned when the license registry rejects or cannot serve a lookup.
	ErrVerificationFailed = errors.New("FSSAI verification failed")
	// ErrTooManyRequests is returned when a client exceeds the auth rate limit.
	ErrTooManyRequests = errors.New("too many requests, please try again later")
	// ErrUploadsDisabled is returned when no object store is configured.
	ErrUploadsDisabled = errors.New("image uploads are not configured")
	// ErrRouteNotFound is returned for unmatched routes.
	ErrRouteNotFound = errors.New("route not found")
)

// ValidationError is a malformed or missing input. Its message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// VerificationError carries the registry's reason for a failed lookup.
type VerificationError struct {
	Reason string
}

func (e *VerificationError) Error() string {
	if e.Reason == "" {
		return ErrVerificationFailed.Error()
	}
	return e.Reason
}

// Unwrap lets errors.Is match ErrVerificationFailed.
func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Anything unrecognised becomes a generic 500; callers log the original.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	}

	var verificationErr *VerificationError
	if errors.As(err, &verificationErr) {
		return NewHTTPError(http.StatusBadRequest, verificationErr.Error(), "VERIFICATION_FAILED")
	}

	switch {
	case errors.Is(err, ErrVendorNotFound):
		return NewHTTPError(http.StatusNotFound, ErrVendorNotFound.Error(), "VENDOR_NOT_FOUND")
	case errors.Is(err, ErrListingNotFound):
		return NewHTTPError(http.StatusNotFound, ErrListingNotFound.Error(), "LISTING_NOT_FOUND")
	case errors.Is(err, ErrRouteNotFound):
		return NewHTTPError(http.StatusNotFound, ErrRouteNotFound.Error(), "ROUTE_NOT_FOUND")
	case errors.Is(err, ErrVendorAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrVendorAlreadyExists.Error(), "VENDOR_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrVerificationFailed):
		return NewHTTPError(http.StatusBadRequest, ErrVerificationFailed.Error(), "VERIFICATION_FAILED")
	case errors.Is(err, ErrTooManyRequests):
		return NewHTTPError(http.StatusTooManyRequests, ErrTooManyRequests.Error(), "RATE_LIMITED")
	case errors.Is(err, ErrUploadsDisabled):
		return NewHTTPError(http.StatusServiceUnavailable, ErrUploadsDisabled.Error(), "UPLOADS_DISABLED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

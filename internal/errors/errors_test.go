package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", NewValidationError("price is required"), http.StatusBadRequest, "VALIDATION_ERROR", "price is required"},
		{"wrapped not found", fmt.Errorf("get listing: %w", ErrListingNotFound), http.StatusNotFound, "LISTING_NOT_FOUND", "listing not found"},
		{"vendor not found", ErrVendorNotFound, http.StatusNotFound, "VENDOR_NOT_FOUND", "vendor not found"},
		{"duplicate vendor", ErrVendorAlreadyExists, http.StatusConflict, "VENDOR_ALREADY_EXISTS", ErrVendorAlreadyExists.Error()},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", ErrInvalidCredentials.Error()},
		{"bad token", ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token"},
		{"verification reason", &VerificationError{Reason: "license expired"}, http.StatusBadRequest, "VERIFICATION_FAILED", "license expired"},
		{"rate limited", ErrTooManyRequests, http.StatusTooManyRequests, "RATE_LIMITED", ErrTooManyRequests.Error()},
		{"explicit http error", NewHTTPError(http.StatusTeapot, "short and stout", "TEAPOT"), http.StatusTeapot, "TEAPOT", "short and stout"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)

			resp := httpErr.ToErrorResponse()
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

func TestVerificationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("verify: %w", &VerificationError{})
	assert.True(t, errors.Is(err, ErrVerificationFailed))
	assert.Equal(t, "verify: FSSAI verification failed", err.Error())
}

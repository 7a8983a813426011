package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "smartvegis/internal/errors"
)

type registryStub struct {
	server *httptest.Server
	hits   atomic.Int32
}

func newRegistryStub(t *testing.T, status int, body any) *registryStub {
	t.Helper()
	stub := &registryStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "real-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "API-Key", r.Header.Get("X-Auth-Type"))

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Y", req["consent"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func newTestVerifier(url, key string, production bool) *gridlinesVerifier {
	v := NewLicenseVerifier(&http.Client{Timeout: 2 * time.Second}, LicenseVerifierConfig{
		URL:          url,
		APIKey:       key,
		DefaultState: "Maharashtra",
		Production:   production,
	}).(*gridlinesVerifier)
	v.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return v
}

func TestLicenseVerifier_RejectsMalformedNumbersWithoutNetwork(t *testing.T) {
	stub := newRegistryStub(t, http.StatusOK, map[string]any{})
	verifier := newTestVerifier(stub.server.URL, "real-key", false)

	for _, number := range []string{"", "1234", "1234567890123", "123456789012345", "1234567890123a", "١٢٣٤٥٦٧٨٩٠١٢٣٤"} {
		result, err := verifier.Verify(context.Background(), number)

		var validationErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &validationErr, number)
		assert.Nil(t, result)
	}
	assert.Equal(t, int32(0), stub.hits.Load())
}

func TestLicenseVerifier_SyntheticProfileWithoutKey(t *testing.T) {
	for _, key := range []string{"", PlaceholderGridlinesKey} {
		verifier := newTestVerifier("http://127.0.0.1:1", key, true)

		first, err := verifier.Verify(context.Background(), "10012022000123")
		require.NoError(t, err)
		second, err := verifier.Verify(context.Background(), "10012022000123")
		require.NoError(t, err)

		assert.True(t, first.Verified)
		assert.True(t, first.IsMock)
		assert.Equal(t, "Vendor Store 0123", first.Data.CompanyName)
		assert.Equal(t, "Pune", first.Data.District)
		assert.Equal(t, "411001", first.Data.Pincode)
		assert.Equal(t, []string{"Vegetables", "Fruits"}, first.Data.Products)
		assert.Equal(t, first.Data.CompanyName, second.Data.CompanyName)
		assert.Equal(t, first.Data.District, second.Data.District)
		require.NotNil(t, first.Data.ExpiryDate)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *first.Data.ExpiryDate)
	}
}

func TestLicenseVerifier_NormalizesNestedRegistryProfile(t *testing.T) {
	stub := newRegistryStub(t, http.StatusOK, map[string]any{
		"data": map[string]any{
			"fssai_data": map[string]any{
				"fssai_no":     "10012022000123",
				"premise_name": "Shree Ganesh Traders",
				"full_address": "12 Market Yard",
				"district":     "Nashik",
				"pincode":      422001,
				"license_type": "State License",
				"active":       true,
				"issued_date":  "2023-01-15",
				"expiry_date":  "15-01-2028",
				"products":     "Fruits, Vegetables",
			},
		},
	})
	verifier := newTestVerifier(stub.server.URL, "real-key", true)

	result, err := verifier.Verify(context.Background(), "10012022000123")

	require.NoError(t, err)
	assert.False(t, result.IsMock)
	profile := result.Data
	assert.Equal(t, "10012022000123", profile.LicenseNumber)
	assert.Equal(t, "Shree Ganesh Traders", profile.CompanyName)
	assert.Equal(t, "12 Market Yard", profile.Address)
	assert.Equal(t, "Maharashtra", profile.State)
	assert.Equal(t, "Nashik", profile.District)
	assert.Equal(t, "422001", profile.Pincode)
	assert.Equal(t, "State License", profile.LicenseType)
	assert.Equal(t, "Active", profile.Status)
	assert.Equal(t, []string{"Fruits", "Vegetables"}, profile.Products)
	require.NotNil(t, profile.IssuedDate)
	assert.Equal(t, 2023, profile.IssuedDate.Year())
	require.NotNil(t, profile.ExpiryDate)
	assert.Equal(t, time.January, profile.ExpiryDate.Month())
	assert.Equal(t, int32(1), stub.hits.Load())
}

func TestLicenseVerifier_FlatProfileDefaults(t *testing.T) {
	stub := newRegistryStub(t, http.StatusOK, map[string]any{
		"data": map[string]any{"name": "Fresh Mart", "active": false},
	})
	verifier := newTestVerifier(stub.server.URL, "real-key", true)

	result, err := verifier.Verify(context.Background(), "10012022000123")

	require.NoError(t, err)
	assert.Equal(t, "Fresh Mart", result.Data.CompanyName)
	assert.Equal(t, "10012022000123", result.Data.LicenseNumber)
	assert.Equal(t, "FSSAI", result.Data.LicenseType)
	assert.Equal(t, "Inactive", result.Data.Status)
	assert.Equal(t, []string{}, result.Data.Products)
	assert.Nil(t, result.Data.ExpiryDate)
}

func TestLicenseVerifier_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		reason string
	}{
		{"server error with message", http.StatusBadGateway, map[string]any{"message": "registry unavailable"}, "registry unavailable"},
		{"server error without message", http.StatusInternalServerError, map[string]any{}, "FSSAI verification failed"},
		{"missing data", http.StatusOK, map[string]any{"status": 200}, "invalid response from FSSAI verification"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" in production", func(t *testing.T) {
			stub := newRegistryStub(t, tt.status, tt.body)
			verifier := newTestVerifier(stub.server.URL, "real-key", true)

			result, err := verifier.Verify(context.Background(), "10012022000123")

			assert.Nil(t, result)
			assert.ErrorIs(t, err, apperrors.ErrVerificationFailed)
			assert.EqualError(t, err, tt.reason)
			assert.Equal(t, int32(1), stub.hits.Load())
		})

		t.Run(tt.name+" outside production", func(t *testing.T) {
			stub := newRegistryStub(t, tt.status, tt.body)
			verifier := newTestVerifier(stub.server.URL, "real-key", false)

			result, err := verifier.Verify(context.Background(), "10012022000123")

			require.NoError(t, err)
			assert.True(t, result.IsMock)
			assert.Equal(t, "Vendor Store 0123", result.Data.CompanyName)
		})
	}
}

func TestLicenseVerifier_UnreachableRegistry(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	t.Run("in production", func(t *testing.T) {
		verifier := newTestVerifier(url, "real-key", true)

		result, err := verifier.Verify(context.Background(), "10012022000123")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrVerificationFailed)
		httpErr := apperrors.MapErrorToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
		assert.Equal(t, "VERIFICATION_FAILED", httpErr.Code)
		assert.Equal(t, "FSSAI verification failed", httpErr.Message)
	})

	t.Run("outside production", func(t *testing.T) {
		verifier := newTestVerifier(url, "real-key", false)

		result, err := verifier.Verify(context.Background(), "10012022000123")

		require.NoError(t, err)
		assert.True(t, result.IsMock)
	})
}

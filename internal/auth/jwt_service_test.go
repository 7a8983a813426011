package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
)

func testVendor() *model.Vendor {
	return &model.Vendor{
		ID:          uuid.New(),
		FSSAINumber: "12345678901234",
		Name:        "Asha Patil",
	}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	vendor := testVendor()

	token, err := svc.GenerateToken(vendor)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, vendor.ID.String(), claims.VendorID)
	assert.Equal(t, vendor.FSSAINumber, claims.FSSAINumber)
	assert.Equal(t, vendor.Name, claims.Name)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	svc := NewJWTService("test-secret")
	vendor := testVendor()

	expired := NewJWTService("test-secret")
	expired.now = func() time.Time { return time.Now().Add(-TokenExpiry - time.Hour) }
	expiredToken, err := expired.GenerateToken(vendor)
	require.NoError(t, err)

	otherSecret, err := NewJWTService("other-secret").GenerateToken(vendor)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{VendorID: vendor.ID.String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":        expiredToken,
		"wrong secret":   otherSecret,
		"none algorithm": noneToken,
		"garbage":        "not.a.token",
		"empty":          "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.ValidateToken(token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestMiddleware(t *testing.T) {
	svc := NewJWTService("test-secret")
	vendor := testVendor()
	token, err := svc.GenerateToken(vendor)
	require.NoError(t, err)

	handler := Middleware(svc)(func(c echo.Context) error {
		claims, err := ClaimsFromContext(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, claims.VendorID)
	})

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"valid bearer", "Bearer " + token, nil},
		{"missing header", "", apperrors.ErrInvalidToken},
		{"wrong scheme", "Basic " + token, apperrors.ErrInvalidToken},
		{"tampered", "Bearer " + token + "x", apperrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vendor.ID.String(), rec.Body.String())
		})
	}
}

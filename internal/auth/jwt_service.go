package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"smartvegis/internal/model"
)

// TokenExpiry is the lifetime of a vendor session token.
const TokenExpiry = 30 * 24 * time.Hour

// Claims represents JWT claims.
type Claims struct {
	VendorID    string `json:"id"`
	FSSAINumber string `json:"fssaiNumber"`
	Name        string `json:"name"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateToken issues a signed session token for the vendor.
func (s *JWTService) GenerateToken(vendor *model.Vendor) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		VendorID:    vendor.ID.String(),
		FSSAINumber: vendor.FSSAINumber,
		Name:        vendor.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   vendor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.VendorID == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

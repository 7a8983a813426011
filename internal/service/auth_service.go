package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartvegis/internal/auth"
	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
	"smartvegis/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

// SignupInput is a vendor registration request. Profile is the license
// profile the client obtained from VerifyLicense; when nil the license is
// verified again server side.
type SignupInput struct {
	FSSAINumber string
	PhoneNumber string
	Name        string
	Password    string
	Profile     *model.LicenseProfile
}

// AuthService handles vendor verification, registration and login.
type AuthService interface {
	VerifyLicense(ctx context.Context, fssaiNumber string) (*model.VerificationResult, error)
	Signup(ctx context.Context, in SignupInput) (vendor *model.Vendor, token string, err error)
	Login(ctx context.Context, fssaiNumber, password string) (vendor *model.Vendor, token string, err error)
}

type authService struct {
	vendorRepo repository.VendorRepository
	verifier   LicenseVerifier
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(vendorRepo repository.VendorRepository, verifier LicenseVerifier, jwtService *auth.JWTService) AuthService {
	return &authService{
		vendorRepo: vendorRepo,
		verifier:   verifier,
		jwtService: jwtService,
	}
}

// VerifyLicense checks that the number is not yet registered and looks it up
// in the registry.
func (s *authService) VerifyLicense(ctx context.Context, fssaiNumber string) (*model.VerificationResult, error) {
	fssaiNumber = strings.TrimSpace(fssaiNumber)
	if !ValidFSSAINumber(fssaiNumber) {
		return nil, apperrors.NewValidationError("FSSAI number must be 14 digits")
	}

	exists, err := s.vendorRepo.ExistsByFSSAINumber(ctx, fssaiNumber)
	if err != nil {
		return nil, fmt.Errorf("check vendor existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrVendorAlreadyExists
	}

	return s.verifier.Verify(ctx, fssaiNumber)
}

// Signup registers a vendor and issues its first session token.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.Vendor, string, error) {
	in.FSSAINumber = strings.TrimSpace(in.FSSAINumber)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Name = strings.TrimSpace(in.Name)

	if in.FSSAINumber == "" || in.PhoneNumber == "" || in.Name == "" || in.Password == "" {
		return nil, "", apperrors.NewValidationError("all fields are required")
	}
	if !ValidFSSAINumber(in.FSSAINumber) {
		return nil, "", apperrors.NewValidationError("FSSAI number must be 14 digits")
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", apperrors.NewValidationError("password must be at least 6 characters")
	}

	exists, err := s.vendorRepo.ExistsByFSSAINumber(ctx, in.FSSAINumber)
	if err != nil {
		return nil, "", fmt.Errorf("check vendor existence: %w", err)
	}
	if exists {
		return nil, "", apperrors.ErrVendorAlreadyExists
	}

	profile := in.Profile
	if profile == nil {
		result, err := s.verifier.Verify(ctx, in.FSSAINumber)
		if err != nil {
			return nil, "", err
		}
		profile = result.Data
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	vendor := newVendor(in, profile, string(hashedPassword))
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrVendorAlreadyExists
		}
		return nil, "", fmt.Errorf("create vendor: %w", err)
	}

	token, err := s.jwtService.GenerateToken(vendor)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return vendor, token, nil
}

func newVendor(in SignupInput, profile *model.LicenseProfile, passwordHash string) *model.Vendor {
	if profile == nil {
		profile = &model.LicenseProfile{}
	}
	products := profile.Products
	if products == nil {
		products = []string{}
	}
	return &model.Vendor{
		FSSAINumber:  in.FSSAINumber,
		PhoneNumber:  in.PhoneNumber,
		Name:         in.Name,
		PasswordHash: passwordHash,
		StoreName:    firstNonEmpty(profile.CompanyName, "Store "+in.FSSAINumber[len(in.FSSAINumber)-4:]),
		StoreAddress: profile.Address,
		District:     profile.District,
		State:        firstNonEmpty(profile.State, "Maharashtra"),
		Pincode:      profile.Pincode,
		StorePhotos:  []string{},
		IsActive:     true,
		FSSAIDetails: model.LicenseDetails{
			LicenseType: firstNonEmpty(profile.LicenseType, "FSSAI"),
			Status:      firstNonEmpty(profile.Status, "Active"),
			IssuedDate:  profile.IssuedDate,
			ExpiryDate:  profile.ExpiryDate,
			Products:    products,
		},
	}
}

// Login authenticates a vendor by license number and password. Unknown
// numbers and wrong passwords fail identically.
func (s *authService) Login(ctx context.Context, fssaiNumber, password string) (*model.Vendor, string, error) {
	fssaiNumber = strings.TrimSpace(fssaiNumber)
	if fssaiNumber == "" || password == "" {
		return nil, "", apperrors.NewValidationError("FSSAI number and password are required")
	}

	vendor, err := s.vendorRepo.FindByFSSAINumber(ctx, fssaiNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find vendor: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(vendor.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(vendor)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return vendor, token, nil
}

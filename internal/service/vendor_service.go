package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
	"smartvegis/internal/repository"
)

// ProfileUpdate lists the profile fields a vendor may edit. Nil fields are left unchanged.
type ProfileUpdate struct {
	AltStoreName *string
	ProfilePhoto *string
	StorePhotos  *[]string
}

// LocationUpdate sets a vendor's store location.
type LocationUpdate struct {
	Latitude  float64
	Longitude float64
	District  string
	Address   string
	Pincode   string
}

// VendorService handles the authenticated vendor's own profile.
type VendorService interface {
	GetProfile(ctx context.Context, vendorID uuid.UUID) (*model.Vendor, error)
	UpdateProfile(ctx context.Context, vendorID uuid.UUID, update ProfileUpdate) (*model.Vendor, error)
	UpdateLocation(ctx context.Context, vendorID uuid.UUID, update LocationUpdate) (*model.Vendor, error)
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	geocoder   Geocoder
}

// NewVendorService creates a new vendor service. geocoder may be nil.
func NewVendorService(vendorRepo repository.VendorRepository, geocoder Geocoder) VendorService {
	return &vendorService{vendorRepo: vendorRepo, geocoder: geocoder}
}

func (s *vendorService) GetProfile(ctx context.Context, vendorID uuid.UUID) (*model.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, vendorLookupError(err)
	}
	return vendor, nil
}

func (s *vendorService) UpdateProfile(ctx context.Context, vendorID uuid.UUID, update ProfileUpdate) (*model.Vendor, error) {
	vendor, err := s.vendorRepo.Update(ctx, vendorID, func(v *model.Vendor) {
		if update.AltStoreName != nil {
			v.AltStoreName = strings.TrimSpace(*update.AltStoreName)
		}
		if update.ProfilePhoto != nil {
			v.ProfilePhoto = *update.ProfilePhoto
		}
		if update.StorePhotos != nil {
			photos := *update.StorePhotos
			if photos == nil {
				photos = []string{}
			}
			v.StorePhotos = photos
		}
	})
	if err != nil {
		return nil, vendorLookupError(err)
	}
	return vendor, nil
}

// UpdateLocation stores the coordinates and marks the location as set.
// Missing district, state or pincode are filled by reverse geocoding when a
// geocoder is configured; geocoding failures are logged and ignored.
func (s *vendorService) UpdateLocation(ctx context.Context, vendorID uuid.UUID, update LocationUpdate) (*model.Vendor, error) {
	if !(update.Latitude >= -90 && update.Latitude <= 90) || !(update.Longitude >= -180 && update.Longitude <= 180) {
		return nil, apperrors.NewValidationError("latitude and longitude are out of range")
	}

	var resolved *Address
	if s.geocoder != nil && (update.District == "" || update.Pincode == "") {
		addr, err := s.geocoder.Reverse(ctx, update.Latitude, update.Longitude)
		if err != nil {
			slog.WarnContext(ctx, "reverse geocoding failed", "vendor_id", vendorID, "error", err)
		} else {
			resolved = addr
		}
	}

	vendor, err := s.vendorRepo.Update(ctx, vendorID, func(v *model.Vendor) {
		v.Location = model.GeoPoint{Longitude: update.Longitude, Latitude: update.Latitude}
		v.District = strings.TrimSpace(update.District)
		v.StoreAddress = strings.TrimSpace(update.Address)
		v.Pincode = strings.TrimSpace(update.Pincode)
		if resolved != nil {
			v.District = firstNonEmpty(v.District, resolved.District)
			v.Pincode = firstNonEmpty(v.Pincode, resolved.Pincode)
			v.StoreAddress = firstNonEmpty(v.StoreAddress, resolved.DisplayName)
			v.State = firstNonEmpty(resolved.State, v.State)
		}
		v.IsLocationSet = true
	})
	if err != nil {
		return nil, vendorLookupError(err)
	}
	return vendor, nil
}

func vendorLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrVendorNotFound
	}
	return fmt.Errorf("load vendor: %w", err)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
	"smartvegis/internal/repository"
)

// NewListing is a listing creation request. Zero values take the listing defaults.
type NewListing struct {
	Commodity        string
	Category         model.Category
	Subcategory      string
	Price            decimal.Decimal
	Unit             model.Unit
	Quantity         float64
	MinOrderQuantity float64
	Description      string
	Quality          model.Quality
	Images           []string
}

// ListingPatch is a partial listing update. Only non-nil fields change.
type ListingPatch struct {
	Commodity        *string
	Category         *model.Category
	Subcategory      *string
	Price            *decimal.Decimal
	Unit             *model.Unit
	Quantity         *float64
	MinOrderQuantity *float64
	Description      *string
	Quality          *model.Quality
	Images           *[]string
	IsAvailable      *bool
}

// ListingService manages a vendor's own listings. Every operation is scoped
// to vendorID; listings of other vendors are reported as not found.
type ListingService interface {
	List(ctx context.Context, vendorID uuid.UUID, filter repository.ListingFilter) ([]model.Listing, error)
	Get(ctx context.Context, vendorID, id uuid.UUID) (*model.Listing, error)
	Create(ctx context.Context, vendorID uuid.UUID, in NewListing) (*model.Listing, error)
	Update(ctx context.Context, vendorID, id uuid.UUID, patch ListingPatch) (*model.Listing, error)
	Delete(ctx context.Context, vendorID, id uuid.UUID) error
	Toggle(ctx context.Context, vendorID, id uuid.UUID) (*model.Listing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	vendorRepo  repository.VendorRepository
}

// NewListingService creates a new listing service.
func NewListingService(listingRepo repository.ListingRepository, vendorRepo repository.VendorRepository) ListingService {
	return &listingService{listingRepo: listingRepo, vendorRepo: vendorRepo}
}

func (s *listingService) List(ctx context.Context, vendorID uuid.UUID, filter repository.ListingFilter) ([]model.Listing, error) {
	listings, err := s.listingRepo.ForVendor(vendorID).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

func (s *listingService) Get(ctx context.Context, vendorID, id uuid.UUID) (*model.Listing, error) {
	listing, err := s.listingRepo.ForVendor(vendorID).Get(ctx, id)
	if err != nil {
		return nil, listingLookupError(err)
	}
	return listing, nil
}

// Create validates the request, applies defaults and copies the vendor's
// current location and district onto the listing.
func (s *listingService) Create(ctx context.Context, vendorID uuid.UUID, in NewListing) (*model.Listing, error) {
	in.Commodity = strings.TrimSpace(in.Commodity)
	if in.Commodity == "" || in.Category == "" || in.Price.IsZero() {
		return nil, apperrors.NewValidationError("commodity, category, and price are required")
	}

	listing := &model.Listing{
		Commodity:        in.Commodity,
		Category:         in.Category,
		Subcategory:      strings.TrimSpace(in.Subcategory),
		Price:            in.Price,
		Unit:             in.Unit,
		Quantity:         in.Quantity,
		MinOrderQuantity: in.MinOrderQuantity,
		Description:      strings.TrimSpace(in.Description),
		Quality:          in.Quality,
		Images:           in.Images,
		IsAvailable:      true,
	}
	if listing.Unit == "" {
		listing.Unit = model.UnitKg
	}
	if listing.MinOrderQuantity == 0 {
		listing.MinOrderQuantity = 1
	}
	if listing.Quality == "" {
		listing.Quality = model.QualityStandard
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}
	if err := validateListing(listing); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, vendorLookupError(err)
	}
	listing.Location = vendor.Location
	listing.District = vendor.District

	if err := s.listingRepo.ForVendor(vendorID).Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return listing, nil
}

// Update applies a partial update. The patched listing is validated before
// it is saved, so an invalid value leaves the record untouched.
func (s *listingService) Update(ctx context.Context, vendorID, id uuid.UUID, patch ListingPatch) (*model.Listing, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.ForVendor(vendorID).Update(ctx, id, patch.apply)
	if err != nil {
		return nil, listingLookupError(err)
	}
	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, vendorID, id uuid.UUID) error {
	if err := s.listingRepo.ForVendor(vendorID).Delete(ctx, id); err != nil {
		return listingLookupError(err)
	}
	return nil
}

func (s *listingService) Toggle(ctx context.Context, vendorID, id uuid.UUID) (*model.Listing, error) {
	listing, err := s.listingRepo.ForVendor(vendorID).ToggleAvailability(ctx, id)
	if err != nil {
		return nil, listingLookupError(err)
	}
	return listing, nil
}

func (p ListingPatch) apply(l *model.Listing) {
	if p.Commodity != nil {
		l.Commodity = strings.TrimSpace(*p.Commodity)
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Subcategory != nil {
		l.Subcategory = strings.TrimSpace(*p.Subcategory)
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Unit != nil {
		l.Unit = *p.Unit
	}
	if p.Quantity != nil {
		l.Quantity = *p.Quantity
	}
	if p.MinOrderQuantity != nil {
		l.MinOrderQuantity = *p.MinOrderQuantity
	}
	if p.Description != nil {
		l.Description = strings.TrimSpace(*p.Description)
	}
	if p.Quality != nil {
		l.Quality = *p.Quality
	}
	if p.Images != nil {
		images := *p.Images
		if images == nil {
			images = []string{}
		}
		l.Images = images
	}
	if p.IsAvailable != nil {
		l.IsAvailable = *p.IsAvailable
	}
}

func validatePatch(p ListingPatch) error {
	if p.Commodity != nil && strings.TrimSpace(*p.Commodity) == "" {
		return apperrors.NewValidationError("commodity cannot be empty")
	}
	if p.Category != nil && !model.ValidListingCategory(*p.Category) {
		return apperrors.NewValidationError("category must be vegetable or fruit")
	}
	if p.Price != nil && !p.Price.IsPositive() {
		return apperrors.NewValidationError("price must be greater than zero")
	}
	if p.Unit != nil && !model.ValidUnit(*p.Unit) {
		return apperrors.NewValidationError("unit must be one of kg, dozen, piece, bundle, quintal")
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return apperrors.NewValidationError("quantity cannot be negative")
	}
	if p.MinOrderQuantity != nil && *p.MinOrderQuantity <= 0 {
		return apperrors.NewValidationError("minimum order quantity must be greater than zero")
	}
	if p.Quality != nil && !model.ValidQuality(*p.Quality) {
		return apperrors.NewValidationError("quality must be one of premium, standard, economy")
	}
	return nil
}

func validateListing(l *model.Listing) error {
	return validatePatch(ListingPatch{
		Category:         &l.Category,
		Price:            &l.Price,
		Unit:             &l.Unit,
		Quantity:         &l.Quantity,
		MinOrderQuantity: &l.MinOrderQuantity,
		Quality:          &l.Quality,
	})
}

func listingLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrListingNotFound
	}
	return fmt.Errorf("load listing: %w", err)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartvegis/internal/model"
)

// ListingFilter narrows a vendor's own listing query.
type ListingFilter struct {
	Category  model.Category
	Available *bool
}

// BrowseFilter narrows the public, cross-vendor listing query.
type BrowseFilter struct {
	District string
	Category model.Category
	VendorID uuid.UUID
	Limit    int
}

// DefaultBrowseLimit caps Browse when the filter sets no limit.
const DefaultBrowseLimit = 500

// ListingRepository is the entry point to listing persistence. Vendor-owned
// operations are only reachable through ForVendor, so every one of them
// carries the owner filter.
type ListingRepository interface {
	ForVendor(vendorID uuid.UUID) VendorListings
	// Browse returns available listings of all vendors, newest first.
	Browse(ctx context.Context, filter BrowseFilter) ([]model.Listing, error)
	// CountAvailable returns the number of available listings per vendor,
	// optionally restricted to a district.
	CountAvailable(ctx context.Context, district string) (map[uuid.UUID]int, error)
}

// VendorListings is a listing store scoped to one owning vendor. Records of
// other vendors behave as if they did not exist (gorm.ErrRecordNotFound).
type VendorListings interface {
	List(ctx context.Context, filter ListingFilter) ([]model.Listing, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Listing, error)
	Create(ctx context.Context, listing *model.Listing) error
	// Update applies mutate to the locked record and saves it.
	Update(ctx context.Context, id uuid.UUID, mutate func(listing *model.Listing)) (*model.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.Listing, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// ForVendor returns the listing store scoped to vendorID.
func (r *listingRepository) ForVendor(vendorID uuid.UUID) VendorListings {
	return &vendorListings{db: r.db, vendorID: vendorID}
}

// Browse lists available listings across vendors.
func (r *listingRepository) Browse(ctx context.Context, filter BrowseFilter) ([]model.Listing, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultBrowseLimit
	}

	query := r.db.WithContext(ctx).Where("is_available = ?", true)
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.VendorID != uuid.Nil {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}

	var listings []model.Listing
	if err := query.Order("created_at DESC").Limit(limit).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// CountAvailable groups available listings by vendor.
func (r *listingRepository) CountAvailable(ctx context.Context, district string) (map[uuid.UUID]int, error) {
	query := r.db.WithContext(ctx).Model(&model.Listing{}).
		Select("vendor_id, COUNT(*) AS count").
		Where("is_available = ?", true)
	if district != "" {
		query = query.Where("district = ?", district)
	}

	var rows []struct {
		VendorID uuid.UUID
		Count    int
	}
	if err := query.Group("vendor_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.VendorID] = row.Count
	}
	return counts, nil
}

type vendorListings struct {
	db       *gorm.DB
	vendorID uuid.UUID
}

func (s *vendorListings) scoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Where("vendor_id = ?", s.vendorID)
}

// List returns the vendor's listings, newest first.
func (s *vendorListings) List(ctx context.Context, filter ListingFilter) ([]model.Listing, error) {
	query := s.scoped(ctx)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Available != nil {
		query = query.Where("is_available = ?", *filter.Available)
	}

	var listings []model.Listing
	if err := query.Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Get finds one of the vendor's listings by ID.
func (s *vendorListings) Get(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	if err := s.scoped(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// Create stores a new listing owned by the scoped vendor, whatever VendorID
// the caller set.
func (s *vendorListings) Create(ctx context.Context, listing *model.Listing) error {
	listing.VendorID = s.vendorID
	return s.db.WithContext(ctx).Create(listing).Error
}

// Update loads the listing under a row lock, applies mutate and saves it.
func (s *vendorListings) Update(ctx context.Context, id uuid.UUID, mutate func(listing *model.Listing)) (*model.Listing, error) {
	var listing model.Listing
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND vendor_id = ?", id, s.vendorID).
			First(&listing).Error; err != nil {
			return err
		}
		mutate(&listing)
		// ownership cannot be reassigned through an update
		listing.VendorID = s.vendorID
		return tx.Save(&listing).Error
	})
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Delete removes one of the vendor's listings.
func (s *vendorListings) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.scoped(ctx).Where("id = ?", id).Delete(&model.Listing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleAvailability flips the listing's availability flag.
func (s *vendorListings) ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	return s.Update(ctx, id, func(listing *model.Listing) {
		listing.IsAvailable = !listing.IsAvailable
	})
}

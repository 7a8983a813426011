package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartvegis/internal/model"
)

// VendorRepository defines vendor persistence operations.
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Vendor, error)
	FindByFSSAINumber(ctx context.Context, fssaiNumber string) (*model.Vendor, error)
	ExistsByFSSAINumber(ctx context.Context, fssaiNumber string) (bool, error)
	// Update applies mutate to the locked record and saves it.
	Update(ctx context.Context, id uuid.UUID, mutate func(vendor *model.Vendor)) (*model.Vendor, error)
	ListActive(ctx context.Context, district string) ([]model.Vendor, error)
}

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository.
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor.
func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// FindByID finds a vendor by ID.
func (r *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindByIDs loads the vendors with the given IDs in no particular order.
func (r *vendorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if len(ids) == 0 {
		return vendors, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// FindByFSSAINumber finds a vendor by its license number.
func (r *vendorRepository) FindByFSSAINumber(ctx context.Context, fssaiNumber string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).Where("fssai_number = ?", fssaiNumber).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ExistsByFSSAINumber reports whether the license number is registered.
func (r *vendorRepository) ExistsByFSSAINumber(ctx context.Context, fssaiNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Vendor{}).
		Where("fssai_number = ?", fssaiNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update loads the vendor under a row lock, applies mutate and saves it.
func (r *vendorRepository) Update(ctx context.Context, id uuid.UUID, mutate func(vendor *model.Vendor)) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&vendor).Error; err != nil {
			return err
		}
		mutate(&vendor)
		return tx.Save(&vendor).Error
	})
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListActive lists active vendors, optionally limited to one district.
func (r *vendorRepository) ListActive(ctx context.Context, district string) ([]model.Vendor, error) {
	var vendors []model.Vendor
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if err := query.Order("created_at DESC").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

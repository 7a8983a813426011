package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category classifies produce.
type Category string

const (
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	// CategoryOther only appears on price records that match neither list.
	CategoryOther Category = "other"
)

// Unit is the selling unit of a listing.
type Unit string

const (
	UnitKg      Unit = "kg"
	UnitDozen   Unit = "dozen"
	UnitPiece   Unit = "piece"
	UnitBundle  Unit = "bundle"
	UnitQuintal Unit = "quintal"
)

// Quality is the grade a vendor assigns to a listing.
type Quality string

const (
	QualityPremium  Quality = "premium"
	QualityStandard Quality = "standard"
	QualityEconomy  Quality = "economy"
)

// Listing is a sell offer owned by exactly one vendor.
type Listing struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	VendorID uuid.UUID `json:"vendorId" gorm:"type:char(36);not null;index"`

	Commodity   string   `json:"commodity" gorm:"size:255;not null;index:idx_listings_commodity,class:FULLTEXT"`
	Category    Category `json:"category" gorm:"size:20;not null;index:idx_listings_category_availability,priority:1"`
	Subcategory string   `json:"subcategory" gorm:"size:100"`

	Price            decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Unit             Unit            `json:"unit" gorm:"size:20;not null"`
	Quantity         float64         `json:"quantity"`
	MinOrderQuantity float64         `json:"minOrderQuantity"`

	Description string   `json:"description" gorm:"type:text"`
	Quality     Quality  `json:"quality" gorm:"size:20;not null"`
	Images      []string `json:"images" gorm:"serializer:json;type:text"`
	IsAvailable bool     `json:"isAvailable" gorm:"index:idx_listings_category_availability,priority:2"`

	// Location and District are copied from the vendor when the listing is
	// created and are not kept in sync afterwards.
	Location GeoPoint `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	District string   `json:"district" gorm:"size:100"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// ValidListingCategory reports whether c may be stored on a listing.
func ValidListingCategory(c Category) bool {
	return c == CategoryVegetable || c == CategoryFruit
}

// ValidUnit reports whether u is a known selling unit.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitKg, UnitDozen, UnitPiece, UnitBundle, UnitQuintal:
		return true
	}
	return false
}

// ValidQuality reports whether q is a known quality grade.
func ValidQuality(q Quality) bool {
	switch q {
	case QualityPremium, QualityStandard, QualityEconomy:
		return true
	}
	return false
}

func init() {
	// prices travel as JSON numbers; decimal accepts quoted and bare numbers on input
	decimal.MarshalJSONWithoutQuotes = true
}

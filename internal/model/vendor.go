package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LicenseDetails is the FSSAI license metadata captured at signup.
type LicenseDetails struct {
	LicenseType string     `json:"licenseType" gorm:"size:100"`
	Status      string     `json:"status" gorm:"size:50"`
	IssuedDate  *time.Time `json:"issuedDate,omitempty"`
	ExpiryDate  *time.Time `json:"expiryDate,omitempty"`
	Products    []string   `json:"products" gorm:"serializer:json;type:text"`
}

// Vendor is a registered seller, identified by its 14-digit FSSAI license number.
type Vendor struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FSSAINumber  string    `json:"fssaiNumber" gorm:"size:14;uniqueIndex;not null"`
	PhoneNumber  string    `json:"phoneNumber" gorm:"size:20;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`

	// StoreName comes from the license registry and is never edited afterwards.
	StoreName    string `json:"storeName" gorm:"size:255;not null"`
	AltStoreName string `json:"altStoreName" gorm:"size:255"`
	StoreAddress string `json:"storeAddress" gorm:"size:512"`

	Location GeoPoint `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	District string   `json:"district" gorm:"size:100;index"`
	State    string   `json:"state" gorm:"size:100"`
	Pincode  string   `json:"pincode" gorm:"size:10"`

	ProfilePhoto string   `json:"profilePhoto" gorm:"size:1024"`
	StorePhotos  []string `json:"storePhotos" gorm:"serializer:json;type:text"`

	IsLocationSet bool `json:"isLocationSet"`
	IsActive      bool `json:"isActive" gorm:"index"`

	FSSAIDetails LicenseDetails `json:"fssaiDetails" gorm:"embedded;embeddedPrefix:fssai_"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// DisplayName is the name shown to consumers: the vendor's own alternate
// store name when set, otherwise the registry name.
func (v *Vendor) DisplayName() string {
	if v.AltStoreName != "" {
		return v.AltStoreName
	}
	return v.StoreName
}

// Package catalog builds the consumer-facing product and vendor views and
// applies the storefront's search, filter and sort rules to them in memory.
package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"smartvegis/internal/model"
)

// LowStockThreshold is the quantity below which an available listing is shown as low on stock.
const LowStockThreshold = 10

// Availability is the stock label shown on a product card.
type Availability string

const (
	InStock    Availability = "In Stock"
	LowStock   Availability = "Low Stock"
	OutOfStock Availability = "Out of Stock"
)

// AvailabilityOf derives the stock label of a listing. A quantity of zero
// means the vendor did not state one.
func AvailabilityOf(l *model.Listing) Availability {
	switch {
	case !l.IsAvailable:
		return OutOfStock
	case l.Quantity > 0 && l.Quantity < LowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

// Product is a listing as presented to consumers.
type Product struct {
	model.Listing
	VendorName   string       `json:"vendorName"`
	Availability Availability `json:"availability"`
	DistanceKm   *float64     `json:"distanceKm,omitempty"`
}

// VendorSummary is a vendor as presented to consumers.
type VendorSummary struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	StoreAddress  string         `json:"storeAddress"`
	District      string         `json:"district"`
	State         string         `json:"state"`
	Location      model.GeoPoint `json:"location"`
	ProfilePhoto  string         `json:"profilePhoto"`
	StorePhotos   []string       `json:"storePhotos"`
	IsLocationSet bool           `json:"isLocationSet"`
	ProductCount  int            `json:"productCount"`
	DistanceKm    *float64       `json:"distanceKm,omitempty"`
}

// NewProduct builds the product view of a listing. origin may be nil; a
// distance is only computed when both ends have a location.
func NewProduct(l model.Listing, vendor *model.Vendor, origin *model.GeoPoint) Product {
	p := Product{
		Listing:      l,
		Availability: AvailabilityOf(&l),
	}
	if vendor != nil {
		p.VendorName = vendor.DisplayName()
	}
	p.DistanceKm = distance(origin, l.Location)
	return p
}

// NewVendorSummary builds the consumer view of a vendor.
func NewVendorSummary(v *model.Vendor, productCount int, origin *model.GeoPoint) VendorSummary {
	photos := v.StorePhotos
	if photos == nil {
		photos = []string{}
	}
	s := VendorSummary{
		ID:            v.ID,
		Name:          v.DisplayName(),
		StoreAddress:  v.StoreAddress,
		District:      v.District,
		State:         v.State,
		Location:      v.Location,
		ProfilePhoto:  v.ProfilePhoto,
		StorePhotos:   photos,
		IsLocationSet: v.IsLocationSet,
		ProductCount:  productCount,
	}
	if v.IsLocationSet {
		s.DistanceKm = distance(origin, v.Location)
	}
	return s
}

func distance(origin *model.GeoPoint, to model.GeoPoint) *float64 {
	if origin == nil || to.IsZero() {
		return nil
	}
	d := math.Round(origin.DistanceKm(to)*10) / 10
	return &d
}

// SortVendorsByDistance orders vendors nearest first. Vendors without a
// distance keep their relative order after the others.
func SortVendorsByDistance(vendors []VendorSummary) {
	sort.SliceStable(vendors, func(i, j int) bool {
		return lessDistance(vendors[i].DistanceKm, vendors[j].DistanceKm)
	})
}

func lessDistance(a, b *float64) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

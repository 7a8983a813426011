package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"smartvegis/internal/catalog"
	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
	"smartvegis/internal/repository"
)

// ProductQuery is a storefront product search. Origin, when set, is the
// shopper's position used for distances.
type ProductQuery struct {
	catalog.Query
	District string
	Origin   *model.GeoPoint
}

// StorefrontService serves the public consumer views.
type StorefrontService interface {
	Products(ctx context.Context, q ProductQuery) ([]catalog.Product, error)
	Vendors(ctx context.Context, district string, origin *model.GeoPoint) ([]catalog.VendorSummary, error)
	Vendor(ctx context.Context, id uuid.UUID, origin *model.GeoPoint) (*catalog.VendorSummary, []catalog.Product, error)
}

type storefrontService struct {
	listingRepo repository.ListingRepository
	vendorRepo  repository.VendorRepository
}

// NewStorefrontService creates a new storefront service.
func NewStorefrontService(listingRepo repository.ListingRepository, vendorRepo repository.VendorRepository) StorefrontService {
	return &storefrontService{listingRepo: listingRepo, vendorRepo: vendorRepo}
}

// Products lists available products of active vendors.
func (s *storefrontService) Products(ctx context.Context, q ProductQuery) ([]catalog.Product, error) {
	listings, err := s.listingRepo.Browse(ctx, repository.BrowseFilter{
		District: q.District,
		Category: q.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("browse listings: %w", err)
	}

	vendors, err := s.vendorsOf(ctx, listings)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(listings))
	for _, l := range listings {
		vendor, ok := vendors[l.VendorID]
		if !ok || !vendor.IsActive {
			continue
		}
		products = append(products, catalog.NewProduct(l, vendor, q.Origin))
	}
	return catalog.Apply(products, q.Query), nil
}

// Vendors lists active vendors with their available product counts, nearest
// first when origin is set.
func (s *storefrontService) Vendors(ctx context.Context, district string, origin *model.GeoPoint) ([]catalog.VendorSummary, error) {
	vendors, err := s.vendorRepo.ListActive(ctx, district)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	counts, err := s.listingRepo.CountAvailable(ctx, district)
	if err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}

	summaries := make([]catalog.VendorSummary, 0, len(vendors))
	for i := range vendors {
		summaries = append(summaries, catalog.NewVendorSummary(&vendors[i], counts[vendors[i].ID], origin))
	}
	if origin != nil {
		catalog.SortVendorsByDistance(summaries)
	}
	return summaries, nil
}

// Vendor returns one active vendor and its available products.
func (s *storefrontService) Vendor(ctx context.Context, id uuid.UUID, origin *model.GeoPoint) (*catalog.VendorSummary, []catalog.Product, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, vendorLookupError(err)
	}
	if !vendor.IsActive {
		return nil, nil, apperrors.ErrVendorNotFound
	}

	listings, err := s.listingRepo.Browse(ctx, repository.BrowseFilter{VendorID: id})
	if err != nil {
		return nil, nil, fmt.Errorf("browse listings: %w", err)
	}

	products := make([]catalog.Product, 0, len(listings))
	for _, l := range listings {
		products = append(products, catalog.NewProduct(l, vendor, origin))
	}
	summary := catalog.NewVendorSummary(vendor, len(products), origin)
	return &summary, products, nil
}

func (s *storefrontService) vendorsOf(ctx context.Context, listings []model.Listing) (map[uuid.UUID]*model.Vendor, error) {
	seen := make(map[uuid.UUID]struct{}, len(listings))
	ids := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		if _, ok := seen[l.VendorID]; !ok {
			seen[l.VendorID] = struct{}{}
			ids = append(ids, l.VendorID)
		}
	}

	vendors, err := s.vendorRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load vendors: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Vendor, len(vendors))
	for i := range vendors {
		byID[vendors[i].ID] = &vendors[i]
	}
	return byID, nil
}

// Package repotest provides in-memory repositories for tests. They follow the
// gorm repositories' contracts, including gorm.ErrRecordNotFound and
// gorm.ErrDuplicatedKey.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartvegis/internal/model"
	"smartvegis/internal/repository"
)

// Vendors is an in-memory repository.VendorRepository.
type Vendors struct {
	mu      sync.Mutex
	vendors map[uuid.UUID]model.Vendor
}

// NewVendors returns an empty vendor store.
func NewVendors() *Vendors {
	return &Vendors{vendors: make(map[uuid.UUID]model.Vendor)}
}

var _ repository.VendorRepository = (*Vendors)(nil)

func (r *Vendors) Create(_ context.Context, vendor *model.Vendor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vendors {
		if v.FSSAINumber == vendor.FSSAINumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	now := time.Now()
	vendor.CreatedAt, vendor.UpdatedAt = now, now
	r.vendors[vendor.ID] = *vendor
	return nil
}

func (r *Vendors) FindByID(_ context.Context, id uuid.UUID) (*model.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r *Vendors) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Vendor{}
	for _, id := range ids {
		if v, ok := r.vendors[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *Vendors) FindByFSSAINumber(_ context.Context, fssaiNumber string) (*model.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vendors {
		if v.FSSAINumber == fssaiNumber {
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *Vendors) ExistsByFSSAINumber(ctx context.Context, fssaiNumber string) (bool, error) {
	_, err := r.FindByFSSAINumber(ctx, fssaiNumber)
	return err == nil, nil
}

func (r *Vendors) Update(_ context.Context, id uuid.UUID, mutate func(vendor *model.Vendor)) (*model.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vendors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	mutate(&v)
	v.UpdatedAt = time.Now()
	r.vendors[id] = v
	return &v, nil
}

func (r *Vendors) ListActive(_ context.Context, district string) ([]model.Vendor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Vendor{}
	for _, v := range r.vendors {
		if v.IsActive && (district == "" || v.District == district) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Listings is an in-memory repository.ListingRepository.
type Listings struct {
	mu       sync.Mutex
	listings map[uuid.UUID]model.Listing
	seq      int
}

// NewListings returns an empty listing store.
func NewListings() *Listings {
	return &Listings{listings: make(map[uuid.UUID]model.Listing)}
}

var _ repository.ListingRepository = (*Listings)(nil)

func (r *Listings) ForVendor(vendorID uuid.UUID) repository.VendorListings {
	return &vendorListings{store: r, vendorID: vendorID}
}

func (r *Listings) Browse(_ context.Context, filter repository.BrowseFilter) ([]model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Listing{}
	for _, l := range r.sorted() {
		if !l.IsAvailable ||
			(filter.District != "" && l.District != filter.District) ||
			(filter.Category != "" && l.Category != filter.Category) ||
			(filter.VendorID != uuid.Nil && l.VendorID != filter.VendorID) {
			continue
		}
		out = append(out, l)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = repository.DefaultBrowseLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Listings) CountAvailable(_ context.Context, district string) (map[uuid.UUID]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, l := range r.listings {
		if !l.IsAvailable || (district != "" && l.District != district) {
			continue
		}
		counts[l.VendorID]++
	}
	return counts, nil
}

// sorted returns all listings newest first. Callers hold mu.
func (r *Listings) sorted() []model.Listing {
	out := make([]model.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type vendorListings struct {
	store    *Listings
	vendorID uuid.UUID
}

func (s *vendorListings) List(_ context.Context, filter repository.ListingFilter) ([]model.Listing, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	out := []model.Listing{}
	for _, l := range s.store.sorted() {
		if l.VendorID != s.vendorID ||
			(filter.Category != "" && l.Category != filter.Category) ||
			(filter.Available != nil && l.IsAvailable != *filter.Available) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *vendorListings) Get(_ context.Context, id uuid.UUID) (*model.Listing, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	l, ok := s.store.listings[id]
	if !ok || l.VendorID != s.vendorID {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (s *vendorListings) Create(_ context.Context, listing *model.Listing) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	listing.VendorID = s.vendorID
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	// strictly increasing timestamps keep newest-first ordering deterministic
	s.store.seq++
	now := time.Now().Add(time.Duration(s.store.seq) * time.Millisecond)
	listing.CreatedAt, listing.UpdatedAt = now, now
	s.store.listings[listing.ID] = *listing
	return nil
}

func (s *vendorListings) Update(_ context.Context, id uuid.UUID, mutate func(listing *model.Listing)) (*model.Listing, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	l, ok := s.store.listings[id]
	if !ok || l.VendorID != s.vendorID {
		return nil, gorm.ErrRecordNotFound
	}
	mutate(&l)
	l.VendorID = s.vendorID
	l.UpdatedAt = time.Now()
	s.store.listings[id] = l
	return &l, nil
}

func (s *vendorListings) Delete(_ context.Context, id uuid.UUID) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	l, ok := s.store.listings[id]
	if !ok || l.VendorID != s.vendorID {
		return gorm.ErrRecordNotFound
	}
	delete(s.store.listings, id)
	return nil
}

func (s *vendorListings) ToggleAvailability(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	return s.Update(ctx, id, func(listing *model.Listing) {
		listing.IsAvailable = !listing.IsAvailable
	})
}

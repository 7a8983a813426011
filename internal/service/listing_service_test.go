package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "smartvegis/internal/errors"
	"smartvegis/internal/model"
	"smartvegis/internal/repository"
	"smartvegis/internal/repository/repotest"
)

type listingFixture struct {
	service ListingService
	vendors *repotest.Vendors
	alice   *model.Vendor
	bob     *model.Vendor
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()
	vendors := repotest.NewVendors()
	ctx := context.Background()

	alice := &model.Vendor{
		FSSAINumber: "11111111111111",
		Name:        "Alice",
		StoreName:   "Alice Greens",
		District:    "Pune",
		Location:    model.GeoPoint{Longitude: 73.85, Latitude: 18.52},
		IsActive:    true,
	}
	bob := &model.Vendor{FSSAINumber: "22222222222222", Name: "Bob", StoreName: "Bob Fruits", District: "Nashik", IsActive: true}
	require.NoError(t, vendors.Create(ctx, alice))
	require.NoError(t, vendors.Create(ctx, bob))

	return &listingFixture{
		service: NewListingService(repotest.NewListings(), vendors),
		vendors: vendors,
		alice:   alice,
		bob:     bob,
	}
}

func tomato() NewListing {
	return NewListing{Commodity: "Tomato", Category: model.CategoryVegetable, Price: decimal.NewFromInt(40)}
}

func TestListingService_CreateAppliesDefaults(t *testing.T) {
	f := newListingFixture(t)

	listing, err := f.service.Create(context.Background(), f.alice.ID, tomato())

	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, listing.VendorID)
	assert.Equal(t, model.UnitKg, listing.Unit)
	assert.Equal(t, 0.0, listing.Quantity)
	assert.Equal(t, 1.0, listing.MinOrderQuantity)
	assert.Equal(t, model.QualityStandard, listing.Quality)
	assert.Equal(t, []string{}, listing.Images)
	assert.True(t, listing.IsAvailable)
	assert.Equal(t, "Pune", listing.District)
	assert.Equal(t, f.alice.Location, listing.Location)
}

func TestListingService_CreateValidation(t *testing.T) {
	f := newListingFixture(t)

	tests := []struct {
		name   string
		mutate func(*NewListing)
	}{
		{"missing commodity", func(l *NewListing) { l.Commodity = "  " }},
		{"missing category", func(l *NewListing) { l.Category = "" }},
		{"missing price", func(l *NewListing) { l.Price = decimal.Zero }},
		{"negative price", func(l *NewListing) { l.Price = decimal.NewFromInt(-5) }},
		{"unknown category", func(l *NewListing) { l.Category = "grain" }},
		{"unknown unit", func(l *NewListing) { l.Unit = "litre" }},
		{"unknown quality", func(l *NewListing) { l.Quality = "gold" }},
		{"negative quantity", func(l *NewListing) { l.Quantity = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tomato()
			tt.mutate(&in)

			listing, err := f.service.Create(context.Background(), f.alice.ID, in)

			var validationErr *apperrors.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Nil(t, listing)
		})
	}
}

func TestListingService_ScopedToOwner(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	listing, err := f.service.Create(ctx, f.alice.ID, tomato())
	require.NoError(t, err)

	_, err = f.service.Get(ctx, f.bob.ID, listing.ID)
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)

	price := decimal.NewFromInt(1)
	_, err = f.service.Update(ctx, f.bob.ID, listing.ID, ListingPatch{Price: &price})
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)

	_, err = f.service.Toggle(ctx, f.bob.ID, listing.ID)
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)

	assert.ErrorIs(t, f.service.Delete(ctx, f.bob.ID, listing.ID), apperrors.ErrListingNotFound)

	bobs, err := f.service.List(ctx, f.bob.ID, repository.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, bobs)

	got, err := f.service.Get(ctx, f.alice.ID, listing.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(got.Price))
	assert.True(t, got.IsAvailable)
}

func TestListingService_PartialUpdate(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	in := tomato()
	in.Description = "Farm fresh"
	in.Quantity = 25
	in.Images = []string{"https://cdn.example/tomato.jpg"}
	created, err := f.service.Create(ctx, f.alice.ID, in)
	require.NoError(t, err)

	price := decimal.RequireFromString("55.50")
	updated, err := f.service.Update(ctx, f.alice.ID, created.ID, ListingPatch{Price: &price})

	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))
	assert.Equal(t, created.Commodity, updated.Commodity)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Quantity, updated.Quantity)
	assert.Equal(t, created.Images, updated.Images)
	assert.Equal(t, created.IsAvailable, updated.IsAvailable)
	assert.Equal(t, created.VendorID, updated.VendorID)
}

func TestListingService_InvalidUpdateLeavesRecord(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.alice.ID, tomato())
	require.NoError(t, err)

	unit := model.Unit("litre")
	_, err = f.service.Update(ctx, f.alice.ID, created.ID, ListingPatch{Unit: &unit})
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	got, err := f.service.Get(ctx, f.alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UnitKg, got.Unit)
}

func TestListingService_ToggleTwiceRestores(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, f.alice.ID, tomato())
	require.NoError(t, err)

	first, err := f.service.Toggle(ctx, f.alice.ID, created.ID)
	require.NoError(t, err)
	assert.False(t, first.IsAvailable)

	second, err := f.service.Toggle(ctx, f.alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.IsAvailable, second.IsAvailable)
}

func TestListingService_ListFiltersAndDelete(t *testing.T) {
	f := newListingFixture(t)
	ctx := context.Background()

	tom, err := f.service.Create(ctx, f.alice.ID, tomato())
	require.NoError(t, err)
	_, err = f.service.Create(ctx, f.alice.ID, NewListing{Commodity: "Banana", Category: model.CategoryFruit, Price: decimal.NewFromInt(60), Unit: model.UnitDozen})
	require.NoError(t, err)
	_, err = f.service.Toggle(ctx, f.alice.ID, tom.ID)
	require.NoError(t, err)

	all, err := f.service.List(ctx, f.alice.ID, repository.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Banana", all[0].Commodity)

	available := true
	open, err := f.service.List(ctx, f.alice.ID, repository.ListingFilter{Available: &available})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Banana", open[0].Commodity)

	veg, err := f.service.List(ctx, f.alice.ID, repository.ListingFilter{Category: model.CategoryVegetable})
	require.NoError(t, err)
	require.Len(t, veg, 1)

	require.NoError(t, f.service.Delete(ctx, f.alice.ID, tom.ID))
	_, err = f.service.Get(ctx, f.alice.ID, tom.ID)
	assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
}

func TestListingService_CreateForUnknownVendor(t *testing.T) {
	f := newListingFixture(t)

	_, err := f.service.Create(context.Background(), uuid.New(), tomato())

	assert.ErrorIs(t, err, apperrors.ErrVendorNotFound)
}

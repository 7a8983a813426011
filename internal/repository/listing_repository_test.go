package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"smartvegis/internal/model"
)

var listingColumns = []string{
	"id", "vendor_id", "commodity", "category", "subcategory", "price", "unit",
	"quantity", "min_order_quantity", "description", "quality", "images",
	"is_available", "location_longitude", "location_latitude", "district",
	"created_at", "updated_at",
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func listingRow(rows *sqlmock.Rows, id, vendorID uuid.UUID, commodity string, available bool) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id.String(), vendorID.String(), commodity, "vegetable", "", "20.00", "kg",
		0.0, 1.0, "", "standard", "[]",
		available, 73.85, 18.52, "Pune",
		now, now,
	)
}

func TestVendorListings_ListAppliesOwnerAndFilters(t *testing.T) {
	gormDB, mock := newMockDB(t)
	vendorID := uuid.New()
	available := true

	rows := sqlmock.NewRows(listingColumns)
	listingRow(rows, uuid.New(), vendorID, "Tomato", true)
	listingRow(rows, uuid.New(), vendorID, "Onion", true)

	mock.ExpectQuery("SELECT (.+) FROM `listings` WHERE vendor_id = (.+) AND category = (.+) AND is_available = (.+) ORDER BY created_at DESC").
		WithArgs(vendorID, "vegetable", true).
		WillReturnRows(rows)

	repo := NewListingRepository(gormDB)
	listings, err := repo.ForVendor(vendorID).List(context.Background(), ListingFilter{
		Category:  model.CategoryVegetable,
		Available: &available,
	})

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Tomato", listings[0].Commodity)
	assert.Equal(t, vendorID, listings[0].VendorID)
	assert.True(t, decimal.NewFromInt(20).Equal(listings[0].Price))
	assert.Equal(t, 73.85, listings[0].Location.Longitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorListings_GetOtherVendorIsNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	vendorID := uuid.New()
	listingID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM `listings` WHERE vendor_id = (.+) AND id = (.+)").
		WillReturnRows(sqlmock.NewRows(listingColumns))

	repo := NewListingRepository(gormDB)
	listing, err := repo.ForVendor(vendorID).Get(context.Background(), listingID)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, listing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorListings_CreateForcesOwner(t *testing.T) {
	gormDB, mock := newMockDB(t)
	vendorID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `listings`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	listing := &model.Listing{
		VendorID:  uuid.New(),
		Commodity: "Tomato",
		Category:  model.CategoryVegetable,
		Price:     decimal.NewFromInt(20),
		Unit:      model.UnitKg,
		Quality:   model.QualityStandard,
	}
	err := NewListingRepository(gormDB).ForVendor(vendorID).Create(context.Background(), listing)

	require.NoError(t, err)
	assert.Equal(t, vendorID, listing.VendorID)
	assert.NotEqual(t, uuid.Nil, listing.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorListings_DeleteMissingIsNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `listings` WHERE vendor_id = (.+) AND id = (.+)").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewListingRepository(gormDB).ForVendor(uuid.New()).Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVendorListings_ToggleFlipsAvailability(t *testing.T) {
	gormDB, mock := newMockDB(t)
	vendorID := uuid.New()
	listingID := uuid.New()

	rows := sqlmock.NewRows(listingColumns)
	listingRow(rows, listingID, vendorID, "Tomato", true)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `listings` WHERE \\(?id = (.+) AND vendor_id = (.+) FOR UPDATE").
		WillReturnRows(rows)
	mock.ExpectExec("UPDATE `listings` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	listing, err := NewListingRepository(gormDB).ForVendor(vendorID).ToggleAvailability(context.Background(), listingID)

	require.NoError(t, err)
	assert.False(t, listing.IsAvailable)
	assert.Equal(t, vendorID, listing.VendorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_BrowseOnlyAvailable(t *testing.T) {
	gormDB, mock := newMockDB(t)

	rows := sqlmock.NewRows(listingColumns)
	listingRow(rows, uuid.New(), uuid.New(), "Banana", true)

	mock.ExpectQuery("SELECT (.+) FROM `listings` WHERE is_available = (.+) AND district = (.+) ORDER BY created_at DESC LIMIT").
		WillReturnRows(rows)

	listings, err := NewListingRepository(gormDB).Browse(context.Background(), BrowseFilter{District: "Pune"})

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Banana", listings[0].Commodity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepository_CountAvailableGroupsByVendor(t *testing.T) {
	gormDB, mock := newMockDB(t)
	first, second := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"vendor_id", "count"}).
		AddRow(first.String(), 742).
		AddRow(second.String(), 3)
	mock.ExpectQuery("SELECT vendor_id, COUNT\\(\\*\\) AS count FROM `listings` WHERE is_available = (.+) AND district = (.+) GROUP BY `?vendor_id`?").
		WithArgs(true, "Pune").
		WillReturnRows(rows)

	counts, err := NewListingRepository(gormDB).CountAvailable(context.Background(), "Pune")

	require.NoError(t, err)
	assert.Equal(t, map[uuid.UUID]int{first: 742, second: 3}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

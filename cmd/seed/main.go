package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartvegis/internal/config"
	"smartvegis/internal/db"
	"smartvegis/internal/model"
	"smartvegis/internal/repository"
)

// demoPassword is shared by every seeded vendor.
const demoPassword = "password123"

type seedListing struct {
	commodity string
	category  model.Category
	price     int64
	unit      model.Unit
	quantity  float64
	quality   model.Quality
}

type seedVendor struct {
	fssaiNumber string
	name        string
	storeName   string
	address     string
	lat, lng    float64
	listings    []seedListing
}

var demoVendors = []seedVendor{
	{
		fssaiNumber: "11520001000101", name: "Suresh Patil", storeName: "Green Farm Market",
		address: "Shivaji Nagar, Pune", lat: 18.5308, lng: 73.8475,
		listings: []seedListing{
			{"Tomato", model.CategoryVegetable, 40, model.UnitKg, 50, model.QualityStandard},
			{"Banana", model.CategoryFruit, 45, model.UnitDozen, 30, model.QualityStandard},
			{"Broccoli", model.CategoryVegetable, 90, model.UnitKg, 6, model.QualityPremium},
		},
	},
	{
		fssaiNumber: "11520001000202", name: "Anita Deshmukh", storeName: "Organic Valley",
		address: "Kothrud, Pune", lat: 18.5074, lng: 73.8077,
		listings: []seedListing{
			{"Spinach", model.CategoryVegetable, 30, model.UnitBundle, 40, model.QualityPremium},
			{"Capsicum", model.CategoryVegetable, 60, model.UnitKg, 8, model.QualityStandard},
			{"Cucumber", model.CategoryVegetable, 30, model.UnitKg, 25, model.QualityStandard},
		},
	},
	{
		fssaiNumber: "11520001000303", name: "Ramesh Jadhav", storeName: "Farm Fresh",
		address: "Hadapsar, Pune", lat: 18.5089, lng: 73.9260,
		listings: []seedListing{
			{"Carrot", model.CategoryVegetable, 35, model.UnitKg, 4, model.QualityStandard},
			{"Cabbage", model.CategoryVegetable, 25, model.UnitPiece, 20, model.QualityEconomy},
		},
	},
	{
		fssaiNumber: "11520001000404", name: "Meera Kulkarni", storeName: "Fruit Paradise",
		address: "Deccan Gymkhana, Pune", lat: 18.5167, lng: 73.8414,
		listings: []seedListing{
			{"Apple", model.CategoryFruit, 120, model.UnitKg, 35, model.QualityPremium},
			{"Mango", model.CategoryFruit, 150, model.UnitKg, 20, model.QualityPremium},
			{"Grapes", model.CategoryFruit, 100, model.UnitKg, 15, model.QualityStandard},
		},
	},
	{
		fssaiNumber: "11520001000505", name: "Vijay Shinde", storeName: "Local Bazaar",
		address: "Camp, Pune", lat: 18.5158, lng: 73.8782,
		listings: []seedListing{
			{"Potato", model.CategoryVegetable, 25, model.UnitKg, 100, model.QualityEconomy},
			{"Onion", model.CategoryVegetable, 35, model.UnitKg, 80, model.QualityStandard},
		},
	},
	{
		fssaiNumber: "11520001000606", name: "Kavita More", storeName: "Citrus Corner",
		address: "Aundh, Pune", lat: 18.5590, lng: 73.8077,
		listings: []seedListing{
			{"Orange", model.CategoryFruit, 80, model.UnitKg, 45, model.QualityStandard},
			{"Lemon", model.CategoryFruit, 60, model.UnitDozen, 9, model.QualityStandard},
			{"Mosambi", model.CategoryFruit, 70, model.UnitKg, 30, model.QualityStandard},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	vendorRepo := repository.NewVendorRepository(gormDB)
	listingRepo := repository.NewListingRepository(gormDB)
	ctx := context.Background()

	created, skipped, listings := 0, 0, 0
	for _, sv := range demoVendors {
		n, err := seedVendorWithListings(ctx, vendorRepo, listingRepo, sv, string(hash))
		if err != nil {
			log.Fatalf("Failed to seed %s: %v", sv.storeName, err)
		}
		if n < 0 {
			log.Printf("Vendor %s already exists, skipping", sv.storeName)
			skipped++
			continue
		}
		created++
		listings += n
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Vendors created: %d", created)
	log.Printf("  - Vendors skipped: %d", skipped)
	log.Printf("  - Listings created: %d", listings)
	log.Printf("  - Demo password: %s", demoPassword)
}

// seedVendorWithListings creates the vendor and its listings. It returns -1
// when a vendor with the same license number already exists.
func seedVendorWithListings(
	ctx context.Context,
	vendorRepo repository.VendorRepository,
	listingRepo repository.ListingRepository,
	sv seedVendor,
	passwordHash string,
) (int, error) {
	if _, err := vendorRepo.FindByFSSAINumber(ctx, sv.fssaiNumber); err == nil {
		return -1, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("error checking vendor %s: %w", sv.fssaiNumber, err)
	}

	location := model.GeoPoint{Latitude: sv.lat, Longitude: sv.lng}
	vendor := &model.Vendor{
		FSSAINumber:   sv.fssaiNumber,
		PhoneNumber:   "9800000000",
		PasswordHash:  passwordHash,
		Name:          sv.name,
		StoreName:     sv.storeName,
		StoreAddress:  sv.address,
		Location:      location,
		District:      "Pune",
		State:         "Maharashtra",
		Pincode:       "411001",
		StorePhotos:   []string{},
		IsLocationSet: true,
		IsActive:      true,
		FSSAIDetails: model.LicenseDetails{
			LicenseType: "FSSAI",
			Status:      "Active",
			Products:    []string{"Vegetables", "Fruits"},
		},
	}
	if err := vendorRepo.Create(ctx, vendor); err != nil {
		return 0, fmt.Errorf("error creating vendor %s: %w", sv.fssaiNumber, err)
	}

	scoped := listingRepo.ForVendor(vendor.ID)
	for _, sl := range sv.listings {
		listing := &model.Listing{
			Commodity:        sl.commodity,
			Category:         sl.category,
			Price:            decimal.NewFromInt(sl.price),
			Unit:             sl.unit,
			Quantity:         sl.quantity,
			MinOrderQuantity: 1,
			Quality:          sl.quality,
			Images:           []string{},
			IsAvailable:      true,
			Location:         location,
			District:         vendor.District,
		}
		if err := scoped.Create(ctx, listing); err != nil {
			return 0, fmt.Errorf("error creating listing %s: %w", sl.commodity, err)
		}
	}
	return len(sv.listings), nil
}

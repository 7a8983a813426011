package catalog

import (
	"fmt"
	"sort"
	"strings"

	"smartvegis/internal/model"
)

// Sort selects the product ordering.
type Sort string

const (
	SortRelevance Sort = "relevance"
	SortPriceLow  Sort = "priceLow"
	SortPriceHigh Sort = "priceHigh"
	SortDistance  Sort = "distance"
	SortNewest    Sort = "newest"
)

// AvailabilityFilter selects products by stock label.
type AvailabilityFilter string

const (
	AvailabilityAll      AvailabilityFilter = "all"
	AvailabilityInStock  AvailabilityFilter = "inStock"
	AvailabilityLowStock AvailabilityFilter = "lowStock"
)

// Query is a storefront search.
type Query struct {
	// Search matches commodity, category and vendor name, ignoring case.
	Search       string
	Category     model.Category
	Availability AvailabilityFilter
	Sort         Sort
}

// ParseSort validates a sort name. Empty selects relevance.
func ParseSort(s string) (Sort, error) {
	switch Sort(s) {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortPriceLow, SortPriceHigh, SortDistance, SortNewest:
		return Sort(s), nil
	}
	return "", fmt.Errorf("unknown sort %q", s)
}

// ParseAvailability validates an availability filter. Empty selects all.
func ParseAvailability(s string) (AvailabilityFilter, error) {
	switch AvailabilityFilter(s) {
	case "":
		return AvailabilityAll, nil
	case AvailabilityAll, AvailabilityInStock, AvailabilityLowStock:
		return AvailabilityFilter(s), nil
	}
	return "", fmt.Errorf("unknown availability %q", s)
}

// ParseCategory accepts singular or plural category names, any case. Empty
// and "all" select every category and return "".
func ParseCategory(s string) (model.Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case "vegetable", "vegetables":
		return model.CategoryVegetable, nil
	case "fruit", "fruits":
		return model.CategoryFruit, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Apply filters and sorts products. The input slice is not modified.
// Relevance keeps the input order.
func Apply(products []Product, q Query) []Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!containsFold(p.Commodity, search) &&
			!containsFold(string(p.Category), search) &&
			!containsFold(p.VendorName, search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		switch q.Availability {
		case AvailabilityInStock:
			if p.Availability != InStock {
				continue
			}
		case AvailabilityLowStock:
			if p.Availability != LowStock {
				continue
			}
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortDistance:
		sort.SliceStable(out, func(i, j int) bool { return lessDistance(out[i].DistanceKm, out[j].DistanceKm) })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

package service

import (
	"strings"

	"smartvegis/internal/model"
)

// CommodityList holds the commodities the marketplace recognises, grouped by category.
type CommodityList struct {
	Vegetables []string `json:"vegetables"`
	Fruits     []string `json:"fruits"`
}

// Commodities are the common vegetables and fruits traded in Maharashtra mandis.
var Commodities = CommodityList{
	Vegetables: []string{
		"Tomato", "Onion", "Potato", "Brinjal", "Cabbage", "Cauliflower",
		"Green Chilli", "Capsicum", "Carrot", "Beans", "Bitter Gourd",
		"Bottle Gourd", "Ridge Gourd", "Lady Finger", "Peas", "Drumstick",
		"Cucumber", "Radish", "Spinach", "Coriander", "Mint", "Garlic", "Ginger",
	},
	Fruits: []string{
		"Banana", "Mango", "Grapes", "Pomegranate", "Orange", "Sweet Lime",
		"Papaya", "Watermelon", "Muskmelon", "Apple", "Guava", "Sapota",
		"Pineapple", "Custard Apple", "Coconut", "Lemon", "Fig",
	},
}

// ClassifyCommodity returns the category whose list has an entry contained in
// name, ignoring case. Vegetables are checked before fruits.
func ClassifyCommodity(name string) model.Category {
	lower := strings.ToLower(name)
	for _, veg := range Commodities.Vegetables {
		if strings.Contains(lower, strings.ToLower(veg)) {
			return model.CategoryVegetable
		}
	}
	for _, fruit := range Commodities.Fruits {
		if strings.Contains(lower, strings.ToLower(fruit)) {
			return model.CategoryFruit
		}
	}
	return model.CategoryOther
}

package model

// PriceRecord is one mandi (wholesale market) quote. Prices are per quintal.
// Records are built per request and never persisted.
type PriceRecord struct {
	Commodity   string   `json:"commodity"`
	Variety     string   `json:"variety"`
	Market      string   `json:"market"`
	District    string   `json:"district"`
	State       string   `json:"state"`
	MinPrice    float64  `json:"minPrice"`
	MaxPrice    float64  `json:"maxPrice"`
	ModalPrice  float64  `json:"modalPrice"`
	Unit        string   `json:"unit"`
	ArrivalDate string   `json:"arrivalDate"`
	Category    Category `json:"category"`
}

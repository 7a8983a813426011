package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smartvegis/internal/model"
)

const (
	priceQueryLimit = 100
	priceUnit       = "Quintal"
	defaultVariety  = "Standard"
	defaultDistrict = "Pune"
)

// PriceService looks up mandi prices.
type PriceService interface {
	// GetPrices never fails: upstream problems yield the static price table.
	GetPrices(ctx context.Context, district, state string) []model.PriceRecord
}

type priceService struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	defaultState string
	now          func() time.Time
}

// NewPriceService creates a price service backed by the data.gov.in AGMARKNET resource.
func NewPriceService(client *http.Client, baseURL, apiKey, defaultState string) PriceService {
	return &priceService{
		client:       client,
		baseURL:      baseURL,
		apiKey:       apiKey,
		defaultState: defaultState,
		now:          time.Now,
	}
}

func (s *priceService) GetPrices(ctx context.Context, district, state string) []model.PriceRecord {
	district = strings.TrimSpace(district)
	state = strings.TrimSpace(state)
	if state == "" {
		state = s.defaultState
	}

	records, err := s.fetch(ctx, district, state)
	if err != nil {
		slog.WarnContext(ctx, "mandi price lookup failed, serving static prices",
			"district", district, "state", state, "error", err)
		return s.mockPrices(district, state)
	}
	return records
}

func (s *priceService) fetch(ctx context.Context, district, state string) ([]model.PriceRecord, error) {
	endpoint, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse price api url: %w", err)
	}
	q := endpoint.Query()
	q.Set("api-key", s.apiKey)
	q.Set("format", "json")
	q.Set("limit", fmt.Sprint(priceQueryLimit))
	if state != "" {
		q.Set("filters[state.keyword]", state)
	}
	if district != "" {
		q.Set("filters[district]", district)
	}
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build price request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("price api returned status %d", resp.StatusCode)
	}

	var body struct {
		Records []document `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode price response: %w", err)
	}
	if body.Records == nil {
		return nil, fmt.Errorf("price response has no records")
	}

	prices := make([]model.PriceRecord, 0, len(body.Records))
	for _, rec := range body.Records {
		prices = append(prices, toPriceRecord(rec))
	}
	return prices, nil
}

func toPriceRecord(rec document) model.PriceRecord {
	commodity := rec.str("commodity")
	variety := rec.str("variety")
	if variety == "" {
		variety = defaultVariety
	}
	return model.PriceRecord{
		Commodity:   commodity,
		Variety:     variety,
		Market:      rec.str("market"),
		District:    rec.str("district"),
		State:       rec.str("state"),
		MinPrice:    rec.number("min_price"),
		MaxPrice:    rec.number("max_price"),
		ModalPrice:  rec.number("modal_price"),
		Unit:        priceUnit,
		ArrivalDate: rec.str("arrival_date"),
		Category:    ClassifyCommodity(commodity),
	}
}

type staticPrice struct {
	commodity, variety string
	minPrice, maxPrice float64
	modalPrice         float64
	category           model.Category
}

var staticPrices = []staticPrice{
	{"Tomato", "Local", 1500, 2500, 2000, model.CategoryVegetable},
	{"Onion", "Red", 2000, 3500, 2800, model.CategoryVegetable},
	{"Potato", "Local", 1800, 2800, 2300, model.CategoryVegetable},
	{"Cabbage", "Local", 800, 1500, 1200, model.CategoryVegetable},
	{"Cauliflower", "Local", 1200, 2200, 1700, model.CategoryVegetable},
	{"Green Chilli", "Local", 3000, 5000, 4000, model.CategoryVegetable},
	{"Capsicum", "Green", 2500, 4000, 3200, model.CategoryVegetable},
	{"Carrot", "Local", 2000, 3500, 2800, model.CategoryVegetable},
	{"Lady Finger", "Local", 2500, 4500, 3500, model.CategoryVegetable},
	{"Brinjal", "Long", 1500, 2800, 2200, model.CategoryVegetable},
	{"Cucumber", "Local", 1200, 2000, 1600, model.CategoryVegetable},
	{"Spinach", "Local", 1000, 2000, 1500, model.CategoryVegetable},
	{"Banana", "Robusta", 2500, 4000, 3200, model.CategoryFruit},
	{"Pomegranate", "Bhagwa", 6000, 12000, 9000, model.CategoryFruit},
	{"Orange", "Nagpur", 3500, 6000, 4800, model.CategoryFruit},
	{"Sweet Lime", "Local", 3000, 5000, 4000, model.CategoryFruit},
	{"Papaya", "Local", 1500, 3000, 2200, model.CategoryFruit},
	{"Watermelon", "Green", 800, 1800, 1200, model.CategoryFruit},
	{"Guava", "Local", 2000, 4000, 3000, model.CategoryFruit},
	{"Grapes", "Green", 4000, 8000, 6000, model.CategoryFruit},
}

// mockPrices builds the static price table for the requested market.
func (s *priceService) mockPrices(district, state string) []model.PriceRecord {
	if district == "" {
		district = defaultDistrict
	}
	today := s.now().Format(time.DateOnly)

	prices := make([]model.PriceRecord, 0, len(staticPrices))
	for _, p := range staticPrices {
		prices = append(prices, model.PriceRecord{
			Commodity:   p.commodity,
			Variety:     p.variety,
			Market:      district + " APMC",
			District:    district,
			State:       state,
			MinPrice:    p.minPrice,
			MaxPrice:    p.maxPrice,
			ModalPrice:  p.modalPrice,
			Unit:        priceUnit,
			ArrivalDate: today,
			Category:    p.category,
		})
	}
	return prices
}

// FilterPrices keeps the records of one category ("" or "all" keeps every
// category) whose commodity contains search, ignoring case.
func FilterPrices(records []model.PriceRecord, category, search string) []model.PriceRecord {
	category = strings.ToLower(strings.TrimSpace(category))
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]model.PriceRecord, 0, len(records))
	for _, r := range records {
		if category != "" && category != "all" && string(r.Category) != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Commodity), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

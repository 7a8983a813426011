package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartvegis/internal/model"
)

func newTestPriceService(url string) *priceService {
	s := NewPriceService(&http.Client{Timeout: 2 * time.Second}, url, "test-key", "Maharashtra").(*priceService)
	s.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestPriceService_ParsesUpstreamRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api-key"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "100", q.Get("limit"))
		assert.Equal(t, "Maharashtra", q.Get("filters[state.keyword]"))
		assert.Equal(t, "Nashik", q.Get("filters[district]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"records":[
			{"commodity":"Cherry Tomato","variety":"","market":"Nashik APMC","district":"Nashik","state":"Maharashtra",
			 "min_price":"1500","max_price":"2500","modal_price":"2000","arrival_date":"09/03/2024"},
			{"commodity":"Pomegranate","variety":"Bhagwa","market":"Lasalgaon","district":"Nashik","state":"Maharashtra",
			 "min_price":6000,"max_price":"n/a","modal_price":9000.5,"arrival_date":"09/03/2024"},
			{"commodity":"Wheat","variety":"Lokwan","market":"Nashik APMC","district":"Nashik","state":"Maharashtra",
			 "min_price":"2400","max_price":"2600","modal_price":"2500","arrival_date":"09/03/2024"}
		]}`))
	}))
	defer server.Close()

	prices := newTestPriceService(server.URL).GetPrices(context.Background(), "Nashik", "")

	require.Len(t, prices, 3)
	assert.Equal(t, model.PriceRecord{
		Commodity:   "Cherry Tomato",
		Variety:     "Standard",
		Market:      "Nashik APMC",
		District:    "Nashik",
		State:       "Maharashtra",
		MinPrice:    1500,
		MaxPrice:    2500,
		ModalPrice:  2000,
		Unit:        "Quintal",
		ArrivalDate: "09/03/2024",
		Category:    model.CategoryVegetable,
	}, prices[0])
	assert.Equal(t, model.CategoryFruit, prices[1].Category)
	assert.Equal(t, 6000.0, prices[1].MinPrice)
	assert.Equal(t, 0.0, prices[1].MaxPrice)
	assert.Equal(t, 9000.5, prices[1].ModalPrice)
	assert.Equal(t, model.CategoryOther, prices[2].Category)
}

func TestPriceService_FallsBackToStaticPrices(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
		{"missing records", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"rate limited"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			prices := newTestPriceService(server.URL).GetPrices(context.Background(), "Nagpur", "Maharashtra")

			require.Len(t, prices, 20)
			for _, p := range prices {
				assert.Equal(t, "Nagpur", p.District)
				assert.Equal(t, "Maharashtra", p.State)
				assert.Equal(t, "Nagpur APMC", p.Market)
				assert.Equal(t, "Quintal", p.Unit)
				assert.Equal(t, "2024-03-09", p.ArrivalDate)
			}
			assert.Equal(t, "Tomato", prices[0].Commodity)
			assert.Equal(t, 2000.0, prices[0].ModalPrice)
		})
	}
}

func TestPriceService_FallbackUsesRequestedStateAndDefaultDistrict(t *testing.T) {
	prices := newTestPriceService("http://127.0.0.1:1").GetPrices(context.Background(), "", "Karnataka")

	require.NotEmpty(t, prices)
	assert.Equal(t, "Pune", prices[0].District)
	assert.Equal(t, "Pune APMC", prices[0].Market)
	assert.Equal(t, "Karnataka", prices[0].State)
}

func TestFilterPrices(t *testing.T) {
	prices := newTestPriceService("").mockPrices("Pune", "Maharashtra")

	fruits := FilterPrices(prices, "fruit", "")
	assert.Len(t, fruits, 8)
	for _, p := range fruits {
		assert.Equal(t, model.CategoryFruit, p.Category)
	}

	assert.Len(t, FilterPrices(prices, "all", ""), 20)
	assert.Len(t, FilterPrices(prices, "", ""), 20)

	matches := FilterPrices(prices, "", "LIME")
	require.Len(t, matches, 1)
	assert.Equal(t, "Sweet Lime", matches[0].Commodity)

	assert.Empty(t, FilterPrices(prices, "vegetable", "banana"))
}

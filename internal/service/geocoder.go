package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Address is the administrative area around a coordinate.
type Address struct {
	DisplayName string
	District    string
	State       string
	Pincode     string
}

// Geocoder resolves coordinates to an address.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (*Address, error)
}

type nominatimGeocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewGeocoder creates a Nominatim reverse geocoder. Nominatim's usage policy
// requires an identifying User-Agent.
func NewGeocoder(client *http.Client, baseURL, userAgent string) Geocoder {
	return &nominatimGeocoder{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

func (g *nominatimGeocoder) Reverse(ctx context.Context, lat, lng float64) (*Address, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("zoom", "14")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body document
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	addr := body.object("address")
	if addr == nil {
		return nil, fmt.Errorf("geocode response has no address")
	}

	return &Address{
		DisplayName: body.str("display_name"),
		District:    trimDistrictSuffix(addr.str("state_district", "county", "city")),
		State:       addr.str("state"),
		Pincode:     addr.str("postcode"),
	}, nil
}

// trimDistrictSuffix turns "Pune District" into "Pune".
func trimDistrictSuffix(name string) string {
	return strings.TrimSpace(strings.TrimSuffix(name, " District"))
}

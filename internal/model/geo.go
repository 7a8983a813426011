package model

import (
	"encoding/json"
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// GeoPoint is a longitude/latitude pair. It is stored as two columns and
// serialized as a GeoJSON point: {"type":"Point","coordinates":[lng,lat]}.
type GeoPoint struct {
	Longitude float64 `gorm:"column:longitude;not null;default:0;index:idx_location,priority:1"`
	Latitude  float64 `gorm:"column:latitude;not null;default:0;index:idx_location,priority:2"`
}

type geoJSONPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// MarshalJSON implements json.Marshaler.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{Type: "Point", Coordinates: []float64{p.Longitude, p.Latitude}})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var raw geoJSONPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Coordinates) != 2 {
		return fmt.Errorf("geo point: expected 2 coordinates, got %d", len(raw.Coordinates))
	}
	p.Longitude, p.Latitude = raw.Coordinates[0], raw.Coordinates[1]
	return nil
}

// IsZero reports whether the point was never set.
func (p GeoPoint) IsZero() bool {
	return p.Longitude == 0 && p.Latitude == 0
}

// DistanceKm returns the great-circle distance between two points.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := p.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - p.Latitude) * math.Pi / 180
	dLng := (other.Longitude - p.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

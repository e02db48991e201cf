package usecase

import "time"

// regionBox is a latitude/longitude bounding box with its base search
// radius. The deployment area is Jordan; boxes overlap on purpose and are
// checked in order, first hit wins.
type regionBox struct {
	Name     string
	MinLat   float64
	MaxLat   float64
	MinLng   float64
	MaxLng   float64
	RadiusKm float64
}

var regions = []regionBox{
	{Name: "amman", MinLat: 31.70, MaxLat: 32.10, MinLng: 35.70, MaxLng: 36.10, RadiusKm: 8},
	{Name: "zarqa", MinLat: 32.00, MaxLat: 32.20, MinLng: 36.00, MaxLng: 36.20, RadiusKm: 7},
	{Name: "irbid", MinLat: 32.40, MaxLat: 32.65, MinLng: 35.75, MaxLng: 36.00, RadiusKm: 7},
	{Name: "aqaba", MinLat: 29.40, MaxLat: 29.70, MinLng: 34.90, MaxLng: 35.10, RadiusKm: 10},
}

const (
	jordanValleyMaxLng  = 35.60
	jordanValleyRadius  = 12.0
	defaultRegionRadius = 15.0
	defaultRegionName   = "other"
	jordanValleyName    = "jordan-valley"
)

// regionFor classifies a pickup point and returns the region name with its
// base radius in kilometers.
func regionFor(lat, lng float64) (string, float64) {
	for _, r := range regions {
		if lat >= r.MinLat && lat <= r.MaxLat && lng >= r.MinLng && lng <= r.MaxLng {
			return r.Name, r.RadiusKm
		}
	}
	if lng < jordanValleyMaxLng {
		return jordanValleyName, jordanValleyRadius
	}
	return defaultRegionName, defaultRegionRadius
}

// hourMultiplier scales the base radius by time of day: rush hours shrink
// the search area, late night widens it.
func hourMultiplier(t time.Time) float64 {
	h := t.Hour()
	switch {
	case (h >= 7 && h <= 9) || (h >= 16 && h <= 18):
		return 0.8
	case h >= 22 || h <= 4:
		return 1.5
	default:
		return 1.1
	}
}

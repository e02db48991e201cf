package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegionFor(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		region   string
		radiusKm float64
	}{
		{name: "downtown amman", lat: 31.9539, lng: 35.9106, region: "amman", radiusKm: 8},
		{name: "zarqa proper", lat: 32.15, lng: 36.15, region: "zarqa", radiusKm: 7},
		{name: "amman zarqa overlap favors amman", lat: 32.05, lng: 36.05, region: "amman", radiusKm: 8},
		{name: "irbid", lat: 32.55, lng: 35.85, region: "irbid", radiusKm: 7},
		{name: "aqaba", lat: 29.53, lng: 35.00, region: "aqaba", radiusKm: 10},
		{name: "jordan valley", lat: 32.30, lng: 35.55, region: "jordan-valley", radiusKm: 12},
		{name: "eastern desert", lat: 31.20, lng: 36.80, region: "other", radiusKm: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, radius := regionFor(tt.lat, tt.lng)
			assert.Equal(t, tt.region, region)
			assert.Equal(t, tt.radiusKm, radius)
		})
	}
}

func TestHourMultiplier(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 6, 1, hour, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		hour       int
		multiplier float64
	}{
		{7, 0.8},
		{9, 0.8},
		{16, 0.8},
		{18, 0.8},
		{22, 1.5},
		{23, 1.5},
		{0, 1.5},
		{4, 1.5},
		{5, 1.1},
		{12, 1.1},
		{19, 1.1},
		{21, 1.1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.multiplier, hourMultiplier(at(tt.hour)), "hour %d", tt.hour)
	}
}

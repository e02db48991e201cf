package models

import "time"

// Coordinate is a bare latitude/longitude pair, used for decoded route points.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Location represents a geographic point observed at a moment in time
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// DriverPosition is the last known position of a driver. The location
// registry keeps at most one entry per driver; updates overwrite.
type DriverPosition struct {
	DriverID   string    `json:"driver_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ObservedAt time.Time `json:"observed_at"`
}

// LocationUpdate is the inbound position message from a driver connection
type LocationUpdate struct {
	DriverID string   `json:"driver_id"`
	Location Location `json:"location"`
}

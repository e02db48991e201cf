package models

import "time"

// CandidateDriver is a scored matching candidate. Transient: recomputed per
// search request, never persisted.
type CandidateDriver struct {
	DriverID        string  `json:"driver_id"`
	RideID          string  `json:"ride_id,omitempty"`
	DistanceKm      float64 `json:"distance_km"`
	TimeDiffMinutes float64 `json:"time_diff_minutes"`
	Score           float64 `json:"score"`
}

// MatchRequest is the inbound search request
type MatchRequest struct {
	PickupLatitude  float64   `json:"pickup_lat"`
	PickupLongitude float64   `json:"pickup_lng"`
	DesiredTime     time.Time `json:"desired_time"`
}

// MatchResult is the ranked candidate list for one search, also emitted to
// the surrounding system as an event.
type MatchResult struct {
	RequestID  string            `json:"request_id"`
	Pickup     Coordinate        `json:"pickup"`
	Candidates []CandidateDriver `json:"candidates"`
	CreatedAt  time.Time         `json:"created_at"`
}

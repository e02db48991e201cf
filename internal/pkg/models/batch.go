package models

import "time"

// DriverPositionBatch is one cycle's worth of changed driver positions,
// published to the admin topic and sliced per driver for driver topics.
// Consumers may see the same driver across successive batches; latest wins.
type DriverPositionBatch struct {
	Positions []DriverPosition `json:"positions"`
	CreatedAt time.Time        `json:"created_at"`
}

// RideStatusEvent is a single ride status change addressed to a passenger
type RideStatusEvent struct {
	PassengerID string    `json:"passenger_id"`
	RideID      string    `json:"ride_id"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// RideStatusBatch is the per-passenger flush of queued status events,
// in enqueue order.
type RideStatusBatch struct {
	PassengerID string            `json:"passenger_id"`
	Events      []RideStatusEvent `json:"events"`
	CreatedAt   time.Time         `json:"created_at"`
}

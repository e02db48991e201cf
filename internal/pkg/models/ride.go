package models

import "time"

// RideStatus represents the lifecycle state of a ride
type RideStatus string

const (
	RideStatusActive    RideStatus = "ACTIVE"
	RideStatusCompleted RideStatus = "COMPLETED"
	RideStatusCancelled RideStatus = "CANCELLED"
)

// Passenger request outcomes relayed to passengers as status events
const (
	PassengerStatusPending  = "PENDING"
	PassengerStatusAccepted = "ACCEPTED"
	PassengerStatusRejected = "REJECTED"
)

// Ride carries the subset of ride state the dispatch core reads: the route,
// the departure time and the seat load. Everything else lives with the
// surrounding ride management system.
type Ride struct {
	ID            string     `json:"ride_id" db:"id"`
	DriverID      string     `json:"driver_id" db:"driver_id"`
	Status        RideStatus `json:"status" db:"status"`
	DepartureTime time.Time  `json:"departure_time" db:"departure_time"`
	RoutePolyline string     `json:"route_polyline" db:"route_polyline"`
	Capacity      int        `json:"capacity" db:"capacity"`
	SeatsTaken    int        `json:"seats_taken" db:"seats_taken"`
}

// DriverState is the matching engine's read view of a driver: identity plus
// the eligibility flags owned by the surrounding system, and the active ride
// when one exists.
type DriverState struct {
	DriverID  string `json:"driver_id" db:"driver_id"`
	Verified  bool   `json:"verified" db:"verified"`
	Available bool   `json:"available" db:"available"`
	Ride      *Ride  `json:"ride,omitempty"`
}

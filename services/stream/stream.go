package stream

import (
	"context"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// Subscriber is one delivery endpoint, usually a WebSocket connection.
// Send failures are the subscriber's problem; the hub logs and moves on.
type Subscriber interface {
	ID() string
	Send(event string, payload interface{}) error
}

// StreamUC is the subscription surface exposed to transports. Subscribing to
// a driver or as admin replays the current state immediately, then the
// periodic batches follow.
type StreamUC interface {
	SubscribeDriver(sub Subscriber, driverID string) (models.DriverPosition, bool)
	UnsubscribeDriver(subID, driverID string)
	SubscribeAdmin(sub Subscriber) map[string]models.DriverPosition
	Drop(subID string)
	EnqueueRideStatus(passengerID, rideID, status string)
	SubscribePassenger(sub Subscriber, passengerID string)
}

// StreamGW relays flushed notification batches to the surrounding system
type StreamGW interface {
	PublishRideStatusBatch(ctx context.Context, batch models.RideStatusBatch) error
}

package usecase

import (
	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/services/location"
	"github.com/tawseel/dispatch/services/stream"
)

// StreamUC wires subscriptions to the position registry so a new subscriber
// sees the current state before the periodic batches start flowing.
type StreamUC struct {
	hub        *Hub
	pending    *PendingQueues
	locationUC location.LocationUC
}

func NewStreamUC(hub *Hub, pending *PendingQueues, locationUC location.LocationUC) *StreamUC {
	return &StreamUC{
		hub:        hub,
		pending:    pending,
		locationUC: locationUC,
	}
}

var _ stream.StreamUC = (*StreamUC)(nil)

// SubscribeDriver joins the driver's topic and returns the driver's last
// known position for immediate replay, if one exists.
func (uc *StreamUC) SubscribeDriver(sub stream.Subscriber, driverID string) (models.DriverPosition, bool) {
	uc.hub.Subscribe(sub, constants.DriverTopic(driverID))
	return uc.locationUC.Get(driverID)
}

func (uc *StreamUC) UnsubscribeDriver(subID, driverID string) {
	uc.hub.Unsubscribe(subID, constants.DriverTopic(driverID))
}

// SubscribeAdmin joins the admin topic and returns the full position map for
// immediate replay.
func (uc *StreamUC) SubscribeAdmin(sub stream.Subscriber) map[string]models.DriverPosition {
	uc.hub.Subscribe(sub, constants.TopicAdmin)
	return uc.locationUC.GetAll()
}

func (uc *StreamUC) SubscribePassenger(sub stream.Subscriber, passengerID string) {
	uc.hub.Subscribe(sub, constants.PassengerTopic(passengerID))
}

func (uc *StreamUC) Drop(subID string) {
	uc.hub.DropSubscriber(subID)
}

// EnqueueRideStatus buffers a ride status change for the passenger's next
// notification batch.
func (uc *StreamUC) EnqueueRideStatus(passengerID, rideID, status string) {
	uc.pending.Enqueue(models.RideStatusEvent{
		PassengerID: passengerID,
		RideID:      rideID,
		Status:      status,
		Timestamp:   models.Now(),
	})
}

package handler

import (
	"fmt"

	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/pkg/nsq"
	"github.com/tawseel/dispatch/services/stream"
)

// RideStatusConsumer ingests ride status changes published by the ride
// lifecycle services and buffers them for passenger notification batches.
type RideStatusConsumer struct {
	streamUC stream.StreamUC
	consumer *nsq.Consumer
}

func NewRideStatusConsumer(streamUC stream.StreamUC, nsqAddress string) (*RideStatusConsumer, error) {
	h := &RideStatusConsumer{streamUC: streamUC}

	consumer, err := nsq.NewConsumer(
		constants.TopicRideStatus,
		constants.DefaultChannel,
		nsqAddress,
		h.handleMessage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start ride status consumer: %w", err)
	}

	h.consumer = consumer
	return h, nil
}

func (h *RideStatusConsumer) handleMessage(body []byte) error {
	var event models.RideStatusEvent
	if err := nsq.UnmarshalMessage(body, &event); err != nil {
		// Malformed messages are dropped, requeueing cannot fix them.
		logger.Warn("dropping malformed ride status event", logger.Err(err))
		return nil
	}

	if event.PassengerID == "" || event.RideID == "" {
		logger.Warn("dropping ride status event with missing ids",
			logger.String("passenger_id", event.PassengerID),
			logger.String("ride_id", event.RideID))
		return nil
	}

	h.streamUC.EnqueueRideStatus(event.PassengerID, event.RideID, event.Status)
	return nil
}

func (h *RideStatusConsumer) Stop() {
	if h.consumer != nil {
		h.consumer.Stop()
	}
}

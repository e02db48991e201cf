package gateway

import (
	"context"

	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/pkg/nsq"
	"github.com/tawseel/dispatch/services/stream"
)

// StreamGW publishes flushed notification batches to NSQ so other services
// can follow ride status fan-out.
type StreamGW struct {
	producer *nsq.Producer
}

func NewStreamGW(producer *nsq.Producer) *StreamGW {
	return &StreamGW{producer: producer}
}

var _ stream.StreamGW = (*StreamGW)(nil)

func (gw *StreamGW) PublishRideStatusBatch(_ context.Context, batch models.RideStatusBatch) error {
	return gw.producer.Publish(constants.TopicRideBatch, batch)
}

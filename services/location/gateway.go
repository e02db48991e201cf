package location

import (
	"context"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// LocationGW relays position batches to the surrounding system: an NSQ event
// stream plus a Redis GEO mirror. All calls are best effort; a failed publish
// is logged and retried naturally on the next batch cycle.
type LocationGW interface {
	PublishPositionBatch(ctx context.Context, batch models.DriverPositionBatch) error
	RemovePositions(ctx context.Context, driverIDs []string) error
}

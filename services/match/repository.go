package match

import (
	"context"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// DriverStateRepo reads driver eligibility and active ride state. Matching
// never writes through this interface.
type DriverStateRepo interface {
	// GetDriverStates returns the state of the given drivers. Drivers that
	// are unknown, unverified or unavailable are omitted from the result.
	GetDriverStates(ctx context.Context, driverIDs []string) (map[string]models.DriverState, error)
}

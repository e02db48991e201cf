package location

import (
	"time"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// LocationUC is the location registry exposed to transports and to the
// matching engine. Reads are cheap and reentrant; the write path does no
// blocking I/O.
type LocationUC interface {
	UpdatePosition(driverID string, lat, lng float64) error
	SnapshotDirty() []models.DriverPosition
	EvictStale(threshold time.Duration) []string
	Get(driverID string) (models.DriverPosition, bool)
	GetAll() map[string]models.DriverPosition
	NearbyIDs(lat, lng, radiusKm float64) []string
}

package location

import (
	"time"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// PositionRegistry is the in-process store of last known driver positions.
// Implementations must allow concurrent writers on distinct drivers without
// contention and must never expose half-written entries to readers.
type PositionRegistry interface {
	// UpdatePosition overwrites the driver's position and marks it dirty
	UpdatePosition(driverID string, lat, lng float64)

	// SnapshotDirty atomically collects and un-flags the changed entries.
	// A write racing with collection stays flagged for the next cycle.
	SnapshotDirty() []models.DriverPosition

	// EvictStale removes entries older than now-threshold
	EvictStale(threshold time.Duration) []string

	// Get returns the driver's last known position
	Get(driverID string) (models.DriverPosition, bool)

	// GetAll returns a copy of every entry keyed by driver id
	GetAll() map[string]models.DriverPosition

	// NearbyIDs returns driver ids whose geohash cell lies within the
	// coverage cells of the circle; exact distance filtering is the
	// caller's job
	NearbyIDs(lat, lng, radiusKm float64) []string
}

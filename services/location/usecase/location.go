package usecase

import (
	"errors"
	"time"

	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/services/location"
)

// Coordinate validation errors surfaced to the ingress transports
var (
	ErrInvalidLatitude    = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude   = errors.New("longitude must be between -180 and 180")
	ErrMissingCoordinates = errors.New("coordinates are required")
)

// LocationUC implements the location.LocationUC interface over the injected
// registry. The write path stays free of blocking I/O; the Redis/NSQ mirror
// runs on the batch cycle, not here.
type LocationUC struct {
	registry location.PositionRegistry
}

// NewLocationUC creates a new location use case
func NewLocationUC(registry location.PositionRegistry) *LocationUC {
	return &LocationUC{registry: registry}
}

var _ location.LocationUC = (*LocationUC)(nil)

// UpdatePosition validates the coordinates and overwrites the driver's entry
func (uc *LocationUC) UpdatePosition(driverID string, lat, lng float64) error {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return err
	}
	uc.registry.UpdatePosition(driverID, lat, lng)
	return nil
}

// SnapshotDirty collects and clears the entries changed since the last cycle
func (uc *LocationUC) SnapshotDirty() []models.DriverPosition {
	return uc.registry.SnapshotDirty()
}

// EvictStale removes entries older than the threshold
func (uc *LocationUC) EvictStale(threshold time.Duration) []string {
	return uc.registry.EvictStale(threshold)
}

// Get returns the driver's last known position
func (uc *LocationUC) Get(driverID string) (models.DriverPosition, bool) {
	return uc.registry.Get(driverID)
}

// GetAll returns every known position, for admin subscription replay
func (uc *LocationUC) GetAll() map[string]models.DriverPosition {
	return uc.registry.GetAll()
}

// NearbyIDs returns a radius-bounded over-approximation of nearby drivers
func (uc *LocationUC) NearbyIDs(lat, lng, radiusKm float64) []string {
	return uc.registry.NearbyIDs(lat, lng, radiusKm)
}

// ValidateCoordinates rejects out-of-range values and the (0,0) null island
// placeholder that unset client fields decode to.
func ValidateCoordinates(lat, lng float64) error {
	if lat == 0 && lng == 0 {
		return ErrMissingCoordinates
	}
	if lat < -90 || lat > 90 {
		return ErrInvalidLatitude
	}
	if lng < -180 || lng > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

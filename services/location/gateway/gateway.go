package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/database"
	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/pkg/nsq"
	"github.com/tawseel/dispatch/services/location"
)

// MirrorTTL bounds how long mirrored positions outlive their last update;
// the registry's own staleness eviction is much tighter.
const MirrorTTL = 5 * time.Minute

// LocationGW relays position batches outward: an NSQ event for the
// surrounding system plus a Redis GEO mirror it can query directly.
type LocationGW struct {
	producer    *nsq.Producer
	redisClient *database.RedisClient
}

// NewLocationGW creates a new location gateway
func NewLocationGW(producer *nsq.Producer, redisClient *database.RedisClient) *LocationGW {
	return &LocationGW{
		producer:    producer,
		redisClient: redisClient,
	}
}

var _ location.LocationGW = (*LocationGW)(nil)

// PublishPositionBatch emits the batch event and refreshes the Redis mirror.
// Mirror errors are logged per driver and do not fail the publish; the dirty
// flags were already cleared at collection time and the next write redelivers.
func (g *LocationGW) PublishPositionBatch(ctx context.Context, batch models.DriverPositionBatch) error {
	for _, pos := range batch.Positions {
		if err := g.mirrorPosition(ctx, pos); err != nil {
			logger.Warn("Failed to mirror driver position",
				logger.String("driver_id", pos.DriverID),
				logger.Err(err))
		}
	}

	if err := g.producer.Publish(constants.TopicLocationBatch, batch); err != nil {
		return fmt.Errorf("failed to publish position batch: %w", err)
	}
	return nil
}

func (g *LocationGW) mirrorPosition(ctx context.Context, pos models.DriverPosition) error {
	if err := g.redisClient.GeoAdd(ctx, constants.KeyDriverGeo, pos.Longitude, pos.Latitude, pos.DriverID); err != nil {
		return err
	}

	key := fmt.Sprintf(constants.KeyDriverLocation, pos.DriverID)
	fields := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(pos.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(pos.Longitude, 'f', -1, 64),
		constants.FieldTimestamp: strconv.FormatInt(pos.ObservedAt.Unix(), 10),
	}
	if err := g.redisClient.HSet(ctx, key, fields); err != nil {
		return err
	}
	return g.redisClient.Expire(ctx, key, MirrorTTL)
}

// RemovePositions drops evicted drivers from the mirror
func (g *LocationGW) RemovePositions(ctx context.Context, driverIDs []string) error {
	for _, driverID := range driverIDs {
		if err := g.redisClient.GeoRemove(ctx, constants.KeyDriverGeo, driverID); err != nil {
			return fmt.Errorf("failed to remove driver %s from geo mirror: %w", driverID, err)
		}
		if err := g.redisClient.Delete(ctx, fmt.Sprintf(constants.KeyDriverLocation, driverID)); err != nil {
			return fmt.Errorf("failed to remove driver %s location hash: %w", driverID, err)
		}
	}
	return nil
}

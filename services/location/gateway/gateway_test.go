package gateway

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/database"
	"github.com/tawseel/dispatch/internal/pkg/models"
)

func newTestGateway(t *testing.T) (*LocationGW, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := database.NewRedisClient(models.RedisConfig{
		Host: mr.Host(),
		Port: port,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	// producer stays nil: these tests cover the Redis mirror only
	return &LocationGW{redisClient: client}, mr
}

func TestMirrorPosition(t *testing.T) {
	gw, mr := newTestGateway(t)

	observed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pos := models.DriverPosition{
		DriverID:   "driver-1",
		Latitude:   31.95,
		Longitude:  35.91,
		ObservedAt: observed,
	}

	require.NoError(t, gw.mirrorPosition(context.Background(), pos))

	key := fmt.Sprintf(constants.KeyDriverLocation, "driver-1")
	assert.Equal(t, "31.95", mr.HGet(key, constants.FieldLatitude))
	assert.Equal(t, "35.91", mr.HGet(key, constants.FieldLongitude))
	assert.Equal(t, strconv.FormatInt(observed.Unix(), 10), mr.HGet(key, constants.FieldTimestamp))

	ttl := mr.TTL(key)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, MirrorTTL)

	assert.True(t, mr.Exists(constants.KeyDriverGeo))
}

func TestRemovePositions(t *testing.T) {
	gw, mr := newTestGateway(t)

	ctx := context.Background()
	pos := models.DriverPosition{
		DriverID:   "driver-1",
		Latitude:   31.95,
		Longitude:  35.91,
		ObservedAt: time.Now(),
	}
	require.NoError(t, gw.mirrorPosition(ctx, pos))

	require.NoError(t, gw.RemovePositions(ctx, []string{"driver-1"}))

	key := fmt.Sprintf(constants.KeyDriverLocation, "driver-1")
	assert.False(t, mr.Exists(key))
}

func TestRemovePositionsUnknownDriver(t *testing.T) {
	gw, _ := newTestGateway(t)

	// removing a driver that was never mirrored is not an error
	assert.NoError(t, gw.RemovePositions(context.Background(), []string{"ghost"}))
}

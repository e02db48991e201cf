package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/tawseel/dispatch/internal/pkg/constants"
	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/services/location"
	"github.com/tawseel/dispatch/services/stream"
)

// Batcher runs the two periodic loops: driver position broadcast and
// passenger notification flush. Each loop is a single goroutine, so a slow
// tick delays the next one instead of overlapping it.
type Batcher struct {
	positionInterval     time.Duration
	notificationInterval time.Duration
	staleAfter           time.Duration

	locationUC location.LocationUC
	locationGW location.LocationGW
	streamGW   stream.StreamGW
	hub        *Hub
	pending    *PendingQueues

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewBatcher(
	cfg models.StreamConfig,
	staleAfter time.Duration,
	locationUC location.LocationUC,
	locationGW location.LocationGW,
	streamGW stream.StreamGW,
	hub *Hub,
	pending *PendingQueues,
) *Batcher {
	return &Batcher{
		positionInterval:     time.Duration(cfg.PositionIntervalMs) * time.Millisecond,
		notificationInterval: time.Duration(cfg.NotificationIntervalMs) * time.Millisecond,
		staleAfter:           staleAfter,
		locationUC:           locationUC,
		locationGW:           locationGW,
		streamGW:             streamGW,
		hub:                  hub,
		pending:              pending,
	}
}

// Start launches both loops. Stop or cancelling ctx ends them.
func (b *Batcher) Start(ctx context.Context) {
	ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(2)
	go b.loop(ctx, b.positionInterval, b.positionTick)
	go b.loop(ctx, b.notificationInterval, b.notificationTick)

	logger.Info("batcher started",
		logger.Duration("position_interval", b.positionInterval),
		logger.Duration("notification_interval", b.notificationInterval))
}

// Stop ends both loops and waits for any in-flight tick to finish.
func (b *Batcher) Stop() {
	b.once.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		b.wg.Wait()
		logger.Info("batcher stopped")
	})
}

func (b *Batcher) loop(ctx context.Context, interval time.Duration, tick func(context.Context)) {
	defer b.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.safeTick(ctx, tick)
		}
	}
}

// safeTick isolates a panicking tick so one bad cycle does not kill the loop.
func (b *Batcher) safeTick(ctx context.Context, tick func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("batch tick panicked", logger.Any("panic", r))
		}
	}()
	tick(ctx)
}

// positionTick evicts stale drivers, drains the dirty set and fans the
// changed positions out to the admin topic, the per-driver topics and the
// gateway. An empty cycle publishes nothing.
func (b *Batcher) positionTick(ctx context.Context) {
	evicted := b.locationUC.EvictStale(b.staleAfter)
	if len(evicted) > 0 {
		if err := b.locationGW.RemovePositions(ctx, evicted); err != nil {
			logger.Warn("failed to remove evicted positions", logger.Err(err))
		}
	}

	positions := b.locationUC.SnapshotDirty()
	if len(positions) == 0 {
		return
	}

	batch := models.DriverPositionBatch{
		Positions: positions,
		CreatedAt: models.Now(),
	}
	b.hub.Publish(constants.TopicAdmin, constants.EventDriverPositions, batch)
	for _, pos := range positions {
		single := models.DriverPositionBatch{
			Positions: []models.DriverPosition{pos},
			CreatedAt: batch.CreatedAt,
		}
		b.hub.Publish(constants.DriverTopic(pos.DriverID), constants.EventDriverPositions, single)
	}

	if err := b.locationGW.PublishPositionBatch(ctx, batch); err != nil {
		logger.Warn("failed to publish position batch", logger.Err(err))
	}
}

// notificationTick drains the pending queues and delivers one batch per
// passenger, preserving per-passenger order.
func (b *Batcher) notificationTick(ctx context.Context) {
	flushed := b.pending.Flush()
	for passengerID, events := range flushed {
		batch := models.RideStatusBatch{
			PassengerID: passengerID,
			Events:      events,
			CreatedAt:   models.Now(),
		}
		b.hub.Publish(constants.PassengerTopic(passengerID), constants.EventRideStatus, batch)

		if err := b.streamGW.PublishRideStatusBatch(ctx, batch); err != nil {
			logger.Warn("failed to publish ride status batch",
				logger.String("passenger_id", passengerID),
				logger.Err(err))
		}
	}
}

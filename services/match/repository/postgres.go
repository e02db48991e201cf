package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tawseel/dispatch/internal/pkg/database"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/services/match"
)

// DriverStateRepo reads driver eligibility and active rides from Postgres.
// Driver registration and ride lifecycle writes happen in other services;
// this repository only serves the matching read path.
type DriverStateRepo struct {
	db *sqlx.DB
}

func NewDriverStateRepo(client *database.PostgresClient) *DriverStateRepo {
	return &DriverStateRepo{db: client.GetDB()}
}

var _ match.DriverStateRepo = (*DriverStateRepo)(nil)

// GetDriverStates loads the verified, available subset of the given drivers
// together with their active ride when one exists.
func (r *DriverStateRepo) GetDriverStates(ctx context.Context, driverIDs []string) (map[string]models.DriverState, error) {
	if len(driverIDs) == 0 {
		return map[string]models.DriverState{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT driver_id, verified, available
		FROM drivers
		WHERE driver_id IN (?) AND verified = true AND available = true`,
		driverIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build driver query: %w", err)
	}

	var drivers []models.DriverState
	if err := r.db.SelectContext(ctx, &drivers, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	if len(drivers) == 0 {
		return map[string]models.DriverState{}, nil
	}

	states := make(map[string]models.DriverState, len(drivers))
	eligible := make([]string, 0, len(drivers))
	for _, d := range drivers {
		states[d.DriverID] = d
		eligible = append(eligible, d.DriverID)
	}

	query, args, err = sqlx.In(`
		SELECT id, driver_id, status, departure_time, route_polyline, capacity, seats_taken
		FROM rides
		WHERE driver_id IN (?) AND status = ?`,
		eligible, models.RideStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to build ride query: %w", err)
	}

	var rides []models.Ride
	if err := r.db.SelectContext(ctx, &rides, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query active rides: %w", err)
	}

	for i := range rides {
		ride := rides[i]
		state := states[ride.DriverID]
		state.Ride = &ride
		states[ride.DriverID] = state
	}

	return states, nil
}

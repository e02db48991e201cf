package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tawseel/dispatch/internal/pkg/logger"
	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/pkg/polyline"
	"github.com/tawseel/dispatch/internal/utils"
	"github.com/tawseel/dispatch/services/match"
	locationuc "github.com/tawseel/dispatch/services/location/usecase"
)

// PositionReader is the slice of the location registry the matching engine
// needs: prefilter by cell, then read exact positions.
type PositionReader interface {
	NearbyIDs(lat, lng, radiusKm float64) []string
	Get(driverID string) (models.DriverPosition, bool)
}

// MatchUC ranks nearby drivers for a pickup request. Read-only and
// reentrant: concurrent searches share the registry and the route cache.
type MatchUC struct {
	repo      match.DriverStateRepo
	positions PositionReader
	gw        match.MatchGW
	codec     *polyline.Codec
	cfg       models.MatchConfig
	now       func() time.Time
}

func NewMatchUC(
	repo match.DriverStateRepo,
	positions PositionReader,
	gw match.MatchGW,
	codec *polyline.Codec,
	cfg models.MatchConfig,
) *MatchUC {
	return &MatchUC{
		repo:      repo,
		positions: positions,
		gw:        gw,
		codec:     codec,
		cfg:       cfg,
		now:       time.Now,
	}
}

var _ match.MatchUC = (*MatchUC)(nil)

// FindBestDrivers validates the request, searches outward from the regional
// base radius and returns the ranked candidate list. An empty list is a
// valid result. The result is also published to the gateway, fire and
// forget.
func (uc *MatchUC) FindBestDrivers(ctx context.Context, req models.MatchRequest) (models.MatchResult, error) {
	if err := locationuc.ValidateCoordinates(req.PickupLatitude, req.PickupLongitude); err != nil {
		return models.MatchResult{}, err
	}

	desired := req.DesiredTime
	if desired.IsZero() {
		desired = uc.now()
	}

	region, baseRadius := regionFor(req.PickupLatitude, req.PickupLongitude)
	radius := baseRadius * hourMultiplier(desired)

	var candidates []models.CandidateDriver
	for attempt := 0; ; attempt++ {
		found, err := uc.search(ctx, req.PickupLatitude, req.PickupLongitude, desired, radius)
		if err != nil {
			return models.MatchResult{}, err
		}
		candidates = found
		if len(candidates) >= uc.cfg.MinResults || attempt >= uc.cfg.MaxWidenRetries {
			break
		}
		radius *= uc.cfg.WidenFactor
	}

	rank(candidates)
	if len(candidates) > uc.cfg.MaxResults {
		candidates = candidates[:uc.cfg.MaxResults]
	}

	result := models.MatchResult{
		RequestID:  uuid.NewString(),
		Pickup:     models.Coordinate{Latitude: req.PickupLatitude, Longitude: req.PickupLongitude},
		Candidates: candidates,
		CreatedAt:  uc.now().UTC(),
	}

	logger.Info("match search finished",
		logger.String("request_id", result.RequestID),
		logger.String("region", region),
		logger.Float64("radius_km", radius),
		logger.Int("candidates", len(candidates)))

	if uc.gw != nil {
		if err := uc.gw.PublishMatchResult(ctx, result); err != nil {
			logger.Warn("failed to publish match result",
				logger.String("request_id", result.RequestID),
				logger.Err(err))
		}
	}

	return result, nil
}

// search runs one filter and score pass at the given radius.
func (uc *MatchUC) search(ctx context.Context, lat, lng float64, desired time.Time, radiusKm float64) ([]models.CandidateDriver, error) {
	ids := uc.positions.NearbyIDs(lat, lng, radiusKm)
	if len(ids) == 0 {
		return nil, nil
	}

	states, err := uc.repo.GetDriverStates(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	candidates := make([]models.CandidateDriver, 0, len(states))
	for _, id := range ids {
		state, ok := states[id]
		if !ok {
			continue
		}
		pos, ok := uc.positions.Get(id)
		if !ok {
			continue
		}

		distanceKm := utils.HaversineKm(lat, lng, pos.Latitude, pos.Longitude)
		if distanceKm > radiusKm {
			continue
		}

		timeDiff := 0.0
		var route []models.Coordinate
		var rideID string
		if state.Ride != nil {
			if state.Ride.Status != models.RideStatusActive {
				continue
			}
			timeDiff = math.Abs(desired.Sub(state.Ride.DepartureTime).Minutes())
			if timeDiff > float64(uc.cfg.MaxTimeDiffMinutes) {
				continue
			}
			rideID = state.Ride.ID
			route = uc.codec.Decode(state.Ride.RoutePolyline)
		}

		score := distanceScore(distanceKm) +
			timeScore(timeDiff) +
			routeScore(lat, lng, route) +
			freshnessScore(pos.ObservedAt, now) +
			loadScore(state.Ride)

		candidates = append(candidates, models.CandidateDriver{
			DriverID:        id,
			RideID:          rideID,
			DistanceKm:      distanceKm,
			TimeDiffMinutes: timeDiff,
			Score:           score,
		})
	}

	return candidates, nil
}

// rank orders by score descending, then distance ascending. The sort is
// stable so equal candidates keep their prefilter order.
func rank(candidates []models.CandidateDriver) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
}

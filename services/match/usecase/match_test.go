package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/pkg/polyline"
	locationrepo "github.com/tawseel/dispatch/services/location/repository"
	locationuc "github.com/tawseel/dispatch/services/location/usecase"
)

// route running north-south along lng 35.91 through central Amman,
// (31.90, 35.91) to (32.00, 35.91)
const ammanRoute = "_nuaEotdzE_pR?"

// fakeDriverRepo serves scripted driver states and records the queried ids
type fakeDriverRepo struct {
	mu      sync.Mutex
	states  map[string]models.DriverState
	queried [][]string
	err     error
}

func (f *fakeDriverRepo) GetDriverStates(_ context.Context, driverIDs []string) (map[string]models.DriverState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.queried = append(f.queried, driverIDs)

	out := make(map[string]models.DriverState)
	for _, id := range driverIDs {
		if state, ok := f.states[id]; ok {
			out[id] = state
		}
	}
	return out, nil
}

type fakeMatchGW struct {
	mu      sync.Mutex
	results []models.MatchResult
	err     error
}

func (f *fakeMatchGW) PublishMatchResult(_ context.Context, result models.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.results = append(f.results, result)
	return nil
}

func defaultMatchConfig() models.MatchConfig {
	return models.MatchConfig{
		MinResults:         3,
		MaxResults:         20,
		WidenFactor:        2.0,
		MaxWidenRetries:    2,
		MaxTimeDiffMinutes: 90,
	}
}

func newTestMatchUC(t *testing.T, repo *fakeDriverRepo, gw *fakeMatchGW) (*MatchUC, *locationuc.LocationUC) {
	t.Helper()
	locUC := locationuc.NewLocationUC(locationrepo.NewRegistry())
	uc := NewMatchUC(repo, locUC, gw, polyline.NewCodec(), defaultMatchConfig())
	return uc, locUC
}

func availableDriver(id string) models.DriverState {
	return models.DriverState{DriverID: id, Verified: true, Available: true}
}

func driverWithRide(id string, departure time.Time, seatsTaken int, route string) models.DriverState {
	state := availableDriver(id)
	state.Ride = &models.Ride{
		ID:            "ride-" + id,
		DriverID:      id,
		Status:        models.RideStatusActive,
		DepartureTime: departure,
		RoutePolyline: route,
		Capacity:      4,
		SeatsTaken:    seatsTaken,
	}
	return state
}

// midday, outside rush hours
var desired = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func ammanRequest() models.MatchRequest {
	return models.MatchRequest{PickupLatitude: 31.95, PickupLongitude: 35.91, DesiredTime: desired}
}

func TestFindBestDriversAmman(t *testing.T) {
	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"driver-1": driverWithRide("driver-1", desired.Add(10*time.Minute), 0, ammanRoute),
	}}
	gw := &fakeMatchGW{}
	uc, locUC := newTestMatchUC(t, repo, gw)

	require.NoError(t, locUC.UpdatePosition("driver-1", 31.955, 35.915))
	require.NoError(t, locUC.UpdatePosition("far-driver", 29.53, 35.00)) // Aqaba

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	best := result.Candidates[0]
	assert.Equal(t, "driver-1", best.DriverID)
	assert.Equal(t, "ride-driver-1", best.RideID)
	assert.Less(t, best.DistanceKm, 1.0)
	assert.InDelta(t, 10, best.TimeDiffMinutes, 0.01)
	// distance 40 + time 30 + route 20 + freshness 10 + load 10
	assert.Equal(t, 110.0, best.Score)

	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, 31.95, result.Pickup.Latitude)

	// the result also went out through the gateway
	require.Len(t, gw.results, 1)
	assert.Equal(t, result.RequestID, gw.results[0].RequestID)
}

func TestFindBestDriversRejectsBadInput(t *testing.T) {
	uc, _ := newTestMatchUC(t, &fakeDriverRepo{}, &fakeMatchGW{})

	_, err := uc.FindBestDrivers(context.Background(), models.MatchRequest{PickupLatitude: 0, PickupLongitude: 0})
	assert.ErrorIs(t, err, locationuc.ErrMissingCoordinates)

	_, err = uc.FindBestDrivers(context.Background(), models.MatchRequest{PickupLatitude: 95, PickupLongitude: 35.91})
	assert.ErrorIs(t, err, locationuc.ErrInvalidLatitude)

	_, err = uc.FindBestDrivers(context.Background(), models.MatchRequest{PickupLatitude: 31.95, PickupLongitude: 185})
	assert.ErrorIs(t, err, locationuc.ErrInvalidLongitude)
}

func TestFindBestDriversEmptyAreaTerminates(t *testing.T) {
	gw := &fakeMatchGW{}
	uc, _ := newTestMatchUC(t, &fakeDriverRepo{}, gw)

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)

	// an empty search still produces a published result
	assert.Len(t, gw.results, 1)
}

func TestFindBestDriversWidensUntilEnough(t *testing.T) {
	// driver ~21 km away in Zarqa: outside the 8.8 km midday Amman radius,
	// inside after two doublings (35.2 km)
	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"zarqa-driver": availableDriver("zarqa-driver"),
	}}
	uc, locUC := newTestMatchUC(t, repo, &fakeMatchGW{})
	require.NoError(t, locUC.UpdatePosition("zarqa-driver", 32.0728, 36.0880))

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "zarqa-driver", result.Candidates[0].DriverID)
	assert.Greater(t, result.Candidates[0].DistanceKm, 8.8)
}

func TestFindBestDriversExcludesDistantDepartures(t *testing.T) {
	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"late-driver": driverWithRide("late-driver", desired.Add(2*time.Hour), 0, ""),
		"ontime":      driverWithRide("ontime", desired.Add(30*time.Minute), 0, ""),
	}}
	uc, locUC := newTestMatchUC(t, repo, &fakeMatchGW{})
	require.NoError(t, locUC.UpdatePosition("late-driver", 31.951, 35.911))
	require.NoError(t, locUC.UpdatePosition("ontime", 31.952, 35.912))

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "ontime", result.Candidates[0].DriverID)
}

func TestFindBestDriversExcludesInactiveRides(t *testing.T) {
	cancelled := driverWithRide("cancelled", desired, 0, "")
	cancelled.Ride.Status = models.RideStatusCancelled

	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"cancelled": cancelled,
	}}
	uc, locUC := newTestMatchUC(t, repo, &fakeMatchGW{})
	require.NoError(t, locUC.UpdatePosition("cancelled", 31.951, 35.911))

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
}

func TestFindBestDriversSkipsIneligibleDrivers(t *testing.T) {
	// the repo omits unverified and unavailable drivers entirely
	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"eligible": availableDriver("eligible"),
	}}
	uc, locUC := newTestMatchUC(t, repo, &fakeMatchGW{})
	require.NoError(t, locUC.UpdatePosition("eligible", 31.951, 35.911))
	require.NoError(t, locUC.UpdatePosition("unverified", 31.952, 35.912))

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "eligible", result.Candidates[0].DriverID)
}

func TestFindBestDriversRouteAlignmentOrdersCandidates(t *testing.T) {
	// two drivers at the same distance with the same schedule; only one
	// has a route through the pickup point
	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"aligned":  driverWithRide("aligned", desired.Add(10*time.Minute), 0, ammanRoute),
		"offroute": driverWithRide("offroute", desired.Add(10*time.Minute), 0, ""),
	}}
	uc, locUC := newTestMatchUC(t, repo, &fakeMatchGW{})
	require.NoError(t, locUC.UpdatePosition("aligned", 31.955, 35.915))
	require.NoError(t, locUC.UpdatePosition("offroute", 31.945, 35.905))

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)

	require.Len(t, result.Candidates, 2)
	assert.Equal(t, "aligned", result.Candidates[0].DriverID)
	assert.Equal(t, result.Candidates[0].Score-20, result.Candidates[1].Score)
}

func TestFindBestDriversMalformedPolylineIsNeutral(t *testing.T) {
	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"driver-1": driverWithRide("driver-1", desired.Add(10*time.Minute), 0, "\x01garbage"),
	}}
	uc, locUC := newTestMatchUC(t, repo, &fakeMatchGW{})
	require.NoError(t, locUC.UpdatePosition("driver-1", 31.955, 35.915))

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	// distance 40 + time 30 + route 0 + freshness 10 + load 10
	assert.Equal(t, 90.0, result.Candidates[0].Score)
}

func TestFindBestDriversTruncatesToMaxResults(t *testing.T) {
	cfg := defaultMatchConfig()
	cfg.MaxResults = 5

	repo := &fakeDriverRepo{states: map[string]models.DriverState{}}
	locUC := locationuc.NewLocationUC(locationrepo.NewRegistry())
	for i := 0; i < 10; i++ {
		id := string(rune('a'+i)) + "-driver"
		repo.states[id] = availableDriver(id)
		require.NoError(t, locUC.UpdatePosition(id, 31.950+float64(i)*0.001, 35.910))
	}
	uc := NewMatchUC(repo, locUC, &fakeMatchGW{}, polyline.NewCodec(), cfg)

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)

	assert.Len(t, result.Candidates, 5)
	// the kept candidates are the closest ones
	for i := 1; i < len(result.Candidates); i++ {
		assert.GreaterOrEqual(t, result.Candidates[i].DistanceKm, result.Candidates[i-1].DistanceKm)
	}
}

func TestFindBestDriversRepoErrorPropagates(t *testing.T) {
	repo := &fakeDriverRepo{err: errors.New("database down")}
	uc, locUC := newTestMatchUC(t, repo, &fakeMatchGW{})
	require.NoError(t, locUC.UpdatePosition("driver-1", 31.951, 35.911))

	_, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	assert.Error(t, err)
}

func TestFindBestDriversGatewayFailureIsNotFatal(t *testing.T) {
	repo := &fakeDriverRepo{states: map[string]models.DriverState{
		"driver-1": availableDriver("driver-1"),
	}}
	gw := &fakeMatchGW{err: errors.New("nsq down")}
	uc, locUC := newTestMatchUC(t, repo, gw)
	require.NoError(t, locUC.UpdatePosition("driver-1", 31.951, 35.911))

	result, err := uc.FindBestDrivers(context.Background(), ammanRequest())
	require.NoError(t, err)
	assert.Len(t, result.Candidates, 1)
}

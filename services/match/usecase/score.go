package usecase

import (
	"time"

	"github.com/tawseel/dispatch/internal/pkg/models"
	"github.com/tawseel/dispatch/internal/utils"
)

// distanceScore rewards drivers close to the pickup point.
func distanceScore(distanceKm float64) float64 {
	switch {
	case distanceKm <= 2:
		return 40
	case distanceKm <= 5:
		return 30
	case distanceKm <= 10:
		return 20
	default:
		return 10
	}
}

// timeScore rewards departure times near the requested pickup time.
// timeDiffMinutes is the absolute difference.
func timeScore(timeDiffMinutes float64) float64 {
	switch {
	case timeDiffMinutes <= 15:
		return 30
	case timeDiffMinutes <= 30:
		return 20
	case timeDiffMinutes <= 60:
		return 10
	default:
		return 5
	}
}

// routeScore rewards rides whose planned route passes near the pickup.
// An absent or undecodable route contributes nothing rather than failing
// the candidate.
func routeScore(pickupLat, pickupLng float64, route []models.Coordinate) float64 {
	if len(route) < 2 {
		return 0
	}
	d := utils.DistanceToPolylineKm(pickupLat, pickupLng, route)
	switch {
	case d <= 1:
		return 20
	case d <= 3:
		return 12
	case d <= 5:
		return 6
	default:
		return 0
	}
}

// freshnessScore rewards recently observed positions.
func freshnessScore(observedAt, now time.Time) float64 {
	age := now.Sub(observedAt)
	switch {
	case age <= 5*time.Second:
		return 10
	case age <= 15*time.Second:
		return 6
	case age <= 60*time.Second:
		return 3
	default:
		return 0
	}
}

// loadScore rewards emptier rides. Drivers without an attached ride get no
// load contribution.
func loadScore(ride *models.Ride) float64 {
	if ride == nil {
		return 0
	}
	switch ride.SeatsTaken {
	case 0:
		return 10
	case 1:
		return 7
	case 2:
		return 4
	default:
		return 0
	}
}

package utils

import (
	"math"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// earthRadiusKm is the mean Earth radius
const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// points specified in decimal degrees.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	rLat1 := toRadians(lat1)
	rLat2 := toRadians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	a := sinLat*sinLat + sinLng*sinLng*math.Cos(rLat1)*math.Cos(rLat2)

	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// DistanceToSegmentKm returns the distance from point p to the segment [a, b].
// The projection parameter is clamped to the segment's endpoints, then the
// haversine distance to the projected point is returned.
func DistanceToSegmentKm(pLat, pLng, aLat, aLng, bLat, bLng float64) float64 {
	dLat := pLat - aLat
	dLng := pLng - aLng
	segLat := bLat - aLat
	segLng := bLng - aLng

	lenSq := segLat*segLat + segLng*segLng

	var param float64 = -1
	if lenSq != 0 {
		param = (dLat*segLat + dLng*segLng) / lenSq
	}

	var projLat, projLng float64
	switch {
	case param < 0:
		projLat, projLng = aLat, aLng
	case param > 1:
		projLat, projLng = bLat, bLng
	default:
		projLat = aLat + param*segLat
		projLng = aLng + param*segLng
	}

	return HaversineKm(pLat, pLng, projLat, projLng)
}

// DistanceToPolylineKm returns the minimum distance from the point to any
// segment of the path. A path with fewer than 2 points has no segments and
// yields +Inf.
func DistanceToPolylineKm(lat, lng float64, path []models.Coordinate) float64 {
	if len(path) < 2 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	for i := 0; i < len(path)-1; i++ {
		d := DistanceToSegmentKm(lat, lng,
			path[i].Latitude, path[i].Longitude,
			path[i+1].Latitude, path[i+1].Longitude)
		if d < min {
			min = d
		}
	}

	return min
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

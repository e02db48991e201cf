// Package polyline decodes the Google encoded polyline format used for ride
// routes. Routes are immutable once created, so decoded results are memoized
// for the process lifetime and shared read-only between callers.
package polyline

import (
	"sync"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// Codec decodes encoded polylines with a process-lifetime cache.
type Codec struct {
	cache sync.Map // encoded string -> []models.Coordinate
}

// NewCodec creates a new polyline codec
func NewCodec() *Codec {
	return &Codec{}
}

// Decode returns the coordinate sequence for an encoded polyline. Identical
// inputs return the same shared slice; callers must not mutate it. A
// malformed or truncated payload yields the points decoded so far, never an
// error.
func (c *Codec) Decode(encoded string) []models.Coordinate {
	if encoded == "" {
		return nil
	}

	if cached, ok := c.cache.Load(encoded); ok {
		return cached.([]models.Coordinate)
	}

	points := decode(encoded)

	actual, _ := c.cache.LoadOrStore(encoded, points)
	return actual.([]models.Coordinate)
}

// decode walks the payload as pairs of 5-bit-group varints: a latitude delta
// then a longitude delta, each accumulating onto the previous point. Values
// carry 5 decimal places of precision.
func decode(encoded string) []models.Coordinate {
	var points []models.Coordinate
	var lat, lng int32

	index := 0
	for index < len(encoded) {
		dLat, next, ok := decodeVarint(encoded, index)
		if !ok {
			return points
		}
		lat += dLat

		dLng, next, ok := decodeVarint(encoded, next)
		if !ok {
			return points
		}
		lng += dLng

		index = next
		points = append(points, models.Coordinate{
			Latitude:  float64(lat) / 1e5,
			Longitude: float64(lng) / 1e5,
		})
	}

	return points
}

// decodeVarint reads one zig-zag encoded value starting at index. A chunk
// continues while its 0x20 bit is set. Returns ok=false on a truncated or
// out-of-range payload.
func decodeVarint(encoded string, index int) (value int32, next int, ok bool) {
	var result int32
	var shift uint

	for {
		if index >= len(encoded) {
			return 0, index, false
		}
		b := int32(encoded[index]) - 63
		if b < 0 {
			return 0, index, false
		}
		index++

		result |= (b & 0x1F) << shift
		shift += 5

		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}

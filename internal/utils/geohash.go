package utils

import (
	"github.com/mmcloughlin/geohash"
)

// Geohash cell dimensions shrink with precision; the prefilter picks the
// coarsest precision whose cell still covers the search radius so that a
// cell plus its 8 neighbors always contains every point within the radius.
// Minimum cell dimensions (km) per precision, from the geohash spec.
var cellMinDimensionKm = map[uint]float64{
	3: 156.0,
	4: 19.5,
	5: 4.89,
	6: 0.61,
}

// EncodeCell returns the geohash cell of a coordinate at the given precision
func EncodeCell(lat, lng float64, precision uint) string {
	return geohash.EncodeWithPrecision(lat, lng, precision)
}

// CoverageCells returns the geohash cells that together cover a circle of
// radiusKm around the point: the containing cell and its 8 neighbors at the
// coarsest precision whose cell dimension is at least the radius.
func CoverageCells(lat, lng, radiusKm float64) []string {
	precision := PrecisionForRadius(radiusKm)
	center := geohash.EncodeWithPrecision(lat, lng, precision)
	return append(geohash.Neighbors(center), center)
}

// PrecisionForRadius picks the finest geohash precision whose cell is still
// large enough that cell+neighbors cover the radius.
func PrecisionForRadius(radiusKm float64) uint {
	for _, p := range []uint{6, 5, 4} {
		if cellMinDimensionKm[p] >= radiusKm {
			return p
		}
	}
	return 3
}

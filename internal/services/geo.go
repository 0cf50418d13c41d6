package services

import (
	"ev-route-service/internal/domain"
	"math"
)

// kmPerDegLat is the great-circle length of one degree of latitude.
const kmPerDegLat = domainEarthRadiusKm * math.Pi / 180

// Mirror of the Earth radius used by domain.HaversineKm; geometry math in
// this package must agree with it exactly for projections to be consistent.
const domainEarthRadiusKm = 6371.0

// cumulativeKm returns the along-route arc length at every polyline vertex.
// Index 0 is always 0; the last entry is the polyline's haversine length,
// which matches the geometry's TotalDistanceKm within a small tolerance.
func cumulativeKm(points []domain.Position) []float64 {
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + domain.HaversineKm(points[i-1], points[i])
	}
	return cum
}

// positionAt returns the interpolated position at arcKm along the polyline.
// Arcs beyond either end clamp to the corresponding endpoint.
func positionAt(points []domain.Position, cum []float64, arcKm float64) domain.Position {
	if arcKm <= 0 {
		return points[0]
	}
	last := len(points) - 1
	if arcKm >= cum[last] {
		return points[last]
	}

	// Find the segment containing arcKm.
	i := 1
	for i < last && cum[i] < arcKm {
		i++
	}

	segLen := cum[i] - cum[i-1]
	if segLen <= 0 {
		return points[i]
	}
	t := (arcKm - cum[i-1]) / segLen

	a, b := points[i-1], points[i]
	return domain.Position{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lon: a.Lon + t*(b.Lon-a.Lon),
	}
}

// projectPoint finds the closest point on the polyline to p. It returns the
// along-route arc length of that point and the perpendicular (transverse)
// distance from p to it, both in kilometers.
//
// Each segment is treated as a straight line in a local equirectangular
// projection centered on its first vertex. The approximation error is
// negligible at corridor scale (tens of kilometers).
func projectPoint(points []domain.Position, cum []float64, p domain.Position) (arcKm, perpKm float64) {
	bestArc := 0.0
	bestPerp := math.Inf(1)

	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]

		cosLat := math.Cos(a.Lat * math.Pi / 180)
		ax, ay := 0.0, 0.0
		bx := (b.Lon - a.Lon) * kmPerDegLat * cosLat
		by := (b.Lat - a.Lat) * kmPerDegLat
		px := (p.Lon - a.Lon) * kmPerDegLat * cosLat
		py := (p.Lat - a.Lat) * kmPerDegLat

		segSq := (bx-ax)*(bx-ax) + (by-ay)*(by-ay)
		t := 0.0
		if segSq > 0 {
			t = ((px-ax)*(bx-ax) + (py-ay)*(by-ay)) / segSq
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
		}

		nearest := domain.Position{
			Lat: a.Lat + t*(b.Lat-a.Lat),
			Lon: a.Lon + t*(b.Lon-a.Lon),
		}
		perp := domain.HaversineKm(p, nearest)
		// Strict inequality keeps the earliest arc on ties, which makes the
		// projection deterministic for points equidistant from two segments.
		if perp < bestPerp {
			bestPerp = perp
			bestArc = cum[i-1] + t*(cum[i]-cum[i-1])
		}
	}

	return bestArc, bestPerp
}

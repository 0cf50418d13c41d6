package domain

import "math"

const earthRadiusKm = 6371.0

// Immutable geographic position (latitude, longitude in degrees, WGS-84).
type Position struct {
	Lat float64
	Lon float64
}

// Valid reports whether the position lies inside WGS-84 coordinate bounds.
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Return position as [lat, lon] for external API compatibility.
func (p Position) CoordsToList() []float64 { return []float64{p.Lat, p.Lon} }

// HaversineKm returns the great-circle distance between two positions in kilometers.
func HaversineKm(a, b Position) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// BoundingBox is a geographic query window defined by two corners.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Contains reports whether p lies inside the box (inclusive).
func (b BoundingBox) Contains(p Position) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Expand grows the box by approximately km in every direction.
// The longitude delta is corrected for latitude; near the poles the
// correction is capped to avoid division by a vanishing cosine.
func (b BoundingBox) Expand(km float64) BoundingBox {
	if km <= 0 {
		return b
	}

	kmPerDegLat := earthRadiusKm * math.Pi / 180

	latDelta := km / kmPerDegLat

	midLat := (b.MinLat + b.MaxLat) / 2 * math.Pi / 180
	cos := math.Cos(midLat)
	if cos < 0.01 {
		cos = 0.01
	}
	lonDelta := km / (kmPerDegLat * cos)

	return BoundingBox{
		MinLat: math.Max(b.MinLat-latDelta, -90),
		MinLon: math.Max(b.MinLon-lonDelta, -180),
		MaxLat: math.Min(b.MaxLat+latDelta, 90),
		MaxLon: math.Min(b.MaxLon+lonDelta, 180),
	}
}

package domain

import "fmt"

// RouteGeometry is the externally computed road path between two points.
// The engine trusts TotalDistanceKm as the axis along which energy is
// consumed and never recomputes the underlying road distance.
type RouteGeometry struct {
	Points              []Position
	TotalDistanceKm     float64
	BaseDrivingMinutes  float64
	TrafficDelayMinutes float64
}

// Validate rejects geometries that cannot carry a simulation.
func (g RouteGeometry) Validate() error {
	if len(g.Points) < 2 {
		return fmt.Errorf("route geometry: %w: need at least 2 points, got %d", ErrInvalidInput, len(g.Points))
	}
	for i, p := range g.Points {
		if !p.Valid() {
			return fmt.Errorf("route geometry: %w: point %d out of bounds (lat=%g lon=%g)", ErrInvalidInput, i, p.Lat, p.Lon)
		}
	}
	if g.TotalDistanceKm < 0 {
		return fmt.Errorf("route geometry: %w: total_distance_km must be non-negative, got %g", ErrInvalidInput, g.TotalDistanceKm)
	}
	if g.BaseDrivingMinutes < 0 {
		return fmt.Errorf("route geometry: %w: base_driving_minutes must be non-negative, got %g", ErrInvalidInput, g.BaseDrivingMinutes)
	}
	if g.TrafficDelayMinutes < 0 {
		return fmt.Errorf("route geometry: %w: traffic_delay_minutes must be non-negative, got %g", ErrInvalidInput, g.TrafficDelayMinutes)
	}
	return nil
}

// Bounds returns the bounding box enclosing every polyline vertex.
func (g RouteGeometry) Bounds() BoundingBox {
	if len(g.Points) == 0 {
		return BoundingBox{}
	}

	b := BoundingBox{
		MinLat: g.Points[0].Lat,
		MinLon: g.Points[0].Lon,
		MaxLat: g.Points[0].Lat,
		MaxLon: g.Points[0].Lon,
	}
	for _, p := range g.Points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}
	return b
}

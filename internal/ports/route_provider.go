package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// Contract for resolving a start/end pair into road-network route geometry
// (ordered polyline, total distance, base duration, traffic delay).
// The planning engine consumes the geometry as-is and never recomputes it.
type RouteProvider interface {
	GetRoute(ctx context.Context, start, end domain.Position) (domain.RouteGeometry, error)
}

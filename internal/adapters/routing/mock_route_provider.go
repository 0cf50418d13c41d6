package routing

import (
	"context"
	"ev-route-service/internal/domain"
	"fmt"
)

type MockRoute struct {
	Start, End domain.Position
	Geometry   domain.RouteGeometry
}

// MockRouteProvider serves canned geometries keyed by start/end, for tests.
type MockRouteProvider struct {
	m map[string]domain.RouteGeometry
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]domain.RouteGeometry, len(routes))
	for _, r := range routes {
		m[mockKey(r.Start, r.End)] = r.Geometry
	}
	return &MockRouteProvider{m: m}
}

func mockKey(start, end domain.Position) string {
	return fmt.Sprintf("%.4f,%.4f|%.4f,%.4f", start.Lat, start.Lon, end.Lat, end.Lon)
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, start, end domain.Position) (domain.RouteGeometry, error) {
	g, ok := p.m[mockKey(start, end)]
	if !ok {
		return domain.RouteGeometry{}, fmt.Errorf("missing route %.4f,%.4f -> %.4f,%.4f", start.Lat, start.Lon, end.Lat, end.Lon)
	}

	return g, nil
}

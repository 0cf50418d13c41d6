package services

import (
	"context"
	"errors"
	"ev-route-service/internal/adapters/routing"
	"ev-route-service/internal/domain"
	"testing"
)

// memoryCatalog is an in-memory StationCatalog for tests.
type memoryCatalog struct {
	stations []domain.ChargingStation
	err      error
}

func (c *memoryCatalog) ListStations(ctx context.Context) ([]domain.ChargingStation, error) {
	return c.stations, c.err
}

func (c *memoryCatalog) ListStationsInBounds(ctx context.Context, bounds domain.BoundingBox) ([]domain.ChargingStation, error) {
	if c.err != nil {
		return nil, c.err
	}
	var in []domain.ChargingStation
	for _, s := range c.stations {
		if bounds.Contains(s.Position) {
			in = append(in, s)
		}
	}
	return in, nil
}

func TestPlanTripEndToEnd(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 20)
	start := geometry.Points[0]
	end := geometry.Points[len(geometry.Points)-1]

	routes := routing.NewMockRouteProvider([]routing.MockRoute{
		{Start: start, End: end, Geometry: geometry},
	})
	catalog := &memoryCatalog{stations: []domain.ChargingStation{
		stationAt(1, 150, 0, 50, 0.30),
		stationAt(2, 300, 0, 100, 0.35),
	}}

	plan, err := PlanTrip(context.Background(), PlanTripRequest{
		Start:   start,
		End:     end,
		Vehicle: domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60},
		Options: PlanOptions{CurrentBatteryPercent: 100, MinChargePercent: 20},
	}, routes, catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !plan.Result.Feasible {
		t.Fatalf("expected feasible plan, got reason %q", plan.Result.Reason)
	}
	if len(plan.Result.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(plan.Result.Stops))
	}
	if len(plan.Geometry.Points) != len(geometry.Points) {
		t.Fatalf("geometry points = %d, want %d", len(plan.Geometry.Points), len(geometry.Points))
	}
}

func TestPlanTripRejectsInvalidInput(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 20)
	routes := routing.NewMockRouteProvider(nil)
	catalog := &memoryCatalog{}

	cases := []struct {
		name string
		req  PlanTripRequest
	}{
		{
			name: "start out of bounds",
			req: PlanTripRequest{
				Start:   domain.Position{Lat: 95, Lon: 0},
				End:     geometry.Points[0],
				Vehicle: domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60},
			},
		},
		{
			name: "zero range vehicle",
			req: PlanTripRequest{
				Start:   geometry.Points[0],
				End:     geometry.Points[1],
				Vehicle: domain.VehicleProfile{RangeKm: 0, BatteryCapacityKWh: 60},
			},
		},
		{
			name: "preferred below min",
			req: PlanTripRequest{
				Start:   geometry.Points[0],
				End:     geometry.Points[1],
				Vehicle: domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60},
				Options: PlanOptions{MinChargePercent: 50, PreferredChargePercent: 30},
			},
		},
	}

	for _, tc := range cases {
		_, err := PlanTrip(context.Background(), tc.req, routes, catalog)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: error = %v, want ErrInvalidInput", tc.name, err)
		}
	}
}

func TestPlanTripReportsRouteProviderFailure(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 20)
	routes := routing.NewMockRouteProvider(nil) // every lookup fails
	catalog := &memoryCatalog{}

	_, err := PlanTrip(context.Background(), PlanTripRequest{
		Start:   geometry.Points[0],
		End:     geometry.Points[len(geometry.Points)-1],
		Vehicle: domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60},
	}, routes, catalog)
	if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
		t.Fatalf("error = %v, want ErrCollaboratorUnavailable", err)
	}
}

func TestPlanTripReportsCatalogFailure(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 20)
	start := geometry.Points[0]
	end := geometry.Points[len(geometry.Points)-1]

	routes := routing.NewMockRouteProvider([]routing.MockRoute{
		{Start: start, End: end, Geometry: geometry},
	})
	catalog := &memoryCatalog{err: errors.New("connection refused")}

	_, err := PlanTrip(context.Background(), PlanTripRequest{
		Start:   start,
		End:     end,
		Vehicle: domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60},
	}, routes, catalog)
	if !errors.Is(err, domain.ErrCollaboratorUnavailable) {
		t.Fatalf("error = %v, want ErrCollaboratorUnavailable", err)
	}
}

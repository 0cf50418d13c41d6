package services

import (
	"ev-route-service/internal/domain"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func approx(got, want, eps float64) bool {
	return math.Abs(got-want) <= eps
}

func TestPlanStopsNoStopNeeded(t *testing.T) {
	geometry := testGeometry(250, 50, 180, 15)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}
	stations := []domain.ChargingStation{stationAt(1, 100, 0, 150, 0.30)}

	result := PlanStops(geometry, vehicle, stations, PlanOptions{
		CurrentBatteryPercent: 100,
		MinChargePercent:      20,
	}.WithDefaults())

	if !result.Feasible {
		t.Fatalf("expected feasible plan, got reason %q", result.Reason)
	}
	if len(result.Stops) != 0 {
		t.Fatalf("expected 0 stops, got %d", len(result.Stops))
	}
	if result.Summary.NumChargingStops != 0 {
		t.Fatalf("summary stops = %d, want 0", result.Summary.NumChargingStops)
	}
	if !approx(result.Summary.TotalMinutes, 195, 1e-9) {
		t.Fatalf("total minutes = %g, want 195", result.Summary.TotalMinutes)
	}
}

func TestPlanStopsTwoStopItinerary(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 20)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}
	stations := []domain.ChargingStation{
		stationAt(1, 150, 0, 50, 0.30),
		stationAt(2, 300, 0, 100, 0.35),
	}

	result := PlanStops(geometry, vehicle, stations, PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if !result.Feasible {
		t.Fatalf("expected feasible plan, got reason %q", result.Reason)
	}
	if len(result.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(result.Stops))
	}

	first := result.Stops[0]
	if first.Station.ID != 1 {
		t.Fatalf("first stop station = %d, want 1", first.Station.ID)
	}
	if first.SegmentIndex != 1 {
		t.Fatalf("first stop segment index = %d, want 1", first.SegmentIndex)
	}
	if !approx(first.DistanceFromStartKm, 150, 1e-6) {
		t.Fatalf("first stop distance = %g, want 150", first.DistanceFromStartKm)
	}
	if !approx(first.BatteryOnArrivalPercent, 50, 1e-6) {
		t.Fatalf("first stop arrival battery = %g, want 50", first.BatteryOnArrivalPercent)
	}
	if !approx(first.BatteryAfterChargePercent, 80, 1e-9) {
		t.Fatalf("first stop departure battery = %g, want 80", first.BatteryAfterChargePercent)
	}
	// 30% of 60kWh is 18kWh: 21.6 minutes at 50kW, 5.40 at 0.30/kWh.
	if !approx(first.ChargingMinutes, 21.6, 1e-6) {
		t.Fatalf("first stop charging minutes = %g, want 21.6", first.ChargingMinutes)
	}
	if !approx(first.EstimatedCost, 5.4, 1e-6) {
		t.Fatalf("first stop cost = %g, want 5.4", first.EstimatedCost)
	}

	second := result.Stops[1]
	if second.Station.ID != 2 {
		t.Fatalf("second stop station = %d, want 2", second.Station.ID)
	}
	if !approx(second.DistanceFromStartKm, 300, 1e-6) {
		t.Fatalf("second stop distance = %g, want 300", second.DistanceFromStartKm)
	}
	if !approx(second.BatteryOnArrivalPercent, 30, 1e-6) {
		t.Fatalf("second stop arrival battery = %g, want 30", second.BatteryOnArrivalPercent)
	}
	// 50% of 60kWh is 30kWh: 18 minutes at 100kW, 10.50 at 0.35/kWh.
	if !approx(second.ChargingMinutes, 18, 1e-6) {
		t.Fatalf("second stop charging minutes = %g, want 18", second.ChargingMinutes)
	}
	if !approx(second.EstimatedCost, 10.5, 1e-6) {
		t.Fatalf("second stop cost = %g, want 10.5", second.EstimatedCost)
	}

	if !approx(result.Summary.ChargingMinutes, 39.6, 1e-6) {
		t.Fatalf("summary charging minutes = %g, want 39.6", result.Summary.ChargingMinutes)
	}
	if !approx(result.Summary.TotalMinutes, 260+39.6, 1e-6) {
		t.Fatalf("summary total minutes = %g, want 299.6", result.Summary.TotalMinutes)
	}
	if !approx(result.Summary.EstimatedCost, 15.9, 1e-6) {
		t.Fatalf("summary cost = %g, want 15.9", result.Summary.EstimatedCost)
	}
	if !approx(result.Summary.EnergyNeededKWh, 80, 1e-9) {
		t.Fatalf("summary energy = %g, want 80", result.Summary.EnergyNeededKWh)
	}
}

func TestPlanStopsForcedStopKeepsReserve(t *testing.T) {
	geometry := testGeometry(450, 75, 270, 0)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}
	stations := []domain.ChargingStation{stationAt(1, 225, 0, 150, 0.40)}

	result := PlanStops(geometry, vehicle, stations, PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if !result.Feasible {
		t.Fatalf("expected feasible plan, got reason %q", result.Reason)
	}
	if len(result.Stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(result.Stops))
	}

	stop := result.Stops[0]
	if !approx(stop.BatteryOnArrivalPercent, 25, 1e-6) {
		t.Fatalf("arrival battery = %g, want 25", stop.BatteryOnArrivalPercent)
	}
	if stop.BatteryOnArrivalPercent < 20 {
		t.Fatalf("arrival battery %g dropped below the 20%% reserve", stop.BatteryOnArrivalPercent)
	}
}

func TestPlanStopsSkipsChargeWhenAboveTarget(t *testing.T) {
	// The only reachable station is 30km out; arriving at 90% is already
	// above the 80% target, so the stop records zero charging time and cost.
	geometry := testGeometry(320, 40, 200, 0)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}
	stations := []domain.ChargingStation{
		stationAt(1, 30, 0, 150, 0.40),
		stationAt(2, 230, 0, 150, 0.40),
	}

	result := PlanStops(geometry, vehicle, stations, PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if !result.Feasible {
		t.Fatalf("expected feasible plan, got reason %q", result.Reason)
	}
	if len(result.Stops) == 0 {
		t.Fatalf("expected at least one stop")
	}

	first := result.Stops[0]
	if !approx(first.BatteryOnArrivalPercent, 90, 1e-6) {
		t.Fatalf("arrival battery = %g, want 90", first.BatteryOnArrivalPercent)
	}
	if first.BatteryAfterChargePercent != first.BatteryOnArrivalPercent {
		t.Fatalf("departure battery = %g, want unchanged %g", first.BatteryAfterChargePercent, first.BatteryOnArrivalPercent)
	}
	if first.ChargingMinutes != 0 || first.EstimatedCost != 0 {
		t.Fatalf("no-op stop recorded minutes=%g cost=%g, want zero", first.ChargingMinutes, first.EstimatedCost)
	}
}

func TestPlanStopsInfeasibleWithoutStations(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 0)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	result := PlanStops(geometry, vehicle, nil, PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if result.Feasible {
		t.Fatalf("expected infeasible plan")
	}
	if result.Reason != domain.ReasonNoStations {
		t.Fatalf("reason = %q, want %q", result.Reason, domain.ReasonNoStations)
	}
	if !approx(result.LastReachableDistanceKm, 300, 1e-9) {
		t.Fatalf("last reachable = %g, want 300", result.LastReachableDistanceKm)
	}
}

func TestPlanStopsInfeasibleWhenStationsOutOfReach(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 0)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}
	stations := []domain.ChargingStation{stationAt(1, 350, 0, 150, 0.40)}

	result := PlanStops(geometry, vehicle, stations, PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if result.Feasible {
		t.Fatalf("expected infeasible plan")
	}
	if result.Reason != domain.ReasonNoReachableStation {
		t.Fatalf("reason = %q, want %q", result.Reason, domain.ReasonNoReachableStation)
	}
	if !approx(result.LastReachableDistanceKm, 300, 1e-9) {
		t.Fatalf("last reachable = %g, want 300", result.LastReachableDistanceKm)
	}
}

func TestPlanStopsShortTripLowBattery(t *testing.T) {
	// 80km trip on 30% battery: directly reachable (90km of range), so the
	// planner never stops even though it arrives under the reserve level.
	geometry := testGeometry(80, 40, 60, 0)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	result := PlanStops(geometry, vehicle, nil, PlanOptions{
		CurrentBatteryPercent:  30,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if !result.Feasible {
		t.Fatalf("expected feasible plan, got reason %q", result.Reason)
	}
	if len(result.Stops) != 0 {
		t.Fatalf("expected 0 stops, got %d", len(result.Stops))
	}
}

func TestPlanStopsDeterministicUnderShuffledInput(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 20)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}
	stations := []domain.ChargingStation{
		stationAt(1, 150, 0, 50, 0.30),
		stationAt(2, 300, 0, 100, 0.35),
		stationAt(3, 180, 0, 50, 0.30),
		stationAt(4, 250, 0, 150, 0.25),
	}
	opts := PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	}

	baseline := PlanStops(geometry, vehicle, stations, opts)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]domain.ChargingStation(nil), stations...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := PlanStops(geometry, vehicle, shuffled, opts)
		if !reflect.DeepEqual(got, baseline) {
			t.Fatalf("shuffle %d changed the plan:\ngot  %+v\nwant %+v", i, got, baseline)
		}
	}
}

func TestPlanStopsStepSizeDoesNotChangeOutcome(t *testing.T) {
	geometry := testGeometry(400, 50, 240, 20)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}
	stations := []domain.ChargingStation{
		stationAt(1, 150, 0, 50, 0.30),
		stationAt(2, 300, 0, 100, 0.35),
	}

	opts := PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	}
	coarse := PlanStops(geometry, vehicle, stations, opts)

	opts.StepKm = 0.5
	fine := PlanStops(geometry, vehicle, stations, opts)

	if !reflect.DeepEqual(coarse.Stops, fine.Stops) {
		t.Fatalf("step size changed the stops:\ncoarse %+v\nfine   %+v", coarse.Stops, fine.Stops)
	}
}

func TestPlanStopsDensePolyline(t *testing.T) {
	// One vertex every 50m over 200km, the granularity real routing
	// responses carry. Cruising advances vertex by vertex, so the iteration
	// bound must accommodate far more steps than route length over step
	// size alone.
	geometry := testGeometry(200, 0.05, 150, 0)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	result := PlanStops(geometry, vehicle, nil, PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if !result.Feasible {
		t.Fatalf("expected feasible plan, got reason %q", result.Reason)
	}
	if len(result.Stops) != 0 {
		t.Fatalf("expected 0 stops, got %d", len(result.Stops))
	}
}

func TestPlanStopsExplicitZeroBattery(t *testing.T) {
	geometry := testGeometry(250, 50, 180, 0)
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	result := PlanStops(geometry, vehicle, nil, PlanOptions{
		CurrentBatteryPercent:  0,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	})

	if result.Feasible {
		t.Fatalf("empty battery produced a feasible plan: %+v", result)
	}
	if result.Reason != domain.ReasonNoStations {
		t.Fatalf("reason = %q, want %q", result.Reason, domain.ReasonNoStations)
	}
	if result.LastReachableDistanceKm != 0 {
		t.Fatalf("last reachable = %g, want 0", result.LastReachableDistanceKm)
	}
}

func TestWithDefaultsPreservesExplicitZeroes(t *testing.T) {
	opts := PlanOptions{}.WithDefaults()

	if opts.CurrentBatteryPercent != 0 {
		t.Fatalf("battery = %g, want 0 (zero is a valid level, not unset)", opts.CurrentBatteryPercent)
	}
	if opts.MinChargePercent != 0 {
		t.Fatalf("min charge = %g, want 0 (zero reserve is valid)", opts.MinChargePercent)
	}
	if opts.PreferredChargePercent != DefaultPreferredChargePercent {
		t.Fatalf("preferred charge = %g, want %g", opts.PreferredChargePercent, DefaultPreferredChargePercent)
	}
	if opts.CorridorWidthKm != DefaultCorridorWidthKm {
		t.Fatalf("corridor = %g, want %g", opts.CorridorWidthKm, DefaultCorridorWidthKm)
	}
	if opts.StepKm != DefaultStepKm {
		t.Fatalf("step = %g, want %g", opts.StepKm, DefaultStepKm)
	}
}

func TestPlanOptionsValidate(t *testing.T) {
	valid := PlanOptions{
		CurrentBatteryPercent:  100,
		MinChargePercent:       20,
		PreferredChargePercent: 80,
		CorridorWidthKm:        20,
		StepKm:                 1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*PlanOptions)
	}{
		{"battery over 100", func(o *PlanOptions) { o.CurrentBatteryPercent = 101 }},
		{"negative battery", func(o *PlanOptions) { o.CurrentBatteryPercent = -1 }},
		{"preferred below min", func(o *PlanOptions) { o.PreferredChargePercent = 10 }},
		{"preferred equals min", func(o *PlanOptions) { o.PreferredChargePercent = 20 }},
		{"zero corridor", func(o *PlanOptions) { o.CorridorWidthKm = 0 }},
		{"negative step", func(o *PlanOptions) { o.StepKm = -1 }},
	}

	for _, tc := range cases {
		opts := valid
		tc.mutate(&opts)
		if err := opts.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

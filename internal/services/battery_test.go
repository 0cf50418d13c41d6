package services

import (
	"errors"
	"ev-route-service/internal/domain"
	"math"
	"testing"
)

func TestRemainingAfterLinearConsumption(t *testing.T) {
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	got, err := RemainingAfter(100, 150, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-50) > 1e-9 {
		t.Fatalf("battery after 150km = %g, want 50", got)
	}

	got, err = RemainingAfter(50, 75, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-25) > 1e-9 {
		t.Fatalf("battery after 75km from 50%% = %g, want 25", got)
	}
}

func TestRemainingAfterClampsAtZero(t *testing.T) {
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	got, err := RemainingAfter(10, 500, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Fatalf("overdriven battery = %g, want 0", got)
	}
}

func TestRemainingAfterZeroDistance(t *testing.T) {
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	got, err := RemainingAfter(42, 0, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("battery after 0km = %g, want 42", got)
	}
}

func TestRemainingAfterRejectsNegativeDistance(t *testing.T) {
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	if _, err := RemainingAfter(80, -1, vehicle); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative distance error = %v, want ErrInvalidInput", err)
	}
}

func TestReachableKm(t *testing.T) {
	vehicle := domain.VehicleProfile{RangeKm: 300, BatteryCapacityKWh: 60}

	if got := reachableKm(100, 0, vehicle); math.Abs(got-300) > 1e-9 {
		t.Fatalf("reachable at full charge = %g, want 300", got)
	}
	if got := reachableKm(100, 20, vehicle); math.Abs(got-240) > 1e-9 {
		t.Fatalf("reachable with 20%% reserve = %g, want 240", got)
	}
	if got := reachableKm(15, 20, vehicle); got != 0 {
		t.Fatalf("reachable below the floor = %g, want 0", got)
	}
}

package services

import (
	"ev-route-service/internal/domain"
	"fmt"
)

// RemainingAfter returns the battery percentage left after driving distanceKm
// from batteryPercent. Consumption is linear in distance at the vehicle's flat
// rate; the result is clamped at zero and never exceeds the input.
//
// A negative distance is a programming-contract violation and is reported as
// an error rather than panicking.
func RemainingAfter(batteryPercent, distanceKm float64, vehicle domain.VehicleProfile) (float64, error) {
	if distanceKm < 0 {
		return 0, fmt.Errorf("battery simulator: %w: negative distance %g km", domain.ErrInvalidInput, distanceKm)
	}

	usedKWh := distanceKm * vehicle.ConsumptionKWhPerKm()
	percent := batteryPercent - usedKWh/vehicle.BatteryCapacityKWh*100
	if percent < 0 {
		percent = 0
	}

	return percent, nil
}

// reachableKm is the distance the vehicle can cover before the battery hits
// the given floor percentage. Negative headroom yields zero.
func reachableKm(batteryPercent, floorPercent float64, vehicle domain.VehicleProfile) float64 {
	headroom := batteryPercent - floorPercent
	if headroom <= 0 {
		return 0
	}
	return headroom / 100 * vehicle.RangeKm
}

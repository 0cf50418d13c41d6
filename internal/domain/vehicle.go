package domain

import "fmt"

// VehicleProfile describes the energy characteristics of an electric vehicle.
// Consumption is flat: the profile assumes the rated range is achieved on a
// full charge regardless of speed, elevation, or temperature.
type VehicleProfile struct {
	RangeKm            float64
	BatteryCapacityKWh float64
}

// ConsumptionKWhPerKm derives the flat consumption rate implied by the
// rated range and battery capacity.
func (v VehicleProfile) ConsumptionKWhPerKm() float64 {
	return v.BatteryCapacityKWh / v.RangeKm
}

// Validate rejects profiles that cannot drive a simulation.
func (v VehicleProfile) Validate() error {
	if v.RangeKm <= 0 {
		return fmt.Errorf("vehicle profile: %w: range_km must be positive, got %g", ErrInvalidInput, v.RangeKm)
	}
	if v.BatteryCapacityKWh <= 0 {
		return fmt.Errorf("vehicle profile: %w: battery_capacity_kwh must be positive, got %g", ErrInvalidInput, v.BatteryCapacityKWh)
	}
	return nil
}

// Vehicle is a catalog entry pairing a model identity with its energy profile.
type Vehicle struct {
	ID           int
	Model        string
	Manufacturer string
	Profile      VehicleProfile
}

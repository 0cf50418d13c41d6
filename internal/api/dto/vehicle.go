package dto

type VehicleResponse struct {
	VehicleID          int     `json:"vehicle_id"`
	Model              string  `json:"model"`
	Manufacturer       string  `json:"manufacturer"`
	RangeKm            float64 `json:"range_km"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

package dto

type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type VehicleProfile struct {
	RangeKm            float64 `json:"range_km"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
}

// PlanRequest names either a catalog vehicle (vehicle_id) or an inline
// profile. Threshold fields left out fall back to the configured defaults.
type PlanRequest struct {
	Start                  Position        `json:"start"`
	End                    Position        `json:"end"`
	VehicleID              *int            `json:"vehicle_id"`
	Vehicle                *VehicleProfile `json:"vehicle"`
	CurrentBatteryPercent  *float64        `json:"current_battery_percent"`
	MinChargePercent       *float64        `json:"min_charge_percent"`
	PreferredChargePercent *float64        `json:"preferred_charge_percent"`
	CorridorWidthKm        *float64        `json:"corridor_width_km"`
}

type ChargingStopResponse struct {
	SegmentIndex              int      `json:"segment_index"`
	StationID                 int      `json:"station_id"`
	StationName               string   `json:"station_name"`
	Position                  Position `json:"position"`
	DistanceFromStartKm       float64  `json:"distance_from_start_km"`
	DistanceToDestinationKm   float64  `json:"distance_to_destination_km"`
	BatteryOnArrivalPercent   float64  `json:"battery_on_arrival_percent"`
	BatteryAfterChargePercent float64  `json:"battery_after_charge_percent"`
	ChargingPowerKW           float64  `json:"charging_power_kw"`
	ChargingMinutes           float64  `json:"charging_minutes"`
	EstimatedCost             float64  `json:"estimated_cost"`
}

type RouteSummaryResponse struct {
	TotalDistanceKm     float64 `json:"total_distance_km"`
	DrivingMinutes      float64 `json:"driving_minutes"`
	TrafficDelayMinutes float64 `json:"traffic_delay_minutes"`
	ChargingMinutes     float64 `json:"charging_minutes"`
	TotalMinutes        float64 `json:"total_minutes"`
	NumChargingStops    int     `json:"num_charging_stops"`
	EnergyNeededKWh     float64 `json:"energy_needed_kwh"`
	EstimatedCost       float64 `json:"estimated_cost"`
}

// PlanResponse is shaped for direct rendering: the ordered stop list carries
// coordinates and per-stop timing/cost for the map layer, the summary feeds
// an aggregate panel, and route_coordinates is the drawable polyline.
type PlanResponse struct {
	Success                 bool                   `json:"success"`
	Message                 string                 `json:"message"`
	RouteSummary            *RouteSummaryResponse  `json:"route_summary,omitempty"`
	ChargingStops           []ChargingStopResponse `json:"charging_stops"`
	LastReachableDistanceKm *float64               `json:"last_reachable_distance_km,omitempty"`
	RouteCoordinates        [][]float64            `json:"route_coordinates,omitempty"`
}

package services

import "ev-route-service/internal/domain"

// Summarize rolls per-stop charging time and cost into aggregate trip
// metrics. Pure aggregation: no side effects, no failure modes beyond
// well-formed inputs.
func Summarize(
	geometry domain.RouteGeometry,
	vehicle domain.VehicleProfile,
	stops []domain.ChargingStop,
) domain.RouteSummary {
	var chargingMinutes, cost float64
	for _, s := range stops {
		chargingMinutes += s.ChargingMinutes
		cost += s.EstimatedCost
	}

	driving := geometry.BaseDrivingMinutes + geometry.TrafficDelayMinutes

	return domain.RouteSummary{
		TotalDistanceKm:     geometry.TotalDistanceKm,
		DrivingMinutes:      driving,
		TrafficDelayMinutes: geometry.TrafficDelayMinutes,
		ChargingMinutes:     chargingMinutes,
		TotalMinutes:        driving + chargingMinutes,
		NumChargingStops:    len(stops),
		EnergyNeededKWh:     geometry.TotalDistanceKm * vehicle.ConsumptionKWhPerKm(),
		EstimatedCost:       cost,
	}
}

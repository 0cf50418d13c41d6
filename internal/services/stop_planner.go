package services

import (
	"ev-route-service/internal/domain"
	"fmt"
	"math"
)

// Default planning thresholds; callers may override any of them per request.
const (
	DefaultMinChargePercent       = 20.0
	DefaultPreferredChargePercent = 80.0
	DefaultCorridorWidthKm        = 20.0
	DefaultStepKm                 = 1.0
)

// plannerState enumerates the states of the stop-planning machine.
type plannerState int

const (
	stateCruising plannerState = iota
	stateNeedsStop
	stateCharging
	stateArrived
	stateStranded
)

// PlanOptions carries the tunable thresholds of a planning run.
// See WithDefaults for which zero-valued fields fall back to defaults.
type PlanOptions struct {
	CurrentBatteryPercent  float64
	MinChargePercent       float64
	PreferredChargePercent float64
	CorridorWidthKm        float64
	StepKm                 float64
}

// WithDefaults fills only the fields whose zero value is never a valid
// setting. Battery level and minimum charge are taken as given: zero is
// meaningful for both, and absent request fields are resolved to their
// defaults at the API boundary before the options reach this package.
func (o PlanOptions) WithDefaults() PlanOptions {
	if o.PreferredChargePercent == 0 {
		o.PreferredChargePercent = DefaultPreferredChargePercent
	}
	if o.CorridorWidthKm == 0 {
		o.CorridorWidthKm = DefaultCorridorWidthKm
	}
	if o.StepKm == 0 {
		o.StepKm = DefaultStepKm
	}
	return o
}

// Validate rejects threshold combinations the state machine cannot honor.
func (o PlanOptions) Validate() error {
	if o.CurrentBatteryPercent < 0 || o.CurrentBatteryPercent > 100 {
		return fmt.Errorf("plan options: %w: current_battery_percent must be in [0,100], got %g", domain.ErrInvalidInput, o.CurrentBatteryPercent)
	}
	if o.MinChargePercent < 0 || o.MinChargePercent > 100 {
		return fmt.Errorf("plan options: %w: min_charge_percent must be in [0,100], got %g", domain.ErrInvalidInput, o.MinChargePercent)
	}
	if o.PreferredChargePercent <= o.MinChargePercent || o.PreferredChargePercent > 100 {
		return fmt.Errorf("plan options: %w: preferred_charge_percent must be in (min_charge_percent,100], got %g", domain.ErrInvalidInput, o.PreferredChargePercent)
	}
	if o.CorridorWidthKm <= 0 {
		return fmt.Errorf("plan options: %w: corridor_width_km must be positive, got %g", domain.ErrInvalidInput, o.CorridorWidthKm)
	}
	if o.StepKm <= 0 {
		return fmt.Errorf("plan options: %w: step_km must be positive, got %g", domain.ErrInvalidInput, o.StepKm)
	}
	return nil
}

// PlanStops runs the charging-stop state machine over the route geometry and
// returns the terminal outcome. It is a pure function of its inputs: no I/O,
// no shared state, identical inputs yield identical results.
//
// The machine cruises in fixed-size steps while the destination is directly
// reachable on the current charge. The moment it is not, a stop is required
// and the planner picks the nearest corridor station it can reach while
// keeping the battery at or above MinChargePercent (the reserve the vehicle
// must hold when diverting to a charger; only the final leg to the
// destination may run the battery below it, down to zero). Charging fills to
// PreferredChargePercent and never past it.
//
// Callers must validate geometry, vehicle, and options first; see PlanTrip.
func PlanStops(
	geometry domain.RouteGeometry,
	vehicle domain.VehicleProfile,
	stations []domain.ChargingStation,
	opts PlanOptions,
) domain.PlanResult {
	const arriveEpsilonKm = 1e-9

	cum := cumulativeKm(geometry.Points)
	total := geometry.TotalDistanceKm

	state := domain.TripState{BatteryPercent: opts.CurrentBatteryPercent}

	// Fail fast when the catalog is empty and the trip cannot be completed on
	// the current charge: the outcome is known before any simulation step.
	if !anyUsable(stations) && reachableKm(state.BatteryPercent, 0, vehicle) < total {
		return infeasible(domain.ReasonNoStations, state, vehicle, total)
	}

	// Cruising stops at every polyline vertex as well as every configured
	// step, so the bound must cover both. A generous multiple keeps
	// termination guaranteed under pathological inputs without failing
	// dense real-world geometries.
	maxIterations := 4*(len(geometry.Points)+int(math.Ceil(total/opts.StepKm))) + 64

	current := stateCruising
	var stops []domain.ChargingStop
	var picked Candidate
	var strandedReason string

	for iteration := 0; ; iteration++ {
		if iteration > maxIterations {
			return infeasible(domain.ReasonIterationLimit, state, vehicle, total)
		}

		switch current {
		case stateCruising:
			remaining := total - state.DistanceTraveledKm
			if remaining <= arriveEpsilonKm {
				current = stateArrived
				continue
			}

			if reachableKm(state.BatteryPercent, 0, vehicle)+arriveEpsilonKm < remaining {
				// The destination is not directly reachable: a stop is
				// required, and it is decided now, before any step burns
				// range the diversion to a charger will need.
				current = stateNeedsStop
				continue
			}

			step := cruiseStep(state.DistanceTraveledKm, remaining, cum, opts.StepKm)
			after, err := RemainingAfter(state.BatteryPercent, step, vehicle)
			if err != nil {
				// Unreachable: step is non-negative by construction.
				return infeasible(domain.ReasonIterationLimit, state, vehicle, total)
			}
			state.BatteryPercent = after
			state.DistanceTraveledKm += step
			state.ElapsedMinutes += drivingMinutes(geometry, step)

		case stateNeedsStop:
			candidates := SelectCandidates(
				geometry, cum,
				state.DistanceTraveledKm, state.BatteryPercent, opts.MinChargePercent,
				vehicle, stations, opts.CorridorWidthKm,
			)
			if len(candidates) == 0 {
				strandedReason = domain.ReasonNoReachableStation
				current = stateStranded
				continue
			}
			picked = candidates[0]
			current = stateCharging

		case stateCharging:
			leg := picked.DistanceFromCurrentKm
			arrival, _ := RemainingAfter(state.BatteryPercent, leg, vehicle)

			after := arrival
			var chargingMinutes, cost float64
			if arrival < opts.PreferredChargePercent {
				after = opts.PreferredChargePercent
				addedKWh := (after - arrival) / 100 * vehicle.BatteryCapacityKWh
				chargingMinutes = addedKWh / picked.Station.PowerKW * 60
				cost = addedKWh * picked.Station.PricePerKWh
			}
			// Already above the preferred level: the stop is a zero-duration
			// no-op and the battery is left untouched.

			state.DistanceTraveledKm += leg
			state.BatteryPercent = after
			state.ElapsedMinutes += drivingMinutes(geometry, leg) + chargingMinutes

			stops = append(stops, domain.ChargingStop{
				SegmentIndex:              len(stops) + 1,
				Station:                   picked.Station,
				DistanceFromStartKm:       state.DistanceTraveledKm,
				DistanceToDestinationKm:   total - state.DistanceTraveledKm,
				BatteryOnArrivalPercent:   arrival,
				BatteryAfterChargePercent: after,
				ChargingPowerKW:           picked.Station.PowerKW,
				ChargingMinutes:           chargingMinutes,
				EstimatedCost:             cost,
			})
			current = stateCruising

		case stateArrived:
			if stops == nil {
				stops = []domain.ChargingStop{}
			}
			return domain.PlanResult{
				Feasible: true,
				Stops:    stops,
				Summary:  Summarize(geometry, vehicle, stops),
			}

		case stateStranded:
			return infeasible(strandedReason, state, vehicle, total)
		}
	}
}

// cruiseStep bounds one cruising advance: the configured step, the distance
// to the next polyline vertex, or the distance to the destination, whichever
// is smallest.
func cruiseStep(traveledKm, remainingKm float64, cum []float64, stepKm float64) float64 {
	step := stepKm
	if remainingKm < step {
		step = remainingKm
	}
	for _, c := range cum {
		if c > traveledKm+1e-9 {
			if d := c - traveledKm; d < step {
				step = d
			}
			break
		}
	}
	return step
}

// drivingMinutes prorates the geometry's base driving time over a leg.
func drivingMinutes(geometry domain.RouteGeometry, legKm float64) float64 {
	if geometry.TotalDistanceKm <= 0 {
		return 0
	}
	return geometry.BaseDrivingMinutes * legKm / geometry.TotalDistanceKm
}

func anyUsable(stations []domain.ChargingStation) bool {
	for _, s := range stations {
		if s.Usable() {
			return true
		}
	}
	return false
}

// infeasible builds the failure outcome. The last reachable distance is the
// point at which the battery would hit zero, capped at the destination.
func infeasible(reason string, state domain.TripState, vehicle domain.VehicleProfile, totalKm float64) domain.PlanResult {
	last := state.DistanceTraveledKm + reachableKm(state.BatteryPercent, 0, vehicle)
	if last > totalKm {
		last = totalKm
	}
	return domain.PlanResult{
		Feasible:                false,
		Reason:                  reason,
		LastReachableDistanceKm: last,
	}
}

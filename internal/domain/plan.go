package domain

// TripState is the simulated vehicle state during a single planning run.
// It is owned exclusively by the stop planner, advances in strictly
// increasing DistanceTraveledKm order, and is discarded once the terminal
// outcome is produced. It never escapes a planning call.
type TripState struct {
	DistanceTraveledKm float64
	BatteryPercent     float64
	ElapsedMinutes     float64
}

// Represents a single planned charging stop.
// A ChargingStop is immutable planning data: it records where the vehicle
// leaves the route, the battery levels around the charge, and the time and
// cost of the charge computed from the station's power and price.
type ChargingStop struct {
	SegmentIndex              int
	Station                   ChargingStation
	DistanceFromStartKm       float64
	DistanceToDestinationKm   float64
	BatteryOnArrivalPercent   float64
	BatteryAfterChargePercent float64
	ChargingPowerKW           float64
	ChargingMinutes           float64
	EstimatedCost             float64
}

// Aggregate trip metrics for a feasible plan.
// A RouteSummary is the output of the cost/time aggregation and contains
// no side effects.
type RouteSummary struct {
	TotalDistanceKm     float64
	DrivingMinutes      float64
	TrafficDelayMinutes float64
	ChargingMinutes     float64
	TotalMinutes        float64
	NumChargingStops    int
	EnergyNeededKWh     float64
	EstimatedCost       float64
}

// Infeasibility reasons produced by the stop planner.
const (
	ReasonNoStations         = "no charging stations available"
	ReasonNoReachableStation = "no reachable charging station"
	ReasonIterationLimit     = "planning iteration limit exceeded"
)

// PlanResult is the terminal outcome of one planning run.
//
// Infeasible is an expected outcome of the algorithm, carried as data rather
// than an error: callers branch on Feasible to render "no route found"
// instead of failing the request.
type PlanResult struct {
	Feasible bool

	// Set when Feasible.
	Stops   []ChargingStop
	Summary RouteSummary

	// Set when infeasible.
	Reason                  string
	LastReachableDistanceKm float64
}

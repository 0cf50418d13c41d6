package services

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"ev-route-service/internal/ports"
	"fmt"
)

// PlanTripRequest is the planning entry point's input. Options fields whose
// zero value is invalid (preferred charge, corridor width, step size) fall
// back to the documented defaults; battery level and minimum charge are used
// as given.
type PlanTripRequest struct {
	Start   domain.Position
	End     domain.Position
	Vehicle domain.VehicleProfile
	Options PlanOptions
}

// TripPlan pairs a planning outcome with the geometry it was planned on, so
// callers can render the polyline alongside the stops.
type TripPlan struct {
	Geometry domain.RouteGeometry
	Result   domain.PlanResult
}

// PlanTrip resolves the route geometry and a corridor-scoped station snapshot
// from the external collaborators, then runs the pure stop-planning core.
//
// Errors are reserved for rejected input (domain.ErrInvalidInput) and missing
// collaborators (domain.ErrCollaboratorUnavailable); an infeasible itinerary
// is a normal outcome and comes back inside the TripPlan.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	routes ports.RouteProvider,
	catalog ports.StationCatalog,
) (_ TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	if !req.Start.Valid() {
		return TripPlan{}, fmt.Errorf("plan trip: %w: start position out of bounds (lat=%g lon=%g)", domain.ErrInvalidInput, req.Start.Lat, req.Start.Lon)
	}
	if !req.End.Valid() {
		return TripPlan{}, fmt.Errorf("plan trip: %w: end position out of bounds (lat=%g lon=%g)", domain.ErrInvalidInput, req.End.Lat, req.End.Lon)
	}
	if err := req.Vehicle.Validate(); err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: %w", err)
	}

	opts := req.Options.WithDefaults()
	if err := opts.Validate(); err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: %w", err)
	}

	geometry, err := routes.GetRoute(ctx, req.Start, req.End)
	if err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: %w: get route: %v", domain.ErrCollaboratorUnavailable, err)
	}
	if err := geometry.Validate(); err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: %w: route geometry: %v", domain.ErrCollaboratorUnavailable, err)
	}

	bounds := geometry.Bounds().Expand(opts.CorridorWidthKm)
	stations, err := catalog.ListStationsInBounds(ctx, bounds)
	if err != nil {
		return TripPlan{}, fmt.Errorf("plan trip: %w: list stations: %v", domain.ErrCollaboratorUnavailable, err)
	}

	return TripPlan{
		Geometry: geometry,
		Result:   PlanStops(geometry, req.Vehicle, stations, opts),
	}, nil
}

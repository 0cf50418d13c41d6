package handlers

import (
	"encoding/json"
	"errors"
	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"fmt"
	"io"
	"log"
	"net/http"
)

type PlanHandler struct {
	Routes   ports.RouteProvider
	Stations ports.StationCatalog
	Vehicles ports.VehicleCatalog

	// Defaults supply the configured thresholds for fields the request
	// leaves unset.
	Defaults services.PlanOptions
}

// Plan orchestrates vehicle resolution and charging-stop planning.
// Infeasible itineraries are reported as success=false with a reason, not as
// HTTP errors: the caller renders "no route found" rather than failing.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	profile, err := h.resolveVehicle(r, req)
	if err != nil {
		if errors.Is(err, ports.ErrVehicleNotFound) {
			writeError(w, r, http.StatusBadRequest, "vehicle not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("resolve vehicle failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	opts := h.Defaults
	// An absent battery field means a full charge; an explicit zero is a
	// valid (empty) battery and must reach the planner as such.
	opts.CurrentBatteryPercent = 100
	if req.CurrentBatteryPercent != nil {
		opts.CurrentBatteryPercent = *req.CurrentBatteryPercent
	}
	if req.MinChargePercent != nil {
		opts.MinChargePercent = *req.MinChargePercent
	}
	if req.PreferredChargePercent != nil {
		opts.PreferredChargePercent = *req.PreferredChargePercent
	}
	if req.CorridorWidthKm != nil {
		opts.CorridorWidthKm = *req.CorridorWidthKm
	}

	svcReq := services.PlanTripRequest{
		Start:   domain.Position{Lat: req.Start.Lat, Lon: req.Start.Lon},
		End:     domain.Position{Lat: req.End.Lat, Lon: req.End.Lon},
		Vehicle: profile,
		Options: opts,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Routes, h.Stations)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrCollaboratorUnavailable) {
			log.Printf("plan trip collaborator unavailable: %v", err)
			writeError(w, r, http.StatusBadGateway, "routing or station data unavailable")
			return
		}
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan))
}

// resolveVehicle picks the energy profile from the catalog or the inline body.
func (h *PlanHandler) resolveVehicle(r *http.Request, req dto.PlanRequest) (domain.VehicleProfile, error) {
	if req.VehicleID != nil {
		v, err := h.Vehicles.GetVehicle(r.Context(), *req.VehicleID)
		if err != nil {
			return domain.VehicleProfile{}, err
		}
		return v.Profile, nil
	}

	if req.Vehicle == nil {
		return domain.VehicleProfile{}, fmt.Errorf("%w: either vehicle_id or vehicle is required", domain.ErrInvalidInput)
	}
	return domain.VehicleProfile{
		RangeKm:            req.Vehicle.RangeKm,
		BatteryCapacityKWh: req.Vehicle.BatteryCapacityKWh,
	}, nil
}

func planResponse(plan services.TripPlan) dto.PlanResponse {
	result := plan.Result

	coords := make([][]float64, 0, len(plan.Geometry.Points))
	for _, p := range plan.Geometry.Points {
		coords = append(coords, p.CoordsToList())
	}

	stops := make([]dto.ChargingStopResponse, 0, len(result.Stops))
	for _, s := range result.Stops {
		stops = append(stops, dto.ChargingStopResponse{
			SegmentIndex:              s.SegmentIndex,
			StationID:                 s.Station.ID,
			StationName:               s.Station.Name,
			Position:                  dto.Position{Lat: s.Station.Position.Lat, Lon: s.Station.Position.Lon},
			DistanceFromStartKm:       s.DistanceFromStartKm,
			DistanceToDestinationKm:   s.DistanceToDestinationKm,
			BatteryOnArrivalPercent:   s.BatteryOnArrivalPercent,
			BatteryAfterChargePercent: s.BatteryAfterChargePercent,
			ChargingPowerKW:           s.ChargingPowerKW,
			ChargingMinutes:           s.ChargingMinutes,
			EstimatedCost:             s.EstimatedCost,
		})
	}

	if !result.Feasible {
		last := result.LastReachableDistanceKm
		return dto.PlanResponse{
			Success:                 false,
			Message:                 result.Reason,
			ChargingStops:           stops,
			LastReachableDistanceKm: &last,
			RouteCoordinates:        coords,
		}
	}

	message := fmt.Sprintf("%d charging stop(s) planned", len(result.Stops))
	if len(result.Stops) == 0 {
		message = "no charging stops needed"
	}

	return dto.PlanResponse{
		Success: true,
		Message: message,
		RouteSummary: &dto.RouteSummaryResponse{
			TotalDistanceKm:     result.Summary.TotalDistanceKm,
			DrivingMinutes:      result.Summary.DrivingMinutes,
			TrafficDelayMinutes: result.Summary.TrafficDelayMinutes,
			ChargingMinutes:     result.Summary.ChargingMinutes,
			TotalMinutes:        result.Summary.TotalMinutes,
			NumChargingStops:    result.Summary.NumChargingStops,
			EnergyNeededKWh:     result.Summary.EnergyNeededKWh,
			EstimatedCost:       result.Summary.EstimatedCost,
		},
		ChargingStops:    stops,
		RouteCoordinates: coords,
	}
}

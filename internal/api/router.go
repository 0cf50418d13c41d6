package api

import (
	"ev-route-service/internal/api/handlers"
	"ev-route-service/internal/ports"
	"ev-route-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	stations ports.StationCatalog,
	vehicles ports.VehicleCatalog,
	routes ports.RouteProvider,
	defaults services.PlanOptions,
) http.Handler {
	mux := http.NewServeMux()

	stationHandler := &handlers.StationHandler{Catalog: stations}
	vehicleHandler := &handlers.VehicleHandler{Catalog: vehicles}
	planHandler := &handlers.PlanHandler{
		Routes:   routes,
		Stations: stations,
		Vehicles: vehicles,
		Defaults: defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/stations", stationHandler.List)
	mux.HandleFunc("/vehicles", vehicleHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)

	return loggingMiddleware(mux)
}

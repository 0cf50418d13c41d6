package handlers

import (
	"ev-route-service/internal/api/dto"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"log"
	"net/http"
	"strconv"
)

// StationHandler exposes read-only charging station retrieval endpoints.
type StationHandler struct {
	Catalog ports.StationCatalog
}

// List returns stations, optionally filtered by a bounding-box query.
// The four corner params must be given together or not at all.
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	boundsParams := []string{"min_lat", "min_lon", "max_lat", "max_lon"}

	present := 0
	for _, p := range boundsParams {
		if q.Get(p) != "" {
			present++
		}
	}

	var (
		stations []domain.ChargingStation
		err      error
	)

	switch present {
	case 0:
		stations, err = h.Catalog.ListStations(r.Context())
	case len(boundsParams):
		values := make([]float64, len(boundsParams))
		for i, p := range boundsParams {
			v, parseErr := strconv.ParseFloat(q.Get(p), 64)
			if parseErr != nil {
				writeError(w, r, http.StatusBadRequest, p+" must be a number")
				return
			}
			values[i] = v
		}
		bounds := domain.BoundingBox{MinLat: values[0], MinLon: values[1], MaxLat: values[2], MaxLon: values[3]}
		if bounds.MinLat > bounds.MaxLat || bounds.MinLon > bounds.MaxLon {
			writeError(w, r, http.StatusBadRequest, "bounding box corners are inverted")
			return
		}
		stations, err = h.Catalog.ListStationsInBounds(r.Context(), bounds)
	default:
		writeError(w, r, http.StatusBadRequest, "bounding box requires min_lat, min_lon, max_lat and max_lon")
		return
	}

	if err != nil {
		log.Printf("list stations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStationsResponse{
		Stations: make([]dto.StationResponse, 0, len(stations)),
	}
	for _, s := range stations {
		res.Stations = append(res.Stations, dto.StationResponse{
			StationID:      s.ID,
			Name:           s.Name,
			Position:       dto.Position{Lat: s.Position.Lat, Lon: s.Position.Lon},
			PowerKW:        s.PowerKW,
			PricePerKWh:    s.PricePerKWh,
			AvailablePorts: s.AvailablePorts,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

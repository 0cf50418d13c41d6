package dto

type StationResponse struct {
	StationID      int      `json:"station_id"`
	Name           string   `json:"name"`
	Position       Position `json:"position"`
	PowerKW        float64  `json:"power_kw"`
	PricePerKWh    float64  `json:"price_per_kwh"`
	AvailablePorts *int     `json:"available_ports,omitempty"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}

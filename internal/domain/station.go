package domain

// ChargingStation is an immutable snapshot of a charging site as seen by one
// planning run. Live availability updates publish new snapshots; they never
// mutate a station a planner is already reading.
type ChargingStation struct {
	ID          int
	Name        string
	Position    Position
	PowerKW     float64
	PricePerKWh float64

	// AvailablePorts is nil when the directory has no live data for the
	// station, which the planner treats as available.
	AvailablePorts *int
}

// Usable reports whether the station can deliver a charge at all.
// Zero-power stations and stations known to have no free ports are
// filtered out before candidate selection.
func (s ChargingStation) Usable() bool {
	if s.PowerKW <= 0 {
		return false
	}
	if s.AvailablePorts != nil && *s.AvailablePorts <= 0 {
		return false
	}
	return true
}

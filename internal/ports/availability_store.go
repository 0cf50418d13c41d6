package ports

import "context"

// Port: a boundary for live station-availability overrides.
//
// The store is written by the externally owned update path (the Kafka
// consumer) and read when composing catalog snapshots. Stations without an
// override are assumed available.
type AvailabilityStore interface {
	// Record the number of free ports reported for a station.
	SetAvailablePorts(ctx context.Context, stationID int, availablePorts int) error

	// Return every known station override, keyed by station ID.
	Overrides(ctx context.Context) (map[int]int, error)
}

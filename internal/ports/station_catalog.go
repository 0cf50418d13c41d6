package ports

import (
	"context"
	"ev-route-service/internal/domain"
)

// Port: a boundary for retrieving charging station snapshots.
//
// Implementations must return immutable snapshots: a slice handed to one
// planning call is never mutated afterwards. Live availability refreshes
// publish new snapshots on subsequent calls.
type StationCatalog interface {
	// Retrieve every station in the directory.
	ListStations(ctx context.Context) ([]domain.ChargingStation, error)

	// Retrieve the stations inside a geographic bounding box.
	ListStationsInBounds(ctx context.Context, bounds domain.BoundingBox) ([]domain.ChargingStation, error)
}

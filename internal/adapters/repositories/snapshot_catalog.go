package repositories

import (
	"context"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"log"
)

// SnapshotCatalog composes the persistent station directory with the live
// availability overrides published by the external update path.
//
// Every call builds a fresh immutable snapshot: planning runs read the
// snapshot they were handed and never observe in-place mutation. Availability
// is best-effort: if the override store is unreachable the catalog still
// serves stations, assuming all of them available.
type SnapshotCatalog struct {
	Stations ports.StationCatalog
	Avail    ports.AvailabilityStore
}

func NewSnapshotCatalog(stations ports.StationCatalog, avail ports.AvailabilityStore) *SnapshotCatalog {
	return &SnapshotCatalog{Stations: stations, Avail: avail}
}

func (c *SnapshotCatalog) ListStations(ctx context.Context) ([]domain.ChargingStation, error) {
	stations, err := c.Stations.ListStations(ctx)
	if err != nil {
		return nil, err
	}
	return c.overlay(ctx, stations), nil
}

func (c *SnapshotCatalog) ListStationsInBounds(ctx context.Context, bounds domain.BoundingBox) ([]domain.ChargingStation, error) {
	stations, err := c.Stations.ListStationsInBounds(ctx, bounds)
	if err != nil {
		return nil, err
	}
	return c.overlay(ctx, stations), nil
}

func (c *SnapshotCatalog) overlay(ctx context.Context, stations []domain.ChargingStation) []domain.ChargingStation {
	if c.Avail == nil {
		return stations
	}

	overrides, err := c.Avail.Overrides(ctx)
	if err != nil {
		log.Printf("availability overrides unavailable, assuming all stations free: %v", err)
		return stations
	}

	for i := range stations {
		if free, ok := overrides[stations[i].ID]; ok {
			n := free
			stations[i].AvailablePorts = &n
		}
	}
	return stations
}

package ports

import (
	"context"
	"errors"
	"ev-route-service/internal/domain"
)

// ErrVehicleNotFound is returned by GetVehicle when no catalog entry matches
// the requested ID. Callers distinguish it with errors.Is.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Port: a boundary for retrieving vehicle catalog entries.
type VehicleCatalog interface {
	// Retrieve a single vehicle by its catalog ID.
	GetVehicle(ctx context.Context, id int) (domain.Vehicle, error)

	// Retrieve all vehicles available for planning.
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"fmt"
)

// Postgres-backed implementation of the VehicleCatalog port.
type PostgresVehicleRepository struct{ DB *sql.DB }

func NewPostgresVehicleRepository(db *sql.DB) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{DB: db}
}

// Return a single vehicle by its catalog ID.
func (s *PostgresVehicleRepository) GetVehicle(ctx context.Context, id int) (domain.Vehicle, error) {
	if s.DB == nil {
		return domain.Vehicle{}, errors.New("postgres vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		model,
		manufacturer,
		range_km,
		battery_capacity_kwh
	FROM vehicles
	WHERE vehicle_id = $1;
	`
	var v domain.Vehicle
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Model, &v.Manufacturer, &v.Profile.RangeKm, &v.Profile.BatteryCapacityKWh,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Vehicle{}, fmt.Errorf("get vehicle %d: %w", id, ports.ErrVehicleNotFound)
	}
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("get vehicle %d: query vehicles table: %w", id, err)
	}

	return v, nil
}

// Return all vehicles stored in the database.
func (s *PostgresVehicleRepository) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if s.DB == nil {
		return nil, errors.New("postgres vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		model,
		manufacturer,
		range_km,
		battery_capacity_kwh
	FROM vehicles
	ORDER BY vehicle_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0, 32)
	for rows.Next() {
		var v domain.Vehicle
		err := rows.Scan(&v.ID, &v.Model, &v.Manufacturer, &v.Profile.RangeKm, &v.Profile.BatteryCapacityKWh)
		if err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}

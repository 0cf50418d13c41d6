package repositories

import (
	"context"
	"database/sql"
	"errors"
	"ev-route-service/internal/domain"
	"fmt"
)

// Postgres-backed implementation of the StationCatalog port.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

// Return all charging stations stored in the database.
func (s *PostgresStationRepository) ListStations(ctx context.Context) ([]domain.ChargingStation, error) {
	if s.DB == nil {
		return nil, errors.New("postgres station repository: DB is nil")
	}

	query := `
	SELECT
		station_id,
		name,
		lat,
		lon,
		power_kw,
		price_per_kwh
	FROM charging_stations
	ORDER BY station_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query charging_stations table: %w", err)
	}
	defer rows.Close()

	return scanStations(rows)
}

// Return the charging stations inside a geographic bounding box.
func (s *PostgresStationRepository) ListStationsInBounds(ctx context.Context, bounds domain.BoundingBox) ([]domain.ChargingStation, error) {
	if s.DB == nil {
		return nil, errors.New("postgres station repository: DB is nil")
	}

	query := `
	SELECT
		station_id,
		name,
		lat,
		lon,
		power_kw,
		price_per_kwh
	FROM charging_stations
	WHERE lat BETWEEN $1 AND $2
	  AND lon BETWEEN $3 AND $4
	ORDER BY station_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("list stations in bounds: query charging_stations table: %w", err)
	}
	defer rows.Close()

	return scanStations(rows)
}

func scanStations(rows *sql.Rows) ([]domain.ChargingStation, error) {
	stations := make([]domain.ChargingStation, 0, 64)
	for rows.Next() {
		var st domain.ChargingStation
		err := rows.Scan(&st.ID, &st.Name, &st.Position.Lat, &st.Position.Lon, &st.PowerKW, &st.PricePerKWh)
		if err != nil {
			return nil, fmt.Errorf("scan station row: %w", err)
		}
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("station row iteration: %w", err)
	}

	return stations, nil
}

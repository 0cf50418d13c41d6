package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS charging_stations (
		station_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		power_kw DOUBLE PRECISION NOT NULL,
		price_per_kwh DOUBLE PRECISION NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id INTEGER PRIMARY KEY,
		model TEXT NOT NULL,
		manufacturer TEXT NOT NULL,
		range_km DOUBLE PRECISION NOT NULL,
		battery_capacity_kwh DOUBLE PRECISION NOT NULL
	);
	`

	createStationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_charging_stations_lat_lon
	ON charging_stations(lat, lon);
	`

	statements := []string{
		createStationsQuery,
		createVehiclesQuery,
		createStationIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StationSeed struct {
	StationID   int     `json:"station_id"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	PowerKW     float64 `json:"power_kw"`
	PricePerKWh float64 `json:"price_per_kwh"`
}

// Populate the database with charging station data from a JSON file.
func SeedStationsFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stations: read %q: %w", jsonPath, err)
	}

	var data []StationSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed stations: parse json: %w", err)
	}

	rows := make([]StationSeed, 0, len(data))
	for i, item := range data {
		if item.StationID <= 0 {
			return fmt.Errorf("seed stations: invalid station_id at index %d: %d", i+1, item.StationID)
		}
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("seed stations: item at index %d: name cannot be empty", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lon < -180 || item.Lon > 180 {
			return fmt.Errorf("seed stations: item at index %d: coordinates out of bounds", i+1)
		}
		if item.PowerKW <= 0 {
			return fmt.Errorf("seed stations: item at index %d: power_kw must be positive", i+1)
		}
		if item.PricePerKWh < 0 {
			return fmt.Errorf("seed stations: item at index %d: price_per_kwh must be non-negative", i+1)
		}
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO charging_stations (
		station_id,
		name,
		lat,
		lon,
		power_kw,
		price_per_kwh
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (station_id) DO UPDATE SET
		name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		power_kw = EXCLUDED.power_kw,
		price_per_kwh = EXCLUDED.price_per_kwh;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.Exec(s.StationID, s.Name, s.Lat, s.Lon, s.PowerKW, s.PricePerKWh); err != nil {
			return fmt.Errorf("seed stations: insert station_id=%d: %w", s.StationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stations: commit tx: %w", err)
	}

	return nil
}

type VehicleSeed struct {
	VehicleID          int     `json:"vehicle_id"`
	Model              string  `json:"model"`
	Manufacturer       string  `json:"manufacturer"`
	RangeKm            float64 `json:"range_km"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
}

// Populate the database with vehicle catalog data from a JSON file.
func SeedVehiclesFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed vehicles: read %q: %w", jsonPath, err)
	}

	var data []VehicleSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed vehicles: parse json: %w", err)
	}

	for i, item := range data {
		if item.VehicleID <= 0 {
			return fmt.Errorf("seed vehicles: invalid vehicle_id at index %d: %d", i+1, item.VehicleID)
		}
		if strings.TrimSpace(item.Model) == "" {
			return fmt.Errorf("seed vehicles: item at index %d: model cannot be empty", i+1)
		}
		if item.RangeKm <= 0 || item.BatteryCapacityKWh <= 0 {
			return fmt.Errorf("seed vehicles: item at index %d: range_km and battery_capacity_kwh must be positive", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed vehicles: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO vehicles (
		vehicle_id,
		model,
		manufacturer,
		range_km,
		battery_capacity_kwh
	)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (vehicle_id) DO UPDATE SET
		model = EXCLUDED.model,
		manufacturer = EXCLUDED.manufacturer,
		range_km = EXCLUDED.range_km,
		battery_capacity_kwh = EXCLUDED.battery_capacity_kwh;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed vehicles: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range data {
		if _, err := stmt.Exec(v.VehicleID, v.Model, v.Manufacturer, v.RangeKm, v.BatteryCapacityKWh); err != nil {
			return fmt.Errorf("seed vehicles: insert vehicle_id=%d: %w", v.VehicleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed vehicles: commit tx: %w", err)
	}

	return nil
}

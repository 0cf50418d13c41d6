package main

import (
	"database/sql"
	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/config"
	"ev-route-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	stationSeedPath := config.Get("STATION_SEED_PATH", "data/seeds/stations.json")
	vehicleSeedPath := config.Get("VEHICLE_SEED_PATH", "data/seeds/vehicles.json")
	if err := initAndSeed(db, stationSeedPath, vehicleSeedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(db *sql.DB, stationSeedPath, vehicleSeedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding charging stations...")
	if err := repositories.SeedStationsFromJSON(db, stationSeedPath); err != nil {
		log.Fatalf("station seeding failed: %v", err)
	}

	log.Println("Seeding vehicles...")
	if err := repositories.SeedVehiclesFromJSON(db, vehicleSeedPath); err != nil {
		log.Fatalf("vehicle seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}

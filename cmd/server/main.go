package main

import (
	"context"
	"ev-route-service/internal/adapters/cache"
	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/adapters/routing"
	"ev-route-service/internal/api"
	"ev-route-service/internal/config"
	"ev-route-service/internal/platform/db"
	"ev-route-service/internal/services"
	"ev-route-service/internal/transport/kafka"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, TomTom, Kafka) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	tomtomKey := os.Getenv("TOMTOM_API_KEY")
	if strings.TrimSpace(tomtomKey) == "" {
		log.Fatal("TOMTOM_API_KEY is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr: config.Get("REDIS_ADDR", cfg.Redis.Addr),
	})
	defer rdb.Close()

	// Port availability overrides live in Redis and are overlaid onto the
	// Postgres station rows at read time.
	availability := cache.NewRedisAvailabilityStore(rdb)
	stations := repositories.NewSnapshotCatalog(repositories.NewPostgresStationRepository(pg), availability)
	vehicles := repositories.NewPostgresVehicleRepository(pg)

	tomtom, err := routing.NewTomTomRouteProvider(tomtomKey)
	if err != nil {
		log.Fatal(err)
	}
	routes := routing.NewCachedRouteProvider(tomtom, rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if brokers := kafkaBrokers(cfg); len(brokers) > 0 {
		consumer := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		}, availability)

		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Printf("availability consumer stopped: %v", err)
			}
		}()
	} else {
		log.Println("No Kafka brokers configured (availability updates disabled)")
	}

	defaults := services.PlanOptions{
		MinChargePercent:       cfg.Planning.MinChargePercent,
		PreferredChargePercent: cfg.Planning.PreferredChargePercent,
		CorridorWidthKm:        cfg.Planning.CorridorWidthKm,
		StepKm:                 cfg.Planning.StepKm,
	}

	router := api.NewRouter(stations, vehicles, routes, defaults)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	addr := config.Get("SERVER_ADDRESS", cfg.Server.Address)
	log.Printf("Server listening addr=%s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func kafkaBrokers(cfg config.Config) []string {
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		return strings.Split(v, ",")
	}
	return cfg.Kafka.Brokers
}

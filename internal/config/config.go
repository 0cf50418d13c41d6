// Package config loads service settings from an optional YAML file with
// environment variable overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`

	Redis struct {
		Addr string `yaml:"addr"`
	} `yaml:"redis"`

	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
		GroupID string   `yaml:"group_id"`
	} `yaml:"kafka"`

	Planning struct {
		MinChargePercent       float64 `yaml:"min_charge_percent"`
		PreferredChargePercent float64 `yaml:"preferred_charge_percent"`
		CorridorWidthKm        float64 `yaml:"corridor_width_km"`
		StepKm                 float64 `yaml:"step_km"`
	} `yaml:"planning"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	var cfg Config
	cfg.Server.Address = ":8080"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Kafka.Topic = "station-availability"
	cfg.Kafka.GroupID = "ev-route-service"
	cfg.Planning.MinChargePercent = 20
	cfg.Planning.PreferredChargePercent = 80
	cfg.Planning.CorridorWidthKm = 20
	cfg.Planning.StepKm = 1
	return cfg
}

// Load reads path and overlays it on the defaults. A missing file is not an
// error; local runs work without any config file.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return cfg, nil
}

// Get returns the environment variable value or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// availabilityKey is the Redis hash holding station_id -> available_ports.
const availabilityKey = "stations:available_ports"

// Redis-backed implementation of the AvailabilityStore port.
//
// The Kafka update path writes overrides here; catalog snapshots read them.
// A single hash keeps the whole override set readable in one round trip.
type RedisAvailabilityStore struct {
	rdb *redis.Client
}

func NewRedisAvailabilityStore(rdb *redis.Client) *RedisAvailabilityStore {
	return &RedisAvailabilityStore{rdb: rdb}
}

// Record the number of free ports reported for a station.
func (s *RedisAvailabilityStore) SetAvailablePorts(ctx context.Context, stationID int, availablePorts int) error {
	if s.rdb == nil {
		return errors.New("availability store: redis client is nil")
	}
	if stationID <= 0 {
		return fmt.Errorf("availability store: invalid station_id %d", stationID)
	}
	if availablePorts < 0 {
		return fmt.Errorf("availability store: negative available_ports %d for station_id %d", availablePorts, stationID)
	}

	err := s.rdb.HSet(ctx, availabilityKey, strconv.Itoa(stationID), availablePorts).Err()
	if err != nil {
		return fmt.Errorf("availability store: hset station_id=%d: %w", stationID, err)
	}
	return nil
}

// Return every known station override, keyed by station ID.
func (s *RedisAvailabilityStore) Overrides(ctx context.Context) (map[int]int, error) {
	if s.rdb == nil {
		return nil, errors.New("availability store: redis client is nil")
	}

	raw, err := s.rdb.HGetAll(ctx, availabilityKey).Result()
	if err != nil {
		return nil, fmt.Errorf("availability store: hgetall: %w", err)
	}

	out := make(map[int]int, len(raw))
	for field, value := range raw {
		id, err := strconv.Atoi(field)
		if err != nil {
			log.Printf("availability store: skipping malformed station id %q", field)
			continue
		}
		free, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("availability store: skipping malformed port count %q for station %d", value, id)
			continue
		}
		out[id] = free
	}

	return out, nil
}

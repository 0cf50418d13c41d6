package routing

import (
	"context"
	"encoding/json"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/ports"
	"log"
	"time"

	"github.com/mmcloughlin/geohash"
	"github.com/redis/go-redis/v9"
)

const (
	// routeCacheTTL is how long a cached geometry remains valid. Traffic
	// delay is baked into the geometry, so entries go stale quickly.
	routeCacheTTL = 5 * time.Minute

	// geohashPrecision controls the spatial resolution of the endpoint
	// hashes. A precision-5 cell is roughly 5x5km, so nearby requests for
	// the same intercity trip share a route without noticeably distorting it.
	geohashPrecision = 5
)

// CachedRouteProvider wraps another RouteProvider and transparently caches
// geometries in Redis. Cache keys are composed of geohashes of the start and
// end positions.
//
// Cache failures are never fatal: a read error falls through to the inner
// provider and a write error is logged and dropped.
type CachedRouteProvider struct {
	inner ports.RouteProvider
	rdb   *redis.Client
}

func NewCachedRouteProvider(inner ports.RouteProvider, rdb *redis.Client) *CachedRouteProvider {
	return &CachedRouteProvider{inner: inner, rdb: rdb}
}

func routeCacheKey(start, end domain.Position) string {
	return "route:" +
		geohash.EncodeWithPrecision(start.Lat, start.Lon, geohashPrecision) + ":" +
		geohash.EncodeWithPrecision(end.Lat, end.Lon, geohashPrecision)
}

// GetRoute satisfies the RouteProvider port. It checks the cache first; on a
// miss it delegates to the inner provider and persists the result.
func (c *CachedRouteProvider) GetRoute(ctx context.Context, start, end domain.Position) (domain.RouteGeometry, error) {
	key := routeCacheKey(start, end)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var cached domain.RouteGeometry
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		log.Printf("route cache: dropping undecodable entry key=%s", key)
	} else if err != redis.Nil {
		log.Printf("route cache read failed key=%s err=%v", key, err)
	}

	geometry, err := c.inner.GetRoute(ctx, start, end)
	if err != nil {
		return domain.RouteGeometry{}, err
	}

	payload, err := json.Marshal(geometry)
	if err != nil {
		log.Printf("route cache: marshal failed key=%s err=%v", key, err)
		return geometry, nil
	}
	if err := c.rdb.Set(ctx, key, payload, routeCacheTTL).Err(); err != nil {
		log.Printf("route cache write failed key=%s err=%v", key, err)
	}

	return geometry, nil
}

package routing

import (
	"context"
	"encoding/json"
	"errors"
	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// TomTomRouteProvider implements RouteProvider using the TomTom routing API.
//
// It requests an electric-vehicle car route with live traffic and converts
// the response into the engine's RouteGeometry. Transient failures are
// retried with exponential backoff. The provider is safe for concurrent use.
type TomTomRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewTomTomRouteProvider(apiKey string) (*TomTomRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("TomTom api key is empty")
	}

	return &TomTomRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.tomtom.com",
	}, nil
}

type calculateRouteResponse struct {
	Routes []struct {
		Summary struct {
			LengthInMeters        float64 `json:"lengthInMeters"`
			TravelTimeInSeconds   float64 `json:"travelTimeInSeconds"`
			TrafficDelayInSeconds float64 `json:"trafficDelayInSeconds"`
		} `json:"summary"`
		Legs []struct {
			Points []struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"points"`
		} `json:"legs"`
	} `json:"routes"`
}

// Resolve a start/end pair into road-network geometry.
func (t *TomTomRouteProvider) GetRoute(
	ctx context.Context,
	start, end domain.Position,
) (_ domain.RouteGeometry, err error) {
	defer obs.Time(ctx, "tomtom.GetRoute")(&err)

	locations := fmt.Sprintf("%.6f,%.6f:%.6f,%.6f", start.Lat, start.Lon, end.Lat, end.Lon)
	endpoint := fmt.Sprintf("%s/routing/1/calculateRoute/%s/json", t.baseURL, url.PathEscape(locations))

	resp, err := t.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create route request: %w", err)
		}

		q := req.URL.Query()
		q.Set("key", t.apiKey)
		q.Set("traffic", "true")
		q.Set("routeType", "fastest")
		q.Set("travelMode", "car")
		q.Set("vehicleEngineType", "electric")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.RouteGeometry{}, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded calculateRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteGeometry{}, fmt.Errorf("decode route response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return domain.RouteGeometry{}, fmt.Errorf("no route between %.6f,%.6f and %.6f,%.6f", start.Lat, start.Lon, end.Lat, end.Lon)
	}

	route := decoded.Routes[0]

	points := make([]domain.Position, 0, 256)
	for _, leg := range route.Legs {
		for _, p := range leg.Points {
			points = append(points, domain.Position{Lat: p.Latitude, Lon: p.Longitude})
		}
	}
	if len(points) < 2 {
		return domain.RouteGeometry{}, errors.New("route response contains fewer than 2 points")
	}

	// travelTimeInSeconds includes the traffic delay; the engine carries the
	// base duration and the delay separately.
	delayMinutes := route.Summary.TrafficDelayInSeconds / 60
	baseMinutes := route.Summary.TravelTimeInSeconds/60 - delayMinutes
	if baseMinutes < 0 {
		baseMinutes = 0
	}

	return domain.RouteGeometry{
		Points:              points,
		TotalDistanceKm:     route.Summary.LengthInMeters / 1000,
		BaseDrivingMinutes:  baseMinutes,
		TrafficDelayMinutes: delayMinutes,
	}, nil
}

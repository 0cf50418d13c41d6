package services

import (
	"ev-route-service/internal/domain"
	"slices"
)

// Candidate pairs a charging station with its placement relative to the
// vehicle's current position on the route.
type Candidate struct {
	Station domain.ChargingStation

	// DistanceFromCurrentKm is measured along the route, from the vehicle's
	// current position to the station's projection onto the polyline.
	DistanceFromCurrentKm float64

	// ArcKm is the absolute along-route position of the station's projection.
	ArcKm float64

	// PerpKm is the transverse distance from the station to the route.
	PerpKm float64
}

// SelectCandidates returns the stations a vehicle at currentArcKm can divert
// to, ordered by ascending along-route distance from the current position.
//
// A station qualifies only if it lies within corridorWidthKm of the route
// polyline, sits strictly ahead of the current position, and is reachable
// without the battery dropping below reserveFloorPercent. Unusable stations
// (zero power, no free ports) are filtered out. An empty result is the stop
// planner's infeasibility trigger.
//
// Tie-break for equidistant stations: higher power, then lower price, then
// lowest station ID, so identical inputs always produce identical plans.
func SelectCandidates(
	geometry domain.RouteGeometry,
	cum []float64,
	currentArcKm float64,
	batteryPercent float64,
	reserveFloorPercent float64,
	vehicle domain.VehicleProfile,
	stations []domain.ChargingStation,
	corridorWidthKm float64,
) []Candidate {
	const aheadEpsilonKm = 1e-6

	maxLegKm := reachableKm(batteryPercent, reserveFloorPercent, vehicle)

	candidates := make([]Candidate, 0, len(stations))
	for _, st := range stations {
		if !st.Usable() {
			continue
		}

		arc, perp := projectPoint(geometry.Points, cum, st.Position)
		if perp > corridorWidthKm {
			continue
		}

		leg := arc - currentArcKm
		if leg <= aheadEpsilonKm {
			// Already at or past this station; stopping would mean driving
			// backwards along the route.
			continue
		}
		if leg > maxLegKm {
			continue
		}

		candidates = append(candidates, Candidate{
			Station:               st,
			DistanceFromCurrentKm: leg,
			ArcKm:                 arc,
			PerpKm:                perp,
		})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if a.DistanceFromCurrentKm != b.DistanceFromCurrentKm {
			if a.DistanceFromCurrentKm < b.DistanceFromCurrentKm {
				return -1
			}
			return 1
		}
		if a.Station.PowerKW != b.Station.PowerKW {
			if a.Station.PowerKW > b.Station.PowerKW {
				return -1
			}
			return 1
		}
		if a.Station.PricePerKWh != b.Station.PricePerKWh {
			if a.Station.PricePerKWh < b.Station.PricePerKWh {
				return -1
			}
			return 1
		}
		if a.Station.ID < b.Station.ID {
			return -1
		}
		if a.Station.ID > b.Station.ID {
			return 1
		}
		return 0
	})

	return candidates
}

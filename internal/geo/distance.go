// Package geo filters events by great-circle distance from a point.
package geo

import (
	"fmt"
	"math"
	"slices"

	"github.com/Eursukkul/local-event-finder/internal/models"
)

const EarthRadiusKm = 6371.0

type EventDistance struct {
	Event      models.Event `json:"event"`
	DistanceKm float64      `json:"distance_km"`
}

// Distance returns the haversine distance in kilometers between two points
// given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// WithinRadius keeps the events with coordinates that lie within radiusKm of the
// user, closest first. Events without coordinates are skipped.
func WithinRadius(events []models.Event, userLat, userLon, radiusKm float64) []EventDistance {
	out := make([]EventDistance, 0, len(events))
	for _, e := range events {
		if !e.HasLocation() {
			continue
		}
		d := Distance(userLat, userLon, *e.Latitude, *e.Longitude)
		if d <= radiusKm {
			out = append(out, EventDistance{Event: e, DistanceKm: d})
		}
	}

	slices.SortStableFunc(out, func(a, b EventDistance) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		}
		return 0
	})
	return out
}

// FormatDistance renders meters below one kilometer, otherwise kilometers with one decimal.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0fm", math.Round(km*1000))
	}
	return fmt.Sprintf("%.1fkm", km)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

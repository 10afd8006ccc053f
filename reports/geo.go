// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reports

import (
	"math"
	"slices"

	"github.com/danielhkuo/biryani-lagbe/models"
)

const earthRadiusKm = 6371

// HaversineKm is the great-circle distance between two points.
func HaversineKm(from, to models.Location) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(to.Lat - from.Lat)
	dLng := toRad(to.Lng - from.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(from.Lat))*math.Cos(toRad(to.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Nearby returns the reports within radiusKm of origin, nearest first.
func Nearby(all []models.Report, origin models.Location, radiusKm float64) []models.NearbyReport {
	out := []models.NearbyReport{}
	for _, r := range all {
		d := HaversineKm(origin, r.Location)
		if d <= radiusKm {
			out = append(out, models.NearbyReport{Report: r, DistanceKm: d})
		}
	}
	slices.SortStableFunc(out, func(a, b models.NearbyReport) int {
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

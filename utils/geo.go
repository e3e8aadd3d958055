package utils

import (
	"math"
	"sort"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// GeoCandidate is a record position offered to Nearby. Category is matched
// case-insensitively against the filter before any distance math.
type GeoCandidate struct {
	Lat      float64
	Lng      float64
	Category string
}

// GeoMatch references a candidate by its input index together with its
// distance from the origin.
type GeoMatch struct {
	Index      int
	DistanceKm float64
}

// Nearby filters candidates to those within radiusKm of the origin (boundary
// inclusive) and returns them sorted ascending by distance. Ties keep the
// input order. An empty categoryFilter matches everything.
func Nearby(originLat, originLng float64, candidates []GeoCandidate, radiusKm float64, categoryFilter string) []GeoMatch {
	matches := make([]GeoMatch, 0, len(candidates))
	for i, c := range candidates {
		if categoryFilter != "" && !strings.EqualFold(c.Category, categoryFilter) {
			continue
		}
		d := HaversineKm(originLat, originLng, c.Lat, c.Lng)
		if d <= radiusKm {
			matches = append(matches, GeoMatch{Index: i, DistanceKm: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches
}

// RoundKm rounds a distance to two decimals for API responses.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	// Same point.
	assert.Zero(t, HaversineKm(12.97, 77.59, 12.97, 77.59))

	// 0.09 degrees of longitude at the equator is almost exactly 10 km.
	d := HaversineKm(0, 0, 0, 0.09)
	assert.InDelta(t, 10.0, d, 0.05)

	// Symmetric.
	assert.InDelta(t, d, HaversineKm(0, 0.09, 0, 0), 1e-9)

	// A known city pair: Bangalore to Chennai is roughly 290 km.
	assert.InDelta(t, 290, HaversineKm(12.9716, 77.5946, 13.0827, 80.2707), 15)
}

func TestNearbyRadiusIsInclusive(t *testing.T) {
	candidates := []GeoCandidate{{Lat: 0, Lng: 0.09}}
	d := HaversineKm(0, 0, 0, 0.09)

	// A candidate exactly on the boundary is included.
	matches := Nearby(0, 0, candidates, d, "")
	require.Len(t, matches, 1)
	assert.InDelta(t, d, matches[0].DistanceKm, 1e-9)

	// Just inside the boundary is a miss.
	assert.Empty(t, Nearby(0, 0, candidates, d-0.001, ""))
	// Comfortably outside the point's distance still matches.
	assert.Len(t, Nearby(0, 0, candidates, d+0.001, ""), 1)
}

func TestNearbySortsAscending(t *testing.T) {
	candidates := []GeoCandidate{
		{Lat: 0, Lng: 0.20},
		{Lat: 0, Lng: 0.05},
		{Lat: 0, Lng: 0.10},
	}
	matches := Nearby(0, 0, candidates, 100, "")
	require.Len(t, matches, 3)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, 2, matches[1].Index)
	assert.Equal(t, 0, matches[2].Index)
	assert.LessOrEqual(t, matches[0].DistanceKm, matches[1].DistanceKm)
	assert.LessOrEqual(t, matches[1].DistanceKm, matches[2].DistanceKm)
}

func TestNearbyCategoryFilter(t *testing.T) {
	candidates := []GeoCandidate{
		{Lat: 0, Lng: 0.01, Category: "Football"},
		{Lat: 0, Lng: 0.02, Category: "cricket"},
		{Lat: 0, Lng: 0.03, Category: "football"},
	}

	matches := Nearby(0, 0, candidates, 100, "FOOTBALL")
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, 2, matches[1].Index)

	// Empty filter keeps everything.
	assert.Len(t, Nearby(0, 0, candidates, 100, ""), 3)
}

func TestRoundKm(t *testing.T) {
	assert.InDelta(t, 10.01, RoundKm(10.012), 1e-9)
	assert.InDelta(t, 2.5, RoundKm(2.504), 1e-9)
}

// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package geo filters and orders spots by distance from a query center.
//
// Distances use an equirectangular flat-earth approximation, accurate to
// well under a meter at campus scale. Search radii in this domain are a few
// kilometers at most, so the great-circle formula buys nothing.
package geo

import (
	"math"
	"sort"
	"strconv"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

// earthRadiusMeters is the mean earth radius.
const earthRadiusMeters = 6371000.0

// Center is a validated query center with a search radius in meters.
type Center struct {
	Latitude  float64
	Longitude float64
	Radius    float64
}

// ParseCenter builds a Center from raw query strings. The boolean is false
// when any value is non-numeric or out of range; callers treat that as a
// query matching nothing, not as an error.
func ParseCenter(lat, lon, radius string) (Center, bool) {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Center{}, false
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return Center{}, false
	}
	radF, err := strconv.ParseFloat(radius, 64)
	if err != nil {
		return Center{}, false
	}
	if !validCoordinate(latF, lonF) || radF < 0 || math.IsNaN(radF) || math.IsInf(radF, 0) {
		return Center{}, false
	}
	return Center{Latitude: latF, Longitude: lonF, Radius: radF}, true
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Distance returns the flat-earth distance in meters between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	meanLat := (lat1 + lat2) / 2 * degToRad
	x := (lon2 - lon1) * degToRad * math.Cos(meanLat)
	y := (lat2 - lat1) * degToRad
	return earthRadiusMeters * math.Sqrt(x*x+y*y)
}

// Ranked pairs a spot with its distance from the query center.
type Ranked struct {
	Spot     models.Spot
	Distance float64
}

// Rank keeps spots within the center's radius, ordered nearest first, and
// caps the result at limit when limit is positive. Ties keep the incoming
// order, which is primary-key order from the store. A spot with out-of-range
// coordinates is skipped rather than failing the query.
func Rank(spots []models.Spot, center Center, limit int) []Ranked {
	ranked := make([]Ranked, 0, len(spots))
	for _, spot := range spots {
		if !validCoordinate(spot.Latitude, spot.Longitude) {
			continue
		}
		d := Distance(center.Latitude, center.Longitude, spot.Latitude, spot.Longitude)
		if d > center.Radius {
			continue
		}
		ranked = append(ranked, Ranked{Spot: spot, Distance: d})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

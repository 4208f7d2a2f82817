// Package geo provides the WGS84 coordinate type and great-circle distance
// math shared by the graph construction pipeline.
package geo

import (
	"fmt"
	"math"
	"strings"
)

// earthRadiusMeters is the equatorial radius used for haversine distances.
const earthRadiusMeters = 6_378_100.0

// Coord is a WGS84 decimal-degree coordinate pair.
type Coord struct {
	Lon float64
	Lat float64
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(a, b Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))

	return earthRadiusMeters * c
}

// LineLength sums the haversine distance of consecutive points in a polyline.
func LineLength(points []Coord) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Haversine(points[i-1], points[i])
	}
	return total
}

// WKT renders a polyline as a WKT LINESTRING with 7 fractional digits per
// coordinate, e.g. "LINESTRING(0.0000000 0.0000000, 1.0000000 0.0000000)".
func WKT(points []Coord) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.7f %.7f", p.Lon, p.Lat)
	}
	return "LINESTRING(" + strings.Join(parts, ", ") + ")"
}

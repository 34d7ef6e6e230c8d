// Package geo provides the small set of great-circle and unit-conversion
// helpers the boundary sanity checks rely on.
package geo

import "math"

// Conversion factors
const (
	MetersPerNM   = 1852.0  // Meters per nautical mile
	FeetPerMeter  = 3.28084 // Feet per meter
	earthRadiusM  = 6371000 // Mean Earth radius in meters
	degreesToRads = math.Pi / 180.0
)

// Haversine calculates the great-circle distance in meters between two
// lat/lon positions in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * degreesToRads
	lon1Rad := lon1 * degreesToRads
	lat2Rad := lat2 * degreesToRads
	lon2Rad := lon2 * degreesToRads

	dlon := lon2Rad - lon1Rad
	dlat := lat2Rad - lat1Rad

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dlon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// DistanceNM calculates the great-circle distance in nautical miles
func DistanceNM(lat1, lon1, lat2, lon2 float64) float64 {
	return MetersToNM(Haversine(lat1, lon1, lat2, lon2))
}

// MetersToNM converts meters to nautical miles
func MetersToNM(meters float64) float64 {
	return meters / MetersPerNM
}

// NMToMeters converts nautical miles to meters
func NMToMeters(nm float64) float64 {
	return nm * MetersPerNM
}

// ValidLatLon reports whether a lat/lon pair is inside the WGS84 value range
func ValidLatLon(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

package domain

import "math"

// GeoPoint is a WGS84-like latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const earthRadiusKm = 6371.0

// DistanceKm returns the approximate haversine distance to another point.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := p.Lat * math.Pi / 180
	lon1 := p.Lon * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	lon2 := other.Lon * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// RoundedDistanceKm returns the distance rounded to three decimals, the
// precision surfaced in API responses.
func (p GeoPoint) RoundedDistanceKm(other GeoPoint) float64 {
	return math.Round(p.DistanceKm(other)*1000) / 1000
}

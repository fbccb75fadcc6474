package geofence

import "math"

const earthRadiusM = 6371000.0

// DistanceM computes the haversine great-circle distance in meters.
func DistanceM(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Contains reports whether the position falls inside the zone.
func (z Zone) Contains(lat, lng float64) bool {
	return DistanceM(z.CenterLat, z.CenterLng, lat, lng) <= z.RadiusM
}

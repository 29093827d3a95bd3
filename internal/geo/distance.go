package geo

import "math"

const EarthRadiusKM = 6371.0

// Distance returns the great-circle distance in kilometers between two
// WGS84 points, using the spherical law of cosines with Earth radius 6371 km.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLonRad := (lon2 - lon1) * math.Pi / 180

	arg := math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLonRad) +
		math.Sin(lat1Rad)*math.Sin(lat2Rad)

	// Rounding can push the argument just outside [-1, 1] when the two
	// points coincide or are antipodal, and Acos would return NaN.
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}

	return EarthRadiusKM * math.Acos(arg)
}

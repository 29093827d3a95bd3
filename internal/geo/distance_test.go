package geo

import (
	"math"
	"testing"
)

// haversine is an independent reference implementation used to cross-check
// the law-of-cosines distance.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func TestDistanceZeroAtSamePoint(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"San Francisco", 37.7749, -122.4194},
		{"equator origin", 0, 0},
		{"north pole", 90, 0},
		{"negative coordinates", -33.8688, 151.2093},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat, tt.lon, tt.lat, tt.lon)
			if math.IsNaN(got) {
				t.Fatal("Distance() returned NaN for identical points")
			}
			if got > 1e-6 {
				t.Errorf("Distance() = %v, want 0", got)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{37.7749, -122.4194, 40.7128, -74.0060},
		{51.5074, -0.1278, -33.8688, 151.2093},
		{0, 0, 0, 180},
	}

	for _, p := range pairs {
		forward := Distance(p[0], p[1], p[2], p[3])
		backward := Distance(p[2], p[3], p[0], p[1])
		if math.Abs(forward-backward) > 1e-9 {
			t.Errorf("Distance not symmetric: %v vs %v for %v", forward, backward, p)
		}
	}
}

func TestDistanceMatchesHaversine(t *testing.T) {
	tests := []struct {
		name string
		a    [2]float64
		b    [2]float64
	}{
		{"SF to NYC", [2]float64{37.7749, -122.4194}, [2]float64{40.7128, -74.0060}},
		{"SF nearby", [2]float64{37.7749, -122.4194}, [2]float64{37.8, -122.45}},
		{"London to Sydney", [2]float64{51.5074, -0.1278}, [2]float64{-33.8688, 151.2093}},
		{"across the antimeridian", [2]float64{10, 179.5}, [2]float64{10, -179.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a[0], tt.a[1], tt.b[0], tt.b[1])
			want := haversine(tt.a[0], tt.a[1], tt.b[0], tt.b[1])
			if math.Abs(got-want) > 1e-6 {
				t.Errorf("Distance() = %v, haversine reference = %v", got, want)
			}
		})
	}
}

func TestDistanceNeverNaN(t *testing.T) {
	// Antipodal and identical points can push the acos argument outside
	// [-1, 1] without clamping.
	cases := [][4]float64{
		{0, 0, 0, 180},
		{45, 45, -45, -135},
		{37.7749, -122.4194, 37.7749, -122.4194},
		{90, 0, -90, 0},
	}

	for _, p := range cases {
		got := Distance(p[0], p[1], p[2], p[3])
		if math.IsNaN(got) {
			t.Errorf("Distance(%v) = NaN", p)
		}
		if got < 0 {
			t.Errorf("Distance(%v) = %v, want non-negative", p, got)
		}
	}
}

func TestDistanceKnownOrdering(t *testing.T) {
	// Reference point and pickups from the ride listing use case: the
	// distances must rank strictly ascending.
	refLat, refLon := 37.7749, -122.4194
	near := Distance(refLat, refLon, 37.7749, -122.4194)
	mid := Distance(refLat, refLon, 37.8, -122.45)
	far := Distance(refLat, refLon, 37.9, -122.0)

	if near > 1e-6 {
		t.Errorf("distance to identical pickup = %v, want 0", near)
	}
	if mid <= near || far <= mid {
		t.Errorf("distances not ascending: %v, %v, %v", near, mid, far)
	}
	if mid < 5 || mid > 9 {
		t.Errorf("mid distance = %v km, want roughly 6.8 km", mid)
	}
}

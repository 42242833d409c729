package domain

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		p := GeoPoint{Lat: -12.0464, Lon: -77.0428}
		if d := p.DistanceKm(p); d != 0 {
			t.Errorf("DistanceKm to self = %v, want 0", d)
		}
	})

	t.Run("lima to arequipa is roughly 766 km", func(t *testing.T) {
		lima := GeoPoint{Lat: -12.0464, Lon: -77.0428}
		arequipa := GeoPoint{Lat: -16.409, Lon: -71.5375}

		d := lima.DistanceKm(arequipa)
		if math.Abs(d-766) > 10 {
			t.Errorf("DistanceKm = %v, want about 766", d)
		}
	})

	t.Run("is symmetric", func(t *testing.T) {
		a := GeoPoint{Lat: -12.06, Lon: -77.04}
		b := GeoPoint{Lat: -12.12, Lon: -77.03}
		if ab, ba := a.DistanceKm(b), b.DistanceKm(a); math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	})
}

func TestRoundedDistanceKm(t *testing.T) {
	a := GeoPoint{Lat: -12.06, Lon: -77.04}
	b := GeoPoint{Lat: -12.12, Lon: -77.03}

	d := a.RoundedDistanceKm(b)
	if d != math.Round(d*1000)/1000 {
		t.Errorf("RoundedDistanceKm = %v, want three-decimal precision", d)
	}
	if d <= 0 {
		t.Errorf("RoundedDistanceKm = %v, want positive", d)
	}
}

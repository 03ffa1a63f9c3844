package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name             string
		p, q             LatLng
		wantMeters       float64
		tolerancePercent float64
	}{
		{
			name:             "Singapore CBD to Changi Airport",
			p:                LatLng{Lon: 103.8513, Lat: 1.2830},
			q:                LatLng{Lon: 103.9915, Lat: 1.3644},
			wantMeters:       18_023,
			tolerancePercent: 1,
		},
		{
			name:       "Same point",
			p:          LatLng{Lon: 103.8198, Lat: 1.3521},
			q:          LatLng{Lon: 103.8198, Lat: 1.3521},
			wantMeters: 0,
		},
		{
			name:             "London to Paris",
			p:                LatLng{Lon: -0.1278, Lat: 51.5074},
			q:                LatLng{Lon: 2.3522, Lat: 48.8566},
			wantMeters:       343_500,
			tolerancePercent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p, tt.q)
			if tt.wantMeters == 0 {
				if got != 0 {
					t.Errorf("expected 0, got %f", got)
				}
				return
			}
			diff := math.Abs(got-tt.wantMeters) / tt.wantMeters * 100
			if diff > tt.tolerancePercent {
				t.Errorf("Distance = %f m, want ~%f m (diff %.1f%%)", got, tt.wantMeters, diff)
			}
		})
	}
}

func TestNormalizeAzimuth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.9, 359.9},
		{360, 0},
		{720, 0},
		{-10, 350},
		{-370, 350},
		{1080.5, 0.5},
	}
	for _, tt := range tests {
		got := NormalizeAzimuth(tt.in)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAzimuth(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("NormalizeAzimuth(%v) = %v, out of [0,360)", tt.in, got)
		}
	}
}

func TestNormalizeAzimuthPeriodicity(t *testing.T) {
	base := 47.25
	for k := -3; k <= 3; k++ {
		got := NormalizeAzimuth(base + 360*float64(k))
		want := NormalizeAzimuth(base)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("norm(a+360*%d) = %v, want %v", k, got, want)
		}
	}
}

func TestAzimuthCardinal(t *testing.T) {
	origin := LatLng{Lon: 103.8, Lat: 1.3}
	north := LatLng{Lon: 103.8, Lat: 1.31}
	east := LatLng{Lon: 103.81, Lat: 1.3}

	if got := Azimuth(origin, north); math.Abs(got-0) > 1 {
		t.Errorf("Azimuth north = %v, want ~0", got)
	}
	if got := Azimuth(origin, east); math.Abs(got-90) > 1 {
		t.Errorf("Azimuth east = %v, want ~90", got)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	line := []LatLng{{Lon: 103.80, Lat: 1.30}, {Lon: 103.81, Lat: 1.30}, {Lon: 103.82, Lat: 1.30}}
	if got := Interpolate(line, 0); got != line[0] {
		t.Errorf("Interpolate(0) = %v, want %v", got, line[0])
	}
	if got := Interpolate(line, 1); got != line[len(line)-1] {
		t.Errorf("Interpolate(1) = %v, want %v", got, line[len(line)-1])
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	line := []LatLng{{Lon: 103.80, Lat: 1.30}, {Lon: 103.82, Lat: 1.30}}
	mid := Interpolate(line, 0.5)
	want := LatLng{Lon: 103.81, Lat: 1.30}
	if math.Abs(mid.Lon-want.Lon) > 1e-6 || math.Abs(mid.Lat-want.Lat) > 1e-6 {
		t.Errorf("Interpolate(0.5) = %v, want ~%v", mid, want)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	line := []LatLng{{Lon: 103.80, Lat: 1.30}, {Lon: 103.81, Lat: 1.30}, {Lon: 103.82, Lat: 1.30}}
	for _, f := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := Interpolate(line, f)
		_, gotF := Project(line, p)
		if math.Abs(gotF-f) > 1e-3 {
			t.Errorf("Project(Interpolate(%v)) fraction = %v, want ~%v", f, gotF, f)
		}
	}
}

func TestPointToSegmentDist(t *testing.T) {
	tests := []struct {
		name      string
		a, b, q   LatLng
		wantRatio float64
		maxDistM  float64
	}{
		{
			name:      "Point at start",
			a:         LatLng{Lon: 103.8200, Lat: 1.3500},
			b:         LatLng{Lon: 103.8200, Lat: 1.3600},
			q:         LatLng{Lon: 103.8200, Lat: 1.3500},
			wantRatio: 0,
			maxDistM:  1,
		},
		{
			name:      "Point at end",
			a:         LatLng{Lon: 103.8200, Lat: 1.3500},
			b:         LatLng{Lon: 103.8200, Lat: 1.3600},
			q:         LatLng{Lon: 103.8200, Lat: 1.3600},
			wantRatio: 1,
			maxDistM:  1,
		},
		{
			name:      "Degenerate segment",
			a:         LatLng{Lon: 103.8200, Lat: 1.3500},
			b:         LatLng{Lon: 103.8200, Lat: 1.3500},
			q:         LatLng{Lon: 103.8210, Lat: 1.3500},
			wantRatio: 0,
			maxDistM:  200,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ratio := PointToSegmentDist(tt.a, tt.b, tt.q)
			if dist > tt.maxDistM {
				t.Errorf("dist = %f, want <= %f", dist, tt.maxDistM)
			}
			if math.Abs(ratio-tt.wantRatio) > 0.05 {
				t.Errorf("ratio = %f, want ~%f", ratio, tt.wantRatio)
			}
		})
	}
}

func BenchmarkDistance(b *testing.B) {
	p := LatLng{Lon: 103.8198, Lat: 1.3521}
	q := LatLng{Lon: 103.8520, Lat: 1.2905}
	for b.Loop() {
		Distance(p, q)
	}
}

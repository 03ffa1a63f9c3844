package hmm

import (
	"math"
	"testing"

	"github.com/azybler/hmm-mapmatch/internal/config"
	"github.com/azybler/hmm-mapmatch/internal/geo"
	"github.com/azybler/hmm-mapmatch/internal/road"
)

func straightRoadPoint(t *testing.T, fraction float64) road.RoadPoint {
	t.Helper()
	br := &road.BaseRoad{
		ID: 1, RefID: 1, Source: 1, Target: 2, Direction: road.DirForward,
		Type: "residential", Priority: 1.0, MaxSpeedForward: 13.9,
		Length:   geo.Distance(geo.LatLng{Lon: 0, Lat: 0}, geo.LatLng{Lon: 0, Lat: 0.001}),
		Geometry: []geo.LatLng{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 0.001}},
	}
	m, err := road.BuildRoadMap([]*road.BaseRoad{br})
	if err != nil {
		t.Fatalf("BuildRoadMap: %v", err)
	}
	return road.RoadPoint{Edge: m.Edges()[0], Fraction: fraction}
}

func TestEmissionProbabilityPeaksAtZeroDistance(t *testing.T) {
	cfg := config.DefaultMatcherConfig()
	rp := straightRoadPoint(t, 0.5)
	onPoint := Sample{Time: 1, Point: rp.Point(), Azimuth: math.NaN()}
	near := EmissionProbability(onPoint, rp, cfg)

	far := Sample{Time: 1, Point: geo.LatLng{Lon: 1, Lat: 1}, Azimuth: math.NaN()}
	farProb := EmissionProbability(far, rp, cfg)

	if near <= farProb {
		t.Errorf("emission at zero distance (%v) should exceed emission far away (%v)", near, farProb)
	}
}

func TestEmissionProbabilityAzimuthPenalizesMismatch(t *testing.T) {
	cfg := config.DefaultMatcherConfig()
	rp := straightRoadPoint(t, 0.5) // tangent azimuth ~0 (due north)

	aligned := Sample{Time: 1, Point: rp.Point(), Azimuth: 0}
	opposite := Sample{Time: 1, Point: rp.Point(), Azimuth: 180}

	pAligned := EmissionProbability(aligned, rp, cfg)
	pOpposite := EmissionProbability(opposite, rp, cfg)

	if pAligned <= pOpposite {
		t.Errorf("aligned azimuth emission (%v) should exceed opposite azimuth emission (%v)", pAligned, pOpposite)
	}
}

func TestEmissionProbabilityGPSOutageWidensSigma(t *testing.T) {
	cfg := config.DefaultMatcherConfig()
	rp := straightRoadPoint(t, 0.5)
	offset := geo.LatLng{Lon: rp.Point().Lon + 0.0005, Lat: rp.Point().Lat}

	normal := Sample{Time: 1, Point: offset, Azimuth: math.NaN()}
	outage := Sample{Time: 1, Point: offset, Azimuth: math.NaN(), GPSOutage: true}

	pNormal := EmissionProbability(normal, rp, cfg)
	pOutage := EmissionProbability(outage, rp, cfg)

	if pOutage <= pNormal {
		t.Errorf("widened-sigma outage emission (%v) should exceed tight-sigma emission (%v) at this offset", pOutage, pNormal)
	}
}

func TestAngularDiffWrapsAround(t *testing.T) {
	if d := angularDiff(350, 10); math.Abs(d-(-20)) > 1e-9 {
		t.Errorf("angularDiff(350, 10) = %v, want -20", d)
	}
	if d := angularDiff(10, 350); math.Abs(d-20) > 1e-9 {
		t.Errorf("angularDiff(10, 350) = %v, want 20", d)
	}
}

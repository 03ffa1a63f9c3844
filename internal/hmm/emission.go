package hmm

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/azybler/hmm-mapmatch/internal/config"
	"github.com/azybler/hmm-mapmatch/internal/geo"
	"github.com/azybler/hmm-mapmatch/internal/road"
)

// EmissionProbability computes p_e(c): a zero-mean Gaussian of the
// great-circle distance between the sample and the candidate, optionally
// scaled by an azimuth concentration term when the sample carries a heading.
// GPSOutage samples widen sigma instead of contributing an azimuth term.
func EmissionProbability(s Sample, candidate road.RoadPoint, cfg config.MatcherConfig) float64 {
	sigma := cfg.Sigma
	if s.GPSOutage && cfg.GPSOutageSigmaMultiplier > 0 {
		sigma *= cfg.GPSOutageSigmaMultiplier
	}
	if sigma <= 0 {
		return 0
	}

	d := geo.Distance(s.Point, candidate.Point())
	spatial := distuv.Normal{Mu: 0, Sigma: sigma}.Prob(d)

	if s.GPSOutage || !s.HasAzimuth() {
		return spatial
	}

	diff := angularDiff(s.Azimuth, candidate.Azimuth())
	return spatial * azimuthKernel(diff, cfg.AzimuthKappa)
}

// angularDiff returns the signed difference in degrees between two
// azimuths, normalized into (-180, 180].
func angularDiff(a, b float64) float64 {
	d := geo.NormalizeAzimuth(a - b)
	if d > 180 {
		d -= 360
	}
	return d
}

// azimuthKernel is an unnormalized von-Mises-style concentration kernel on
// the angular difference in degrees, peaking at 1 when diffDeg == 0. gonum
// ships no circular-statistics distribution, so this is hand-rolled on
// math.Cos rather than reached for a library that doesn't exist in the
// retrieval pack.
func azimuthKernel(diffDeg, kappa float64) float64 {
	if kappa <= 0 {
		return 1
	}
	rad := diffDeg * math.Pi / 180
	return math.Exp(kappa * (math.Cos(rad) - 1))
}

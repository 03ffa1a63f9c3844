// Package hmm implements the online Viterbi-style forward filter: emission
// and transition probability scoring and the generic forward pass.
package hmm

import (
	"errors"
	"math"

	"github.com/azybler/hmm-mapmatch/internal/geo"
)

// Sample is an immutable raw position measurement at time t (z_t). Optional
// fields use NaN (for floats) as the absence sentinel.
type Sample struct {
	ID        string
	TraceID   string
	Time      int64 // ms since epoch
	Point     geo.LatLng
	Azimuth   float64 // degrees [0,360); NaN if absent
	GPSOutage bool
	Velocity  float64 // m/s; NaN if absent
	Accuracy  float64 // meters; NaN if absent
}

// Validate rejects degenerate samples: a missing time or a non-finite point
// is a caller-visible failure per the engine's error-handling design.
func (s Sample) Validate() error {
	if s.Time <= 0 {
		return errors.New("hmm: degenerate sample: non-positive time")
	}
	if math.IsNaN(s.Point.Lon) || math.IsInf(s.Point.Lon, 0) {
		return errors.New("hmm: degenerate sample: non-finite longitude")
	}
	if math.IsNaN(s.Point.Lat) || math.IsInf(s.Point.Lat, 0) {
		return errors.New("hmm: degenerate sample: non-finite latitude")
	}
	return nil
}

// HasAzimuth reports whether the sample carries a usable azimuth.
func (s Sample) HasAzimuth() bool { return !math.IsNaN(s.Azimuth) }

package interchange

import (
	"math"

	"github.com/azybler/hmm-mapmatch/internal/hmm"
)

// Sample is the normative JSON wire shape of hmm.Sample.
type Sample struct {
	ID        string   `json:"id"`
	Time      int64    `json:"time"`
	Point     WKTPoint `json:"point"`
	Azimuth   *float64 `json:"azimuth,omitempty"`
	GPSOutage *bool    `json:"gpsOutage,omitempty"`
	Velocity  *float64 `json:"velocity,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	TraceID   string   `json:"traceId,omitempty"`
}

// FromSample converts a domain Sample to its wire shape.
func FromSample(s hmm.Sample) Sample {
	w := Sample{
		ID:      s.ID,
		Time:    s.Time,
		Point:   WKTPoint(s.Point),
		TraceID: s.TraceID,
	}
	if !math.IsNaN(s.Azimuth) {
		v := s.Azimuth
		w.Azimuth = &v
	}
	if s.GPSOutage {
		v := true
		w.GPSOutage = &v
	}
	if !math.IsNaN(s.Velocity) {
		v := s.Velocity
		w.Velocity = &v
	}
	if !math.IsNaN(s.Accuracy) {
		v := s.Accuracy
		w.Accuracy = &v
	}
	return w
}

// ToSample converts a wire Sample back to the domain type.
func ToSample(w Sample) hmm.Sample {
	s := hmm.Sample{
		ID:        w.ID,
		TraceID:   w.TraceID,
		Time:      w.Time,
		Point:     geoLatLng(w.Point),
		Azimuth:   math.NaN(),
		Velocity:  math.NaN(),
		Accuracy:  math.NaN(),
		GPSOutage: w.GPSOutage != nil && *w.GPSOutage,
	}
	if w.Azimuth != nil {
		s.Azimuth = *w.Azimuth
	}
	if w.Velocity != nil {
		s.Velocity = *w.Velocity
	}
	if w.Accuracy != nil {
		s.Accuracy = *w.Accuracy
	}
	return s
}

// Package config centralizes the engine's tunable defaults into a single
// options struct, with a DefaultConfig-style constructor.
package config

import "time"

// MatcherConfig holds every tunable parameter of the HMM filter and
// Matcher façade, enumerated in the external-interfaces configuration list.
type MatcherConfig struct {
	// Sigma is the emission spatial-noise standard deviation, in meters.
	Sigma float64
	// Beta is the transition route/straight-line deviation scale, in meters.
	Beta float64
	// Radius is the initial candidate search radius, in meters.
	Radius float64
	// RadiusMax caps how far the Matcher widens Radius when a step yields
	// no candidates.
	RadiusMax float64
	// VMax is the speed ceiling used to bound transition routing, in m/s.
	VMax float64
	// AzimuthKappa is the concentration parameter of the azimuth emission
	// kernel; higher values penalize azimuth mismatch more sharply.
	AzimuthKappa float64
	// GPSOutageSigmaMultiplier widens Sigma for samples with GPSOutage set,
	// per the engine's resolved gpsOutage-handling open question.
	GPSOutageSigmaMultiplier float64

	// MinInterval gates out samples arriving sooner than this after the
	// last accepted sample for the same trace. Zero disables the gate.
	MinInterval time.Duration
	// MinDistance gates out samples closer than this (meters) to the last
	// accepted sample. Zero disables the gate.
	MinDistance float64

	// StateWindow bounds how long (wall-clock span of stored state vectors)
	// KState retains predecessor history. Zero disables the time bound.
	StateWindow time.Duration
	// StateCount bounds how many past state vectors KState retains. Zero
	// disables the count bound.
	StateCount int
}

// DefaultMatcherConfig returns the configuration defaults enumerated in the
// engine's external-interfaces section.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		Sigma:                    5.0,
		Beta:                     5.0,
		Radius:                   200.0,
		RadiusMax:                500.0,
		VMax:                     36.0, // ~130 km/h
		AzimuthKappa:             2.0,
		GPSOutageSigmaMultiplier: 4.0,
		MinInterval:              0,
		MinDistance:              0,
		StateWindow:              0,
		StateCount:               0,
	}
}

package orbitlib

import "math"

// SearchSettings tunes the closest-approach search. The coarse scan samples
// the separation function uniformly across the interval: a crossing that
// enters and leaves the threshold entirely within one sampling interval is
// missed. That blind spot is part of the contract, tighten Samples to narrow
// it.
type SearchSettings struct {
	Samples             int     // coarse samples across the search interval
	Tolerance           float64 // bracket width below which refinement stops, in seconds
	MaxRefinements      uint    // cap on secant iterations
	PredictionTolerance float64 // tolerance handed to UniversalPrediction
}

// DefaultSearchSettings returns the settings from the library configuration.
func DefaultSearchSettings() SearchSettings {
	cfg := libConfig()
	return SearchSettings{
		Samples:             cfg.searchSamples,
		Tolerance:           cfg.searchTolerance,
		MaxRefinements:      cfg.searchMaxIters,
		PredictionTolerance: cfg.predictionTolerance,
	}
}

// CrossesWithinDistance returns the earliest time in [start, end] at which the
// separation between this orbit and the other falls to the provided distance,
// using the default search settings. The second return is false if no
// crossing was found.
func (o *Orbit) CrossesWithinDistance(other *Orbit, distance, start, end float64) (float64, bool) {
	return o.CrossesWithinDistanceSettings(other, distance, start, end, DefaultSearchSettings())
}

// CrossesWithinDistanceSettings is CrossesWithinDistance with explicit search
// settings. The two orbits are predicted independently; the search first scans
// for a sign change of separation-minus-distance between consecutive samples,
// then refines the bracket with a regula-falsi secant until it is narrower
// than the tolerance or the refinement cap is reached.
func (o *Orbit) CrossesWithinDistanceSettings(other *Orbit, distance, start, end float64, settings SearchSettings) (float64, bool) {
	separation := func(t float64) (float64, bool) {
		ν0, err := o.UniversalPrediction(t, settings.PredictionTolerance)
		if err != nil {
			return 0, false
		}
		ν1, err := other.UniversalPrediction(t, settings.PredictionTolerance)
		if err != nil {
			return 0, false
		}
		R0, _ := o.RVAtTrueAnomaly(ν0)
		R1, _ := other.RVAtTrueAnomaly(ν1)
		for j := 0; j < 3; j++ {
			R0[j] -= R1[j]
		}
		return Norm(R0) - distance, true
	}

	step := (end - start) / float64(settings.Samples)
	tPrev := start
	fPrev, ok := separation(tPrev)
	if !ok {
		return 0, false
	}
	if fPrev < 0 {
		// Already within the threshold at the start of the interval.
		return start, true
	}
	for k := 1; k <= settings.Samples; k++ {
		t := start + float64(k)*step
		f, ok := separation(t)
		if !ok {
			return 0, false
		}
		if f < 0 || (f == 0 && fPrev > 0) {
			return refineCrossing(separation, tPrev, t, fPrev, f, settings)
		}
		tPrev, fPrev = t, f
	}
	return 0, false
}

// refineCrossing narrows a bracketing interval [a, b] with fa > 0 > fb via
// regula falsi, recomputing the kept endpoint's function value each iteration.
func refineCrossing(separation func(float64) (float64, bool), a, b, fa, fb float64, settings SearchSettings) (float64, bool) {
	if fb == 0 {
		return b, true
	}
	m := b
	for iteration := uint(0); iteration < settings.MaxRefinements && b-a > settings.Tolerance; iteration++ {
		m = b - fb*(b-a)/(fb-fa)
		fm, ok := separation(m)
		if !ok {
			return 0, false
		}
		if fm == 0 {
			return m, true
		}
		if math.Signbit(fm) == math.Signbit(fa) {
			a, fa = m, fm
		} else {
			b, fb = m, fm
		}
	}
	return m, true
}

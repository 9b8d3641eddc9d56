package orbitlib

import (
	"fmt"
	"math"
)

// UniversalPrediction returns the true anomaly of this orbit at the provided
// time, using the universal variable formulation of Kepler's problem. The one
// Newton iteration, parameterized by the sign of α, is valid uniformly across
// circular, elliptical and hyperbolic trajectories and stays well conditioned
// near eccentricity 1. Iteration stops once the Newton step falls below the
// provided tolerance; exceeding the configured iteration cap is reported as an
// error rather than looping forever.
func (o *Orbit) UniversalPrediction(t, tolerance float64) (float64, error) {
	μ := o.Origin.μ
	sqrtμ := math.Sqrt(μ)
	Δt := t - o.epoch

	x := sqrtμ * math.Abs(o.α) * Δt
	maxIter := libConfig().newtonMaxIters
	var iteration uint
	for {
		z := o.α * x * x
		c := StumpffC(z)
		s := StumpffS(z)
		f := o.r0Norm*o.vr0/sqrtμ*x*x*c + (1-o.α*o.r0Norm)*x*x*x*s + o.r0Norm*x - sqrtμ*Δt
		fPrime := o.r0Norm*o.vr0/sqrtμ*x*(1-z*s) + (1-o.α*o.r0Norm)*x*x*c + o.r0Norm
		ratio := f / fPrime
		x -= ratio
		if math.Abs(ratio) <= tolerance {
			break
		}
		iteration++
		if iteration > maxIter {
			return 0, fmt.Errorf("universal prediction did not converge after %d iterations", maxIter)
		}
	}

	// Convert the converged universal anomaly back to a true anomaly via the
	// conic-appropriate eccentric anomaly chain.
	if o.kind == Hyperbola {
		H0 := HyperbolicFromTrueν(o.ν0, o.e)
		H := x/math.Sqrt(-o.a) + H0
		return TrueνFromHyperbolic(H, o.e), nil
	}
	E0 := EccentricFromTrueν(o.ν0, o.e)
	E := x/math.Sqrt(o.a) + E0
	return TrueνFromEccentric(E, o.e), nil
}

// TimeOfFlight returns the seconds needed to travel from the start anomaly to
// the end anomaly. For elliptical orbits an end mean anomaly numerically below
// the start indicates a pass through periapsis, and one full revolution is
// added before differencing.
func (o *Orbit) TimeOfFlight(νStart, νEnd float64) float64 {
	μ := o.Origin.μ
	if o.kind == Hyperbola {
		mStart := MeanFromHyperbolic(HyperbolicFromTrueν(νStart, o.e), o.e)
		mEnd := MeanFromHyperbolic(HyperbolicFromTrueν(νEnd, o.e), o.e)
		return (mEnd - mStart) * math.Sqrt(math.Pow(-o.a, 3)/μ)
	}
	mStart := MeanFromEccentric(EccentricFromTrueν(νStart, o.e), o.e)
	mEnd := MeanFromEccentric(EccentricFromTrueν(νEnd, o.e), o.e)
	if mEnd < mStart {
		mEnd += 2 * math.Pi
	}
	return (mEnd - mStart) * math.Sqrt(math.Pow(o.a, 3)/μ)
}

// TimeToEscape returns the seconds from the provided true anomaly until the
// orbit crosses its parent's sphere of influence, +Inf for closed orbits or
// for a parent with an infinite sphere of influence.
func (o *Orbit) TimeToEscape(ν float64) float64 {
	if o.kind != Hyperbola || math.IsInf(o.Origin.SOI(), 1) {
		return math.Inf(1)
	}
	νEscape, ok := o.TrueAnomalyAtRadius(o.Origin.SOI())
	if !ok {
		return math.Inf(1)
	}
	mEscape := MeanFromHyperbolic(HyperbolicFromTrueν(νEscape, o.e), o.e)
	m := MeanFromHyperbolic(HyperbolicFromTrueν(ν, o.e), o.e)
	return (mEscape - m) * math.Sqrt(math.Pow(-o.a, 3)/o.Origin.μ)
}

package orbitlib

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceε     = 2e1                          // 20 km
	// perturbε is the nudge (km/s) applied to a state vector whose derived
	// elements fall exactly on a degenerate geometry.
	perturbε = 1e-9
)

// Orbit defines a two-body conic trajectory about one ParentBody as of one
// reference epoch. An Orbit must not be mutated once returned; a change in
// trajectory is represented by deriving a new Orbit. The only exception is the
// destination-reuse constructors, see NewOrbitFromOEInto.
type Orbit struct {
	Origin *ParentBody

	kind          ConicType
	a, e, i, Ω, ω float64
	b, p          float64
	rPeri, rApo   float64
	ξ, h          float64
	period        float64

	epoch, ν0 float64
	escape    float64 // seconds from epoch to SOI escape, +Inf unless hyperbolic

	// Universal-formulation cache, derived once at construction.
	α      float64
	r0, v0 [3]float64
	r0Norm float64
	v0Norm float64
	vr0    float64
	rot    *mat64.Dense // perifocal to inertial
}

// NewOrbitFromOE creates an orbit from the classical orbital elements.
// All angles are in radians, distances in km, the epoch in seconds. By this
// library's convention the semimajor axis of a hyperbolic orbit is negative.
// Exact parabolic elements (e=1) are rejected.
func NewOrbitFromOE(a, e, i, Ω, ω, ν, epoch float64, body *ParentBody) (*Orbit, error) {
	o := new(Orbit)
	if err := NewOrbitFromOEInto(o, a, e, i, Ω, ω, ν, epoch, body); err != nil {
		return nil, err
	}
	return o, nil
}

// NewOrbitFromOEInto derives the orbit into dst instead of allocating. The
// caller must hold exclusive access to dst for the duration of the call: no
// other reader may observe dst mid-derivation.
func NewOrbitFromOEInto(dst *Orbit, a, e, i, Ω, ω, ν, epoch float64, body *ParentBody) error {
	if e < 0 {
		return errors.New("eccentricity cannot be negative")
	}
	kind := ConicFromEccentricity(e)
	if kind == Parabola {
		return errors.New("exact parabolic orbits are not supported")
	}
	dst.setElements(a, e, i, Ω, ω, ν, epoch, body, kind)
	R, V := dst.RVAtTrueAnomaly(ν)
	dst.setEpochState(R, V)
	return nil
}

// NewOrbitFromRV determines the orbital elements from the R and V vectors at
// the provided epoch (Vallado's RV2COE, page 113). States whose derived
// eccentricity or inclination falls exactly on a degenerate geometry are
// recovered internally, never surfaced to the caller.
func NewOrbitFromRV(R, V []float64, epoch float64, body *ParentBody) *Orbit {
	o := new(Orbit)
	NewOrbitFromRVInto(o, R, V, epoch, body)
	return o
}

// NewOrbitFromRVInto determines the orbit into dst instead of allocating,
// under the same aliasing contract as NewOrbitFromOEInto.
func NewOrbitFromRVInto(dst *Orbit, R, V []float64, epoch float64, body *ParentBody) {
	if len(R) != 3 || len(V) != 3 {
		panic("R and V must be 3x1 vectors")
	}
	μ := body.μ
	v := make([]float64, 3)
	copy(v, V)
	var a, e, i, Ω, ω, ν float64
	for {
		r := Norm(R)
		vNorm := Norm(v)
		hVec := Cross(R, v)
		ξ := vNorm*vNorm/2 - μ/r
		a = -μ / (2 * ξ)
		eVec := make([]float64, 3, 3)
		for j := 0; j < 3; j++ {
			eVec[j] = ((vNorm*vNorm-μ/r)*R[j] - Dot(R, v)*v[j]) / μ
		}
		e = Norm(eVec)
		i = math.Acos(hVec[2] / Norm(hVec))
		// The acos quadrant corrections below are undefined for exactly
		// circular, parabolic or equatorial geometries: nudge the offending
		// velocity component and rederive until neither case is hit.
		if e == 0 || e == 1 {
			v[0] += perturbε
			continue
		}
		if i == 0 || i == math.Pi {
			v[2] += perturbε
			continue
		}
		n := Cross([]float64{0, 0, 1}, hVec)
		Ω = math.Acos(n[0] / Norm(n))
		if n[1] < 0 {
			Ω = 2*math.Pi - Ω
		}
		ω = math.Acos(Dot(n, eVec) / (Norm(n) * e))
		if eVec[2] < 0 {
			ω = 2*math.Pi - ω
		}
		cosν := Dot(eVec, R) / (e * r)
		if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
			// Edge case where rounding pushes cosν barely out of [-1,1].
			cosν = sign(cosν)
		}
		ν = math.Acos(cosν)
		if Dot(R, v) < 0 {
			ν = 2*math.Pi - ν
		}
		break
	}
	dst.setElements(a, e, i, Ω, ω, ν, epoch, body, ConicFromEccentricity(e))
	// The supplied state *is* the epoch state, no recomputation needed.
	dst.setEpochState(R, v)
}

// setElements assembles every static field from the classical elements.
func (o *Orbit) setElements(a, e, i, Ω, ω, ν, epoch float64, body *ParentBody, kind ConicType) {
	μ := body.μ
	o.Origin = body
	o.kind = kind
	o.a, o.e, o.i, o.Ω, o.ω = a, e, i, Ω, ω
	o.p = a * (1 - e*e)
	o.h = math.Sqrt(μ * o.p)
	o.ξ = -μ / (2 * a)
	o.rPeri = a * (1 - e)
	if kind == Hyperbola {
		o.b = -a * math.Sqrt(e*e-1)
		o.rApo = math.Inf(1)
		o.period = math.Inf(1)
	} else {
		o.b = a * math.Sqrt(1-e*e)
		o.rApo = a * (1 + e)
		o.period = 2 * math.Pi * math.Sqrt(math.Pow(a, 3)/μ)
	}
	o.α = 1 / a
	o.epoch = epoch
	o.ν0 = ν
	o.rot = PQW2ECI(i, ω, Ω)
}

// setEpochState populates the universal-formulation cache.
func (o *Orbit) setEpochState(R, V []float64) {
	copy(o.r0[:], R)
	copy(o.v0[:], V)
	o.r0Norm = Norm(R)
	o.v0Norm = Norm(V)
	o.vr0 = Dot(R, V) / o.r0Norm
	o.escape = math.Inf(1)
	if o.kind == Hyperbola {
		o.escape = o.TimeToEscape(o.ν0)
	}
}

// PerifocalRV returns the position and velocity at true anomaly ν in the
// perifocal frame. The z component is always zero in this frame.
func (o *Orbit) PerifocalRV(ν float64) (R, V []float64) {
	sinν, cosν := math.Sincos(ν)
	r := o.p / (1 + o.e*cosν)
	R = []float64{r * cosν, r * sinν, 0}
	V = []float64{-o.Origin.μ / o.h * sinν, o.Origin.μ / o.h * (o.e + cosν), 0}
	return
}

// RVAtTrueAnomaly returns the position and velocity at true anomaly ν in the
// parent body's inertial frame.
func (o *Orbit) RVAtTrueAnomaly(ν float64) (R, V []float64) {
	R, V = o.PerifocalRV(ν)
	return MxV33(o.rot, R), MxV33(o.rot, V)
}

// RV returns copies of the inertial state at epoch, cached at construction.
func (o *Orbit) RV() (R, V []float64) {
	R = make([]float64, 3)
	V = make([]float64, 3)
	copy(R, o.r0[:])
	copy(V, o.v0[:])
	return
}

// TrueAnomalyAtRadius inverts the trajectory equation for the true anomaly at
// which the orbit reaches radius r. The second return is false if the conic
// never reaches that radius.
func (o *Orbit) TrueAnomalyAtRadius(r float64) (float64, bool) {
	cosν := (o.p - r) / (r * o.e)
	if math.IsNaN(cosν) || math.Abs(cosν) > 1 {
		return 0, false
	}
	return math.Acos(cosν), true
}

// PlaneNormal returns the unit normal of the orbital plane, i.e. the third
// column of the perifocal to inertial rotation.
func (o *Orbit) PlaneNormal() []float64 {
	return []float64{o.rot.At(0, 2), o.rot.At(1, 2), o.rot.At(2, 2)}
}

// Kind returns the conic classification of this orbit.
func (o *Orbit) Kind() ConicType {
	return o.kind
}

// Eccentricity returns the orbit's eccentricity.
func (o *Orbit) Eccentricity() float64 {
	return o.e
}

// SemimajorAxis returns the semimajor axis, negative for hyperbolic orbits.
func (o *Orbit) SemimajorAxis() float64 {
	return o.a
}

// SemiminorAxis returns the semiminor axis.
func (o *Orbit) SemiminorAxis() float64 {
	return o.b
}

// SemiParameter returns the semi-latus rectum.
func (o *Orbit) SemiParameter() float64 {
	return o.p
}

// Periapsis returns the periapsis radius.
func (o *Orbit) Periapsis() float64 {
	return o.rPeri
}

// Apoapsis returns the apoapsis radius, +Inf for open trajectories.
func (o *Orbit) Apoapsis() float64 {
	return o.rApo
}

// Inclination returns the inclination in radians.
func (o *Orbit) Inclination() float64 {
	return o.i
}

// RAAN returns the longitude of the ascending node in radians.
func (o *Orbit) RAAN() float64 {
	return o.Ω
}

// ArgPeriapsis returns the argument of periapsis in radians.
func (o *Orbit) ArgPeriapsis() float64 {
	return o.ω
}

// Energyξ returns the specific mechanical energy ξ.
func (o *Orbit) Energyξ() float64 {
	return o.ξ
}

// HNorm returns the norm of the specific angular momentum.
func (o *Orbit) HNorm() float64 {
	return o.h
}

// Period returns the orbital period in seconds, +Inf unless elliptical.
func (o *Orbit) Period() float64 {
	return o.period
}

// MeanMotion returns the mean motion in rad/s.
func (o *Orbit) MeanMotion() float64 {
	return math.Sqrt(o.Origin.μ / math.Abs(math.Pow(o.a, 3)))
}

// Epoch returns the reference epoch in seconds.
func (o *Orbit) Epoch() float64 {
	return o.epoch
}

// TrueAnomalyAtEpoch returns ν at the reference epoch.
func (o *Orbit) TrueAnomalyAtEpoch() float64 {
	return o.ν0
}

// Alpha returns the reciprocal semimajor axis used by the universal
// formulation, negative for hyperbolic orbits.
func (o *Orbit) Alpha() float64 {
	return o.α
}

// RNorm returns the radius magnitude at epoch.
func (o *Orbit) RNorm() float64 {
	return o.r0Norm
}

// VNorm returns the velocity magnitude at epoch.
func (o *Orbit) VNorm() float64 {
	return o.v0Norm
}

// RadialVNorm returns the radial component of the velocity at epoch.
func (o *Orbit) RadialVNorm() float64 {
	return o.vr0
}

// TimeToEscapeAtEpoch returns the seconds from epoch until the orbit leaves
// its parent's sphere of influence, +Inf unless hyperbolic with a finite SOI.
func (o *Orbit) TimeToEscapeAtEpoch() float64 {
	return o.escape
}

// Elements returns the six classical orbital elements at epoch.
func (o *Orbit) Elements() (a, e, i, Ω, ω, ν float64) {
	return o.a, o.e, o.i, o.Ω, o.ω, o.ν0
}

// String implements the stringer interface (hence the value receiver).
func (o Orbit) String() string {
	return fmt.Sprintf("%s a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f ν=%.3f", o.kind, o.a, o.e, Rad2deg(o.i), Rad2deg(o.Ω), Rad2deg(o.ω), Rad2deg(o.ν0))
}

// Equals returns whether two orbits describe the same trajectory with free
// true anomaly. Use StrictlyEquals to also check the anomaly at epoch.
func (o *Orbit) Equals(o1 *Orbit) (bool, error) {
	if o.Origin != o1.Origin {
		return false, errors.New("different origin")
	}
	if !floats.EqualWithinAbs(o.a, o1.a, distanceε) {
		return false, errors.New("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if !floats.EqualWithinAbs(o.i, o1.i, angleε) {
		return false, errors.New("inclination invalid")
	}
	if !floats.EqualWithinAbs(o.Ω, o1.Ω, angleε) {
		return false, errors.New("RAAN invalid")
	}
	if !floats.EqualWithinAbs(o.ω, o1.ω, angleε) {
		return false, errors.New("argument of periapsis invalid")
	}
	return true, nil
}

// StrictlyEquals returns whether two orbits are identical.
func (o *Orbit) StrictlyEquals(o1 *Orbit) (bool, error) {
	if !floats.EqualWithinAbs(o.ν0, o1.ν0, angleε) {
		return false, errors.New("true anomaly invalid")
	}
	return o.Equals(o1)
}

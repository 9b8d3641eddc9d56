package orbitlib

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// PQW2ECI builds the rotation matrix from the perifocal frame of an orbit of
// inclination i, argument of periapsis ω and RAAN Ω to the parent body's
// inertial frame, via the 3-1-3 Euler sequence (Schaub and Junkins).
func PQW2ECI(i, ω, Ω float64) *mat64.Dense {
	si, ci := math.Sincos(i)
	sω, cω := math.Sincos(ω)
	sΩ, cΩ := math.Sincos(Ω)
	return mat64.NewDense(3, 3, []float64{cΩ*cω - sΩ*sω*ci, -cΩ*sω - sΩ*cω*ci, sΩ * si,
		sΩ*cω + cΩ*sω*ci, cΩ*cω*ci - sΩ*sω, -cΩ * si,
		sω * si, cω * si, ci})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

package orbitlib

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180
)

// Norm returns the norm of a given 3x1 vector.
func Norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Unit returns the unit vector of a given vector.
func Unit(a []float64) []float64 {
	n := Norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0, 0}
	}
	return ScalarMult(1/n, a)
}

// ScalarMult returns the vector a scaled by f.
func ScalarMult(f float64, a []float64) (b []float64) {
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = f * val
	}
	return
}

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// Dot performs the inner product via mat64/BLAS.
func Dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// Cross performs the cross product.
func Cross(a, b []float64) []float64 {
	return []float64{a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// Deg2rad converts degrees to radians, and enforces only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforces only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}

// wrap2π wraps an angle into [0, 2π).
func wrap2π(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

/* Anomaly conversions. Elliptical chains follow Vallado chapter 2, hyperbolic
chains use the half-angle tangent relations. All angles in radians. */

// EccentricFromTrueν returns the eccentric anomaly E for the true anomaly ν
// of an elliptical orbit of eccentricity e, wrapped into [0, 2π).
func EccentricFromTrueν(ν, e float64) float64 {
	sinν, cosν := math.Sincos(ν)
	return wrap2π(math.Atan2(math.Sqrt(1-e*e)*sinν, e+cosν))
}

// TrueνFromEccentric returns the true anomaly for the eccentric anomaly E of
// an elliptical orbit of eccentricity e, wrapped into [0, 2π).
func TrueνFromEccentric(E, e float64) float64 {
	sinE2, cosE2 := math.Sincos(E / 2)
	return wrap2π(2 * math.Atan2(math.Sqrt(1+e)*sinE2, math.Sqrt(1-e)*cosE2))
}

// MeanFromEccentric returns the mean anomaly from the eccentric anomaly
// (Kepler's equation, elliptical).
func MeanFromEccentric(E, e float64) float64 {
	return E - e*math.Sin(E)
}

// HyperbolicFromTrueν returns the hyperbolic eccentric anomaly H for the true
// anomaly ν of a hyperbolic orbit of eccentricity e.
func HyperbolicFromTrueν(ν, e float64) float64 {
	return 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(ν/2))
}

// TrueνFromHyperbolic returns the true anomaly for the hyperbolic eccentric
// anomaly H of a hyperbolic orbit of eccentricity e.
func TrueνFromHyperbolic(H, e float64) float64 {
	return 2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(H/2))
}

// MeanFromHyperbolic returns the mean anomaly from the hyperbolic eccentric
// anomaly (Kepler's equation, hyperbolic).
func MeanFromHyperbolic(H, e float64) float64 {
	return e*math.Sinh(H) - H
}

/* Stumpff functions, which keep the universal Kepler formulation valid on both
sides of the parabolic boundary. The z=0 constants avoid the 0/0 singularity. */

// StumpffC returns C(z).
func StumpffC(z float64) float64 {
	if z > 0 {
		return (1 - math.Cos(math.Sqrt(z))) / z
	}
	if z < 0 {
		return (1 - math.Cosh(math.Sqrt(-z))) / z
	}
	return 1 / 2.
}

// StumpffS returns S(z).
func StumpffS(z float64) float64 {
	if z > 0 {
		sz := math.Sqrt(z)
		return (sz - math.Sin(sz)) / math.Pow(sz, 3)
	}
	if z < 0 {
		sz := math.Sqrt(-z)
		return (math.Sinh(sz) - sz) / math.Pow(sz, 3)
	}
	return 1 / 6.
}

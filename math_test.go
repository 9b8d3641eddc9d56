package orbitlib

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestCross(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if !vectorsEqual(Cross(i, j), k) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqual(Cross(j, k), i) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqual(Cross([]float64{2, 3, 4}, []float64{5, 6, 7}), []float64{-3, 6, -3}) {
		t.Fatal("cross fail")
	}
	// From Vallado
	if !vectorsEqual(Cross([]float64{6524.834, 6862.875, 6448.296}, []float64{4.901327, 5.533756, -1.976341}), []float64{-4.924667792015100e4, 4.450050424118601e4, 0.246964476137900e4}) {
		t.Fatal("cross fail")
	}
}

func TestDotNormUnit(t *testing.T) {
	a := []float64{3, 4, 0}
	if !floats.EqualWithinAbs(Dot(a, []float64{1, 1, 1}), 7, 1e-12) {
		t.Fatal("dot fail")
	}
	if !floats.EqualWithinAbs(Norm(a), 5, 1e-12) {
		t.Fatal("norm fail")
	}
	if !vectorsEqual(Unit(a), []float64{0.6, 0.8, 0}) {
		t.Fatal("unit fail")
	}
	if !vectorsEqual(Unit([]float64{0, 0, 0}), []float64{0, 0, 0}) {
		t.Fatal("unit of nil vector fail")
	}
	if !vectorsEqual(ScalarMult(-2, a), []float64{-6, -8, 0}) {
		t.Fatal("scalar multiplication fail")
	}
}

func TestStumpff(t *testing.T) {
	if !floats.EqualWithinAbs(StumpffC(0), 1/2., 1e-16) {
		t.Fatal("C(0) != 1/2")
	}
	if !floats.EqualWithinAbs(StumpffS(0), 1/6., 1e-16) {
		t.Fatal("S(0) != 1/6")
	}
	// C(π²) = 2/π² and S(π²) = 1/π² exactly.
	π2 := math.Pi * math.Pi
	if !floats.EqualWithinRel(StumpffC(π2), 2/π2, 1e-12) {
		t.Fatalf("C(π²)=%f", StumpffC(π2))
	}
	if !floats.EqualWithinRel(StumpffS(π2), 1/π2, 1e-12) {
		t.Fatalf("S(π²)=%f", StumpffS(π2))
	}
	// Both branches must approach the z=0 constants.
	for _, z := range []float64{1e-8, -1e-8} {
		if !floats.EqualWithinAbs(StumpffC(z), 1/2., 1e-6) {
			t.Fatalf("C(%g)=%f not continuous at 0", z, StumpffC(z))
		}
		if !floats.EqualWithinAbs(StumpffS(z), 1/6., 1e-6) {
			t.Fatalf("S(%g)=%f not continuous at 0", z, StumpffS(z))
		}
	}
	// Hyperbolic branch: C(-4) = (cosh 2 - 1)/4.
	if !floats.EqualWithinRel(StumpffC(-4), (math.Cosh(2)-1)/4, 1e-12) {
		t.Fatalf("C(-4)=%f", StumpffC(-4))
	}
	if !floats.EqualWithinRel(StumpffS(-4), (math.Sinh(2)-2)/8, 1e-12) {
		t.Fatalf("S(-4)=%f", StumpffS(-4))
	}
}

func TestEllipticalAnomalyChain(t *testing.T) {
	for _, e := range []float64{0, 0.1, 0.5, 0.9} {
		for ν := 0.05; ν < 2*math.Pi; ν += 0.05 {
			E := EccentricFromTrueν(ν, e)
			back := TrueνFromEccentric(E, e)
			if ok, err := anglesEqual(ν, back); !ok {
				t.Fatalf("ν=%f e=%f: %s", ν, e, err)
			}
		}
	}
	// Kepler's equation at a known point.
	if !floats.EqualWithinAbs(MeanFromEccentric(math.Pi/2, 0.1), math.Pi/2-0.1, 1e-14) {
		t.Fatal("M(E=π/2, e=0.1) incorrect")
	}
	// For a circle all three anomalies coincide.
	if !floats.EqualWithinAbs(MeanFromEccentric(1.2, 0), 1.2, 1e-14) {
		t.Fatal("circular mean anomaly must equal eccentric anomaly")
	}
}

func TestHyperbolicAnomalyChain(t *testing.T) {
	e := 1.5
	νMax := math.Acos(-1 / e) // asymptote
	for _, ν := range []float64{-1.2, -0.7, -0.1, 0.1, 0.7, 1.2} {
		if math.Abs(ν) >= νMax {
			continue
		}
		H := HyperbolicFromTrueν(ν, e)
		back := TrueνFromHyperbolic(H, e)
		if !floats.EqualWithinAbs(ν, back, 1e-12) {
			t.Fatalf("ν=%f: round trip gave %f", ν, back)
		}
		// The hyperbolic Kepler equation must be odd in H.
		if !floats.EqualWithinAbs(MeanFromHyperbolic(H, e), -MeanFromHyperbolic(-H, e), 1e-12) {
			t.Fatalf("M(H) not odd at ν=%f", ν)
		}
	}
}

func TestPQW2ECIOrthonormal(t *testing.T) {
	for _, angles := range [][3]float64{{0.1, 0.2, 0.3}, {1.5, 2.8, 4.2}, {0, 0, 0}} {
		m := PQW2ECI(angles[0], angles[1], angles[2])
		var p mat64.Dense
		p.Mul(m, m.T())
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				expected := 0.0
				if i == j {
					expected = 1.0
				}
				if !floats.EqualWithinAbs(p.At(i, j), expected, 1e-14) {
					t.Fatalf("MMᵀ[%d,%d]=%f for angles %+v", i, j, p.At(i, j), angles)
				}
			}
		}
	}
}

func TestAngleConversions(t *testing.T) {
	if !floats.EqualWithinAbs(Deg2rad(180), math.Pi, 1e-14) {
		t.Fatal("Deg2rad(180) != π")
	}
	if !floats.EqualWithinAbs(Rad2deg(math.Pi), 180, 1e-12) {
		t.Fatal("Rad2deg(π) != 180")
	}
	if !floats.EqualWithinAbs(Deg2rad(-90), 3*math.Pi/2, 1e-14) {
		t.Fatal("Deg2rad(-90) != 3π/2")
	}
	if !floats.EqualWithinAbs(wrap2π(-0.5), 2*math.Pi-0.5, 1e-14) {
		t.Fatal("wrap2π(-0.5) incorrect")
	}
}

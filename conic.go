package orbitlib

// ConicType classifies a two-body trajectory. The classification is decided
// once at construction, solely from the eccentricity.
type ConicType uint8

const (
	// Circle is a trajectory of exactly zero eccentricity.
	Circle ConicType = iota + 1
	// Ellipse is a bound trajectory with eccentricity in (0, 1).
	Ellipse
	// Parabola is the e=1 boundary case. It is classified but rejected by the
	// element constructor.
	Parabola
	// Hyperbola is an escape trajectory with eccentricity above 1.
	Hyperbola
)

func (c ConicType) String() string {
	switch c {
	case Circle:
		return "circle"
	case Ellipse:
		return "ellipse"
	case Parabola:
		return "parabola"
	case Hyperbola:
		return "hyperbola"
	default:
		panic("unknown conic type")
	}
}

// Closed returns whether the trajectory is bound to its parent.
func (c ConicType) Closed() bool {
	return c == Circle || c == Ellipse
}

// ConicFromEccentricity classifies a trajectory from its eccentricity.
func ConicFromEccentricity(e float64) ConicType {
	switch {
	case e == 0:
		return Circle
	case e < 1:
		return Ellipse
	case e == 1:
		return Parabola
	default:
		return Hyperbola
	}
}

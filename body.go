package orbitlib

import (
	"errors"
	"fmt"
	"math"
)

const (
	// G is the universal gravitational constant in km^3/(kg.s^2).
	G = 6.67408e-20
)

// Ready-made root bodies. Masses are derived from the usual gravitational
// parameters (Vallado) so GM() reproduces them exactly. SetParent mutates its
// receiver, so callers building a tree should construct fresh bodies with
// NewParentBody instead of reparenting these.
var (
	Earth = NewParentBody("Earth", 3.98600433e5/G, 6378.1363)
	Moon  = NewParentBody("Moon", 4902.799/G, 1737.4)
)

// ParentBody defines a massable body which other bodies and orbits may be
// attached to. Bodies form a strict tree: at most one parent each, no cycles.
type ParentBody struct {
	Name   string
	Mass   float64 // kg
	Radius float64 // km
	μ      float64 // km^3/s^2, derived from Mass at construction

	parent   *ParentBody
	orbit    *Orbit
	children []*ParentBody
	soi      float64
}

// NewParentBody returns a root body (no parent, infinite sphere of influence)
// with its gravitational parameter derived from the provided mass in kg.
func NewParentBody(name string, mass, radius float64) *ParentBody {
	return &ParentBody{Name: name, Mass: mass, Radius: radius, μ: mass * G, soi: math.Inf(1)}
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (b *ParentBody) GM() float64 {
	return b.μ
}

// SOI returns the radius of the sphere of influence of this body, +Inf for a
// body with no parent.
func (b *ParentBody) SOI() float64 {
	return b.soi
}

// Parent returns the owning parent body, nil for a root.
func (b *ParentBody) Parent() *ParentBody {
	return b.parent
}

// Orbit returns the orbit of this body about its parent, nil for a root.
func (b *ParentBody) Orbit() *Orbit {
	return b.orbit
}

// Children returns the bodies currently attached to this one.
func (b *ParentBody) Children() []*ParentBody {
	c := make([]*ParentBody, len(b.children))
	copy(c, b.children)
	return c
}

// String implements the Stringer interface.
func (b *ParentBody) String() string {
	return b.Name + " body"
}

// SetParent reparents this body: it detaches from any current parent, attaches
// to the new one and recomputes the sphere of influence from the provided
// orbit. Passing nil for both arguments makes the body a root again. The call
// is rejected before any mutation if the orbit does not share its origin with
// the new parent, or if the reparenting would create a cycle.
func (b *ParentBody) SetParent(parent *ParentBody, orbit *Orbit) error {
	if (parent == nil) != (orbit == nil) {
		return errors.New("parent and orbit must be both set or both nil")
	}
	if parent != nil {
		if orbit.Origin != parent {
			return fmt.Errorf("orbit is about %s, not %s", orbit.Origin.Name, parent.Name)
		}
		for anc := parent; anc != nil; anc = anc.parent {
			if anc == b {
				return fmt.Errorf("reparenting %s under %s would create a cycle", b.Name, parent.Name)
			}
		}
	}
	if b.parent != nil {
		b.parent.removeChild(b)
	}
	if parent == nil {
		b.parent = nil
		b.orbit = nil
		b.soi = math.Inf(1)
		return nil
	}
	b.parent = parent
	b.orbit = orbit
	parent.children = append(parent.children, b)
	b.soi = orbit.SemimajorAxis() * math.Pow(b.Mass/parent.Mass, 0.4)
	return nil
}

func (b *ParentBody) removeChild(child *ParentBody) {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			return
		}
	}
}

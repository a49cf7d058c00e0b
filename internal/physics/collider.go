package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/partsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Resolver computes post-collision velocities for an overlapping pair.
// Both new velocities must be derived from the pre-collision values.
type Resolver interface {
	Name() string
	Exchange(a, b *Particle)
}

// AxisWise applies the 1D two-body elastic formula to x and y
// independently. This is not the exact 2D treatment; see Normal.
type AxisWise struct{}

func (AxisWise) Name() string { return "axis-wise" }

func (AxisWise) Exchange(a, b *Particle) {
	m1, m2 := a.mass, b.mass
	sum := m1 + m2
	va, vb := a.Vel, b.Vel
	a.Vel = r2.Vec{
		X: (va.X*(m1-m2) + 2*m2*vb.X) / sum,
		Y: (va.Y*(m1-m2) + 2*m2*vb.Y) / sum,
	}
	b.Vel = r2.Vec{
		X: (vb.X*(m2-m1) + 2*m1*va.X) / sum,
		Y: (vb.Y*(m2-m1) + 2*m1*va.Y) / sum,
	}
}

// Normal exchanges momentum only along the line joining the centres.
// Pairs that are already separating keep their velocities. Coincident
// centres have no line of action and fall back to AxisWise.
type Normal struct{}

func (Normal) Name() string { return "normal" }

func (Normal) Exchange(a, b *Particle) {
	d := r2.Sub(a.Pos, b.Pos)
	d2 := r2.Norm2(d)
	if d2 == 0 {
		AxisWise{}.Exchange(a, b)
		return
	}
	k := r2.Dot(r2.Sub(a.Vel, b.Vel), d) / d2
	if k >= 0 {
		return
	}
	m1, m2 := a.mass, b.mass
	sum := m1 + m2
	a.Vel = r2.Sub(a.Vel, r2.Scale(2*m2/sum*k, d))
	b.Vel = r2.Add(b.Vel, r2.Scale(2*m1/sum*k, d))
}

var resolvers = map[string]Resolver{
	AxisWise{}.Name(): AxisWise{},
	Normal{}.Name():   Normal{},
}

// ResolverByName looks up a registered collision strategy.
func ResolverByName(name string) (Resolver, error) {
	r, ok := resolvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownResolver, name, ResolverNames())
	}
	return r, nil
}

func ResolverNames() []string {
	names := make([]string, 0, len(resolvers))
	for name := range resolvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SeparationPolicy rounds the de-penetration offset.
type SeparationPolicy int

const (
	// Truncate rounds each offset component toward zero, so bodies move
	// by whole units.
	Truncate SeparationPolicy = iota
	// Continuous keeps the exact offset.
	Continuous
)

func (s SeparationPolicy) String() string {
	switch s {
	case Truncate:
		return "truncate"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("SeparationPolicy(%d)", int(s))
	}
}

func (s SeparationPolicy) Round(v float64) float64 {
	if s == Truncate {
		return math.Trunc(v)
	}
	return v
}

func ParseSeparation(name string) (SeparationPolicy, error) {
	switch name {
	case "", "truncate":
		return Truncate, nil
	case "continuous":
		return Continuous, nil
	}
	return Truncate, fmt.Errorf("%w: %q", dynamo.ErrUnknownSeparation, name)
}

// Collider resolves one contact: velocity exchange followed by a linear
// push apart along the centre line. Both particles move by the same
// amount regardless of mass.
type Collider struct {
	Resolver   Resolver
	Separation SeparationPolicy
}

var DefaultCollider = Collider{Resolver: AxisWise{}, Separation: Truncate}

// Resolve returns true when a and b overlapped and were resolved.
func (c Collider) Resolve(a, b *Particle) bool {
	if a == b || !a.IsColliding(b) {
		return false
	}

	res := c.Resolver
	if res == nil {
		res = AxisWise{}
	}
	res.Exchange(a, b)

	c.separate(a, b)
	return true
}

func (c Collider) separate(a, b *Particle) {
	rsum := a.Radius() + b.Radius()
	if rsum <= 0 {
		return
	}
	overlap := rsum - a.Distance(b)
	if overlap <= 0 {
		return
	}

	// scaled by the radii sum, not the distance
	unit := r2.Scale(1/rsum, r2.Sub(a.Pos, b.Pos))
	offset := r2.Vec{
		X: c.Separation.Round(overlap * unit.X),
		Y: c.Separation.Round(overlap * unit.Y),
	}
	a.Pos = r2.Add(a.Pos, offset)
	b.Pos = r2.Sub(b.Pos, offset)
}

package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/partsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// RadiusPerMass maps one unit of mass to radius. The renderer draws a
// body with extent 2*Radius, so a mass of 10 is a 20 unit wide disc.
const RadiusPerMass = 1.0

// Particle is a circular body. Pos is the centre.
type Particle struct {
	Pos   r2.Vec
	Vel   r2.Vec
	Color string
	mass  float64
}

// New returns a particle, or ErrInvalidMass when mass is not a positive
// finite number.
func New(color string, pos, vel r2.Vec, mass float64) (*Particle, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return nil, fmt.Errorf("%w: got %v", dynamo.ErrInvalidMass, mass)
	}
	return &Particle{Pos: pos, Vel: vel, Color: color, mass: mass}, nil
}

func (p *Particle) Mass() float64   { return p.mass }
func (p *Particle) Radius() float64 { return p.mass * RadiusPerMass }

// Integrate advances the particle by one unit time step.
func (p *Particle) Integrate() {
	p.Pos = r2.Add(p.Pos, p.Vel)
}

// ReflectOffBounds flips the velocity on every axis whose edge touches or
// crosses the arena boundary and returns the number of flips (0, 1 or 2).
// The position is left where it is; the reversed velocity brings the
// particle back on the next step.
func (p *Particle) ReflectOffBounds(width, height float64) int {
	r := p.Radius()
	events := 0
	if p.Pos.X-r <= 0 || p.Pos.X+r >= width {
		p.Vel.X = -p.Vel.X
		events++
	}
	if p.Pos.Y-r <= 0 || p.Pos.Y+r >= height {
		p.Vel.Y = -p.Vel.Y
		events++
	}
	return events
}

// Distance is the distance between the two centres.
func (p *Particle) Distance(other *Particle) float64 {
	return r2.Norm(r2.Sub(p.Pos, other.Pos))
}

// IsColliding reports strict overlap. Touching discs do not collide.
func (p *Particle) IsColliding(other *Particle) bool {
	return p.Distance(other) < p.Radius()+other.Radius()
}

// ResolveCollision applies the default collider. It returns false, and
// changes nothing, when the particles do not overlap.
func (p *Particle) ResolveCollision(other *Particle) bool {
	return DefaultCollider.Resolve(p, other)
}

func (p *Particle) Body() dynamo.Body {
	return dynamo.Body{
		X:      p.Pos.X,
		Y:      p.Pos.Y,
		VX:     p.Vel.X,
		VY:     p.Vel.Y,
		Mass:   p.mass,
		Radius: p.Radius(),
		Color:  p.Color,
	}
}

func (p *Particle) Clone() *Particle {
	c := *p
	return &c
}

func (p *Particle) String() string {
	return fmt.Sprintf("%s m=%g pos=(%.2f,%.2f) vel=(%.2f,%.2f)", p.Color, p.mass, p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y)
}

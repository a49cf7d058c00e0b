package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/physics"
)

// Simulation owns a fixed population of particles in a rectangular arena
// with its origin at (0,0). It is not safe for concurrent use.
type Simulation struct {
	width, height float64
	particles     []*physics.Particle
	collider      physics.Collider

	ticks int64
	walls int64
	pairs int64
}

type Option func(*Simulation)

// Builder returns a fresh simulation. Interactive views call it on start
// and again on reset.
type Builder func() (*Simulation, error)

// WithResolver selects the velocity exchange used for particle contacts.
func WithResolver(r physics.Resolver) Option {
	return func(s *Simulation) { s.collider.Resolver = r }
}

// WithSeparation selects how de-penetration offsets are rounded.
func WithSeparation(p physics.SeparationPolicy) Option {
	return func(s *Simulation) { s.collider.Separation = p }
}

// New validates the arena and population and takes ownership of copies of
// the particles; later changes to the caller's particles do not reach the
// simulation.
func New(width, height float64, particles []*physics.Particle, opts ...Option) (*Simulation, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("%w: got %vx%v", dynamo.ErrInvalidArena, width, height)
	}
	if len(particles) == 0 {
		return nil, dynamo.ErrNoParticles
	}

	owned := make([]*physics.Particle, len(particles))
	for i, p := range particles {
		if p == nil || !(p.Mass() > 0) {
			return nil, &dynamo.ParticleError{Index: i, Wrapped: dynamo.ErrInvalidMass}
		}
		owned[i] = p.Clone()
	}

	s := &Simulation{
		width:     width,
		height:    height,
		particles: owned,
		collider:  physics.DefaultCollider,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Step advances the arena by one tick: every particle moves and reflects
// off the walls, then every unordered pair is checked once, in index
// order. A pair resolved early in the sweep feeds its new state into the
// later pairs of the same tick, so three or more bodies in simultaneous
// contact resolve in an order-dependent way.
func (s *Simulation) Step() {
	for _, p := range s.particles {
		p.Integrate()
		s.walls += int64(p.ReflectOffBounds(s.width, s.height))
	}

	n := len(s.particles)
	for i := 0; i < n; i++ {
		a := s.particles[i]
		for j := i + 1; j < n; j++ {
			if s.collider.Resolve(a, s.particles[j]) {
				s.pairs++
			}
		}
	}

	s.ticks++
}

// CollisionCount is the number of wall and pair events since construction.
func (s *Simulation) CollisionCount() int64 { return s.walls + s.pairs }

func (s *Simulation) WallCount() int64 { return s.walls }
func (s *Simulation) PairCount() int64 { return s.pairs }
func (s *Simulation) Ticks() int64     { return s.ticks }
func (s *Simulation) Len() int         { return len(s.particles) }

func (s *Simulation) Bounds() (width, height float64) { return s.width, s.height }

func (s *Simulation) Resolver() string {
	if s.collider.Resolver == nil {
		return physics.AxisWise{}.Name()
	}
	return s.collider.Resolver.Name()
}

func (s *Simulation) Separation() physics.SeparationPolicy { return s.collider.Separation }

// Particles returns a copy of every body for rendering.
func (s *Simulation) Particles() []dynamo.Body {
	bodies := make([]dynamo.Body, len(s.particles))
	for i, p := range s.particles {
		bodies[i] = p.Body()
	}
	return bodies
}

func (s *Simulation) Snapshot() dynamo.Frame {
	return dynamo.Frame{
		Tick:       s.ticks,
		Width:      s.width,
		Height:     s.height,
		Collisions: s.CollisionCount(),
		Walls:      s.walls,
		Pairs:      s.pairs,
		Bodies:     s.Particles(),
	}
}

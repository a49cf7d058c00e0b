package experiment

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/physics"
)

// Populate builds the initial particles. Explicit bodies are used as
// given; otherwise each particle gets an integer mass in
// [MassMin, MassMax), integer velocity components in
// [-SpeedMax, SpeedMax), a palette colour, and an integer centre chosen so
// the whole disc starts inside the margin whenever it fits.
func Populate(cfg *config.Config, rng *rand.Rand) ([]*physics.Particle, error) {
	if len(cfg.Bodies) > 0 {
		return fromBodies(cfg.Bodies)
	}

	pop := cfg.Population
	colors := pop.Colors
	if len(colors) == 0 {
		colors = config.DefaultColors
	}
	attempts := pop.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	particles := make([]*physics.Particle, 0, cfg.Particles)
	for i := 0; i < cfg.Particles; i++ {
		mass := float64(pop.MassMin + rng.Intn(pop.MassMax-pop.MassMin))
		vel := r2.Vec{
			X: float64(randRange(rng, -pop.SpeedMax, pop.SpeedMax)),
			Y: float64(randRange(rng, -pop.SpeedMax, pop.SpeedMax)),
		}
		color := colors[rng.Intn(len(colors))]
		r := mass * physics.RadiusPerMass

		var pos r2.Vec
		placed := false
		for try := 0; try < attempts; try++ {
			pos = r2.Vec{
				X: place(rng, pop.Margin, cfg.Width, r),
				Y: place(rng, pop.Margin, cfg.Height, r),
			}
			if !pop.AvoidOverlap || !overlaps(particles, pos, r) {
				placed = true
				break
			}
		}
		if !placed {
			return nil, fmt.Errorf("particle %d: no free spot after %d attempts", i, attempts)
		}

		p, err := physics.New(color, pos, vel, mass)
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		particles = append(particles, p)
	}
	return particles, nil
}

func fromBodies(bodies []config.BodyConfig) ([]*physics.Particle, error) {
	particles := make([]*physics.Particle, 0, len(bodies))
	for i, b := range bodies {
		color := b.Color
		if color == "" {
			color = config.DefaultColors[i%len(config.DefaultColors)]
		}
		p, err := physics.New(color, r2.Vec{X: b.X, Y: b.Y}, r2.Vec{X: b.VX, Y: b.VY}, b.Mass)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		particles = append(particles, p)
	}
	return particles, nil
}

// randRange returns an integer in [lo, hi), or lo for an empty range.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

func place(rng *rand.Rand, margin, extent, radius float64) float64 {
	lo, hi := int(margin+radius), int(extent-margin-radius)
	if hi <= lo {
		lo, hi = int(margin), int(extent-margin)
	}
	return float64(randRange(rng, lo, hi))
}

func overlaps(placed []*physics.Particle, pos r2.Vec, radius float64) bool {
	for _, p := range placed {
		if r2.Norm(r2.Sub(p.Pos, pos)) < p.Radius()+radius {
			return true
		}
	}
	return false
}

package experiment

import (
	"context"
	"math/rand"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sim"
)

// Experiment turns a Config into a ready-to-run simulation.
type Experiment struct {
	cfg      config.Config
	registry *Registry
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: *cfg, registry: NewRegistry()}
}

func (e *Experiment) Config() config.Config { return e.cfg }

// Build validates the config, populates the arena from the config seed and
// returns a fresh simulation.
func (e *Experiment) Build() (*sim.Simulation, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	resolver, err := e.registry.GetResolver(e.cfg.Resolver)
	if err != nil {
		return nil, err
	}
	separation, err := physics.ParseSeparation(e.cfg.Separation)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(e.cfg.Seed))
	particles, err := Populate(&e.cfg, rng)
	if err != nil {
		return nil, err
	}

	return sim.New(e.cfg.Width, e.cfg.Height, particles,
		sim.WithResolver(resolver),
		sim.WithSeparation(separation),
	)
}

// Runner builds a simulation wrapped with the default metrics.
func (e *Experiment) Runner() (*sim.Runner, error) {
	s, err := e.Build()
	if err != nil {
		return nil, err
	}
	r := sim.NewRunner(s)
	for _, m := range e.registry.DefaultMetrics() {
		r.AddMetric(m)
	}
	return r, nil
}

func (e *Experiment) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Steps = e.cfg.Steps
	if e.cfg.RecordEvery > 0 {
		cfg.RecordEvery = e.cfg.RecordEvery
	}
	return cfg
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	r, err := e.Runner()
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, e.SimConfig())
}

// Factory builds per-seed runners for an Ensemble.
func (e *Experiment) Factory() sim.Factory {
	return func(seed int64) (*sim.Runner, error) {
		cfg := e.cfg
		cfg.Seed = seed
		return New(&cfg).Runner()
	}
}

package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/physics"
)

type Registry struct {
	metrics map[string]func() dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() dynamo.Metric),
	}

	r.metrics["kinetic_energy"] = func() dynamo.Metric { return metrics.NewKineticEnergy() }
	r.metrics["energy_drift"] = func() dynamo.Metric { return metrics.NewEnergyDrift() }
	r.metrics["momentum_drift"] = func() dynamo.Metric { return metrics.NewMomentumDrift() }
	r.metrics["collision_rate"] = func() dynamo.Metric { return metrics.NewCollisionRate() }
	r.metrics["wall_fraction"] = func() dynamo.Metric { return metrics.NewWallFraction() }
	r.metrics["containment"] = func() dynamo.Metric { return metrics.NewContainment(0) }

	return r
}

func (r *Registry) GetResolver(name string) (physics.Resolver, error) {
	return physics.ResolverByName(name)
}

func (r *Registry) GetMetric(name string) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []dynamo.Metric {
	out := make([]dynamo.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}

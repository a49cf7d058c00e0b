package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/experiment"
	"github.com/san-kum/partsim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs. Each step starts from a preset
// (or the defaults) and overrides fields with its inline config.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
}

// StepResult pairs a step's resolved config with its run.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the config for one step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results gathered so far.
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "name", name)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}

// setters are the config fields a sweep can vary.
var setters = map[string]func(*config.Config, float64){
	"particles": func(c *config.Config, v float64) { c.Particles = int(v); c.Bodies = nil },
	"speed_max": func(c *config.Config, v float64) { c.Population.SpeedMax = int(v) },
	"mass_min":  func(c *config.Config, v float64) { c.Population.MassMin = int(v) },
	"mass_max":  func(c *config.Config, v float64) { c.Population.MassMax = int(v) },
	"width":     func(c *config.Config, v float64) { c.Width = v },
	"height":    func(c *config.Config, v float64) { c.Height = v },
	"steps":     func(c *config.Config, v float64) { c.Steps = int(v) },
}

func SweepParams() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs the base config once per evenly spaced value of one
// parameter, from Min to Max inclusive.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Collisions int64
	Walls      int64
	Pairs      int64
	Metrics    map[string]float64
}

func (p *ParameterSweep) Values() []float64 {
	if p.NumSteps <= 1 {
		return []float64{p.ParamMin}
	}
	step := (p.ParamMax - p.ParamMin) / float64(p.NumSteps-1)
	out := make([]float64, p.NumSteps)
	for i := range out {
		out[i] = p.ParamMin + float64(i)*step
	}
	return out
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	set, ok := setters[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s (available: %v)", sweep.ParamName, SweepParams())
	}

	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))
	for i, v := range values {
		cfg := *sweep.Base
		cfg.Population.Colors = append([]string(nil), sweep.Base.Population.Colors...)
		cfg.Bodies = append([]config.BodyConfig(nil), sweep.Base.Bodies...)
		set(&cfg, v)

		result, err := experiment.New(&cfg).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}

		results = append(results, SweepResult{
			ParamValue: v,
			Collisions: result.Collisions,
			Walls:      result.Walls,
			Pairs:      result.Pairs,
			Metrics:    result.Metrics,
		})
		slog.Info("sweep point", "index", i+1, "of", len(values), sweep.ParamName, v)
	}
	return results, nil
}

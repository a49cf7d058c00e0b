package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/partsim/internal/dynamo"
)

type Config struct {
	Steps         int
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Steps:         600,
		RecordEvery:   1,
		ValidateState: true,
	}
}

type Result struct {
	Frames     []dynamo.Frame
	Metrics    map[string]float64
	StepsTaken int
	Collisions int64
	Walls      int64
	Pairs      int64
	Errors     []error
}

// Final is the last recorded frame.
func (r *Result) Final() dynamo.Frame {
	if len(r.Frames) == 0 {
		return dynamo.Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

type SimError struct {
	Tick    int64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}

// Runner drives a Simulation for a fixed number of ticks and feeds every
// frame to its metrics and observers.
type Runner struct {
	sim       *Simulation
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func NewRunner(s *Simulation) *Runner {
	return &Runner{
		sim:       s,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Simulation() *Simulation { return r.sim }

// Run steps the simulation cfg.Steps times. On cancellation it returns the
// partial result together with ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("%w, got %d", dynamo.ErrInvalidSteps, cfg.Steps)
	}
	every := cfg.RecordEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Frames:  make([]dynamo.Frame, 0, cfg.Steps/every+2),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	frame := r.sim.Snapshot()
	result.Frames = append(result.Frames, frame)
	r.observe(frame)

	var err error
	for i := 1; i <= cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}

		r.sim.Step()
		result.StepsTaken++
		frame = r.sim.Snapshot()
		r.observe(frame)

		if cfg.ValidateState && !frame.IsValid() {
			result.Errors = append(result.Errors, SimError{Tick: frame.Tick, Message: "invalid state (NaN/Inf)"})
			result.Frames = append(result.Frames, frame)
			break
		}

		if i%every == 0 || i == cfg.Steps {
			result.Frames = append(result.Frames, frame)
		}
	}

	result.Collisions = r.sim.CollisionCount()
	result.Walls = r.sim.WallCount()
	result.Pairs = r.sim.PairCount()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, err
}

func (r *Runner) observe(f dynamo.Frame) {
	for _, m := range r.metrics {
		m.Observe(f)
	}
	for _, o := range r.observers {
		o.OnStep(f)
	}
}

package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sim"
)

type countMetric struct {
	observed int
	resets   int
}

func (c *countMetric) Name() string            { return "count" }
func (c *countMetric) Observe(f dynamo.Frame) { c.observed++ }
func (c *countMetric) Value() float64          { return float64(c.observed) }
func (c *countMetric) Reset()                  { c.observed = 0; c.resets++ }

func newRunner() *sim.Runner {
	s, err := sim.New(200, 150, []*physics.Particle{
		particle(30, 30, 3, 2, 10),
		particle(100, 80, -4, 1, 15),
	})
	Expect(err).NotTo(HaveOccurred())
	return sim.NewRunner(s)
}

var _ = Describe("Runner", func() {
	It("records the initial frame and every step", func() {
		r := newRunner()
		m := &countMetric{}
		r.AddMetric(m)

		res, err := r.Run(context.Background(), sim.Config{Steps: 10, RecordEvery: 1})
		Expect(err).NotTo(HaveOccurred())

		Expect(res.StepsTaken).To(Equal(10))
		Expect(res.Frames).To(HaveLen(11))
		Expect(res.Frames[0].Tick).To(BeZero())
		Expect(res.Final().Tick).To(Equal(int64(10)))
		Expect(res.Metrics).To(HaveKeyWithValue("count", 11.0))
		Expect(m.resets).To(Equal(1))
		Expect(res.Collisions).To(Equal(res.Walls + res.Pairs))
	})

	It("thins recorded frames but keeps the last", func() {
		res, err := newRunner().Run(context.Background(), sim.Config{Steps: 10, RecordEvery: 4})
		Expect(err).NotTo(HaveOccurred())

		ticks := make([]int64, 0, len(res.Frames))
		for _, f := range res.Frames {
			ticks = append(ticks, f.Tick)
		}
		Expect(ticks).To(Equal([]int64{0, 4, 8, 10}))
	})

	It("notifies observers", func() {
		r := newRunner()
		var seen []int64
		r.AddObserver(dynamo.ObserverFunc(func(f dynamo.Frame) { seen = append(seen, f.Tick) }))

		_, err := r.Run(context.Background(), sim.Config{Steps: 3})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]int64{0, 1, 2, 3}))
	})

	It("rejects a non-positive step count", func() {
		_, err := newRunner().Run(context.Background(), sim.Config{Steps: 0})
		Expect(err).To(MatchError(dynamo.ErrInvalidSteps))
	})

	It("stops on cancellation with a partial result", func() {
		ctx, cancel := context.WithCancel(context.Background())
		r := newRunner()
		r.AddObserver(dynamo.ObserverFunc(func(f dynamo.Frame) {
			if f.Tick == 5 {
				cancel()
			}
		}))

		res, err := r.Run(ctx, sim.Config{Steps: 100})
		Expect(err).To(MatchError(context.Canceled))
		Expect(res).NotTo(BeNil())
		Expect(res.StepsTaken).To(Equal(5))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one independent simulation per seed", func() {
		var seeds []int64
		factory := func(seed int64) (*sim.Runner, error) {
			seeds = append(seeds, seed)
			return newRunner(), nil
		}
		e := sim.NewEnsemble(factory, 4, 100)
		e.SetLimit(1)

		results, err := e.Run(context.Background(), sim.Config{Steps: 50})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		Expect(seeds).To(ConsistOf(int64(100), int64(101), int64(102), int64(103)))

		for _, r := range results[1:] {
			Expect(r.Collisions).To(Equal(results[0].Collisions))
		}
	})

	It("propagates factory errors", func() {
		factory := func(seed int64) (*sim.Runner, error) {
			return nil, dynamo.ErrNoParticles
		}
		_, err := sim.NewEnsemble(factory, 2, 1).Run(context.Background(), sim.Config{Steps: 5})
		Expect(err).To(MatchError(dynamo.ErrNoParticles))
	})
})

var _ = Describe("SimError", func() {
	It("formats the tick", func() {
		err := sim.SimError{Tick: 150, Message: "test error"}
		Expect(err.Error()).To(Equal("tick 150: test error"))
	})
})

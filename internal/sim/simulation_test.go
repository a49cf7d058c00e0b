package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sim"
)

func particle(x, y, vx, vy, mass float64) *physics.Particle {
	p, err := physics.New("teal", r2.Vec{X: x, Y: y}, r2.Vec{X: vx, Y: vy}, mass)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Simulation", func() {
	Describe("New", func() {
		It("rejects a non-positive arena", func() {
			ps := []*physics.Particle{particle(50, 50, 0, 0, 5)}
			for _, dims := range [][2]float64{{0, 650}, {1000, -1}, {math.NaN(), 650}, {math.Inf(1), 650}} {
				_, err := sim.New(dims[0], dims[1], ps)
				Expect(err).To(MatchError(dynamo.ErrInvalidArena))
			}
		})

		It("rejects an empty population", func() {
			_, err := sim.New(1000, 650, nil)
			Expect(err).To(MatchError(dynamo.ErrNoParticles))
		})

		It("rejects a zero-value particle and names its index", func() {
			ps := []*physics.Particle{particle(50, 50, 0, 0, 5), {}}
			_, err := sim.New(1000, 650, ps)
			Expect(err).To(MatchError(dynamo.ErrInvalidMass))

			var perr *dynamo.ParticleError
			Expect(err).To(BeAssignableToTypeOf(perr))
			Expect(err.(*dynamo.ParticleError).Index).To(Equal(1))
		})

		It("does not alias the caller's particles", func() {
			p := particle(500, 300, 1, 1, 5)
			s, err := sim.New(1000, 650, []*physics.Particle{p})
			Expect(err).NotTo(HaveOccurred())

			p.Pos = r2.Vec{X: 1, Y: 1}
			Expect(s.Particles()[0].X).To(Equal(500.0))

			s.Step()
			Expect(p.Pos).To(Equal(r2.Vec{X: 1, Y: 1}))
		})
	})

	Describe("Step", func() {
		It("resolves the head-on scenario", func() {
			s, err := sim.New(1000, 650, []*physics.Particle{
				particle(100, 100, 5, 0, 10),
				particle(135, 100, -5, 0, 20),
			})
			Expect(err).NotTo(HaveOccurred())

			s.Step()

			bodies := s.Particles()
			Expect(bodies[0].VX).To(BeNumerically("~", -8.33, 0.01))
			Expect(bodies[1].VX).To(BeNumerically("~", 1.67, 0.01))
			Expect(bodies[0].VY).To(BeZero())
			Expect(s.CollisionCount()).To(Equal(int64(1)))
			Expect(s.PairCount()).To(Equal(int64(1)))
			Expect(s.WallCount()).To(BeZero())
		})

		It("counts both wall events of a corner hit", func() {
			s, err := sim.New(1000, 650, []*physics.Particle{particle(8, 8, -4, -4, 5)})
			Expect(err).NotTo(HaveOccurred())

			s.Step()

			Expect(s.WallCount()).To(Equal(int64(2)))
			Expect(s.Particles()[0].VX).To(Equal(4.0))
			Expect(s.Particles()[0].VY).To(Equal(4.0))
		})

		It("visits every unordered pair once", func() {
			// three mutually overlapping, motionless equal masses
			s, err := sim.New(1000, 650, []*physics.Particle{
				particle(500, 300, 0, 0, 10),
				particle(505, 300, 0, 0, 10),
				particle(500, 305, 0, 0, 10),
			})
			Expect(err).NotTo(HaveOccurred())

			s.Step()

			Expect(s.PairCount()).To(Equal(int64(3)))
		})

		It("never decreases the collision count", func() {
			s, err := sim.New(200, 150, []*physics.Particle{
				particle(30, 30, 3, 2, 10),
				particle(100, 80, -4, 1, 15),
				particle(160, 40, 2, -3, 8),
				particle(60, 110, -1, -4, 12),
			})
			Expect(err).NotTo(HaveOccurred())

			last := s.CollisionCount()
			for i := 0; i < 500; i++ {
				s.Step()
				Expect(s.CollisionCount()).To(BeNumerically(">=", last))
				last = s.CollisionCount()
			}
			Expect(s.Ticks()).To(Equal(int64(500)))
			Expect(last).To(BeNumerically(">", 0))
		})

		It("keeps independent simulations independent", func() {
			mk := func() *sim.Simulation {
				s, err := sim.New(100, 100, []*physics.Particle{particle(10, 50, -5, 0, 5)})
				Expect(err).NotTo(HaveOccurred())
				return s
			}
			a, b := mk(), mk()

			a.Step()
			Expect(a.CollisionCount()).To(Equal(int64(1)))
			Expect(b.CollisionCount()).To(BeZero())
		})

		It("honours the configured resolver", func() {
			s, err := sim.New(1000, 650, []*physics.Particle{
				particle(100, 100, 5, 0, 10),
				particle(135, 100, -5, 0, 20),
			}, sim.WithResolver(physics.Normal{}), sim.WithSeparation(physics.Continuous))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Resolver()).To(Equal("normal"))
			Expect(s.Separation()).To(Equal(physics.Continuous))

			s.Step()

			Expect(s.Particles()[0].VX).To(BeNumerically("~", -25.0/3, 1e-9))
		})
	})

	Describe("Snapshot", func() {
		It("reports tick, bounds and counters", func() {
			s, err := sim.New(100, 80, []*physics.Particle{particle(10, 40, -5, 0, 5)})
			Expect(err).NotTo(HaveOccurred())
			s.Step()

			f := s.Snapshot()
			Expect(f.Tick).To(Equal(int64(1)))
			Expect(f.Width).To(Equal(100.0))
			Expect(f.Height).To(Equal(80.0))
			Expect(f.Collisions).To(Equal(int64(1)))
			Expect(f.Bodies).To(HaveLen(1))
		})
	})
})

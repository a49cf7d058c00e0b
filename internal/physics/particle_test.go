package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/physics"
)

func mustParticle(pos, vel r2.Vec, mass float64) *physics.Particle {
	p, err := physics.New("green", pos, vel, mass)
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Particle", func() {
	Describe("New", func() {
		It("derives the radius from the mass", func() {
			p := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{}, 12)
			Expect(p.Radius()).To(Equal(12.0))
			Expect(p.Mass()).To(Equal(12.0))
		})

		DescribeTable("rejects invalid mass",
			func(mass float64) {
				_, err := physics.New("red", r2.Vec{}, r2.Vec{}, mass)
				Expect(err).To(MatchError(dynamo.ErrInvalidMass))
			},
			Entry("zero", 0.0),
			Entry("negative", -3.0),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)
	})

	Describe("Integrate", func() {
		It("adds one velocity step to the position", func() {
			p := mustParticle(r2.Vec{X: 10, Y: 20}, r2.Vec{X: 3, Y: -4}, 1)
			p.Integrate()
			Expect(p.Pos).To(Equal(r2.Vec{X: 13, Y: 16}))
			Expect(p.Vel).To(Equal(r2.Vec{X: 3, Y: -4}))
		})
	})

	Describe("ReflectOffBounds", func() {
		It("flips vx at the left wall and leaves vy alone", func() {
			p := mustParticle(r2.Vec{X: 5, Y: 100}, r2.Vec{X: -3, Y: 2}, 5)
			Expect(p.ReflectOffBounds(1000, 650)).To(Equal(1))
			Expect(p.Vel).To(Equal(r2.Vec{X: 3, Y: 2}))
		})

		It("flips vy at the bottom wall", func() {
			p := mustParticle(r2.Vec{X: 500, Y: 645}, r2.Vec{X: 1, Y: 4}, 5)
			Expect(p.ReflectOffBounds(1000, 650)).To(Equal(1))
			Expect(p.Vel).To(Equal(r2.Vec{X: 1, Y: -4}))
		})

		It("counts both axes in a corner", func() {
			p := mustParticle(r2.Vec{X: 2, Y: 2}, r2.Vec{X: -1, Y: -1}, 5)
			Expect(p.ReflectOffBounds(1000, 650)).To(Equal(2))
			Expect(p.Vel).To(Equal(r2.Vec{X: 1, Y: 1}))
		})

		It("treats an edge exactly on the wall as a hit", func() {
			p := mustParticle(r2.Vec{X: 5, Y: 100}, r2.Vec{X: -1}, 5)
			Expect(p.ReflectOffBounds(1000, 650)).To(Equal(1))
		})

		It("does not clamp the position", func() {
			p := mustParticle(r2.Vec{X: -2, Y: 100}, r2.Vec{X: -1}, 5)
			p.ReflectOffBounds(1000, 650)
			Expect(p.Pos.X).To(Equal(-2.0))
		})

		It("reports nothing inside the arena", func() {
			p := mustParticle(r2.Vec{X: 500, Y: 300}, r2.Vec{X: 4, Y: 4}, 5)
			Expect(p.ReflectOffBounds(1000, 650)).To(BeZero())
			Expect(p.Vel).To(Equal(r2.Vec{X: 4, Y: 4}))
		})
	})

	Describe("IsColliding", func() {
		It("is true for overlapping discs", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{}, 10)
			b := mustParticle(r2.Vec{X: 125, Y: 100}, r2.Vec{}, 20)
			Expect(a.IsColliding(b)).To(BeTrue())
			Expect(b.IsColliding(a)).To(BeTrue())
		})

		It("is false for touching discs", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{}, 10)
			b := mustParticle(r2.Vec{X: 130, Y: 100}, r2.Vec{}, 20)
			Expect(a.IsColliding(b)).To(BeFalse())
		})
	})

	Describe("ResolveCollision", func() {
		It("conserves momentum on each axis", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 3, Y: -2}, 7)
			b := mustParticle(r2.Vec{X: 110, Y: 108}, r2.Vec{X: -1, Y: 4}, 13)
			px := a.Mass()*a.Vel.X + b.Mass()*b.Vel.X
			py := a.Mass()*a.Vel.Y + b.Mass()*b.Vel.Y

			Expect(a.ResolveCollision(b)).To(BeTrue())

			Expect(a.Mass()*a.Vel.X + b.Mass()*b.Vel.X).To(BeNumerically("~", px, 1e-9))
			Expect(a.Mass()*a.Vel.Y + b.Mass()*b.Vel.Y).To(BeNumerically("~", py, 1e-9))
		})

		It("swaps velocities for equal masses", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 3, Y: -2}, 10)
			b := mustParticle(r2.Vec{X: 112, Y: 105}, r2.Vec{X: -1, Y: 4}, 10)

			Expect(a.ResolveCollision(b)).To(BeTrue())

			Expect(a.Vel).To(Equal(r2.Vec{X: -1, Y: 4}))
			Expect(b.Vel).To(Equal(r2.Vec{X: 3, Y: -2}))
		})

		It("is a no-op when the discs are apart", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 3}, 10)
			b := mustParticle(r2.Vec{X: 200, Y: 100}, r2.Vec{X: -3}, 10)
			before := [2]physics.Particle{*a, *b}

			Expect(a.ResolveCollision(b)).To(BeFalse())

			Expect(*a).To(Equal(before[0]))
			Expect(*b).To(Equal(before[1]))
		})

		It("refuses to collide a particle with itself", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 3}, 10)
			Expect(a.ResolveCollision(a)).To(BeFalse())
			Expect(a.Vel).To(Equal(r2.Vec{X: 3}))
		})

		It("never moves an overlapping pair closer", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 1}, 10)
			b := mustParticle(r2.Vec{X: 112, Y: 109}, r2.Vec{X: -1}, 10)
			before := a.Distance(b)

			Expect(a.ResolveCollision(b)).To(BeTrue())
			Expect(a.Distance(b)).To(BeNumerically(">=", before))
		})

		It("truncates the separation offset toward zero", func() {
			a := mustParticle(r2.Vec{X: 105, Y: 100}, r2.Vec{X: 5}, 10)
			b := mustParticle(r2.Vec{X: 130, Y: 100}, r2.Vec{X: -5}, 20)

			Expect(a.ResolveCollision(b)).To(BeTrue())

			// overlap 5, unit -25/30: offset -4.1666 truncates to -4
			Expect(a.Pos).To(Equal(r2.Vec{X: 101, Y: 100}))
			Expect(b.Pos).To(Equal(r2.Vec{X: 134, Y: 100}))
		})

		It("still exchanges velocities when centres coincide", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 2}, 10)
			b := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: -2}, 10)

			Expect(a.ResolveCollision(b)).To(BeTrue())

			Expect(a.Vel).To(Equal(r2.Vec{X: -2}))
			Expect(b.Vel).To(Equal(r2.Vec{X: 2}))
			Expect(a.Pos).To(Equal(b.Pos))
		})
	})

	Describe("Body", func() {
		It("copies the state for renderers", func() {
			p := mustParticle(r2.Vec{X: 1, Y: 2}, r2.Vec{X: 3, Y: 4}, 6)
			b := p.Body()
			Expect(b).To(Equal(dynamo.Body{X: 1, Y: 2, VX: 3, VY: 4, Mass: 6, Radius: 6, Color: "green"}))
			b.X = 99
			Expect(p.Pos.X).To(Equal(1.0))
		})
	})
})

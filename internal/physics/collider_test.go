package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/physics"
)

var _ = Describe("Collider", func() {
	Describe("AxisWise", func() {
		It("matches the worked head-on numbers", func() {
			a := mustParticle(r2.Vec{X: 105, Y: 100}, r2.Vec{X: 5}, 10)
			b := mustParticle(r2.Vec{X: 130, Y: 100}, r2.Vec{X: -5}, 20)

			physics.AxisWise{}.Exchange(a, b)

			Expect(a.Vel.X).To(BeNumerically("~", -25.0/3, 1e-9))
			Expect(b.Vel.X).To(BeNumerically("~", 5.0/3, 1e-9))
			Expect(a.Vel.Y).To(BeZero())
			Expect(b.Vel.Y).To(BeZero())
		})
	})

	Describe("Normal", func() {
		It("agrees with AxisWise for a head-on x collision", func() {
			a := mustParticle(r2.Vec{X: 105, Y: 100}, r2.Vec{X: 5}, 10)
			b := mustParticle(r2.Vec{X: 130, Y: 100}, r2.Vec{X: -5}, 20)

			physics.Normal{}.Exchange(a, b)

			Expect(a.Vel.X).To(BeNumerically("~", -25.0/3, 1e-9))
			Expect(b.Vel.X).To(BeNumerically("~", 5.0/3, 1e-9))
		})

		It("conserves momentum and kinetic energy on an oblique hit", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: 4, Y: 1}, 8)
			b := mustParticle(r2.Vec{X: 110, Y: 106}, r2.Vec{X: -2, Y: -3}, 5)
			m1, m2 := a.Mass(), b.Mass()
			px := m1*a.Vel.X + m2*b.Vel.X
			py := m1*a.Vel.Y + m2*b.Vel.Y
			ke := 0.5*m1*r2.Norm2(a.Vel) + 0.5*m2*r2.Norm2(b.Vel)

			physics.Normal{}.Exchange(a, b)

			Expect(m1*a.Vel.X + m2*b.Vel.X).To(BeNumerically("~", px, 1e-9))
			Expect(m1*a.Vel.Y + m2*b.Vel.Y).To(BeNumerically("~", py, 1e-9))
			Expect(0.5*m1*r2.Norm2(a.Vel) + 0.5*m2*r2.Norm2(b.Vel)).To(BeNumerically("~", ke, 1e-9))
		})

		It("leaves a separating pair alone", func() {
			a := mustParticle(r2.Vec{X: 100, Y: 100}, r2.Vec{X: -1}, 10)
			b := mustParticle(r2.Vec{X: 110, Y: 100}, r2.Vec{X: 1}, 10)

			physics.Normal{}.Exchange(a, b)

			Expect(a.Vel).To(Equal(r2.Vec{X: -1}))
			Expect(b.Vel).To(Equal(r2.Vec{X: 1}))
		})
	})

	Describe("Continuous separation", func() {
		It("moves each particle by the exact offset", func() {
			a := mustParticle(r2.Vec{X: 105, Y: 100}, r2.Vec{X: 5}, 10)
			b := mustParticle(r2.Vec{X: 130, Y: 100}, r2.Vec{X: -5}, 20)
			c := physics.Collider{Resolver: physics.AxisWise{}, Separation: physics.Continuous}

			Expect(c.Resolve(a, b)).To(BeTrue())

			Expect(a.Pos.X).To(BeNumerically("~", 105-25.0/6, 1e-9))
			Expect(b.Pos.X).To(BeNumerically("~", 130+25.0/6, 1e-9))
		})
	})

	Describe("registry", func() {
		It("resolves known names", func() {
			for _, name := range physics.ResolverNames() {
				r, err := physics.ResolverByName(name)
				Expect(err).NotTo(HaveOccurred())
				Expect(r.Name()).To(Equal(name))
			}
		})

		It("rejects unknown names", func() {
			_, err := physics.ResolverByName("impulse")
			Expect(err).To(MatchError(dynamo.ErrUnknownResolver))

			_, err = physics.ParseSeparation("round")
			Expect(err).To(MatchError(dynamo.ErrUnknownSeparation))
		})

		It("parses separation policies", func() {
			for _, p := range []physics.SeparationPolicy{physics.Truncate, physics.Continuous} {
				got, err := physics.ParseSeparation(p.String())
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(p))
			}
		})
	})
})

// Package physics implements the particle engine: constant-velocity
// motion, wall reflection and pairwise contact collisions between
// circular bodies.
//
// A [Particle] owns its kinematic state. Collisions are resolved by a
// [Collider], which combines a velocity [Resolver] with a
// [SeparationPolicy] for the positional correction:
//
//   - [AxisWise]: the 1D elastic formula applied to each axis on its own
//   - [Normal]: exchange only along the line of centres
//
// Methods that detect events return them instead of counting them, so
// the owner decides where the tally lives.
//
//	a, _ := physics.New("red", r2.Vec{X: 100, Y: 100}, r2.Vec{X: 5}, 10)
//	b, _ := physics.New("blue", r2.Vec{X: 135, Y: 100}, r2.Vec{X: -5}, 20)
//	a.Integrate()
//	b.Integrate()
//	if a.ResolveCollision(b) {
//	    collisions++
//	}
package physics

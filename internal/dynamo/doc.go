// Package dynamo provides the shared vocabulary of the particle simulator.
//
// It defines the types that cross package boundaries:
//
//   - [Body]: read-only view of one particle, as handed to renderers
//   - [Frame]: snapshot of the whole arena after a tick
//   - [Metric]: accumulates a scalar over a run
//   - [Observer]: receives every frame as it is produced
//
// and the sentinel errors returned when a simulation is built from
// invalid input.
//
// # Thread Safety
//
// Frames are plain values. A Simulation hands out copies, so a Frame may
// be read from another goroutine while the simulation keeps stepping.
package dynamo

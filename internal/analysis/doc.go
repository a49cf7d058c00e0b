// Package analysis summarises recorded frames in velocity space.
//
//   - [Speeds]: speed histogram against the 2D equipartition expectation
//   - [VelocityScatter]: vx/vy scatter of a frame as ASCII
//   - [MeanFreeTime]: average ticks between particle contacts
//
// A population that starts with uniformly drawn velocities relaxes towards
// the expected distribution only under an energy-conserving resolver:
//
//	d := analysis.Speeds(frames[len(frames)-1], 12)
//	fmt.Print(d.ASCII(40))
package analysis

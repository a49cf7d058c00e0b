// Package viz renders a running simulation in the terminal.
//
// The live view is a Bubble Tea program drawing every particle as a
// braille ellipse in its own colour, labelled with its mass, next to a
// panel of counters and a collision-rate sparkline:
//
//   - [Model]: the Bubble Tea model driving one simulation
//   - [Canvas]: braille pixel canvas with per-cell colour
//   - [DrawFrame]: projects a frame onto a canvas
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Single step while paused
//	R     - Rebuild the initial population
//	+/-   - Steps per frame
//	?     - Show help
//	Q     - Quit
package viz

// Package viz is the terminal front end for the engine.
//
// The live viewer is a Bubble Tea program that owns one [physics.Engine] and
// steps it from its tick handler:
//
//   - [Canvas]: braille pixel grid with per-cell colour and a midpoint circle routine
//   - [Camera]: world to sub-pixel projection with pan and zoom
//   - [Model]: the Bubble Tea model
//
// # Key Bindings
//
//	Space/P - Pause/Resume simulation
//	W A S D - Pan
//	Q / E   - Zoom out / in
//	+ / -   - Steps per frame
//	R       - Reset to the initial population
//	?       - Show help overlay
//	Esc     - Quit
//
// Zooming out stops once a body would be drawn with a radius below one
// zoom unit.
package viz

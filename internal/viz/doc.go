// Package viz is the terminal front end: a Bubble Tea program that doubles
// as a sim.Presenter.
//
// Balls are drawn on a Braille [Canvas] (2x4 dots per cell) scaled to the
// terminal. The side panel shows frame and time, the gravity vector, an
// asciigraph plot of kinetic energy and a sparkline of wall hits.
//
// # Key Bindings
//
//	q, ctrl+c - Quit
//	esc       - Quit (as the Escape key)
//	g, click  - Rotate gravity a quarter turn
//	t         - Cycle color themes
//	?         - Toggle extra status
package viz

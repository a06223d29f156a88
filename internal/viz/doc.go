// Package viz is the terminal front end for a live drop.
//
// [Model] is a Bubble Tea model that drives a [sim.Stepper] from its own
// ticks and renders the falling body on a braille [Canvas] next to a
// stats panel and a speed chart with the terminal velocity overlaid.
//
// # Key Bindings
//
//	Space     - Start / pause
//	R         - Reset to the drop configuration
//	Tab       - Select parameter
//	Up/Down   - Adjust selected parameter by 5%
//	+/-       - Double / halve the time scale
//	T         - Cycle colour themes
//	?         - Toggle help
//	Q         - Quit
//
// Losing terminal focus suspends a running drop.
package viz

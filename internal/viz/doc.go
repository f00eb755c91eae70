// Package viz provides the interactive terminal bar chart.
//
// The package implements the TUI using the Bubble Tea framework:
//
//   - [Model]: owns the dataset, the update loop and all UI state
//   - [Canvas]: render.Surface over terminal cells with eighth-block bars
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Start/stop perturbation
//	G, R  - Generate new data
//	S     - Cycle sort mode (A/D/N set it directly)
//	+/-   - Speed up/slow down
//	T     - Cycle color themes
//	M     - Toggle smooth/pop transitions
//	E     - Export SVG
//	W     - Save snapshot
//	?     - Full help
//
// # Transitions
//
// Bar height changes are eased with harmonica springs at 60 frames per
// second. Frames are only scheduled while a spring is still moving.
package viz

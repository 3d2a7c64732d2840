// Package viz draws scenes in the terminal and hosts the terminal trackball.
//
//   - [Canvas]: braille dot canvas, 2x4 dots per cell
//   - [Camera]: perspective projection shared with the window hosts
//   - [Model]: Bubble Tea program driving a trackball.Registry from mouse
//     cell-motion events
//
// # Key Bindings
//
//	drag  - rotate the active object
//	Tab   - make the next object active
//	+/-   - zoom
//	R     - reset every orientation
//	Q/Esc - quit (Ctrl+C is treated as a close request)
package viz

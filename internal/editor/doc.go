// Package editor owns the interactive layout session for one grid.
//
// The editor consumes raw key events from a device and maintains:
//
//   - the set of placed controls, rendered in insertion order
//   - the in-progress point buffer used to sketch rectangles and
//     triangles across multiple held keys
//   - the mode flag toggled by holding the bottom-left grid cell, which
//     turns the surface into a selection and clipboard console
//
// All entry points are safe for concurrent use; a single mutex guards
// each event and render pass. Observers registered with AddObserver are
// notified after the lock is released.
package editor

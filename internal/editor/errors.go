package editor

import "errors"

var (
	// ErrOverlap is returned when a new shape would overlap an existing
	// control.
	ErrOverlap = errors.New("editor: shape overlaps an existing control")

	// ErrReservedRow is returned when a shape would occupy the bottom
	// grid row.
	ErrReservedRow = errors.New("editor: bottom row is reserved")

	// ErrOutOfBounds is returned when a shape would extend past the
	// grid edges.
	ErrOutOfBounds = errors.New("editor: shape extends outside the grid")
)

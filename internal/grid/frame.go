// Package grid defines the frame buffer pushed to an LED grid and the
// device abstraction the editor session runs against. Concrete devices
// live in internal/serialosc, internal/sim, and internal/gui.
package grid

// Brightness levels run 0 (dark) to 15 (full).
const (
	LevelOff = 0
	LevelMax = 15
)

// Frame is an off-screen brightness buffer sized to one grid. Cell
// writes clamp the level into [0, 15] and drop out-of-bounds
// coordinates.
type Frame struct {
	Width  int
	Height int

	levels []int
}

func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		levels: make([]int, width*height),
	}
}

func (f *Frame) Set(x, y, level int) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	if level < LevelOff {
		level = LevelOff
	}
	if level > LevelMax {
		level = LevelMax
	}
	f.levels[y*f.Width+x] = level
}

func (f *Frame) At(x, y int) int {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return LevelOff
	}
	return f.levels[y*f.Width+x]
}

func (f *Frame) Clear() {
	for i := range f.levels {
		f.levels[i] = LevelOff
	}
}

// Clone returns an independent copy, used by devices that hand frames
// across goroutines.
func (f *Frame) Clone() *Frame {
	cp := NewFrame(f.Width, f.Height)
	copy(cp.levels, f.levels)
	return cp
}

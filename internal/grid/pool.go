package grid

import "sync"

// FramePool recycles frames of one fixed size so the render loop does
// not allocate per tick. Frames of any other size are dropped on Put.
type FramePool struct {
	pool   sync.Pool
	width  int
	height int
}

func NewFramePool(width, height int) *FramePool {
	return &FramePool{
		width:  width,
		height: height,
		pool: sync.Pool{
			New: func() interface{} {
				return NewFrame(width, height)
			},
		},
	}
}

func (p *FramePool) Get() *Frame {
	return p.pool.Get().(*Frame)
}

func (p *FramePool) Put(f *Frame) {
	if f.Width == p.width && f.Height == p.height {
		f.Clear()
		p.pool.Put(f)
	}
}

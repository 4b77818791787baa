// Package render drives the fixed-rate frame loop between the editor
// and a grid device.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
)

// Source fills a frame with the current display state.
type Source interface {
	Render(f *grid.Frame)
}

// Sink receives composed frames, typically a grid device.
type Sink interface {
	Render(f *grid.Frame) error
}

// Loop composes frames from a source and pushes them to a sink at a
// fixed rate. Frames come from a pool sized for the session grid so
// the steady state allocates nothing.
type Loop struct {
	src  Source
	sink Sink
	pool *grid.FramePool
	fps  int
}

func NewLoop(src Source, sink Sink, width, height, fps int) (*Loop, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: grid %dx%d is not drawable", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("render: fps must be positive, got %d", fps)
	}
	return &Loop{
		src:  src,
		sink: sink,
		pool: grid.NewFramePool(width, height),
		fps:  fps,
	}, nil
}

// Run blocks until ctx is cancelled. A failed frame send is logged and
// the loop keeps going; the device owns reconnect handling.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(l.fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logging.Logger().Info("render loop started", "fps", l.fps)
	for {
		select {
		case <-ctx.Done():
			logging.Logger().Info("render loop stopped")
			return ctx.Err()
		case <-ticker.C:
			f := l.pool.Get()
			l.src.Render(f)
			if err := l.sink.Render(f); err != nil {
				logging.Logger().Warn("frame send failed", "err", err)
			}
			l.pool.Put(f)
		}
	}
}

// Package app wires a grid device, the editor, and the render loop
// into one supervised session.
package app

import (
	"context"
	"sync"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
	"github.com/johnmatter/gridui/internal/render"
)

// Session consumes device events, feeds the editor, and keeps a render
// loop alive while a grid is attached. The loop is restarted whenever
// the device announces a (new) size and stopped on disconnect.
type Session struct {
	dev  grid.Device
	ed   *editor.Editor
	sink render.Sink
	fps  int

	mu       sync.Mutex
	stopLoop context.CancelFunc
	loopDone chan struct{}
	width    int
	height   int
}

func NewSession(dev grid.Device, ed *editor.Editor, fps int) *Session {
	return &Session{dev: dev, ed: ed, sink: dev, fps: fps}
}

// SetSink replaces the frame sink, for wrapping the device in a tee.
// Call before Run.
func (s *Session) SetSink(sink render.Sink) { s.sink = sink }

// Run blocks until ctx is cancelled or the device event stream closes.
// On the way out the grid is darkened and the device closed.
func (s *Session) Run(ctx context.Context) error {
	defer s.cleanup()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.dev.Events():
			if !ok {
				logging.Logger().Info("device event stream closed")
				return nil
			}
			s.handle(ctx, ev)
		}
	}
}

func (s *Session) handle(ctx context.Context, ev grid.Event) {
	switch ev := ev.(type) {
	case grid.ReadyEvent:
		s.ed.Ready(ev.Width, ev.Height)
		s.restartLoop(ctx, ev.Width, ev.Height)
	case grid.KeyEvent:
		s.ed.HandleKey(ev.X, ev.Y, ev.Pressed)
	case grid.DisconnectEvent:
		s.haltLoop()
		s.ed.Disconnect()
	}
}

func (s *Session) restartLoop(ctx context.Context, width, height int) {
	s.haltLoop()

	loop, err := render.NewLoop(s.ed, s.sink, width, height, s.fps)
	if err != nil {
		logging.Logger().Warn("render loop not started", "err", err)
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.Run(loopCtx)
	}()

	s.mu.Lock()
	s.stopLoop = cancel
	s.loopDone = done
	s.width, s.height = width, height
	s.mu.Unlock()
}

// haltLoop stops the render loop and waits for its last frame to
// finish, so nothing races a later dark frame.
func (s *Session) haltLoop() {
	s.mu.Lock()
	cancel, done := s.stopLoop, s.loopDone
	s.stopLoop, s.loopDone = nil, nil
	s.width, s.height = 0, 0
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Session) cleanup() {
	s.mu.Lock()
	width, height := s.width, s.height
	s.mu.Unlock()
	s.haltLoop()
	if width > 0 && height > 0 {
		if err := s.sink.Render(grid.NewFrame(width, height)); err != nil {
			logging.Logger().Debug("final dark frame not delivered", "err", err)
		}
	}
	if err := s.dev.Close(); err != nil {
		logging.Logger().Warn("device close failed", "err", err)
	}
}

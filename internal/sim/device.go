// Package sim is the terminal grid: a bubbletea surface that stands in
// for hardware, with a sidebar showing the live layout.
package sim

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
)

// Hooks expose editor operations the surface needs beyond raw key
// events: the sidebar snapshot and the variant cycle bound to "t".
type Hooks struct {
	Snapshot     func() editor.Snapshot
	CycleVariant func()
}

// Device is a simulated grid. It emits key events synthesized from
// mouse and keyboard input and displays frames pushed through Render.
// Run must be called on the main goroutine and blocks until the UI
// quits or ctx is cancelled.
type Device struct {
	width  int
	height int
	hooks  Hooks

	events     chan grid.Event
	done       chan struct{}
	closeOnce  sync.Once
	eventsOnce sync.Once

	mu   sync.Mutex
	prog *tea.Program
}

func NewDevice(width, height int, hooks Hooks) *Device {
	return &Device{
		width:  width,
		height: height,
		hooks:  hooks,
		events: make(chan grid.Event, 64),
		done:   make(chan struct{}),
	}
}

func (d *Device) Events() <-chan grid.Event { return d.events }

// Render forwards a frame copy to the UI. Frames arriving before the
// UI is up are dropped.
func (d *Device) Render(f *grid.Frame) error {
	d.mu.Lock()
	p := d.prog
	d.mu.Unlock()
	if p == nil {
		return nil
	}
	p.Send(frameMsg{frame: f.Clone()})
	return nil
}

// Close asks the UI to quit. The event stream closes once Run returns.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
		d.mu.Lock()
		p := d.prog
		d.mu.Unlock()
		if p != nil {
			p.Quit()
		}
	})
	return nil
}

// Run announces the virtual grid and drives the UI until quit.
func (d *Device) Run(ctx context.Context) error {
	p := tea.NewProgram(newModel(d), tea.WithAltScreen(), tea.WithMouseCellMotion())
	d.mu.Lock()
	d.prog = p
	d.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-d.done:
		}
	}()

	d.emit(grid.ReadyEvent{Width: d.width, Height: d.height})
	logging.Logger().Info("terminal grid started", "width", d.width, "height", d.height)

	_, err := p.Run()
	d.Close()
	d.eventsOnce.Do(func() { close(d.events) })
	return err
}

func (d *Device) emit(ev grid.Event) {
	select {
	case <-d.done:
		return
	default:
	}
	select {
	case d.events <- ev:
	case <-d.done:
	}
}

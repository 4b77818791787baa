// Package gui is the desktop grid: a raylib window of illuminated keys
// speaking the same event protocol as hardware.
package gui

import (
	"context"
	"fmt"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/export"
	"github.com/johnmatter/gridui/internal/geom"
	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
)

// Hooks expose editor operations the window needs beyond raw key
// events: the HUD snapshot and the variant cycle bound to T.
type Hooks struct {
	Snapshot     func() editor.Snapshot
	CycleVariant func()
}

// Device is a simulated grid in a desktop window. Left click and drag
// press keys, holding the right button or M holds the mode key. Run
// must be called on the main thread; raylib requires it.
type Device struct {
	width  int
	height int
	hooks  Hooks

	events     chan grid.Event
	done       chan struct{}
	closeOnce  sync.Once
	eventsOnce sync.Once

	mu    sync.Mutex
	frame *grid.Frame

	font     rl.Font
	dragging bool
	dragCell geom.Point
	metaHeld bool
	status   string
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

// Render stores a frame copy for the next draw pass.
func (d *Device) Render(f *grid.Frame) error {
	d.mu.Lock()
	d.frame = f.Clone()
	d.mu.Unlock()
	return nil
}

// Close asks the window loop to quit. The event stream closes once Run
// returns.
func (d *Device) Close() error {
	d.closeOnce.Do(func() { close(d.done) })
	return nil
}

// Run opens the window, announces the virtual grid, and drives the
// update/draw loop until the window closes or ctx is cancelled.
func (d *Device) Run(ctx context.Context) error {
	rl.InitWindow(int32(d.pixelWidth()), int32(d.pixelHeight()), "gridui")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	d.font = loadFont()

	logging.Logger().Info("desktop grid started", "width", d.width, "height", d.height)
	d.emit(grid.ReadyEvent{Width: d.width, Height: d.height})

	quit := false
	for !quit && !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			quit = true
		case <-d.done:
			quit = true
		default:
			quit = d.update()
			d.draw()
		}
	}

	d.Close()
	d.eventsOnce.Do(func() { close(d.events) })
	return ctx.Err()
}

// update polls input and synthesizes key events. Returns true to quit.
func (d *Device) update() bool {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeyT) && d.hooks.CycleVariant != nil {
		d.hooks.CycleVariant()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		d.status = d.exportPNG()
	}

	// Mode key is held, not latched: it follows the right button or M.
	metaNow := rl.IsMouseButtonDown(rl.MouseRightButton) || rl.IsKeyDown(rl.KeyM)
	if metaNow != d.metaHeld {
		d.metaHeld = metaNow
		d.emit(grid.KeyEvent{X: 0, Y: d.height - 1, Pressed: metaNow})
	}

	cell, onGrid := d.cellAt(rl.GetMousePosition())
	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		if onGrid {
			d.dragging, d.dragCell = true, cell
			d.emit(grid.KeyEvent{X: cell.X, Y: cell.Y, Pressed: true})
		}
	case d.dragging && rl.IsMouseButtonReleased(rl.MouseLeftButton):
		at := d.dragCell
		if onGrid {
			at = cell
		}
		d.dragging = false
		d.emit(grid.KeyEvent{X: at.X, Y: at.Y, Pressed: false})
	case d.dragging && rl.IsMouseButtonDown(rl.MouseLeftButton) && onGrid && cell != d.dragCell:
		// Sliding presses each key the pointer enters, like dragging a
		// finger across hardware.
		d.dragCell = cell
		d.emit(grid.KeyEvent{X: cell.X, Y: cell.Y, Pressed: true})
	}

	return false
}

func (d *Device) exportPNG() string {
	d.mu.Lock()
	f := d.frame
	d.mu.Unlock()
	if f == nil || d.hooks.Snapshot == nil {
		return "no frame yet"
	}
	name := fmt.Sprintf("gridui-%s.png", time.Now().Format("20060102-150405"))
	if err := export.WritePNG(name, f, d.hooks.Snapshot()); err != nil {
		logging.Logger().Warn("png export failed", "err", err)
		return "png export failed"
	}
	return "wrote " + name
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

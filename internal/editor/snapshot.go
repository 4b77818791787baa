package editor

import (
	"github.com/johnmatter/gridui/internal/control"
	"github.com/johnmatter/gridui/internal/geom"
)

// ControlView is a read-only copy of one control for display surfaces.
type ControlView struct {
	ID         string
	Variant    control.Variant
	Kind       geom.Kind
	Points     []geom.Point
	State      float64
	Base       int
	Peak       int
	Brightness int
}

// Snapshot is a consistent copy of the session for sidebars, exports,
// and clipboards. Controls appear in insertion order.
type Snapshot struct {
	Width        int
	Height       int
	Ready        bool
	Meta         bool
	Selected     string
	HasClipboard bool
	Pending      []geom.Point
	Controls     []ControlView
}

// Snapshot captures the current session under the editor lock.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.clock.Now()
	snap := Snapshot{
		Width:        e.width,
		Height:       e.height,
		Ready:        e.ready,
		Meta:         e.meta,
		Selected:     e.selected,
		HasClipboard: e.clipboard != nil,
		Pending:      append([]geom.Point(nil), e.points...),
		Controls:     make([]ControlView, 0, len(e.order)),
	}
	for _, id := range e.order {
		c := e.controls[id]
		snap.Controls = append(snap.Controls, ControlView{
			ID:         c.ID,
			Variant:    c.Variant,
			Kind:       c.Shape.Kind(),
			Points:     c.Shape.Points(),
			State:      c.State,
			Base:       c.Base,
			Peak:       c.Peak,
			Brightness: c.Brightness(e.policy, now),
		})
	}
	return snap
}

package editor

import (
	"github.com/johnmatter/gridui/internal/control"
	"github.com/johnmatter/gridui/internal/geom"
	"github.com/johnmatter/gridui/internal/logging"
)

// handleKey dispatches one key transition. Callers hold e.mu.
func (e *Editor) handleKey(x, y int, pressed bool) {
	if !e.ready {
		return
	}
	if x < 0 || x >= e.width || y < 0 || y >= e.height {
		logging.Logger().Debug("key outside grid dropped", "x", x, "y", y)
		return
	}
	if e.meta {
		e.handleMetaKey(x, y, pressed)
		return
	}
	e.handleNormalKey(x, y, pressed)
}

// handleNormalKey implements the sketching mode. A key-down on the
// mode cell switches modes; other bottom-row keys are inert. Everywhere
// else a key-down both extends the point buffer and presses any control
// under the cell, and a key-up either commits the buffered gesture or
// releases the control under the cell.
func (e *Editor) handleNormalKey(x, y int, pressed bool) {
	mc := e.metaCell()
	if pressed {
		if x == mc.X && y == mc.Y {
			e.meta = true
			logging.Logger().Debug("meta mode entered")
			return
		}
		if y == e.bottomRow() {
			return
		}
		e.points = append(e.points, geom.Point{X: x, Y: y})
		e.touchAt(x, y, true)
		return
	}
	if y == e.bottomRow() {
		return
	}
	if len(e.points) == 2 || len(e.points) == 3 {
		e.commitPoints()
		return
	}
	e.points = e.points[:0]
	e.touchAt(x, y, false)
}

// handleMetaKey implements the console mode. Key-ups are inert except
// on the mode cell, which leaves the mode, commits any gesture carried
// across the boundary, and drops the selection.
func (e *Editor) handleMetaKey(x, y int, pressed bool) {
	if !pressed {
		mc := e.metaCell()
		if x == mc.X && y == mc.Y {
			e.meta = false
			e.commitPoints()
			e.selected = ""
			logging.Logger().Debug("meta mode left")
		}
		return
	}
	e.metaPress(geom.Point{X: x, Y: y})
}

// metaPress records the press in the history ring and resolves it, in
// priority order: an affordance of the current selection, a control to
// select, an armed paste, and finally a new single-point trigger.
func (e *Editor) metaPress(p geom.Point) {
	e.history.push(p)
	if sel, ok := e.selectedControl(); ok {
		if inc, dec, cpd, ok := e.affordanceCells(sel); ok {
			switch p {
			case inc:
				sel.AdjustBrightness(1)
				logging.Logger().Debug("brightness raised",
					"id", sel.ID, "base", sel.Base, "peak", sel.Peak)
				return
			case dec:
				sel.AdjustBrightness(-1)
				logging.Logger().Debug("brightness lowered",
					"id", sel.ID, "base", sel.Base, "peak", sel.Peak)
				return
			case cpd:
				e.copyOrDelete(sel, p)
				return
			}
		}
	}
	if c := e.controlAt(p.X, p.Y); c != nil {
		e.selected = c.ID
		logging.Logger().Debug("control selected", "id", c.ID)
		return
	}
	if e.clipboard != nil && e.pasteArmed() {
		if err := e.pasteAt(p); err != nil {
			logging.Logger().Warn("paste rejected", "err", err)
		}
		return
	}
	c, err := e.insertControl(geom.MustShape(p), control.Trigger)
	if err != nil {
		logging.Logger().Warn("point rejected", "err", err)
		return
	}
	e.selected = c.ID
}

// pasteArmed reports whether the press before the current one landed on
// the copy/delete cell of the previous copy. The current press is
// already in the ring when this runs.
func (e *Editor) pasteArmed() bool {
	prev, ok := e.history.prev()
	return ok && e.copyDelArmed && prev == e.lastCopyDelPos
}

// copyOrDelete resolves a press on the copy/delete cell. Two presses on
// the same cell inside the double-press window delete the selection;
// otherwise the selection is copied to the clipboard.
func (e *Editor) copyOrDelete(sel *control.Control, cell geom.Point) {
	now := e.clock.Now()
	if e.copyDelArmed && cell == e.lastCopyDelPos && now.Sub(e.lastCopyDelAt) < doublePressWindow {
		e.deleteControl(sel.ID)
	} else {
		e.clipboard = sel.Clone()
		logging.Logger().Info("control copied", "id", sel.ID)
	}
	e.lastCopyDelAt = now
	e.lastCopyDelPos = cell
	e.copyDelArmed = true
}

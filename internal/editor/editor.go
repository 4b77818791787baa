package editor

import (
	"math/rand"
	"sync"
	"time"

	"github.com/johnmatter/gridui/internal/control"
	"github.com/johnmatter/gridui/internal/geom"
	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
)

// Display levels for editor overlays. Controls render their own
// brightness; everything below is chrome drawn on top.
const (
	pendingPointLevel = grid.LevelMax
	metaIdleLevel     = 4
	metaActiveLevel   = grid.LevelMax
	incrementLevel    = 12
	decrementLevel    = 8
	copyDeleteLevel   = 10
)

// doublePressWindow is the longest gap between two presses on the
// copy/delete cell that still counts as a delete.
const doublePressWindow = 500 * time.Millisecond

// TouchEvent describes one state-affecting contact with a control.
type TouchEvent struct {
	Time    time.Time
	ID      string
	Variant control.Variant
	Pressed bool
	State   float64
}

// Observer receives touch notifications outside the editor lock.
type Observer interface {
	ControlTouched(ev TouchEvent)
}

// Editor holds the layout session for one grid. The zero value is not
// usable; construct with New.
type Editor struct {
	mu sync.Mutex

	width  int
	height int
	ready  bool

	controls map[string]*control.Control
	order    []string

	points   []geom.Point
	meta     bool
	selected string

	clipboard *control.Control
	history   pressRing

	lastCopyDelAt  time.Time
	lastCopyDelPos geom.Point
	copyDelArmed   bool

	clock  Clock
	policy control.Policy
	rng    *rand.Rand

	observers []Observer
	pending   []TouchEvent
}

// New returns an editor using the given brightness policy. A zero seed
// picks one from the wall clock.
func New(policy control.Policy, seed int64) *Editor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Editor{
		controls: make(map[string]*control.Control),
		clock:    SystemClock{},
		policy:   policy,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// SetClock replaces the editor clock. Call before any events arrive.
func (e *Editor) SetClock(c Clock) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clock = c
}

// AddObserver registers o for touch notifications.
func (e *Editor) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, o)
}

// Ready starts a session on a width x height grid. Any previous session
// state is discarded; the clipboard survives.
func (e *Editor) Ready(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width = width
	e.height = height
	e.ready = true
	e.reset()
	logging.Logger().Info("session ready", "width", width, "height", height)
}

// Disconnect ends the session. Events are ignored until the next Ready.
func (e *Editor) Disconnect() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ready = false
	e.reset()
	logging.Logger().Info("session closed")
}

// reset clears all per-session state. The clipboard is deliberately
// kept so a copied control outlives a reconnect.
func (e *Editor) reset() {
	e.controls = make(map[string]*control.Control)
	e.order = e.order[:0]
	e.points = e.points[:0]
	e.meta = false
	e.selected = ""
	e.history.clear()
	e.lastCopyDelAt = time.Time{}
	e.lastCopyDelPos = geom.Point{}
	e.copyDelArmed = false
}

// HandleKey feeds one key transition into the interaction machine.
// Coordinates outside the grid are dropped.
func (e *Editor) HandleKey(x, y int, pressed bool) {
	e.mu.Lock()
	e.handleKey(x, y, pressed)
	events := e.pending
	e.pending = nil
	observers := e.observers
	e.mu.Unlock()
	for _, ev := range events {
		for _, o := range observers {
			o.ControlTouched(ev)
		}
	}
}

func (e *Editor) bottomRow() int { return e.height - 1 }

func (e *Editor) metaCell() geom.Point {
	return geom.Point{X: 0, Y: e.bottomRow()}
}

// controlAt returns the first control in insertion order containing the
// cell, or nil.
func (e *Editor) controlAt(x, y int) *control.Control {
	for _, id := range e.order {
		if c := e.controls[id]; c.Shape.Contains(x, y) {
			return c
		}
	}
	return nil
}

func (e *Editor) selectedControl() (*control.Control, bool) {
	if e.selected == "" {
		return nil, false
	}
	c, ok := e.controls[e.selected]
	if !ok {
		e.selected = ""
		return nil, false
	}
	return c, true
}

// touchAt routes a contact transition to the containing control, if
// any. Only the first match in insertion order is touched.
func (e *Editor) touchAt(x, y int, pressed bool) {
	c := e.controlAt(x, y)
	if c == nil {
		return
	}
	now := e.clock.Now()
	c.Touch(pressed, now)
	e.pending = append(e.pending, TouchEvent{
		Time:    now,
		ID:      c.ID,
		Variant: c.Variant,
		Pressed: pressed,
		State:   c.State,
	})
}

// validatePlacement checks a candidate shape against the grid bounds,
// the reserved bottom row, and every placed control.
func (e *Editor) validatePlacement(s geom.Shape) error {
	lo, hi := s.Bounds()
	if lo.X < 0 || lo.Y < 0 || hi.X >= e.width || hi.Y >= e.height {
		return ErrOutOfBounds
	}
	if hi.Y >= e.bottomRow() {
		return ErrReservedRow
	}
	for _, id := range e.order {
		if geom.Overlap(s, e.controls[id].Shape) {
			return ErrOverlap
		}
	}
	return nil
}

// insertControl validates the shape, assigns a fresh ID, and appends
// the new control to the render order.
func (e *Editor) insertControl(s geom.Shape, v control.Variant) (*control.Control, error) {
	if err := e.validatePlacement(s); err != nil {
		return nil, err
	}
	id := generateID(e.rng, func(id string) bool {
		_, ok := e.controls[id]
		return ok
	})
	c := control.New(id, s, v)
	e.controls[id] = c
	e.order = append(e.order, id)
	logging.Logger().Info("control created",
		"id", id, "kind", s.Kind().String(), "variant", v.String())
	return c, nil
}

func (e *Editor) deleteControl(id string) {
	if _, ok := e.controls[id]; !ok {
		return
	}
	delete(e.controls, id)
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if e.selected == id {
		e.selected = ""
	}
	logging.Logger().Info("control deleted", "id", id)
}

// commitPoints turns a 2-point buffer into a rectangle and a 3-point
// buffer into a triangle. Any other count is discarded without effect.
// The buffer is cleared in every case.
func (e *Editor) commitPoints() {
	defer func() { e.points = e.points[:0] }()
	if len(e.points) != 2 && len(e.points) != 3 {
		return
	}
	s, err := geom.New(e.points...)
	if err != nil {
		logging.Logger().Warn("gesture discarded", "err", err)
		return
	}
	if _, err := e.insertControl(s, control.Trigger); err != nil {
		logging.Logger().Warn("gesture rejected", "err", err)
	}
}

// pasteAt clones the clipboard control so its first vertex lands on p.
// State and brightness carry over; the ID is fresh.
func (e *Editor) pasteAt(p geom.Point) error {
	src := e.clipboard
	first := src.Shape.Points()[0]
	moved := src.Shape.Translate(p.X-first.X, p.Y-first.Y)
	if err := e.validatePlacement(moved); err != nil {
		return err
	}
	c := src.Clone()
	c.ID = generateID(e.rng, func(id string) bool {
		_, ok := e.controls[id]
		return ok
	})
	c.Shape = moved
	e.controls[c.ID] = c
	e.order = append(e.order, c.ID)
	logging.Logger().Info("control pasted", "id", c.ID, "from", src.ID)
	return nil
}

// affordanceCells places the brightness and copy/delete cells beside
// the selected shape: increment at the top-right corner plus one
// column, decrement one cell further right, copy/delete below the
// increment. The block mirrors to the left side when it would leave
// the grid and is clamped clear of the reserved row.
func (e *Editor) affordanceCells(sel *control.Control) (inc, dec, cpd geom.Point, ok bool) {
	if e.width < 2 || e.height < 3 {
		return geom.Point{}, geom.Point{}, geom.Point{}, false
	}
	lo, hi := sel.Shape.Bounds()
	base := geom.Point{X: hi.X + 1, Y: lo.Y}
	if base.X+1 >= e.width {
		base.X = lo.X - 2
	}
	if base.X < 0 {
		base.X = 0
	}
	if maxRow := e.bottomRow() - 2; base.Y > maxRow {
		base.Y = maxRow
	}
	if base.Y < 0 {
		base.Y = 0
	}
	inc = base
	dec = geom.Point{X: base.X + 1, Y: base.Y}
	cpd = geom.Point{X: base.X, Y: base.Y + 1}
	return inc, dec, cpd, true
}

// CycleSelectedVariant steps the selected control through
// trigger -> toggle -> slider -> trigger. Without a selection it does
// nothing.
func (e *Editor) CycleSelectedVariant() {
	e.mu.Lock()
	defer e.mu.Unlock()
	sel, ok := e.selectedControl()
	if !ok {
		return
	}
	sel.Variant = sel.Variant.Next()
	logging.Logger().Info("variant changed", "id", sel.ID, "variant", sel.Variant.String())
}

// Render composes the current layout into f: controls in insertion
// order, then pending points, the mode cell, and any affordances.
func (e *Editor) Render(f *grid.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f.Clear()
	if !e.ready {
		return
	}
	now := e.clock.Now()
	for _, id := range e.order {
		e.controls[id].Draw(f, e.policy, now)
	}
	for _, p := range e.points {
		f.Set(p.X, p.Y, pendingPointLevel)
	}
	mc := e.metaCell()
	if e.meta {
		f.Set(mc.X, mc.Y, metaActiveLevel)
		if sel, ok := e.selectedControl(); ok {
			if inc, dec, cpd, ok := e.affordanceCells(sel); ok {
				f.Set(inc.X, inc.Y, incrementLevel)
				f.Set(dec.X, dec.Y, decrementLevel)
				f.Set(cpd.X, cpd.Y, copyDeleteLevel)
			}
		}
	} else {
		f.Set(mc.X, mc.Y, metaIdleLevel)
	}
}

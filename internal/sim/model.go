package sim

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/export"
	"github.com/johnmatter/gridui/internal/geom"
	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/logging"
)

// Grid placement inside the terminal. cellAt and View must agree on
// these.
const (
	gridTop  = 2
	gridLeft = 3
)

// scopeSamples bounds the brightness history plotted for the selected
// control; at 30 fps this is a two second window, enough to watch a
// flash decay.
const scopeSamples = 60

// statusLines is how many recent action results the sidebar keeps.
const statusLines = 3

type frameMsg struct {
	frame *grid.Frame
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	d *Device

	frame *grid.Frame
	snap  editor.Snapshot

	metaHeld  bool
	rightHeld bool
	dragCell  *geom.Point

	scope   []float64
	scopeID string
	presses int
	rate    int

	statusLog []string

	width  int
	height int
}

func newModel(d *Device) model {
	return model{
		d:     d,
		scope: make([]float64, 0, scopeSamples),
	}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case frameMsg:
		m.frame = msg.frame
		m.refreshSnapshot()
		m.sampleScope()
		return m, nil
	case tickMsg:
		m.rate = m.presses
		m.presses = 0
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "m":
		m.sendKey(m.metaCell(), !m.metaHeld)
		m.metaHeld = !m.metaHeld
	case "t":
		if m.d.hooks.CycleVariant != nil {
			m.d.hooks.CycleVariant()
			m.refreshSnapshot()
		}
	case "p":
		m.pushStatus(m.exportPNG())
	case "v":
		m.pushStatus(m.exportSVG())
	case "y":
		m.pushStatus(m.yank())
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (model, tea.Cmd) {
	cell, onGrid := m.cellAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if onGrid {
				m.dragCell = &cell
				m.sendKey(cell, true)
			}
		case tea.MouseButtonRight:
			if !m.rightHeld {
				m.rightHeld = true
				m.sendKey(m.metaCell(), true)
			}
		}
	case tea.MouseActionMotion:
		// A drag presses each cell it enters; keys pile into the point
		// buffer like fingers held on hardware.
		if m.dragCell != nil && onGrid && cell != *m.dragCell {
			m.dragCell = &cell
			m.sendKey(cell, true)
		}
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonRight {
			if m.rightHeld {
				m.rightHeld = false
				m.sendKey(m.metaCell(), false)
			}
			return m, nil
		}
		if m.dragCell != nil {
			at := *m.dragCell
			if onGrid {
				at = cell
			}
			m.dragCell = nil
			m.sendKey(at, false)
		}
	}
	return m, nil
}

// cellAt maps a terminal coordinate to a grid cell. Cells are two
// characters wide and one row tall.
func (m model) cellAt(tx, ty int) (geom.Point, bool) {
	cx := tx - gridLeft
	cy := ty - gridTop
	if cx < 0 || cy < 0 {
		return geom.Point{}, false
	}
	cx /= 2
	if cx >= m.d.width || cy >= m.d.height {
		return geom.Point{}, false
	}
	return geom.Point{X: cx, Y: cy}, true
}

func (m model) metaCell() geom.Point {
	return geom.Point{X: 0, Y: m.d.height - 1}
}

func (m *model) sendKey(p geom.Point, pressed bool) {
	m.d.emit(grid.KeyEvent{X: p.X, Y: p.Y, Pressed: pressed})
	if pressed {
		m.presses++
	}
}

func (m *model) refreshSnapshot() {
	if m.d.hooks.Snapshot != nil {
		m.snap = m.d.hooks.Snapshot()
	}
}

func (m *model) pushStatus(s string) {
	m.statusLog = append(m.statusLog, s)
	if len(m.statusLog) > statusLines {
		m.statusLog = m.statusLog[1:]
	}
}

// sampleScope appends the selected control's rendered level once per
// frame. Changing the selection restarts the trace.
func (m *model) sampleScope() {
	if m.snap.Selected != m.scopeID {
		m.scopeID = m.snap.Selected
		m.scope = m.scope[:0]
	}
	if m.scopeID == "" {
		return
	}
	for _, cv := range m.snap.Controls {
		if cv.ID == m.scopeID {
			m.scope = append(m.scope, float64(cv.Brightness))
			if len(m.scope) > scopeSamples {
				m.scope = m.scope[1:]
			}
			return
		}
	}
}

func (m *model) exportPNG() string {
	if m.frame == nil {
		return "no frame yet"
	}
	m.refreshSnapshot()
	name := fmt.Sprintf("gridui-%s.png", time.Now().Format("20060102-150405"))
	if err := export.WritePNG(name, m.frame, m.snap); err != nil {
		logging.Logger().Warn("png export failed", "err", err)
		return "png export failed"
	}
	return "wrote " + name
}

func (m *model) exportSVG() string {
	if m.frame == nil {
		return "no frame yet"
	}
	m.refreshSnapshot()
	name := fmt.Sprintf("gridui-%s.svg", time.Now().Format("20060102-150405"))
	if err := export.WriteSVG(name, m.frame, m.snap); err != nil {
		logging.Logger().Warn("svg export failed", "err", err)
		return "svg export failed"
	}
	return "wrote " + name
}

func (m *model) yank() string {
	m.refreshSnapshot()
	if err := clipboard.WriteAll(export.LayoutText(m.snap)); err != nil {
		logging.Logger().Warn("clipboard write failed", "err", err)
		return "clipboard unavailable"
	}
	return fmt.Sprintf("yanked %d controls", len(m.snap.Controls))
}

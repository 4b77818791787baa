package sim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/johnmatter/gridui/internal/export"
	"github.com/johnmatter/gridui/internal/grid"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	cellStyles = buildCellStyles()
)

// One style per LED level, on the same amber ramp the exporters use.
func buildCellStyles() [grid.LevelMax + 1]lipgloss.Style {
	var styles [grid.LevelMax + 1]lipgloss.Style
	for level := range styles {
		styles[level] = lipgloss.NewStyle().Foreground(lipgloss.Color(export.LevelHex(level)))
	}
	return styles
}

func (m model) View() string {
	var b strings.Builder

	mode, modeStyle := "normal", green
	if m.snap.Meta {
		mode, modeStyle = "meta", magenta
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("   %s %s  %s  %s\n",
		modeStyle.Render("●"),
		cyan.Render("gridui"),
		dim.Render(fmt.Sprintf("%dx%d", m.d.width, m.d.height)),
		modeStyle.Render(mode)))

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewGrid(), "   ", m.viewSidebar())
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(dim.Render("   click key   drag sketch   m/right meta   t variant   p png   v svg   y yank   q quit") + "\n")

	return b.String()
}

// viewGrid draws the LED field starting at terminal row gridTop, column
// gridLeft. No border or padding; cellAt depends on the alignment.
func (m model) viewGrid() string {
	var b strings.Builder
	for y := 0; y < m.d.height; y++ {
		b.WriteString("   ")
		for x := 0; x < m.d.width; x++ {
			level := 0
			if m.frame != nil {
				level = m.frame.At(x, y)
			}
			b.WriteString(cellStyles[level].Render("██"))
		}
		if y < m.d.height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m model) viewSidebar() string {
	var b strings.Builder

	b.WriteString(dim.Render("selected  "))
	if m.snap.Selected != "" {
		b.WriteString(magenta.Render(m.snap.Selected))
	} else {
		b.WriteString(dimmer.Render("none"))
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("pending   ") + white.Render(fmt.Sprintf("%d", len(m.snap.Pending))) + "\n")
	clip := dimmer.Render("empty")
	if m.snap.HasClipboard {
		clip = yellow.Render("filled")
	}
	b.WriteString(dim.Render("clipboard ") + clip + "\n\n")

	for _, cv := range m.snap.Controls {
		line := fmt.Sprintf("%s %-9s %-8s %5.2f", cv.ID, cv.Kind, cv.Variant, cv.State)
		if cv.ID == m.snap.Selected {
			b.WriteString(magenta.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + dim.Render(line) + "\n")
		}
	}

	if len(m.scope) > 1 {
		chart := asciigraph.Plot(m.scope,
			asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("level "+m.scopeID))
		b.WriteString("\n" + dimmer.Render(chart) + "\n")
	}
	b.WriteString("\n" + dim.Render(fmt.Sprintf("%d presses/s", m.rate)) + "\n")
	if len(m.statusLog) > 0 {
		b.WriteString("\n")
		for i, s := range m.statusLog {
			style := dim
			if i == len(m.statusLog)-1 {
				style = yellow
			}
			b.WriteString(style.Render(s) + "\n")
		}
	}

	return b.String()
}

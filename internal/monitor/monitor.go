// Package monitor mirrors rendered frames to a terminal so a headless
// hardware session can be watched from the shell.
package monitor

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/render"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// levelRunes is the 16-step density ramp, one rune per LED level.
var levelRunes = []rune(" ..::--==++**##@")

// Monitor forwards frames to an inner sink and echoes them to out at
// most frameRate times per second.
type Monitor struct {
	inner     render.Sink
	out       io.Writer
	frameRate int

	mu     sync.Mutex
	last   time.Time
	frames int
}

// Tee wraps inner so frames also land on out.
func Tee(inner render.Sink, out io.Writer, frameRate int) *Monitor {
	if frameRate <= 0 {
		frameRate = 10
	}
	return &Monitor{inner: inner, out: out, frameRate: frameRate}
}

func (m *Monitor) Render(f *grid.Frame) error {
	err := m.inner.Render(f)
	m.mirror(f)
	return err
}

func (m *Monitor) mirror(f *grid.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames++
	if time.Since(m.last) < time.Second/time.Duration(m.frameRate) {
		return
	}
	m.last = time.Now()

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  grid %dx%d\n", f.Width, f.Height)
	b.WriteString("  +" + strings.Repeat("-", f.Width*2) + "+\n")
	for y := 0; y < f.Height; y++ {
		b.WriteString("  |")
		for x := 0; x < f.Width; x++ {
			r := levelRunes[f.At(x, y)]
			b.WriteRune(r)
			b.WriteRune(r)
		}
		b.WriteString("|\n")
	}
	b.WriteString("  +" + strings.Repeat("-", f.Width*2) + "+\n")
	fmt.Fprintf(&b, "  frame %d\n", m.frames)
	fmt.Fprint(m.out, b.String())
}

func (m *Monitor) Start() { fmt.Fprint(m.out, hideCursor) }
func (m *Monitor) Stop()  { fmt.Fprint(m.out, showCursor) }

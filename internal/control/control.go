package control

import (
	"fmt"
	"time"

	"github.com/johnmatter/gridui/internal/geom"
	"github.com/johnmatter/gridui/internal/logging"
)

// Variant selects how a touch mutates a control's state.
type Variant int

const (
	Trigger Variant = iota
	Toggle
	Slider
)

func (v Variant) String() string {
	switch v {
	case Trigger:
		return "trigger"
	case Toggle:
		return "toggle"
	case Slider:
		return "slider"
	default:
		return "invalid"
	}
}

// Next cycles Trigger -> Toggle -> Slider -> Trigger.
func (v Variant) Next() Variant {
	return (v + 1) % 3
}

// Brightness parameter ranges. Base and peak clamp independently.
const (
	BaseMin = 0
	BaseMax = 13
	PeakMin = 2
	PeakMax = 15
)

// Resting and active levels for a freshly created control.
const (
	DefaultBase = 3
	DefaultPeak = 15
)

// Policy selects how active brightness is derived from control state.
type Policy int

const (
	// PolicyStatic returns base when the state is zero and peak otherwise.
	PolicyStatic Policy = iota
	// PolicyFlash decays from peak toward base after each touch, four
	// levels per step across a 0.4 s window. After the window a held
	// toggle stays at peak; everything else rests at base.
	PolicyFlash
)

const (
	flashWindow   = 400 * time.Millisecond
	flashSteps    = 4
	flashStepDrop = 4
)

func (p Policy) String() string {
	if p == PolicyFlash {
		return "flash"
	}
	return "static"
}

// ParsePolicy maps the config value "static" or "flash" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "static":
		return PolicyStatic, nil
	case "flash":
		return PolicyFlash, nil
	default:
		return PolicyStatic, fmt.Errorf("control: unknown brightness policy %q", s)
	}
}

// Control is one user-placed element on the grid. Its ID is fixed for
// life; the shape only ever changes by whole-shape translation (paste).
type Control struct {
	ID      string
	Shape   geom.Shape
	Variant Variant

	// State is 0 or 1 for triggers and toggles, a [0, 1] scalar for
	// sliders. Zero always means "off" for brightness purposes.
	State float64

	// LastTouch anchors both diagnostics and the flash window.
	LastTouch time.Time

	Base int
	Peak int
}

func New(id string, shape geom.Shape, variant Variant) *Control {
	return &Control{
		ID:      id,
		Shape:   shape,
		Variant: variant,
		Base:    DefaultBase,
		Peak:    DefaultPeak,
	}
}

// Touch applies one key transition and records the activity.
func (c *Control) Touch(pressed bool, now time.Time) {
	switch c.Variant {
	case Trigger:
		if pressed {
			if c.State == 0 {
				c.State = 1
			} else {
				c.State = 0
			}
		}
	case Toggle:
		if pressed {
			c.State = 1
		} else {
			c.State = 0
		}
	case Slider:
		// Value updates arrive through SetValue; a touch is activity only.
	}
	c.LastTouch = now
	logging.Logger().Debug("control touched",
		"id", c.ID, "variant", c.Variant.String(), "pressed", pressed, "state", c.State)
}

// SetValue sets a slider's scalar state, clamped to [0, 1]. Other
// variants ignore it.
func (c *Control) SetValue(v float64) {
	if c.Variant != Slider {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.State = v
}

// Brightness resolves the control's current level under the given policy.
func (c *Control) Brightness(p Policy, now time.Time) int {
	if c.State == 0 {
		return c.Base
	}
	if p != PolicyFlash {
		return c.Peak
	}
	elapsed := now.Sub(c.LastTouch)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < flashWindow {
		step := int(elapsed / (flashWindow / flashSteps))
		level := c.Peak - step*flashStepDrop
		if level < c.Base {
			level = c.Base
		}
		return level
	}
	if c.Variant == Toggle {
		return c.Peak
	}
	return c.Base
}

// AdjustBrightness shifts both parameters by delta. The ranges clamp
// independently, so a large shape can pin one end without dragging the
// other.
func (c *Control) AdjustBrightness(delta int) {
	c.Base = clamp(c.Base+delta, BaseMin, BaseMax)
	c.Peak = clamp(c.Peak+delta, PeakMin, PeakMax)
}

// Clone copies the control for the clipboard. Shape is immutable, so
// the shallow field copy cannot alias live mutations.
func (c *Control) Clone() *Control {
	cp := *c
	return &cp
}

// Draw fills the control's cells at its resolved brightness.
func (c *Control) Draw(canvas geom.Canvas, p Policy, now time.Time) {
	c.Shape.Draw(canvas, c.Brightness(p, now))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

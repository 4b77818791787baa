// Package control implements the stateful grid control backed by a
// shape: its variant state machine and its brightness feedback.
//
// Variants respond to key transitions differently:
//
//   - [Trigger]: flips its latched state on every press; releases are ignored
//   - [Toggle]: mirrors physical contact, 1 while held and 0 on release
//   - [Slider]: holds a scalar; touches mark activity but the value is
//     owned by the consumer (see [Control.SetValue])
//
// Brightness is resolved per frame through a [Policy]: the static policy
// is plain two-level (base when off, peak when on); the flash policy
// decays from peak to base in four steps over 0.4 s after each touch.
package control

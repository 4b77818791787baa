package editor_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/johnmatter/gridui/internal/control"
	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/geom"
	"github.com/johnmatter/gridui/internal/grid"
)

type recordingObserver struct {
	events []editor.TouchEvent
}

func (r *recordingObserver) ControlTouched(ev editor.TouchEvent) {
	r.events = append(r.events, ev)
}

// The suite drives a 16x8 session, so the mode cell sits at (0, 7) and
// row 7 is reserved.
var _ = Describe("Editor", func() {
	var (
		ed    *editor.Editor
		clock *editor.ManualClock
	)

	press := func(x, y int) { ed.HandleKey(x, y, true) }
	release := func(x, y int) { ed.HandleKey(x, y, false) }
	tap := func(x, y int) { press(x, y); release(x, y) }
	modeDown := func() { press(0, 7) }
	modeUp := func() { release(0, 7) }

	// makeRect sketches a rectangle spanning (1,1)-(3,3) and returns
	// its view.
	makeRect := func() editor.ControlView {
		press(1, 1)
		press(3, 3)
		release(3, 3)
		release(1, 1)
		snap := ed.Snapshot()
		ExpectWithOffset(1, snap.Controls).To(HaveLen(1))
		return snap.Controls[0]
	}

	BeforeEach(func() {
		ed = editor.New(control.PolicyStatic, 1)
		clock = editor.NewManualClock(time.Unix(1_000_000, 0))
		ed.SetClock(clock)
		ed.Ready(16, 8)
	})

	Describe("sketching", func() {
		It("creates a rectangle from two held keys", func() {
			cv := makeRect()
			Expect(cv.Kind).To(Equal(geom.KindRectangle))
			Expect(cv.Variant).To(Equal(control.Trigger))
			Expect(cv.Points).To(Equal([]geom.Point{{X: 1, Y: 1}, {X: 3, Y: 3}}))
			Expect(cv.ID).To(HaveLen(6))
		})

		It("creates a triangle from three held keys", func() {
			press(5, 1)
			press(8, 1)
			press(6, 4)
			release(6, 4)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.Controls[0].Kind).To(Equal(geom.KindTriangle))
			Expect(snap.Controls[0].Points).To(Equal([]geom.Point{
				{X: 5, Y: 1}, {X: 8, Y: 1}, {X: 6, Y: 4},
			}))
		})

		It("discards a gesture that would overlap an existing control", func() {
			makeRect()
			press(2, 2)
			press(5, 5)
			release(5, 5)
			Expect(ed.Snapshot().Controls).To(HaveLen(1))
		})

		It("discards a buffer of more than three points", func() {
			press(1, 1)
			press(2, 2)
			press(3, 3)
			press(4, 4)
			release(4, 4)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(BeEmpty())
			Expect(snap.Pending).To(BeEmpty())
		})

		It("ignores keys on the reserved bottom row", func() {
			tap(4, 7)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(BeEmpty())
			Expect(snap.Pending).To(BeEmpty())
			Expect(snap.Meta).To(BeFalse())
		})

		It("keeps the point buffer across a reserved-row tap", func() {
			press(1, 1)
			tap(4, 7)
			Expect(ed.Snapshot().Pending).To(HaveLen(1))

			press(3, 3)
			release(3, 3)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.Controls[0].Kind).To(Equal(geom.KindRectangle))
		})

		It("drops keys outside the grid", func() {
			ed.HandleKey(20, 3, true)
			ed.HandleKey(-1, 0, true)
			Expect(ed.Snapshot().Pending).To(BeEmpty())
		})

		It("commits a held gesture when leaving console mode", func() {
			press(1, 1)
			press(3, 3)
			modeDown()
			Expect(ed.Snapshot().Controls).To(BeEmpty())
			modeUp()
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.Controls[0].Kind).To(Equal(geom.KindRectangle))
			Expect(snap.Pending).To(BeEmpty())
		})
	})

	Describe("touching", func() {
		It("flips a trigger on each tap", func() {
			makeRect()
			tap(2, 2)
			Expect(ed.Snapshot().Controls[0].State).To(Equal(1.0))
			tap(2, 2)
			Expect(ed.Snapshot().Controls[0].State).To(Equal(0.0))
		})

		It("mirrors key contact on a toggle", func() {
			makeRect()
			modeDown()
			press(2, 2)
			ed.CycleSelectedVariant()
			modeUp()
			Expect(ed.Snapshot().Controls[0].Variant).To(Equal(control.Toggle))

			press(2, 2)
			Expect(ed.Snapshot().Controls[0].State).To(Equal(1.0))
			release(2, 2)
			Expect(ed.Snapshot().Controls[0].State).To(Equal(0.0))
		})

		It("notifies observers outside the event path", func() {
			makeRect()
			rec := &recordingObserver{}
			ed.AddObserver(rec)
			tap(2, 2)
			Expect(rec.events).To(HaveLen(2))
			Expect(rec.events[0].Pressed).To(BeTrue())
			Expect(rec.events[0].State).To(Equal(1.0))
			Expect(rec.events[1].Pressed).To(BeFalse())
			Expect(rec.events[1].State).To(Equal(1.0))
		})
	})

	Describe("console mode", func() {
		It("creates and selects a point trigger on an empty cell", func() {
			modeDown()
			press(5, 2)
			snap := ed.Snapshot()
			Expect(snap.Meta).To(BeTrue())
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.Controls[0].Kind).To(Equal(geom.KindPoint))
			Expect(snap.Selected).To(Equal(snap.Controls[0].ID))
		})

		It("refuses to create a point on the reserved row", func() {
			modeDown()
			press(9, 7)
			snap := ed.Snapshot()
			Expect(snap.Meta).To(BeTrue())
			Expect(snap.Controls).To(BeEmpty())
			Expect(snap.Selected).To(BeEmpty())
		})

		It("clears the selection when the mode key is released", func() {
			modeDown()
			press(5, 2)
			modeUp()
			snap := ed.Snapshot()
			Expect(snap.Meta).To(BeFalse())
			Expect(snap.Selected).To(BeEmpty())
			Expect(snap.Controls).To(HaveLen(1))
		})

		It("selects an existing control", func() {
			cv := makeRect()
			modeDown()
			press(2, 2)
			Expect(ed.Snapshot().Selected).To(Equal(cv.ID))
		})

		It("ignores a variant cycle without a selection", func() {
			makeRect()
			modeDown()
			ed.CycleSelectedVariant()
			Expect(ed.Snapshot().Controls[0].Variant).To(Equal(control.Trigger))
		})

		// The rectangle spans (1,1)-(3,3), so its side cells sit at
		// increment (4,1), decrement (5,1), copy/delete (4,2).
		It("adjusts brightness through the side cells", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 1)
			press(4, 1)
			press(4, 1)
			press(5, 1)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.Controls[0].Base).To(Equal(5))
			Expect(snap.Controls[0].Peak).To(Equal(14))
		})

		It("copies on one copy/delete press and deletes on a quick double press", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			Expect(ed.Snapshot().HasClipboard).To(BeTrue())
			Expect(ed.Snapshot().Controls).To(HaveLen(1))

			clock.Advance(400 * time.Millisecond)
			press(4, 2)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(BeEmpty())
			Expect(snap.Selected).To(BeEmpty())
			Expect(snap.HasClipboard).To(BeTrue())
		})

		It("copies twice when the presses are slow", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			clock.Advance(600 * time.Millisecond)
			press(4, 2)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.HasClipboard).To(BeTrue())
		})

		It("pastes the clipboard onto an empty cell right after a copy", func() {
			cv := makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			press(8, 4)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(2))
			Expect(snap.Controls[1].Kind).To(Equal(geom.KindRectangle))
			Expect(snap.Controls[1].Points).To(Equal([]geom.Point{
				{X: 8, Y: 4}, {X: 10, Y: 6},
			}))
			Expect(snap.Controls[1].ID).NotTo(Equal(cv.ID))
		})

		It("keeps the paste armed across console sessions", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			modeUp()

			modeDown()
			press(9, 3)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(2))
			Expect(snap.Controls[1].Points).To(Equal([]geom.Point{
				{X: 9, Y: 3}, {X: 11, Y: 5},
			}))
		})

		It("creates a point when a press does not follow the copy cell", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			press(8, 4)
			press(12, 1)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(3))
			Expect(snap.Controls[2].Kind).To(Equal(geom.KindPoint))
		})

		It("rejects a paste that would overlap and keeps the clipboard", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			press(0, 0)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.HasClipboard).To(BeTrue())
		})

		It("rejects a paste that would reach the reserved row", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			// Anchored at (9,5) the clone would span rows 5-7.
			press(9, 5)
			snap := ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.HasClipboard).To(BeTrue())

			// One row higher fits once the copy cell re-arms the paste.
			clock.Advance(600 * time.Millisecond)
			press(4, 2)
			press(9, 4)
			snap = ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(2))
			Expect(snap.Controls[1].Points).To(Equal([]geom.Point{
				{X: 9, Y: 4}, {X: 11, Y: 6},
			}))
		})

		It("clears session state on reconnect but keeps the clipboard", func() {
			makeRect()
			modeDown()
			press(2, 2)
			press(4, 2)
			ed.Disconnect()
			Expect(ed.Snapshot().Ready).To(BeFalse())

			ed.Ready(16, 8)
			snap := ed.Snapshot()
			Expect(snap.Ready).To(BeTrue())
			Expect(snap.Controls).To(BeEmpty())
			Expect(snap.Meta).To(BeFalse())
			Expect(snap.HasClipboard).To(BeTrue())

			// Press timing was cleared, so a fresh empty-cell press
			// creates a point instead of pasting.
			modeDown()
			press(5, 5)
			snap = ed.Snapshot()
			Expect(snap.Controls).To(HaveLen(1))
			Expect(snap.Controls[0].Kind).To(Equal(geom.KindPoint))
		})
	})

	Describe("rendering", func() {
		var f *grid.Frame

		BeforeEach(func() {
			f = grid.NewFrame(16, 8)
		})

		It("lights the mode cell dim when idle and bright when held", func() {
			ed.Render(f)
			Expect(f.At(0, 7)).To(Equal(4))
			Expect(f.At(5, 5)).To(Equal(0))

			modeDown()
			ed.Render(f)
			Expect(f.At(0, 7)).To(Equal(15))
		})

		It("draws pending points at full level", func() {
			press(2, 3)
			ed.Render(f)
			Expect(f.At(2, 3)).To(Equal(15))
		})

		It("renders a control at base when off and peak when on", func() {
			makeRect()
			ed.Render(f)
			Expect(f.At(2, 2)).To(Equal(3))

			tap(2, 2)
			ed.Render(f)
			Expect(f.At(2, 2)).To(Equal(15))
			Expect(f.At(1, 1)).To(Equal(15))
			Expect(f.At(4, 2)).To(Equal(0))
		})

		It("draws the side cells beside the selection", func() {
			makeRect()
			modeDown()
			press(2, 2)
			ed.Render(f)
			Expect(f.At(4, 1)).To(Equal(12))
			Expect(f.At(5, 1)).To(Equal(8))
			Expect(f.At(4, 2)).To(Equal(10))
		})

		It("mirrors the side cells at the right edge", func() {
			press(13, 2)
			press(15, 4)
			release(15, 4)
			release(13, 2)
			modeDown()
			press(14, 3)
			ed.Render(f)
			Expect(f.At(11, 2)).To(Equal(12))
			Expect(f.At(12, 2)).To(Equal(8))
			Expect(f.At(11, 3)).To(Equal(10))
		})
	})
})

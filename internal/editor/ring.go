package editor

import "github.com/johnmatter/gridui/internal/geom"

const historySlots = 5

// pressRing remembers the most recent meta-mode key-down coordinates.
// Older entries are overwritten once the ring is full.
type pressRing struct {
	slots [historySlots]geom.Point
	count int
	next  int
}

func (r *pressRing) push(p geom.Point) {
	r.slots[r.next] = p
	r.next = (r.next + 1) % historySlots
	if r.count < historySlots {
		r.count++
	}
}

// last returns the most recent entry.
func (r *pressRing) last() (geom.Point, bool) {
	if r.count == 0 {
		return geom.Point{}, false
	}
	return r.slots[(r.next-1+historySlots)%historySlots], true
}

// prev returns the entry pushed immediately before the most recent one.
func (r *pressRing) prev() (geom.Point, bool) {
	if r.count < 2 {
		return geom.Point{}, false
	}
	return r.slots[(r.next-2+historySlots)%historySlots], true
}

func (r *pressRing) clear() {
	r.count = 0
	r.next = 0
}

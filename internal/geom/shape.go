// Package geom provides the shape primitives for grid controls: single
// cells, axis-aligned rectangles, and triangles on an integer cell
// lattice, with hit-testing and pairwise overlap checks.
package geom

import "errors"

var ErrVertexCount = errors.New("geom: shape requires 1 to 3 vertices")

type Point struct {
	X int
	Y int
}

// Kind discriminates shapes by their recorded vertex count.
type Kind int

const (
	KindPoint Kind = iota + 1
	KindRectangle
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindRectangle:
		return "rectangle"
	case KindTriangle:
		return "triangle"
	default:
		return "invalid"
	}
}

// Segment is a directed edge between two lattice points.
type Segment struct {
	A Point
	B Point
}

// Shape is an ordered sequence of one to three lattice points. One point
// names a single cell, two points the opposite corners of a rectangle,
// three points the vertices of a triangle. The kind is fixed at
// construction; translation is the only permitted mutation and it
// preserves the kind.
type Shape struct {
	pts []Point
}

// New builds a shape from its recorded points. Rectangle corners are
// normalized to (min, min) and (max, max) so later containment tests are
// order-independent.
func New(pts ...Point) (Shape, error) {
	if len(pts) < 1 || len(pts) > 3 {
		return Shape{}, ErrVertexCount
	}
	cp := make([]Point, len(pts))
	copy(cp, pts)
	if len(cp) == 2 {
		x1, y1 := cp[0].X, cp[0].Y
		x2, y2 := cp[1].X, cp[1].Y
		cp[0] = Point{min(x1, x2), min(y1, y2)}
		cp[1] = Point{max(x1, x2), max(y1, y2)}
	}
	return Shape{pts: cp}, nil
}

// MustShape is like New but panics on a bad vertex count. Use it when
// the count is fixed at the call site.
func MustShape(pts ...Point) Shape {
	s, err := New(pts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Shape) Kind() Kind { return Kind(len(s.pts)) }

// Points returns a copy of the recorded vertices.
func (s Shape) Points() []Point {
	cp := make([]Point, len(s.pts))
	copy(cp, s.pts)
	return cp
}

// Bounds returns the inclusive bounding box of the recorded vertices.
func (s Shape) Bounds() (lo, hi Point) {
	if len(s.pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi = s.pts[0], s.pts[0]
	for _, p := range s.pts[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
	}
	return lo, hi
}

// Translate returns a copy of the shape shifted by (dx, dy).
func (s Shape) Translate(dx, dy int) Shape {
	cp := make([]Point, len(s.pts))
	for i, p := range s.pts {
		cp[i] = Point{p.X + dx, p.Y + dy}
	}
	return Shape{pts: cp}
}

// Contains reports whether the cell (x, y) lies inside the shape. A point
// matches only its own cell, a rectangle uses an inclusive min/max box
// test, and a triangle requires all three edge orientations to agree in
// sign. Degenerate triangles (collinear or duplicate vertices) contain
// nothing.
func (s Shape) Contains(x, y int) bool {
	switch s.Kind() {
	case KindPoint:
		return s.pts[0].X == x && s.pts[0].Y == y
	case KindRectangle:
		a, b := s.pts[0], s.pts[1]
		x1, x2 := min(a.X, b.X), max(a.X, b.X)
		y1, y2 := min(a.Y, b.Y), max(a.Y, b.Y)
		return x1 <= x && x <= x2 && y1 <= y && y <= y2
	case KindTriangle:
		a, b, c := s.pts[0], s.pts[1], s.pts[2]
		if sign(a, b, c) == 0 {
			return false
		}
		p := Point{x, y}
		b1 := sign(p, a, b) < 0
		b2 := sign(p, b, c) < 0
		b3 := sign(p, c, a) < 0
		return b1 == b2 && b2 == b3
	default:
		return false
	}
}

// Edges connects vertex i to vertex (i+1) mod n. Shapes with fewer than
// two vertices have no edges. A rectangle's two recorded corners yield
// its diagonal (in both directions), which is what the overlap test
// needs to catch crossing boxes with no contained corners.
func (s Shape) Edges() []Segment {
	if len(s.pts) < 2 {
		return nil
	}
	edges := make([]Segment, len(s.pts))
	for i := range s.pts {
		edges[i] = Segment{s.pts[i], s.pts[(i+1)%len(s.pts)]}
	}
	return edges
}

// Canvas is the drawing target for shapes; grid frames satisfy it.
type Canvas interface {
	Set(x, y, level int)
}

// Draw fills every cell the shape occupies at the given level. A point
// sets one cell, a rectangle its whole box, a triangle every cell of its
// bounding box that passes Contains. Degenerate shapes draw nothing.
func (s Shape) Draw(c Canvas, level int) {
	switch s.Kind() {
	case KindPoint:
		c.Set(s.pts[0].X, s.pts[0].Y, level)
	case KindRectangle:
		lo, hi := s.Bounds()
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				c.Set(x, y, level)
			}
		}
	case KindTriangle:
		lo, hi := s.Bounds()
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				if s.Contains(x, y) {
					c.Set(x, y, level)
				}
			}
		}
	}
}

// SegmentsIntersect reports whether two segments properly cross, via the
// four-orientation test: each segment's endpoints must straddle the
// other segment's line.
func SegmentsIntersect(s1, s2 Segment) bool {
	return ccw(s1.A, s2.A, s2.B) != ccw(s1.B, s2.A, s2.B) &&
		ccw(s1.A, s1.B, s2.A) != ccw(s1.A, s1.B, s2.B)
}

// Overlap reports whether two shapes share any area: a vertex of either
// contained in the other, or a pair of crossing edges. Both checks are
// necessary; edge crossing alone misses full containment, and vertex
// containment alone misses shapes whose boundaries cross between
// vertices.
func Overlap(a, b Shape) bool {
	for _, p := range a.pts {
		if b.Contains(p.X, p.Y) {
			return true
		}
	}
	for _, p := range b.pts {
		if a.Contains(p.X, p.Y) {
			return true
		}
	}
	for _, ea := range a.Edges() {
		for _, eb := range b.Edges() {
			if SegmentsIntersect(ea, eb) {
				return true
			}
		}
	}
	return false
}

func sign(p1, p2, p3 Point) int {
	return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
}

func ccw(a, b, c Point) bool {
	return (c.Y-a.Y)*(b.X-a.X) > (b.Y-a.Y)*(c.X-a.X)
}

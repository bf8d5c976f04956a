// Package geom provides the axis-aligned rectangle and point types shared by
// the layout engine, the scene model, and hit testing.
//
// Coordinates follow the rendering surface convention: the origin is the
// top-left corner and Y grows downward.
package geom

import (
	"fmt"
	"math"
)

// Point is a position in layout space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle with X0 <= X1 and Y0 <= Y1.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// R is shorthand for Rect{x0, y0, x1, y1}.
func R(x0, y0, x1, y1 float64) Rect { return Rect{X0: x0, Y0: y0, X1: x1, Y1: y1} }

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return (r.X0 + r.X1) / 2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return (r.Y0 + r.Y1) / 2 }

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Contains reports whether p lies inside r. The test is half-open so a point
// on a shared edge belongs to exactly one of two adjacent rectangles, and an
// empty rectangle never contains anything.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// ContainsRect reports whether o lies fully inside r (edges inclusive).
func (r Rect) ContainsRect(o Rect) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

// Intersects reports whether r and o are not separated on either axis.
// Touching edges count as an intersection.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X0 > r.X1 || o.X1 < r.X0 || o.Y0 > r.Y1 || o.Y1 < r.Y0)
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Inset shrinks the rectangle by the given amounts on each side. A side that
// would cross its opposite collapses both to their midpoint.
func (r Rect) Inset(top, right, bottom, left float64) Rect {
	out := Rect{X0: r.X0 + left, Y0: r.Y0 + top, X1: r.X1 - right, Y1: r.Y1 - bottom}
	if out.X1 < out.X0 {
		mid := (out.X0 + out.X1) / 2
		out.X0, out.X1 = mid, mid
	}
	if out.Y1 < out.Y0 {
		mid := (out.Y0 + out.Y1) / 2
		out.Y0, out.Y1 = mid, mid
	}
	return out
}

// Round snaps every coordinate to the nearest integer. math.Round is monotone,
// so ordering between edges of different rectangles is preserved.
func (r Rect) Round() Rect {
	return Rect{X0: math.Round(r.X0), Y0: math.Round(r.Y0), X1: math.Round(r.X1), Y1: math.Round(r.Y1)}
}

// Collapse returns the zero-area rectangle at r's top-left corner.
func (r Rect) Collapse() Rect {
	return Rect{X0: r.X0, Y0: r.Y0, X1: r.X0, Y1: r.Y0}
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %g,%g]", r.X0, r.Y0, r.X1, r.Y1)
}

// Span returns the normalized rectangle spanned by two corner points,
// regardless of drag direction.
func Span(a, b Point) Rect {
	return Rect{
		X0: math.Min(a.X, b.X), Y0: math.Min(a.Y, b.Y),
		X1: math.Max(a.X, b.X), Y1: math.Max(a.Y, b.Y),
	}
}

package layout

import (
	"fmt"
	"math"
)

// Size is a width/height pair in cells.
type Size struct {
	Width, Height int
}

// Point is a cell position; X grows right and Y grows down.
type Point struct {
	X, Y int
}

// Add offsets p by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// In reports whether p lies inside r.
func (p Point) In(r Rect) bool { return r.Contains(p.X, p.Y) }

// Rect represents a rectangle with integer coordinates.
// X and Y are the top-left corner; Width and Height are dimensions.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// rectFromSolution rounds solver values to the cell grid.
func rectFromSolution(left, top, width, height float64) Rect {
	return Rect{
		X:      roundCell(left),
		Y:      roundCell(top),
		Width:  max(0, roundCell(width)),
		Height: max(0, roundCell(height)),
	}
}

// roundCell converts a solver value to an integer cell count, saturating at
// Unbounded so unconstrained guides do not overflow.
func roundCell(v float64) int {
	switch {
	case v >= Unbounded:
		return Unbounded
	case v <= -Unbounded:
		return -Unbounded
	default:
		return int(math.Round(v))
	}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point (x, y) is inside the rectangle.
// Points on the right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// String renders the rectangle as "WxH+X+Y".
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

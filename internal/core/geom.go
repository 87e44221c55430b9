// Package core holds the types shared by the simulation and the terminal
// front end: geometry, the screen buffer, input frames and run state.
// It imports nothing outside the standard library.
package core

import "math"

// Rect represents an axis-aligned bounding box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned box in world units (pixels of the arena).
// Simulation uses Box; rendering scales it down to a Rect.
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 {
	return b.X + b.W*0.5
}

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 {
	return b.Y + b.H*0.5
}

// Overlaps reports whether two boxes intersect (strict AABB test).
func (b Box) Overlaps(o Box) bool {
	return b.X < o.X+o.W &&
		b.X+b.W > o.X &&
		b.Y < o.Y+o.H &&
		b.Y+b.H > o.Y
}

// OverlapsX reports whether the horizontal extents of two boxes intersect.
func (b Box) OverlapsX(o Box) bool {
	return b.X < o.X+o.W && b.X+b.W > o.X
}

// CenterDistance returns the Euclidean distance between the box centers.
func (b Box) CenterDistance(o Box) float64 {
	return math.Hypot(b.CenterX()-o.CenterX(), b.CenterY()-o.CenterY())
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp01 restricts a float64 value to [0, 1].
func Clamp01(val float64) float64 {
	return ClampF(val, 0, 1)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

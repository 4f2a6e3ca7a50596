// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Box is an axis-aligned bounding box in world units.
// It is the collision volume of every body, platform and pickup.
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height, never negative
}

// NewBox creates a box, clamping negative sizes to zero.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: math.Max(w, 0), H: math.Max(h, 0)}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// CenterY returns the vertical center.
func (b Box) CenterY() float64 {
	return b.Y + b.H/2
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Intersects returns true if the boxes overlap with positive area.
// Touching edges do not count, and an empty box never intersects anything.
func (b Box) Intersects(other Box) bool {
	if b.Empty() || other.Empty() {
		return false
	}
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Bottom() || other.Y >= b.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside the box.
// The right and bottom edges are exclusive.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x < b.Right() && y >= b.Y && y < b.Bottom()
}

// Rect represents an axis-aligned rectangle in screen cells.
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

// Sign returns -1, 0 or 1 depending on the sign of v.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

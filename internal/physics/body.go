// Package physics implements the kinematic body shared by the player and the
// police: gravity, integration and axis-separated collision against static
// solids.
package physics

import "github.com/vovakirdan/chorpolice/internal/core"

// Body is a kinematic rectangle in world space.
// Position is the top-left corner; the size is fixed at creation.
type Body struct {
	X, Y   float64 // World position (top-left)
	VX, VY float64 // Velocity in units per second
	W, H   float64 // Size, fixed for the body's lifetime

	OnGround bool // Set by the vertical pass when landing on a solid

	// Restitution is the fraction of horizontal speed kept (and reversed)
	// when hitting a wall. 0 stops the body dead.
	Restitution float64
}

// NewBody creates a body at rest at the given position.
func NewBody(x, y, w, h float64) Body {
	return Body{X: x, Y: y, W: max(w, 0), H: max(h, 0)}
}

// Bounds returns the collision box at the current position.
func (b *Body) Bounds() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Bottom returns the y-coordinate of the body's feet.
func (b *Body) Bottom() float64 {
	return b.Y + b.H
}

// ApplyGravity accelerates the body downward.
// maxFall caps the downward speed; 0 disables the cap.
func (b *Body) ApplyGravity(gravity, maxFall, dt float64) {
	b.VY += gravity * dt
	if maxFall > 0 && b.VY > maxFall {
		b.VY = maxFall
	}
}

// Jump launches the body with the given (negative) vertical speed.
// It only fires from the ground and reports whether it did.
func (b *Body) Jump(speed float64) bool {
	if !b.OnGround {
		return false
	}
	b.VY = speed
	b.OnGround = false
	return true
}

// MoveX integrates horizontal motion and resolves overlaps against solids.
// Every overlapping solid is corrected in list order; the last one wins.
func (b *Body) MoveX(dt float64, solids []core.Box) {
	b.X += b.VX * dt
	if b.VX == 0 {
		return
	}

	moving := b.VX
	hit := false
	for _, s := range solids {
		if !b.Bounds().Intersects(s) {
			continue
		}
		if moving > 0 {
			b.X = s.X - b.W
		} else {
			b.X = s.Right()
		}
		hit = true
	}
	if hit {
		b.VX = -moving * b.Restitution
	}
}

// MoveY integrates vertical motion and resolves overlaps against solids.
// OnGround is true afterwards only if a downward move landed on a top edge.
func (b *Body) MoveY(dt float64, solids []core.Box) {
	b.Y += b.VY * dt
	b.OnGround = false
	if b.VY == 0 {
		return
	}

	for _, s := range solids {
		if !b.Bounds().Intersects(s) {
			continue
		}
		if b.VY > 0 {
			b.Y = s.Y - b.H
			b.VY = 0
			b.OnGround = true
		} else if b.VY < 0 {
			b.Y = s.Bottom()
			b.VY = 0
		} else if b.OnGround {
			// Already landed on an earlier solid this pass; keep snapping
			// onto later overlaps so the last correction wins.
			b.Y = s.Y - b.H
		}
	}
}

// Step runs one frame: gravity, then the horizontal pass, then the
// vertical pass.
func (b *Body) Step(dt float64, g Gravity, solids []core.Box) {
	b.ApplyGravity(g.Accel, g.MaxFall, dt)
	b.MoveX(dt, solids)
	b.MoveY(dt, solids)
}

// Gravity holds the vertical acceleration applied to every body.
type Gravity struct {
	Accel   float64 // Downward acceleration, units/s²
	MaxFall float64 // Terminal velocity; 0 means uncapped
}

// Package world holds the static geometry of a play session: the platform set
// and the level definitions it is built from.
package world

import (
	"slices"

	"github.com/vovakirdan/chorpolice/internal/core"
)

// GroundThreshold is the height from which a platform is drawn as ground
// rather than as a floating ledge. It has no physical meaning.
const GroundThreshold = 50

// IsGround reports whether a platform should be drawn in ground style.
func IsGround(p core.Box) bool {
	return p.H >= GroundThreshold
}

// PlatformSet is an unordered collection of static platforms.
// Platforms are never modified after being added; they are only appended or
// pruned between frames.
type PlatformSet struct {
	rects []core.Box
}

// NewPlatformSet creates a set holding the given platforms.
func NewPlatformSet(platforms ...core.Box) *PlatformSet {
	return &PlatformSet{rects: slices.Clone(platforms)}
}

// Add appends a platform. Empty boxes are ignored.
func (s *PlatformSet) Add(p core.Box) {
	if p.Empty() {
		return
	}
	s.rects = append(s.rects, p)
}

// Len returns the number of platforms.
func (s *PlatformSet) Len() int {
	return len(s.rects)
}

// Rects returns the platforms for collision and drawing.
// The slice is shared; callers must not modify it.
func (s *PlatformSet) Rects() []core.Box {
	return s.rects
}

// SolidAt reports whether the point lies inside any platform.
func (s *PlatformSet) SolidAt(x, y float64) bool {
	for _, r := range s.rects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// PruneBehind removes every platform whose right edge is left of x and
// returns how many were removed.
func (s *PlatformSet) PruneBehind(x float64) int {
	before := len(s.rects)
	s.rects = slices.DeleteFunc(s.rects, func(r core.Box) bool {
		return r.Right() < x
	})
	return before - len(s.rects)
}

// CountAhead returns how many platforms start right of x.
func (s *PlatformSet) CountAhead(x float64) int {
	n := 0
	for _, r := range s.rects {
		if r.X > x {
			n++
		}
	}
	return n
}

package chor

import (
	"math"

	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/world"
)

// session is everything a single play-through owns. Starting or restarting
// builds a new one, so nothing leaks between runs.
type session struct {
	player    *Player
	enemies   []*Enemy
	platforms *world.PlatformSet
	pickups   []Pickup
	goal      *core.Box
	camera    *Camera
	spawner   *Spawner // nil for fixed levels

	score  int
	clock  float64 // Simulation seconds since the session started
	killY  float64
	startX float64
	maxX   float64

	distancePoints int
}

// distance is how far right the player has ever been from the start.
func (s *session) distance() float64 {
	return math.Max(0, s.maxX-s.startX)
}

// surfaceAt returns the top of the highest platform spanning x.
func surfaceAt(set *world.PlatformSet, x float64) (float64, bool) {
	top, found := math.Inf(1), false
	for _, r := range set.Rects() {
		if x >= r.X && x < r.Right() && r.Y < top {
			top, found = r.Y, true
		}
	}
	return top, found
}

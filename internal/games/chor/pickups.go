package chor

import (
	"slices"

	"github.com/vovakirdan/chorpolice/internal/core"
)

// PickupKind distinguishes collectibles.
type PickupKind int

const (
	PickupCoin PickupKind = iota
	PickupPowerUp
)

// Sprite returns the sprite name for the kind.
func (k PickupKind) Sprite() string {
	if k == PickupPowerUp {
		return "powerup"
	}
	return "coin"
}

// Pickup is a collectible resting in the world.
type Pickup struct {
	Kind PickupKind
	Box  core.Box
}

func countPickups(pickups []Pickup, kind PickupKind) int {
	n := 0
	for _, p := range pickups {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// prunePickups drops pickups whose right edge is left of x.
func prunePickups(pickups []Pickup, x float64) []Pickup {
	return slices.DeleteFunc(pickups, func(p Pickup) bool {
		return p.Box.Right() < x
	})
}

// pruneEnemies drops officers whose right edge is left of x or whose top
// has fallen below killY.
func pruneEnemies(enemies []*Enemy, x, killY float64) []*Enemy {
	return slices.DeleteFunc(enemies, func(e *Enemy) bool {
		return e.X+e.W < x || e.Y > killY
	})
}

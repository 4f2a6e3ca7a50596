package chor

import (
	"math"

	"github.com/vovakirdan/chorpolice/internal/config"
)

// Camera is the horizontal scroll offset. There is no vertical scrolling.
type Camera struct {
	X float64

	mode      string
	smoothing float64
	lead      float64
	viewW     float64
}

// NewCamera creates a camera at the world origin.
func NewCamera(cfg config.CameraConfig, viewW float64) *Camera {
	lead := cfg.Lead
	if lead <= 0 || lead >= 1 {
		lead = 1.0 / 3
	}
	return &Camera{
		mode:      cfg.Mode,
		smoothing: cfg.Smoothing,
		lead:      lead,
		viewW:     viewW,
	}
}

// Target is where the camera wants to be for a player at px: the player
// sits at the lead fraction of the view, and the view never shows x < 0.
func (c *Camera) Target(px float64) float64 {
	return math.Max(0, px-c.viewW*c.lead)
}

// Update moves the camera toward the player.
func (c *Camera) Update(px, dt float64) {
	target := c.Target(px)
	if c.mode == config.CameraDamped {
		c.X += (target - c.X) * easing(c.smoothing, dt)
		return
	}
	c.X = target
}

// ToScreen converts a world position to view coordinates.
func (c *Camera) ToScreen(wx, wy float64) (float64, float64) {
	return wx - c.X, wy
}

package chor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/chorpolice/internal/config"
)

func TestCameraClamp(t *testing.T) {
	c := NewCamera(config.CameraConfig{Mode: config.CameraClamp}, 1024)

	c.Update(100, frame)
	assert.Zero(t, c.X, "never scrolls left of the origin")

	c.Update(1000, frame)
	assert.InDelta(t, 1000-1024.0/3, c.X, 1e-9)

	sx, sy := c.ToScreen(1000, 250)
	assert.InDelta(t, 1024.0/3, sx, 1e-9)
	assert.Equal(t, 250.0, sy)
}

func TestCameraDamped(t *testing.T) {
	c := NewCamera(config.CameraConfig{Mode: config.CameraDamped, Smoothing: 0.1}, 1024)
	target := c.Target(2000)

	c.Update(2000, frame)
	assert.InDelta(t, target*0.1, c.X, 1e-9)

	prev := c.X
	for i := 0; i < 600; i++ {
		c.Update(2000, frame)
		assert.GreaterOrEqual(t, c.X, prev, "damped follow never overshoots backwards")
		prev = c.X
	}
	assert.InDelta(t, target, c.X, 1e-6)
}

func TestCameraDampedFrameRateCompensated(t *testing.T) {
	cfg := config.CameraConfig{Mode: config.CameraDamped, Smoothing: 0.2}
	fast, slow := NewCamera(cfg, 1024), NewCamera(cfg, 1024)

	for i := 0; i < 60; i++ {
		fast.Update(1500, 1.0/60)
	}
	for i := 0; i < 30; i++ {
		slow.Update(1500, 1.0/30)
	}
	assert.InDelta(t, slow.X, fast.X, 1e-6)
}

func TestCameraFullSmoothingSnaps(t *testing.T) {
	c := NewCamera(config.CameraConfig{Mode: config.CameraDamped, Smoothing: 1}, 900)
	c.Update(1200, frame)
	assert.InDelta(t, 900, c.X, 1e-9)
}

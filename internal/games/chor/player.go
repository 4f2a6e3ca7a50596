package chor

import (
	"math"

	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/physics"
)

// Facing directions.
const (
	FacingLeft  = -1
	FacingRight = 1
)

// Player is the thief: a body steered by input, plus timed invincibility.
type Player struct {
	physics.Body
	Facing int

	cfg             config.PlayerConfig
	invincibleFrom  float64
	invincibleUntil float64
}

// NewPlayer creates a player at rest at (x, y), facing right.
func NewPlayer(x, y float64, cfg config.PlayerConfig) *Player {
	return &Player{
		Body:   physics.NewBody(x, y, cfg.Width, cfg.Height),
		Facing: FacingRight,
		cfg:    cfg,
	}
}

// Steer turns the frame's intent into velocity and reports whether a jump
// fired. Left wins when both directions are held.
func (p *Player) Steer(in core.Intent, dt float64) bool {
	target := 0.0
	if in.Right {
		target = p.cfg.Speed
		p.Facing = FacingRight
	}
	if in.Left {
		target = -p.cfg.Speed
		p.Facing = FacingLeft
	}

	if p.cfg.Movement == config.MovementSmooth {
		p.VX += (target - p.VX) * easing(p.cfg.Smoothing, dt)
		if math.Abs(p.VX) < 1e-3 {
			p.VX = 0
		}
	} else {
		p.VX = target
	}

	if in.Jump {
		return p.Jump(p.cfg.JumpSpeed)
	}
	return false
}

// GrantInvincibility makes the player invincible on [now, now+d).
// A new grant replaces the old window.
func (p *Player) GrantInvincibility(now, d float64) {
	p.invincibleFrom = now
	p.invincibleUntil = now + d
}

// Invincible reports whether the window covers now.
func (p *Player) Invincible(now float64) bool {
	return now >= p.invincibleFrom && now < p.invincibleUntil
}

// InvincibleLeft returns the seconds of invincibility remaining at now.
func (p *Player) InvincibleLeft(now float64) float64 {
	if !p.Invincible(now) {
		return 0
	}
	return p.invincibleUntil - now
}

// easing converts a per-frame smoothing factor tuned at 60 Hz into the
// factor for a step of dt seconds.
func easing(k, dt float64) float64 {
	k = core.ClampF(k, 0, 1)
	if k >= 1 {
		return 1
	}
	return 1 - math.Pow(1-k, dt*60)
}

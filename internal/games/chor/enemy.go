package chor

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/physics"
	"github.com/vovakirdan/chorpolice/internal/world"
)

// Enemy is a police officer: a body whose velocity is chosen by a Policy.
type Enemy struct {
	physics.Body
	Direction int
	Sprite    string

	policy        Policy
	reactionTimer float64
}

// Surroundings is what a policy may look at when steering.
type Surroundings struct {
	Target    core.Box // The player
	Platforms *world.PlatformSet
	Speed     float64 // Run speed after difficulty scaling
}

// Policy chooses an enemy's velocity for the coming frame.
type Policy interface {
	Steer(e *Enemy, s Surroundings, dt float64)
}

// NewEnemy creates an officer at (x, y) facing left.
func NewEnemy(x, y float64, cfg config.EnemyConfig, policy Policy, sprite string) *Enemy {
	body := physics.NewBody(x, y, cfg.Width, cfg.Height)
	body.Restitution = cfg.Restitution
	return &Enemy{
		Body:      body,
		Direction: FacingLeft,
		Sprite:    sprite,
		policy:    policy,
	}
}

// Steer lets the enemy's policy pick its velocity.
func (e *Enemy) Steer(s Surroundings, dt float64) {
	if e.policy != nil {
		e.policy.Steer(e, s, dt)
	}
}

// Pursuit runs at the player with reaction lag and hops gaps, walls and
// ledges by chance. All randomness comes from the injected generator.
type Pursuit struct {
	cfg       config.EnemyConfig
	jumpSpeed float64 // Player launch speed the jump factors apply to
	rng       *rand.Rand
}

// NewPursuit creates the policy.
func NewPursuit(cfg config.EnemyConfig, jumpSpeed float64, rng *rand.Rand) *Pursuit {
	return &Pursuit{cfg: cfg, jumpSpeed: jumpSpeed, rng: rng}
}

// Steer implements Policy.
func (p *Pursuit) Steer(e *Enemy, s Surroundings, dt float64) {
	dx := s.Target.X - e.X

	e.reactionTimer -= dt
	if e.reactionTimer <= 0 {
		if math.Abs(dx) > p.cfg.DeadZone && dx != 0 {
			e.Direction = int(core.Sign(dx))
		}
		e.reactionTimer = p.cfg.ReactionInterval + p.rng.Float64()*p.cfg.ReactionJitter
	}
	e.VX = float64(e.Direction) * s.Speed

	if !e.OnGround {
		return
	}

	if s.Target.Y < e.Y-p.cfg.ChaseHeight && math.Abs(dx) < p.cfg.ChaseBand {
		if p.roll(p.cfg.ChaseJumpChance) {
			e.Jump(p.jumpSpeed * p.cfg.ChaseJumpFactor)
			return
		}
	}

	probeX := e.X + float64(e.Direction)*p.cfg.Lookahead
	if s.Platforms == nil {
		return
	}
	if !s.Platforms.SolidAt(probeX, e.Bottom()+p.cfg.ProbeDepth) {
		if p.roll(p.cfg.GapJumpChance) {
			e.Jump(p.jumpSpeed * p.cfg.HopJumpFactor)
			return
		}
	}
	if s.Platforms.SolidAt(probeX, e.Y+e.H/4) {
		if p.roll(p.cfg.WallJumpChance) {
			e.Jump(p.jumpSpeed * p.cfg.HopJumpFactor)
		}
	}
}

// roll samples one independent chance. Certain and impossible outcomes do
// not consume the generator.
func (p *Pursuit) roll(chance float64) bool {
	switch {
	case chance >= 1:
		return true
	case chance <= 0:
		return false
	default:
		return p.rng.Float64() < chance
	}
}

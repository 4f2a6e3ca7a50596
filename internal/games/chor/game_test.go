package chor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chorpolice/internal/assets"
	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/core"
)

const frame = 1.0 / 60

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// newGame returns a game on the start screen.
func newGame(t *testing.T, id string, cfg config.ChorConfig) *Game {
	t.Helper()
	g := NewWithConfig(id, cfg)
	g.Reset(runtimeConfig(42))
	require.Equal(t, core.PhaseStart, g.State().Phase)
	return g
}

// newPlaying returns a classic game that has just entered the playing phase.
func newPlaying(t *testing.T, cfg config.ChorConfig) *Game {
	t.Helper()
	g := newGame(t, config.VariantClassic, cfg)
	res := g.Step(input(core.ActionAnyKey), frame)
	require.Equal(t, core.PhasePlaying, res.State.Phase)
	return g
}

// isolate removes every enemy and pickup so a test can place its own.
func isolate(g *Game) {
	g.sess.enemies = nil
	g.sess.pickups = nil
}

func TestStartNeedsAnyKey(t *testing.T) {
	g := newGame(t, config.VariantClassic, config.DefaultClassicConfig())

	res := g.Step(input(), frame)
	assert.Equal(t, core.PhaseStart, res.State.Phase)
	assert.Empty(t, res.Events)

	res = g.Step(input(core.ActionAnyKey), frame)
	assert.Equal(t, core.PhasePlaying, res.State.Phase)
	assert.Equal(t, []core.Event{core.EventStart}, res.Events)
	assert.Zero(t, res.State.Score)
}

func TestClassicSessionLayout(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())

	assert.Len(t, g.sess.enemies, 3)
	assert.Equal(t, 800.0, g.sess.enemies[0].X)
	assert.Equal(t, 1500.0, g.sess.enemies[1].X)
	assert.Equal(t, 2200.0, g.sess.enemies[2].X)
	require.NotNil(t, g.sess.goal)
	assert.Equal(t, core.NewBox(2800, 296, 60, 200), *g.sess.goal)
	assert.Zero(t, g.sess.camera.X)
	for _, e := range g.sess.enemies {
		assert.Contains(t, []string{"police", "police2"}, e.Sprite)
	}
}

func TestPlayerAtRestStaysPut(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())
	isolate(g)
	p := g.sess.player
	startX, startY := p.X, p.Y

	for i := 0; i < 60; i++ {
		g.Step(input(), frame)
	}

	assert.Equal(t, startX, p.X)
	assert.Equal(t, startY, p.Y)
	assert.Zero(t, p.VY)
	assert.True(t, p.OnGround)
	assert.Equal(t, core.PhasePlaying, g.State().Phase)
}

func TestRunningRight(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())
	isolate(g)
	g.Step(input(), frame) // land

	for i := 0; i < 60; i++ {
		g.Step(input(core.ActionRight), frame)
	}
	assert.InDelta(t, 400, g.sess.player.X, 1e-6)
	assert.InDelta(t, 400-1024.0/3, g.sess.camera.X, 1e-6)
}

func TestJumpEmitsEventOnce(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())
	isolate(g)
	g.Step(input(), frame) // land

	res := g.Step(input(core.ActionJump), frame)
	assert.Contains(t, res.Events, core.EventJump)
	assert.Less(t, g.sess.player.VY, 0.0)

	res = g.Step(input(core.ActionJump), frame)
	assert.NotContains(t, res.Events, core.EventJump, "holding jump must not re-trigger mid-air")
}

func TestGoalWinsSameFrame(t *testing.T) {
	for _, oldHigh := range []int{0, 10000} {
		g := newPlaying(t, config.DefaultClassicConfig())
		g.SetHighScore(oldHigh)
		isolate(g)
		g.sess.player.X, g.sess.player.Y = 2810, 300

		res := g.Step(input(), frame)

		assert.Equal(t, core.PhaseWin, res.State.Phase)
		assert.Contains(t, res.Events, core.EventWin)
		assert.Equal(t, max(oldHigh, res.State.Score), res.State.HighScore)
		assert.Equal(t, 500, res.State.Score)
	}
}

func TestCaughtAtTheFlagIsGameOver(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newPlaying(t, cfg)
	isolate(g)
	g.sess.player.X, g.sess.player.Y = 2810, 300
	g.sess.enemies = []*Enemy{NewEnemy(2810, 300, cfg.Enemy, nil, "police")}

	res := g.Step(input(), frame)

	assert.Equal(t, core.PhaseGameOver, res.State.Phase)
	assert.Contains(t, res.Events, core.EventCaught)
	assert.NotContains(t, res.Events, core.EventWin)
}

// stompSetup places a stationary officer on the ground at x=300 and the
// player falling onto him from above.
func stompSetup(t *testing.T, cfg config.ChorConfig) *Game {
	t.Helper()
	g := newPlaying(t, cfg)
	isolate(g)
	g.sess.enemies = []*Enemy{NewEnemy(300, 426, cfg.Enemy, nil, "police")}
	p := g.sess.player
	p.X, p.Y, p.VY = 300, 376, 100
	return g
}

func TestStompDefeatsEnemy(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := stompSetup(t, cfg)

	res := g.Step(input(), frame)

	assert.Equal(t, core.PhasePlaying, res.State.Phase)
	assert.Empty(t, g.sess.enemies)
	assert.Equal(t, cfg.Combat.StompReward, res.State.Score)
	assert.InDelta(t, -540, g.sess.player.VY, 1e-9)
	assert.Contains(t, res.Events, core.EventStomp)
}

func TestStompDisabledIsFatal(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	cfg.Combat.Stomp = false
	g := stompSetup(t, cfg)

	res := g.Step(input(), frame)

	assert.Equal(t, core.PhaseGameOver, res.State.Phase)
	assert.Contains(t, res.Events, core.EventCaught)
}

func TestSideContactIsCaught(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newPlaying(t, cfg)
	g.SetHighScore(7)
	isolate(g)
	g.sess.score = 30
	g.sess.enemies = []*Enemy{NewEnemy(120, 426, cfg.Enemy, nil, "police")}

	res := g.Step(input(), frame)

	assert.Equal(t, core.PhaseGameOver, res.State.Phase)
	assert.Equal(t, []core.Event{core.EventCaught}, res.Events)
	assert.Equal(t, 30, res.State.HighScore)
	assert.Len(t, g.sess.enemies, 1)
}

func TestInvinciblePlayerRemovesEnemy(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newPlaying(t, cfg)
	isolate(g)
	g.sess.enemies = []*Enemy{NewEnemy(120, 426, cfg.Enemy, nil, "police")}
	g.sess.player.GrantInvincibility(g.sess.clock, 5)

	res := g.Step(input(), frame)

	assert.Equal(t, core.PhasePlaying, res.State.Phase)
	assert.Empty(t, g.sess.enemies)
	assert.Equal(t, cfg.Combat.InvincibleReward, res.State.Score)
}

func TestPickups(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newPlaying(t, cfg)
	isolate(g)
	p := g.sess.player
	g.sess.pickups = []Pickup{
		{Kind: PickupCoin, Box: core.NewBox(p.X+5, p.Y+10, 20, 20)},
		{Kind: PickupPowerUp, Box: core.NewBox(p.X+5, p.Y+40, 20, 20)},
		{Kind: PickupCoin, Box: core.NewBox(p.X+500, p.Y, 20, 20)},
	}

	res := g.Step(input(), frame)

	assert.Equal(t, cfg.Scoring.CoinValue+cfg.Scoring.PowerUpValue, res.State.Score)
	assert.Contains(t, res.Events, core.EventCoin)
	assert.Contains(t, res.Events, core.EventPowerUp)
	assert.Len(t, g.sess.pickups, 1)
	assert.True(t, p.Invincible(g.sess.clock))
	assert.False(t, p.Invincible(g.sess.clock+cfg.Combat.InvincibleDuration))
}

func TestFallingOffTheWorld(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())
	isolate(g)
	g.sess.player.X, g.sess.player.Y = -500, 690
	g.sess.player.VY = 600

	res := g.Step(input(), frame)

	assert.Equal(t, core.PhaseGameOver, res.State.Phase)
	assert.Contains(t, res.Events, core.EventFell)
}

func TestNoSimulationOutsidePlaying(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newPlaying(t, cfg)
	isolate(g)
	g.sess.enemies = []*Enemy{NewEnemy(120, 426, cfg.Enemy, nil, "police")}
	g.Step(input(), frame)
	require.Equal(t, core.PhaseGameOver, g.State().Phase)

	p := g.sess.player
	x, y, score := p.X, p.Y, g.State().Score
	for i := 0; i < 30; i++ {
		res := g.Step(input(core.ActionRight, core.ActionJump, core.ActionAnyKey), frame)
		assert.Equal(t, core.PhaseGameOver, res.State.Phase, "any key other than restart must not leave game over")
	}
	assert.Equal(t, x, p.X)
	assert.Equal(t, y, p.Y)
	assert.Equal(t, score, g.State().Score)
}

func TestRestartGoesStraightToPlaying(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newPlaying(t, cfg)
	isolate(g)
	g.sess.score = 90
	g.sess.enemies = []*Enemy{NewEnemy(120, 426, cfg.Enemy, nil, "police")}
	g.Step(input(), frame)
	require.Equal(t, core.PhaseGameOver, g.State().Phase)
	old := g.sess

	res := g.Step(input(core.ActionRestart), frame)

	assert.Equal(t, core.PhasePlaying, res.State.Phase)
	assert.Equal(t, []core.Event{core.EventStart}, res.Events)
	assert.Zero(t, res.State.Score)
	assert.Equal(t, 90, res.State.HighScore)
	assert.NotSame(t, old, g.sess)
	assert.Len(t, g.sess.enemies, 3)
	assert.Equal(t, 100.0, g.sess.player.X)
	assert.Zero(t, g.sess.camera.X)
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())
	old := g.sess
	g.Step(input(core.ActionRestart), frame)
	assert.Same(t, old, g.sess)
}

func TestPauseFreezesPlay(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())
	isolate(g)
	g.Step(input(), frame)

	res := g.Step(input(core.ActionPause), frame)
	require.True(t, res.State.Paused)
	x := g.sess.player.X
	for i := 0; i < 10; i++ {
		g.Step(input(core.ActionRight), frame)
	}
	assert.Equal(t, x, g.sess.player.X)

	res = g.Step(input(core.ActionPause, core.ActionRight), frame)
	assert.False(t, res.State.Paused)
	assert.Greater(t, g.sess.player.X, x)
}

func TestFallSpeedGrowsByGravityEveryAirborneFrame(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newPlaying(t, cfg)
	isolate(g)
	p := g.sess.player
	p.Y, p.VY, p.OnGround = -2000, 0, false

	airborne := 0
	for range 200 {
		before := p.VY
		g.Step(input(), frame)
		if p.OnGround {
			break
		}
		airborne++
		require.InDelta(t, before+cfg.Physics.Gravity*frame, p.VY, 1e-6, "airborne frame %d", airborne)
	}

	require.True(t, p.OnGround, "the fall ends on the ground")
	assert.Greater(t, airborne, 60)
	assert.Greater(t, float64(airborne)*cfg.Physics.Gravity*frame, 3000.0, "no terminal velocity by default")
}

func TestInvalidFrameTimeIsClamped(t *testing.T) {
	g := newPlaying(t, config.DefaultClassicConfig())
	isolate(g)
	g.Step(input(), frame)
	p := g.sess.player

	for _, dt := range []float64{0, -1} {
		x := p.X
		g.Step(input(core.ActionRight), dt)
		assert.Greater(t, p.X, x)
		assert.Less(t, p.X-x, 1.0)
	}

	x := p.X
	g.Step(input(core.ActionRight), 10)
	assert.InDelta(t, 300*g.cfg.Physics.MaxStep, p.X-x, 1e-9)
}

func TestEndlessDeterministicBySeed(t *testing.T) {
	script := func(i int) core.InputFrame {
		switch {
		case i == 0:
			return input(core.ActionAnyKey)
		case i%90 < 10:
			return input(core.ActionRight, core.ActionJump)
		default:
			return input(core.ActionRight)
		}
	}

	run := func() (core.GameState, []float64) {
		g := NewWithConfig(config.VariantEndless, config.DefaultEndlessConfig())
		g.Reset(runtimeConfig(7))
		for i := 0; i < 900; i++ {
			g.Step(script(i), frame)
		}
		trace := []float64{g.sess.player.X, g.sess.player.Y, float64(g.sess.platforms.Len()), float64(len(g.sess.pickups))}
		for _, e := range g.sess.enemies {
			trace = append(trace, e.X, e.Y)
		}
		return g.State(), trace
	}

	s1, t1 := run()
	s2, t2 := run()
	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
}

func TestEndlessDistanceScore(t *testing.T) {
	g := newGame(t, config.VariantEndless, config.DefaultEndlessConfig())
	g.Step(input(core.ActionAnyKey), frame)
	g.sess.pickups = nil
	g.sess.player.X += 500

	res := g.Step(input(), frame)

	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, 10, g.sess.distancePoints)

	g.sess.player.X -= 200
	res = g.Step(input(), frame)
	assert.Equal(t, 10, res.State.Score, "walking back earns nothing")
}

func TestRenderScreens(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	g := newGame(t, config.VariantClassic, cfg)
	dst := core.NewScreen(80, 24)

	g.Render(dst)
	assert.Contains(t, dst.String(), "Press any key to steal... I mean start!")

	g.Step(input(core.ActionAnyKey), frame)
	g.Render(dst)
	assert.Contains(t, dst.Row(0), "Score: 0")
	assert.Contains(t, dst.String(), string(GroundChar))

	isolate(g)
	g.sess.enemies = []*Enemy{NewEnemy(120, 426, cfg.Enemy, nil, "police")}
	g.Step(input(), frame)
	g.Render(dst)
	assert.Contains(t, dst.String(), "CAUGHT BY POLICE!")
	assert.Contains(t, dst.String(), "Press R to try escaping again")

	g.Step(input(core.ActionRestart), frame)
	isolate(g)
	g.sess.player.X, g.sess.player.Y = 2810, 300
	g.Step(input(), frame)
	g.Render(dst)
	assert.Contains(t, dst.String(), "YOU ESCAPED!")
}

func TestRenderMissingSpriteUsesPlaceholder(t *testing.T) {
	cfg := config.DefaultClassicConfig()
	cfg.Player.Sprite = "no-such-sprite"
	g := newPlaying(t, cfg)
	dst := core.NewScreen(80, 24)

	assert.NotPanics(t, func() { g.Render(dst) })
	assert.True(t, strings.ContainsRune(dst.String(), assets.PlaceholderRune))
}

func TestVariantsRegistered(t *testing.T) {
	assert.Equal(t, "chor", New(config.VariantClassic).ID())
	assert.NotEqual(t, New(config.VariantClassic).Title(), New(config.VariantEndless).Title())
}

package chor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/world"
)

// spawnerSession builds an endless session around a bare spawner.
func spawnerSession(cfg config.ChorConfig, seed int64) (*Spawner, *session) {
	rng := rand.New(rand.NewSource(seed))
	dm := config.NewDifficultyManager(cfg.Difficulty)
	newEnemy := func(x, y float64) *Enemy {
		return NewEnemy(x, y, cfg.Enemy, nil, "police")
	}
	sp := NewSpawner(cfg, rng, dm, newEnemy)
	s := &session{
		player:    NewPlayer(100, 426, cfg.Player),
		platforms: world.NewPlatformSet(),
		killY:     cfg.View.Height + 2*cfg.Player.Height,
		spawner:   sp,
		startX:    100,
		maxX:      100,
	}
	sp.Prime(s.platforms, -cfg.View.Width, 1500)
	return sp, s
}

func TestSpawnerSlidingWindow(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	cfg.Spawner.CoinChance = 0.5
	cfg.Spawner.PowerUpChance = 0.2
	sp, s := spawnerSession(cfg, 5)

	for i := 0; i < 3000; i++ {
		s.player.X += 12
		s.maxX = s.player.X
		sp.Update(s, frame)

		px := s.player.X
		behind := px - cfg.Spawner.PruneBehind
		require.GreaterOrEqual(t, s.platforms.CountAhead(px), cfg.Spawner.PlatformsAhead, "frame %d", i)
		for _, r := range s.platforms.Rects() {
			require.GreaterOrEqual(t, r.Right(), behind, "frame %d: stale platform", i)
		}
		for _, p := range s.pickups {
			require.GreaterOrEqual(t, p.Box.Right(), behind, "frame %d: stale pickup", i)
		}
		for _, e := range s.enemies {
			require.GreaterOrEqual(t, e.X+e.W, behind, "frame %d: stale enemy", i)
		}
		require.LessOrEqual(t, countPickups(s.pickups, PickupCoin), cfg.Spawner.CoinCap)
		require.LessOrEqual(t, countPickups(s.pickups, PickupPowerUp), cfg.Spawner.PowerUpCap)
		require.LessOrEqual(t, len(s.enemies), cfg.Spawner.EnemyCap)
	}
	assert.Positive(t, countPickups(s.pickups, PickupCoin))
}

func TestSpawnerGeometryIsPlayable(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	sp, s := spawnerSession(cfg, 8)

	for i := 0; i < 2000; i++ {
		s.player.X += 20
		sp.Update(s, frame)
	}

	for _, r := range s.platforms.Rects() {
		if world.IsGround(r) {
			assert.Equal(t, cfg.Spawner.GroundY, r.Y)
			assert.GreaterOrEqual(t, r.W, cfg.Spawner.SegmentMinWidth)
			continue
		}
		rise := cfg.Spawner.GroundY - r.Y
		assert.GreaterOrEqual(t, rise, cfg.Spawner.LedgeMinRise)
		assert.LessOrEqual(t, rise, cfg.Spawner.LedgeMaxRise)
		assert.Equal(t, cfg.Spawner.LedgeThickness, r.H)
	}
}

func TestSpawnerEnemyIntervalShortensWithDistance(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	sp, _ := spawnerSession(cfg, 1)

	assert.InDelta(t, 6, sp.EnemyInterval(0), 1e-9)
	assert.InDelta(t, 5.5, sp.EnemyInterval(2000), 1e-9)
	assert.InDelta(t, cfg.Spawner.MinEnemyInterval, sp.EnemyInterval(1e6), 1e-9)

	prev := sp.EnemyInterval(0)
	for d := 0.0; d <= 40000; d += 250 {
		cur := sp.EnemyInterval(d)
		assert.LessOrEqual(t, cur, prev, "distance %v", d)
		assert.GreaterOrEqual(t, cur, cfg.Spawner.MinEnemyInterval)
		prev = cur
	}
}

func TestSpawnerEnemyCadence(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	cfg.Spawner.CoinChance = 0
	cfg.Spawner.PowerUpChance = 0
	sp, s := spawnerSession(cfg, 2)

	for i := 0; i < 350; i++ {
		sp.Update(s, frame)
	}
	assert.Empty(t, s.enemies, "no officer before the interval elapses")

	for i := 0; i < 20; i++ {
		sp.Update(s, frame)
	}
	require.Len(t, s.enemies, 1)
	e := s.enemies[0]
	assert.Equal(t, s.player.X+cfg.Spawner.SpawnAhead, e.X)
	assert.Equal(t, cfg.Spawner.GroundY-cfg.Enemy.Height, e.Y)
}

func TestSpawnerEnemyCap(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	cfg.Spawner.EnemyInterval = 0.1
	cfg.Spawner.MinEnemyInterval = 0.1
	cfg.Spawner.EnemyCap = 3
	sp, s := spawnerSession(cfg, 2)

	for i := 0; i < 600; i++ {
		sp.Update(s, frame)
	}
	assert.Len(t, s.enemies, 3)
}

func TestSpawnerDropsFallenEnemies(t *testing.T) {
	cfg := config.DefaultEndlessConfig()
	sp, s := spawnerSession(cfg, 2)
	s.enemies = []*Enemy{
		NewEnemy(300, s.killY+1, cfg.Enemy, nil, "police"),
		NewEnemy(300, 426, cfg.Enemy, nil, "police"),
	}

	sp.Update(s, frame)
	require.Len(t, s.enemies, 1)
	assert.Equal(t, 426.0, s.enemies[0].Y)
}

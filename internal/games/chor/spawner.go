package chor

import (
	"math/rand"

	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/world"
)

// pickupLift is how far above the surface a spawned pickup floats.
const pickupLift = 30

// Spawner grows the endless world ahead of the player and prunes it behind.
// It only runs at the start of a frame, before any body integrates.
type Spawner struct {
	cfg        config.SpawnerConfig
	scoring    config.ScoringConfig
	enemyH     float64
	enemyW     float64
	viewW      float64
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	newEnemy   func(x, y float64) *Enemy

	frontier   float64 // Left edge of the next ground segment
	enemyClock float64 // Seconds since the last officer appeared
}

// NewSpawner creates a spawner. newEnemy builds officers at a world position.
func NewSpawner(cfg config.ChorConfig, rng *rand.Rand, dm *config.DifficultyManager, newEnemy func(x, y float64) *Enemy) *Spawner {
	return &Spawner{
		cfg:        cfg.Spawner,
		scoring:    cfg.Scoring,
		enemyH:     cfg.Enemy.Height,
		enemyW:     cfg.Enemy.Width,
		viewW:      cfg.View.Width,
		rng:        rng,
		difficulty: dm,
		newEnemy:   newEnemy,
	}
}

// Prime lays one unbroken ground segment over [from, to) so the run starts
// on solid footing.
func (sp *Spawner) Prime(set *world.PlatformSet, from, to float64) {
	set.Add(core.NewBox(from, sp.cfg.GroundY, to-from, sp.cfg.GroundHeight))
	sp.frontier = to
	sp.enemyClock = 0
}

// EnemyInterval returns the seconds between officers after travelling
// distance units.
func (sp *Spawner) EnemyInterval(distance float64) float64 {
	stage := sp.difficulty.Stage(distance)
	return sp.difficulty.SpawnInterval(sp.cfg.EnemyInterval, sp.cfg.MinEnemyInterval, stage)
}

// Update runs one frame of spawning and pruning around the player.
func (sp *Spawner) Update(s *session, dt float64) {
	px := s.player.X
	behind := px - sp.cfg.PruneBehind

	sp.fill(s.platforms, px)
	s.platforms.PruneBehind(behind)
	s.pickups = prunePickups(s.pickups, behind)
	s.enemies = pruneEnemies(s.enemies, behind, s.killY)

	sp.spawnPickup(s, PickupCoin, sp.cfg.CoinChance, sp.cfg.CoinCap, sp.scoring.CoinSize)
	sp.spawnPickup(s, PickupPowerUp, sp.cfg.PowerUpChance, sp.cfg.PowerUpCap, sp.scoring.PowerUpSize)
	sp.spawnEnemy(s, dt)
}

// fill appends segments until enough platforms start right of px.
func (sp *Spawner) fill(set *world.PlatformSet, px float64) {
	if sp.frontier < px {
		sp.frontier = px
	}
	for i := 0; set.CountAhead(px) < sp.cfg.PlatformsAhead && i < 4*sp.cfg.PlatformsAhead; i++ {
		sp.extend(set)
	}
}

// extend adds an optional gap, one ground segment and maybe a ledge over it.
func (sp *Spawner) extend(set *world.PlatformSet) {
	if sp.rng.Float64() < sp.cfg.GapChance {
		sp.frontier += sp.between(sp.cfg.GapMinWidth, sp.cfg.GapMaxWidth)
	}

	w := sp.between(sp.cfg.SegmentMinWidth, sp.cfg.SegmentMaxWidth)
	set.Add(core.NewBox(sp.frontier, sp.cfg.GroundY, w, sp.cfg.GroundHeight))

	if sp.rng.Float64() < sp.cfg.LedgeChance {
		lw := sp.between(sp.cfg.LedgeMinWidth, min(sp.cfg.LedgeMaxWidth, w))
		lx := sp.frontier + sp.rng.Float64()*(w-lw)
		rise := sp.between(sp.cfg.LedgeMinRise, sp.cfg.LedgeMaxRise)
		set.Add(core.NewBox(lx, sp.cfg.GroundY-rise, lw, sp.cfg.LedgeThickness))
	}

	sp.frontier += w
}

// spawnPickup places one pickup of kind ahead of the view with the given
// per-frame chance, while the population is under limit.
func (sp *Spawner) spawnPickup(s *session, kind PickupKind, chance float64, limit int, size float64) {
	if countPickups(s.pickups, kind) >= limit || sp.rng.Float64() >= chance {
		return
	}

	x := s.player.X + sp.cfg.SpawnAhead + sp.rng.Float64()*sp.viewW/2
	top, ok := surfaceAt(s.platforms, x+size/2)
	if !ok {
		// Over a gap: hang it where the ground would be, as bait.
		top = sp.cfg.GroundY
	}
	s.pickups = append(s.pickups, Pickup{
		Kind: kind,
		Box:  core.NewBox(x, top-size-pickupLift, size, size),
	})
}

// spawnEnemy drops an officer ahead of the player once the interval has
// elapsed. Over a gap it waits for the next frame.
func (sp *Spawner) spawnEnemy(s *session, dt float64) {
	sp.enemyClock += dt
	if sp.enemyClock < sp.EnemyInterval(s.distance()) || len(s.enemies) >= sp.cfg.EnemyCap {
		return
	}

	x := s.player.X + sp.cfg.SpawnAhead
	top, ok := surfaceAt(s.platforms, x+sp.enemyW/2)
	if !ok {
		return
	}
	sp.enemyClock = 0
	s.enemies = append(s.enemies, sp.newEnemy(x, top-sp.enemyH))
}

// between returns a uniform value in [lo, hi].
func (sp *Spawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + sp.rng.Float64()*(hi-lo)
}

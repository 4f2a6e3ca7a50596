// Package chor implements Chor Police Adventure: a thief runs and jumps
// across platforms toward the goal flag while the police give chase.
// The package holds pure game logic; the platform layer supplies input,
// frame time and a screen to draw into.
package chor

import (
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chorpolice/internal/assets"
	"github.com/vovakirdan/chorpolice/internal/config"
	"github.com/vovakirdan/chorpolice/internal/core"
	"github.com/vovakirdan/chorpolice/internal/physics"
	"github.com/vovakirdan/chorpolice/internal/registry"
	"github.com/vovakirdan/chorpolice/internal/world"
)

// DefaultLevel is played when no level is configured or the configured one
// cannot be loaded.
const DefaultLevel = "classic"

// Settings chosen on the command line, shared by every game instance.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelOverride    string
	logger           = log.New(io.Discard)
	sprites          *assets.Library
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevel picks the level for fixed-level variants: a built-in name or a
// path to a .yaml file.
func SetLevel(nameOrPath string) {
	levelOverride = nameOrPath
}

// SetLogger routes game warnings (bad config, missing sprites) to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
	sprites = assets.NewLibrary(l)
}

func spriteLibrary() *assets.Library {
	if sprites == nil {
		sprites = assets.NewLibrary(logger)
	}
	return sprites
}

// Game is one Chor Police variant.
type Game struct {
	id    string
	title string

	fixedCfg *config.ChorConfig // Set by NewWithConfig; skips loading
	cfg      config.ChorConfig
	runtime  core.RuntimeConfig
	level    world.LevelDef

	rng        *rand.Rand
	pursuit    *Pursuit
	difficulty *config.DifficultyManager
	gravity    physics.Gravity

	sess      *session
	phase     core.Phase
	highScore int
	paused    bool
	events    []core.Event
}

// New creates a game for a variant ID. Configuration is loaded on Reset.
func New(id string) *Game {
	title := "Chor Police Adventure"
	if id == config.VariantEndless {
		title = "Chor Police: Endless Escape"
	}
	return &Game{id: id, title: title}
}

// NewWithConfig creates a game that always uses cfg instead of loading one.
func NewWithConfig(id string, cfg config.ChorConfig) *Game {
	g := New(id)
	g.fixedCfg = &cfg
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// SetHighScore seeds the best score, e.g. from the score store.
func (g *Game) SetHighScore(score int) {
	g.highScore = max(g.highScore, score)
}

// Reset loads configuration, seeds the generator and returns to the start
// screen. The high score survives.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	if g.cfg.Endless {
		g.level = world.LevelDef{}
	} else {
		g.level = g.loadLevel()
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.pursuit = NewPursuit(g.cfg.Enemy, g.cfg.Player.JumpSpeed, g.rng)
	g.gravity = physics.Gravity{Accel: g.cfg.Physics.Gravity, MaxFall: g.cfg.Physics.MaxFallSpeed}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if difficultyPreset != "" && !config.IsFixedPreset(difficultyPreset) {
		g.difficulty.SetInitialLevel(config.InitialLevelForPreset(difficultyPreset))
	}

	g.phase = core.PhaseStart
	g.paused = false
	g.events = g.events[:0]
	g.sess = g.newSession()
}

func (g *Game) loadConfig() config.ChorConfig {
	if g.fixedCfg != nil {
		return *g.fixedCfg
	}

	cfg, err := config.Load(g.id, configPath)
	if err != nil {
		logger.Warn("config unusable, using defaults", "game", g.id, "error", err)
		cfg = config.DefaultConfig(g.id)
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) loadLevel() world.LevelDef {
	name := g.cfg.Level
	if levelOverride != "" {
		name = levelOverride
	}
	if name == "" {
		name = DefaultLevel
	}

	var (
		def world.LevelDef
		err error
	)
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		def, err = world.LoadLevelFile(name)
	} else {
		def, err = world.LoadLevel(name)
	}
	if err == nil {
		return def
	}

	logger.Warn("level unusable, falling back", "level", name, "fallback", DefaultLevel, "error", err)
	def, err = world.LoadLevel(DefaultLevel)
	if err != nil {
		logger.Error("built-in level unusable", "error", err)
	}
	return def
}

// newSession builds fresh world state: player, police, platforms, pickups
// and camera.
func (g *Game) newSession() *session {
	s := &session{
		camera: NewCamera(g.cfg.Camera, g.cfg.View.Width),
	}

	if g.cfg.Endless {
		sp := g.cfg.Spawner
		s.platforms = world.NewPlatformSet()
		s.player = NewPlayer(100, sp.GroundY-g.cfg.Player.Height, g.cfg.Player)
		s.killY = g.cfg.View.Height + 2*g.cfg.Player.Height
		s.spawner = NewSpawner(g.cfg, g.rng, g.difficulty, g.spawnEnemy)
		s.spawner.Prime(s.platforms, -g.cfg.View.Width, s.player.X+2*sp.SegmentMaxWidth)
	} else {
		layout := g.level.Build()
		s.platforms = layout.Platforms
		s.player = NewPlayer(layout.PlayerSpawn.X, layout.PlayerSpawn.Y, g.cfg.Player)
		s.goal = layout.Goal
		s.killY = layout.KillY
		for _, p := range layout.Enemies {
			s.enemies = append(s.enemies, g.spawnEnemy(p.X, p.Y))
		}
		for _, p := range layout.Coins {
			s.pickups = append(s.pickups, Pickup{Kind: PickupCoin, Box: core.NewBox(p.X, p.Y, g.cfg.Scoring.CoinSize, g.cfg.Scoring.CoinSize)})
		}
		for _, p := range layout.PowerUps {
			s.pickups = append(s.pickups, Pickup{Kind: PickupPowerUp, Box: core.NewBox(p.X, p.Y, g.cfg.Scoring.PowerUpSize, g.cfg.Scoring.PowerUpSize)})
		}
	}

	s.startX = s.player.X
	s.maxX = s.player.X
	return s
}

// spawnEnemy builds one officer with a randomly chosen uniform.
func (g *Game) spawnEnemy(x, y float64) *Enemy {
	sprite := "police"
	if n := len(g.cfg.Enemy.Sprites); n > 0 {
		sprite = g.cfg.Enemy.Sprites[g.rng.Intn(n)]
	}
	return NewEnemy(x, y, g.cfg.Enemy, g.pursuit, sprite)
}

// Step advances the game by dt seconds of frame time.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.events = g.events[:0]
	dt = g.cfg.Physics.ClampStep(dt)

	switch g.phase {
	case core.PhaseStart:
		if in.Has(core.ActionAnyKey) {
			g.begin()
		}
	case core.PhaseGameOver, core.PhaseWin:
		if in.Has(core.ActionRestart) {
			g.begin()
		}
	case core.PhasePlaying:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if !g.paused {
			g.simulate(in.Intent(), dt)
		}
	}

	return core.StepResult{State: g.State(), Events: append([]core.Event(nil), g.events...)}
}

// begin starts a brand new session in the playing phase.
func (g *Game) begin() {
	g.sess = g.newSession()
	g.phase = core.PhasePlaying
	g.paused = false
	g.emit(core.EventStart)
}

// simulate runs one playing frame: spawn, steer, integrate, then resolve
// contacts, pickups, the goal and the kill plane, and finally the camera.
func (g *Game) simulate(in core.Intent, dt float64) {
	s := g.sess
	s.clock += dt

	if s.spawner != nil {
		s.spawner.Update(s, dt)
	}
	solids := s.platforms.Rects()

	if s.player.Steer(in, dt) {
		g.emit(core.EventJump)
	}
	s.player.Step(dt, g.gravity, solids)

	around := Surroundings{
		Target:    s.player.Bounds(),
		Platforms: s.platforms,
		Speed:     g.enemySpeed(),
	}
	for _, e := range s.enemies {
		e.Steer(around, dt)
		e.Step(dt, g.gravity, solids)
	}

	g.resolveContacts()
	if g.phase != core.PhasePlaying {
		return
	}
	g.collectPickups()
	g.scoreDistance()

	if s.goal != nil && s.player.Bounds().Intersects(*s.goal) {
		s.score += g.cfg.Scoring.GoalBonus
		g.finish(core.PhaseWin, core.EventWin)
		return
	}
	if s.player.Y > s.killY {
		g.finish(core.PhaseGameOver, core.EventFell)
		return
	}
	if s.spawner == nil {
		s.enemies = pruneEnemies(s.enemies, math.Inf(-1), s.killY)
	}

	s.camera.Update(s.player.X, dt)
}

func (g *Game) enemySpeed() float64 {
	return g.difficulty.Speed(g.cfg.Enemy.Speed, g.progress())
}

func (g *Game) progress() config.Progress {
	return config.Progress{
		Score:    g.sess.score,
		Ticks:    int(g.sess.clock * 60),
		Distance: g.sess.distance(),
	}
}

// resolveContacts settles every player/officer overlap: an invincible
// player or a stomp removes the officer, anything else is a capture.
func (g *Game) resolveContacts() {
	s := g.sess
	pb := s.player.Bounds()
	caught := false

	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if !pb.Intersects(e.Bounds()) {
			kept = append(kept, e)
			continue
		}

		switch {
		case s.player.Invincible(s.clock):
			s.score += g.cfg.Combat.InvincibleReward
			g.emit(core.EventStomp)
		case g.cfg.Combat.Stomp && g.isStomp(e):
			s.score += g.cfg.Combat.StompReward
			s.player.VY = g.cfg.Player.JumpSpeed * g.cfg.Combat.StompBounceFactor
			g.emit(core.EventStomp)
		default:
			kept = append(kept, e)
			caught = true
		}
	}
	clear(s.enemies[len(kept):])
	s.enemies = kept

	if caught {
		g.finish(core.PhaseGameOver, core.EventCaught)
	}
}

// isStomp reports whether the falling player lands on e from above.
func (g *Game) isStomp(e *Enemy) bool {
	p := g.sess.player
	return p.VY > 0 && p.Bottom() < e.Bounds().CenterY()+g.cfg.Combat.StompTolerance
}

func (g *Game) collectPickups() {
	s := g.sess
	pb := s.player.Bounds()

	kept := s.pickups[:0]
	for _, p := range s.pickups {
		if !pb.Intersects(p.Box) {
			kept = append(kept, p)
			continue
		}
		switch p.Kind {
		case PickupCoin:
			s.score += g.cfg.Scoring.CoinValue
			g.emit(core.EventCoin)
		case PickupPowerUp:
			s.score += g.cfg.Scoring.PowerUpValue
			s.player.GrantInvincibility(s.clock, g.cfg.Combat.InvincibleDuration)
			g.emit(core.EventPowerUp)
		}
	}
	s.pickups = kept
}

// scoreDistance awards a point per distance_step of new ground covered.
func (g *Game) scoreDistance() {
	s := g.sess
	s.maxX = max(s.maxX, s.player.X)
	step := g.cfg.Scoring.DistanceStep
	if step <= 0 {
		return
	}
	points := int(s.distance() / step)
	if points > s.distancePoints {
		s.score += points - s.distancePoints
		s.distancePoints = points
	}
}

// finish ends the session and records the high score.
func (g *Game) finish(phase core.Phase, e core.Event) {
	g.phase = phase
	g.highScore = max(g.highScore, g.sess.score)
	g.emit(e)
}

func (g *Game) emit(e core.Event) {
	g.events = append(g.events, e)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.sess != nil {
		score = g.sess.score
	}
	return core.GameState{
		Phase:     g.phase,
		Score:     score,
		HighScore: g.highScore,
		Paused:    g.paused,
	}
}

// Register both variants with the registry.
func init() {
	for _, id := range []string{config.VariantClassic, config.VariantEndless} {
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}

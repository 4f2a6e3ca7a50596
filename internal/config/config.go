// Package config provides YAML-based game configuration loading and
// difficulty management for Chor Police.
package config

// ChorConfig contains all configuration for one Chor Police variant.
type ChorConfig struct {
	Level      string           `yaml:"level"`   // Level definition name (fixed-level variants)
	Endless    bool             `yaml:"endless"` // Procedural endless runner instead of a fixed level
	View       ViewConfig       `yaml:"view"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Combat     CombatConfig     `yaml:"combat"`
	Camera     CameraConfig     `yaml:"camera"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ViewConfig is the visible playfield in world units.
type ViewConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines global simulation parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // units/s²
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // 0 = uncapped
	MinStep      float64 `yaml:"min_step"`       // Smallest accepted frame time, seconds
	MaxStep      float64 `yaml:"max_step"`       // Largest accepted frame time, seconds
}

// Movement modes for the player.
const (
	MovementSnappy = "snappy"
	MovementSmooth = "smooth"
)

// PlayerConfig defines the player character.
type PlayerConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Speed     float64 `yaml:"speed"`      // Horizontal run speed, units/s
	JumpSpeed float64 `yaml:"jump_speed"` // Launch velocity, negative is up
	Movement  string  `yaml:"movement"`   // "snappy" or "smooth"
	Smoothing float64 `yaml:"smoothing"`  // Per-frame easing factor at 60 Hz for smooth movement
	Sprite    string  `yaml:"sprite"`
}

// EnemyConfig defines the police pursuit policy. The chances are game-balance
// constants: each is sampled independently on every frame its condition holds.
type EnemyConfig struct {
	Width            float64  `yaml:"width"`
	Height           float64  `yaml:"height"`
	Speed            float64  `yaml:"speed"`
	ReactionInterval float64  `yaml:"reaction_interval"` // Seconds between direction decisions
	ReactionJitter   float64  `yaml:"reaction_jitter"`   // Random extra delay, seconds
	DeadZone         float64  `yaml:"dead_zone"`         // Keep direction when this close to the player
	ChaseHeight      float64  `yaml:"chase_height"`      // Player must be this much higher to trigger a chase jump
	ChaseBand        float64  `yaml:"chase_band"`        // ...and within this horizontal distance
	ChaseJumpChance  float64  `yaml:"chase_jump_chance"`
	ChaseJumpFactor  float64  `yaml:"chase_jump_factor"` // Fraction of player jump speed
	Lookahead        float64  `yaml:"lookahead"`         // Probe distance ahead of the enemy
	ProbeDepth       float64  `yaml:"probe_depth"`       // Probe distance below the feet
	GapJumpChance    float64  `yaml:"gap_jump_chance"`
	WallJumpChance   float64  `yaml:"wall_jump_chance"`
	HopJumpFactor    float64  `yaml:"hop_jump_factor"` // Gap/wall jump, fraction of player jump speed
	Restitution      float64  `yaml:"restitution"`     // Wall bounce
	Sprites          []string `yaml:"sprites"`
}

// CombatConfig defines player/enemy contact outcomes.
type CombatConfig struct {
	Stomp              bool    `yaml:"stomp"`               // Landing on a police officer defeats him
	StompTolerance     float64 `yaml:"stomp_tolerance"`     // Extra room below the enemy center
	StompBounceFactor  float64 `yaml:"stomp_bounce_factor"` // Fraction of jump speed after a stomp
	StompReward        int     `yaml:"stomp_reward"`
	InvincibleDuration float64 `yaml:"invincible_duration"` // Seconds
	InvincibleReward   int     `yaml:"invincible_reward"`
}

// Camera modes.
const (
	CameraClamp  = "clamp"
	CameraDamped = "damped"
)

// CameraConfig defines the horizontal follow camera.
type CameraConfig struct {
	Mode      string  `yaml:"mode"`      // "clamp" or "damped"
	Smoothing float64 `yaml:"smoothing"` // Per-frame factor at 60 Hz, (0,1]
	Lead      float64 `yaml:"lead"`      // Player sits at this fraction of the view width
}

// ScoringConfig defines score sources other than combat.
type ScoringConfig struct {
	CoinValue    int     `yaml:"coin_value"`
	PowerUpValue int     `yaml:"powerup_value"`
	DistanceStep float64 `yaml:"distance_step"` // Units travelled per distance point; 0 disables
	GoalBonus    int     `yaml:"goal_bonus"`
	CoinSize     float64 `yaml:"coin_size"`
	PowerUpSize  float64 `yaml:"powerup_size"`
}

// SpawnerConfig defines the endless-mode content generator.
type SpawnerConfig struct {
	GroundY          float64 `yaml:"ground_y"`
	GroundHeight     float64 `yaml:"ground_height"`
	PlatformsAhead   int     `yaml:"platforms_ahead"`
	PruneBehind      float64 `yaml:"prune_behind"`
	SegmentMinWidth  float64 `yaml:"segment_min_width"`
	SegmentMaxWidth  float64 `yaml:"segment_max_width"`
	GapChance        float64 `yaml:"gap_chance"`
	GapMinWidth      float64 `yaml:"gap_min_width"`
	GapMaxWidth      float64 `yaml:"gap_max_width"`
	LedgeChance      float64 `yaml:"ledge_chance"`
	LedgeMinRise     float64 `yaml:"ledge_min_rise"`
	LedgeMaxRise     float64 `yaml:"ledge_max_rise"`
	LedgeMinWidth    float64 `yaml:"ledge_min_width"`
	LedgeMaxWidth    float64 `yaml:"ledge_max_width"`
	LedgeThickness   float64 `yaml:"ledge_thickness"`
	CoinChance       float64 `yaml:"coin_chance"`
	CoinCap          int     `yaml:"coin_cap"`
	PowerUpChance    float64 `yaml:"powerup_chance"`
	PowerUpCap       int     `yaml:"powerup_cap"`
	EnemyInterval    float64 `yaml:"enemy_interval"`     // Seconds between police spawns at stage 1
	MinEnemyInterval float64 `yaml:"min_enemy_interval"` // Floor for the spawn interval
	EnemyCap         int     `yaml:"enemy_cap"`
	SpawnAhead       float64 `yaml:"spawn_ahead"` // Police appear this far ahead of the player
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type          string  `yaml:"type"`           // "distance", "score", "time", or "none"
	MaxAt         int     `yaml:"max_at"`         // Distance/score/ticks at which max difficulty is reached
	StageDistance float64 `yaml:"stage_distance"` // Distance per stage counter increment
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Police speed bonus at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Spawn interval seconds removed per stage
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ClampStep turns a raw frame time into a usable simulation step.
// Non-positive values (a stalled clock) become MinStep; long stalls are
// capped at MaxStep.
func (p PhysicsConfig) ClampStep(dt float64) float64 {
	minStep := p.MinStep
	if minStep <= 0 {
		minStep = 1e-4
	}
	if dt <= 0 || dt != dt {
		return minStep
	}
	if p.MaxStep > 0 && dt > p.MaxStep {
		return p.MaxStep
	}
	if dt < minStep {
		return minStep
	}
	return dt
}

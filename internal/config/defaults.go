package config

import (
	_ "embed"
)

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

//go:embed defaults/endless.yaml
var defaultEndlessYAML []byte

// Variant IDs with embedded defaults.
const (
	VariantClassic = "chor"
	VariantEndless = "chor_endless"
)

// DefaultClassicConfig returns the fixed-level configuration: one hand-built
// level, snappy movement, stomping enabled and a clamped camera.
func DefaultClassicConfig() ChorConfig {
	return ChorConfig{
		Level: "classic",
		View: ViewConfig{
			Width:  1024,
			Height: 576,
		},
		Physics: PhysicsConfig{
			Gravity:      2880,
			MaxFallSpeed: 0,
			MinStep:      0.0001,
			MaxStep:      0.05,
		},
		Player: PlayerConfig{
			Width:     40,
			Height:    70,
			Speed:     300,
			JumpSpeed: -900,
			Movement:  MovementSnappy,
			Smoothing: 0.25,
			Sprite:    "chor",
		},
		Enemy: EnemyConfig{
			Width:            40,
			Height:           70,
			Speed:            210,
			ReactionInterval: 0.25,
			ReactionJitter:   0.1,
			DeadZone:         20,
			ChaseHeight:      40,
			ChaseBand:        250,
			ChaseJumpChance:  1.0,
			ChaseJumpFactor:  0.9,
			Lookahead:        50,
			ProbeDepth:       5,
			GapJumpChance:    1.0,
			WallJumpChance:   0.5,
			HopJumpFactor:    0.85,
			Restitution:      0.5,
			Sprites:          []string{"police", "police2"},
		},
		Combat: CombatConfig{
			Stomp:              true,
			StompTolerance:     0,
			StompBounceFactor:  0.6,
			StompReward:        100,
			InvincibleDuration: 5,
			InvincibleReward:   150,
		},
		Camera: CameraConfig{
			Mode:      CameraClamp,
			Smoothing: 0.1,
			Lead:      1.0 / 3,
		},
		Scoring: ScoringConfig{
			CoinValue:    10,
			PowerUpValue: 50,
			DistanceStep: 0,
			GoalBonus:    500,
			CoinSize:     20,
			PowerUpSize:  28,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type: "none",
			},
		},
	}
}

// DefaultEndlessConfig returns the endless-runner configuration: procedural
// platforms, smooth movement and a damped camera.
func DefaultEndlessConfig() ChorConfig {
	cfg := DefaultClassicConfig()
	cfg.Level = ""
	cfg.Endless = true
	cfg.Player.Movement = MovementSmooth
	cfg.Camera.Mode = CameraDamped
	cfg.Enemy.ChaseJumpChance = 0.6
	cfg.Enemy.GapJumpChance = 0.8
	cfg.Enemy.WallJumpChance = 0.5
	cfg.Scoring.DistanceStep = 50
	cfg.Scoring.GoalBonus = 0
	cfg.Spawner = SpawnerConfig{
		GroundY:          496,
		GroundHeight:     80,
		PlatformsAhead:   8,
		PruneBehind:      800,
		SegmentMinWidth:  300,
		SegmentMaxWidth:  700,
		GapChance:        0.35,
		GapMinWidth:      60,
		GapMaxWidth:      140,
		LedgeChance:      0.5,
		LedgeMinRise:     70,
		LedgeMaxRise:     130,
		LedgeMinWidth:    150,
		LedgeMaxWidth:    300,
		LedgeThickness:   20,
		CoinChance:       0.02,
		CoinCap:          12,
		PowerUpChance:    0.002,
		PowerUpCap:       1,
		EnemyInterval:    6,
		MinEnemyInterval: 1.5,
		EnemyCap:         8,
		SpawnAhead:       900,
	}
	cfg.Difficulty = DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression: ProgressionConfig{
			Type:          "distance",
			MaxAt:         20000,
			StageDistance: 2000,
		},
		Scaling: ScalingConfig{
			SpeedMultiplier:   0.5,
			IntervalReduction: 0.5,
		},
	}
	return cfg
}

// DefaultConfig returns the hard-coded defaults for a variant.
func DefaultConfig(variant string) ChorConfig {
	if variant == VariantEndless {
		return DefaultEndlessConfig()
	}
	return DefaultClassicConfig()
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantClassic:
		return defaultClassicYAML
	case VariantEndless:
		return defaultEndlessYAML
	default:
		return nil
	}
}

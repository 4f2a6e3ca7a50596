package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads the configuration for a variant.
// Search order: customPath -> ~/.chorpolice/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default -> hard-coded default.
// Only an explicit customPath can produce an error; the other sources are
// skipped when missing or malformed.
func Load(variant, customPath string) (ChorConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(variant, customPath)
		if err != nil {
			return cfg, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := variant + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, err := loadFile(variant, userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(variant, filepath.Join("configs", filename)); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(variant); data != nil {
		cfg := DefaultConfig(variant)
		if err := yaml.Unmarshal(data, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}
	return DefaultConfig(variant), nil
}

// loadFile reads a YAML file on top of the variant defaults, so a partial
// file only overrides the keys it names.
func loadFile(variant, path string) (ChorConfig, error) {
	cfg := DefaultConfig(variant)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chorpolice", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ChorConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Police reflexes follow the preset
	switch preset {
	case DifficultyEasy:
		cfg.Enemy.ReactionInterval *= 1.5
		cfg.Combat.InvincibleDuration *= 1.5
	case DifficultyHard:
		cfg.Enemy.ReactionInterval *= 0.6
		cfg.Enemy.Speed *= 1.15
	}
}

// Validate checks the values the simulation relies on.
func (c ChorConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"view.width", c.View.Width},
		{"view.height", c.View.Height},
		{"physics.gravity", c.Physics.Gravity},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"player.speed", c.Player.Speed},
		{"enemy.width", c.Enemy.Width},
		{"enemy.height", c.Enemy.Height},
		{"enemy.speed", c.Enemy.Speed},
		{"enemy.reaction_interval", c.Enemy.ReactionInterval},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}

	if c.Player.JumpSpeed >= 0 {
		return fmt.Errorf("%w: player.jump_speed must be negative, got %v", ErrInvalidConfig, c.Player.JumpSpeed)
	}

	chances := []struct {
		name string
		v    float64
	}{
		{"enemy.chase_jump_chance", c.Enemy.ChaseJumpChance},
		{"enemy.gap_jump_chance", c.Enemy.GapJumpChance},
		{"enemy.wall_jump_chance", c.Enemy.WallJumpChance},
		{"spawner.gap_chance", c.Spawner.GapChance},
		{"spawner.ledge_chance", c.Spawner.LedgeChance},
		{"spawner.coin_chance", c.Spawner.CoinChance},
		{"spawner.powerup_chance", c.Spawner.PowerUpChance},
	}
	for _, p := range chances {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidConfig, p.name, p.v)
		}
	}

	switch c.Player.Movement {
	case MovementSnappy, MovementSmooth:
	default:
		return fmt.Errorf("%w: player.movement %q", ErrInvalidConfig, c.Player.Movement)
	}

	switch c.Camera.Mode {
	case CameraClamp, CameraDamped:
	default:
		return fmt.Errorf("%w: camera.mode %q", ErrInvalidConfig, c.Camera.Mode)
	}
	if c.Camera.Mode == CameraDamped && (c.Camera.Smoothing <= 0 || c.Camera.Smoothing > 1) {
		return fmt.Errorf("%w: camera.smoothing must be within (0,1], got %v", ErrInvalidConfig, c.Camera.Smoothing)
	}

	if c.Endless {
		if c.Spawner.PlatformsAhead <= 0 {
			return fmt.Errorf("%w: spawner.platforms_ahead must be positive", ErrInvalidConfig)
		}
		if c.Spawner.SegmentMinWidth <= 0 || c.Spawner.SegmentMaxWidth < c.Spawner.SegmentMinWidth {
			return fmt.Errorf("%w: spawner segment widths", ErrInvalidConfig)
		}
		if c.Spawner.MinEnemyInterval <= 0 {
			return fmt.Errorf("%w: spawner.min_enemy_interval must be positive", ErrInvalidConfig)
		}
	} else if c.Level == "" {
		return fmt.Errorf("%w: fixed-level variant needs a level name", ErrInvalidConfig)
	}

	return nil
}

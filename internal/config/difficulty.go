package config

import "math"

// Progress is the run state difficulty is derived from.
type Progress struct {
	Score    int
	Ticks    int
	Distance float64
}

// DifficultyManager calculates dynamic game parameters based on progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "distance":
		progress = p.Distance / maxAt
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = float64(p.Ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales a base speed by the current difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, p Progress) float64 {
	return baseSpeed * (1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// Stage returns the level counter: 1 at the start, plus one for every
// stage_distance travelled. Without progression it stays at 1.
func (d *DifficultyManager) Stage(distance float64) int {
	if !d.IsEnabled() || d.cfg.Progression.StageDistance <= 0 || distance <= 0 {
		return 1
	}
	return 1 + int(distance/d.cfg.Progression.StageDistance)
}

// SpawnInterval shortens a base interval by interval_reduction per stage,
// never going below floor.
func (d *DifficultyManager) SpawnInterval(base, floor float64, stage int) float64 {
	if stage < 1 {
		stage = 1
	}
	interval := base - float64(stage-1)*d.cfg.Scaling.IntervalReduction
	return math.Max(interval, floor)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

package config

import "math"

// DifficultyManager derives wave-dependent timings and scales damage and
// enemy hp by the active preset.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// Interval returns max(floor, base - perWave*(wave-1)).
// With scaling disabled the base interval is used for every wave.
func (d *DifficultyManager) Interval(base, perWave, floor float64, wave int) float64 {
	if !d.cfg.Enabled || wave <= 1 {
		return math.Max(floor, base)
	}
	return math.Max(floor, base-perWave*float64(wave-1))
}

// DamageTaken scales damage dealt to the player.
func (d *DifficultyManager) DamageTaken(amount float64) float64 {
	return amount * multiplier(d.cfg.DamageTaken)
}

// EnemyHP scales a freshly spawned enemy's hp.
func (d *DifficultyManager) EnemyHP(hp float64) float64 {
	return hp * multiplier(d.cfg.EnemyHP)
}

// multiplier treats an unset (zero or negative) factor as 1.
func multiplier(m float64) float64 {
	if m <= 0 {
		return 1
	}
	return m
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the tuning file name looked up in every config directory.
const ConfigFile = "aether.yaml"

// LoadAether loads the game tuning.
// Search order: customPath -> ~/.aether/configs/aether.yaml -> ./configs/aether.yaml -> embedded default
//
// Every file is decoded over the hardcoded defaults, so a partial file only
// overrides the keys it names.
func LoadAether(customPath string) (AetherConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultAetherConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseAether(data)
		if err != nil {
			return DefaultAetherConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseAether(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parseAether(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseAether(defaultAetherYAML)
	if err != nil {
		return DefaultAetherConfig(), nil
	}
	return cfg, nil
}

func parseAether(data []byte) (AetherConfig, error) {
	cfg := DefaultAetherConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects tuning the simulation cannot run with.
func (c AetherConfig) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("arena size must be positive")
	case c.Progression.SlotCount < 1:
		return fmt.Errorf("slot_count must be at least 1")
	case c.Hazard.Mode != HazardEnhanced && c.Hazard.Mode != HazardClassic:
		return fmt.Errorf("unknown hazard mode %q", c.Hazard.Mode)
	case c.Hazard.Width <= 0:
		return fmt.Errorf("hazard width must be positive")
	case c.Spawn.BossEvery < 1:
		return fmt.Errorf("boss_every must be at least 1")
	case c.Rewards.OffersPerClear < 1:
		return fmt.Errorf("offers_per_clear must be at least 1")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aether", "configs", filename)
}

// ApplyAetherPreset modifies the config based on a difficulty preset.
func ApplyAetherPreset(cfg *AetherConfig, preset DifficultyPreset) {
	cfg.Difficulty.Enabled = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.DamageTaken = 0.6
		cfg.Difficulty.EnemyHP = 0.8
		cfg.Items.DropChance = 0.3
	case DifficultyHard:
		cfg.Difficulty.DamageTaken = 1.4
		cfg.Difficulty.EnemyHP = 1.25
		cfg.Hazard.LaneCount += 2
	default:
		cfg.Difficulty.DamageTaken = 1.0
		cfg.Difficulty.EnemyHP = 1.0
	}
}

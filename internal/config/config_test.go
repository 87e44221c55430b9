package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded AetherConfig
	if err := yaml.Unmarshal(defaultAetherYAML, &embedded); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if embedded != DefaultAetherConfig() {
		t.Errorf("embedded defaults drifted from DefaultAetherConfig():\n%+v\n%+v", embedded, DefaultAetherConfig())
	}
}

func TestLoadAetherCustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("hazard:\n  mode: classic\nprogression:\n  slot_count: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadAether(path)
	if err != nil {
		t.Fatalf("LoadAether() failed: %v", err)
	}
	if cfg.Hazard.Mode != HazardClassic || cfg.Progression.SlotCount != 5 {
		t.Errorf("overrides not applied: mode=%s slots=%d", cfg.Hazard.Mode, cfg.Progression.SlotCount)
	}
	if cfg.Player.StartAttack != 45 {
		t.Errorf("unnamed keys should keep defaults, start_attack = %f", cfg.Player.StartAttack)
	}
}

func TestLoadAetherRejectsBadFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadAether(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("hazard:\n  mode: sideways\n"), 0o644)
	if _, err := LoadAether(bad); err == nil {
		t.Error("expected error for unknown hazard mode")
	}
}

func TestClassicVariant(t *testing.T) {
	cfg := ClassicVariant(DefaultAetherConfig())

	if cfg.Hazard.Mode != HazardClassic {
		t.Errorf("mode = %s, expected classic", cfg.Hazard.Mode)
	}
	if cfg.Progression.AutosaveInterval != 30 {
		t.Errorf("autosave interval = %f, expected 30", cfg.Progression.AutosaveInterval)
	}
}

func TestApplyAetherPreset(t *testing.T) {
	cfg := DefaultAetherConfig()
	ApplyAetherPreset(&cfg, DifficultyHard)
	if cfg.Difficulty.DamageTaken <= 1 || !cfg.Difficulty.Enabled {
		t.Errorf("hard preset should raise damage and keep scaling: %+v", cfg.Difficulty)
	}

	cfg = DefaultAetherConfig()
	ApplyAetherPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable wave scaling")
	}

	if _, ok := ParsePreset("brutal"); ok {
		t.Error("unknown preset should be rejected")
	}
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Error("empty preset should mean normal")
	}
}

func TestDifficultyManagerInterval(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true})

	tests := []struct {
		wave     int
		expected float64
	}{
		{1, 2.0},
		{2, 1.9},
		{11, 1.0},
		{40, 0.8},
	}
	for _, tc := range tests {
		got := d.Interval(2.0, 0.1, 0.8, tc.wave)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Interval(wave %d) = %f, expected %f", tc.wave, got, tc.expected)
		}
	}

	if got := d.Interval(5.0, 0.25, 2.5, 100); got != 2.5 {
		t.Errorf("hazard interval should floor at 2.5, got %f", got)
	}

	d = NewDifficultyManager(DifficultyConfig{})
	if got := d.Interval(2.0, 0.1, 0.8, 11); got != 2.0 {
		t.Errorf("disabled scaling should keep the base interval, got %f", got)
	}
}

func TestDifficultyManagerMultipliers(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{})
	if d.DamageTaken(3) != 3 || d.EnemyHP(100) != 100 {
		t.Error("unset multipliers should be 1")
	}

	d = NewDifficultyManager(DifficultyConfig{DamageTaken: 0.5, EnemyHP: 2})
	if d.DamageTaken(3) != 1.5 || d.EnemyHP(100) != 200 {
		t.Error("multipliers not applied")
	}
}

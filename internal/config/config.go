// Package config provides YAML-based tuning and difficulty management for
// Aether Knight. All world units are arena pixels; durations are seconds
// unless a field says ticks.
package config

// AetherConfig contains all tuning for one game variant.
type AetherConfig struct {
	Arena       ArenaConfig       `yaml:"arena"`
	Player      PlayerConfig      `yaml:"player"`
	Combat      CombatConfig      `yaml:"combat"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Items       ItemConfig        `yaml:"items"`
	Hazard      HazardConfig      `yaml:"hazard"`
	Overdrive   OverdriveConfig   `yaml:"overdrive"`
	Rewards     RewardConfig      `yaml:"rewards"`
	Progression ProgressionConfig `yaml:"progression"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// ArenaConfig defines the simulated playfield.
type ArenaConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorOffset float64 `yaml:"floor_offset"` // distance from the bottom edge to the floor
}

// PlayerConfig defines the knight's body, frame-based physics and base stats.
type PlayerConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	MoveSpeed   float64 `yaml:"move_speed"`
	Friction    float64 `yaml:"friction"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	Gravity     float64 `yaml:"gravity"`
	StartHP     float64 `yaml:"start_hp"`
	StartAttack float64 `yaml:"start_attack"`
}

// CombatConfig defines hit resolution and leveling.
type CombatConfig struct {
	HitRadius         float64 `yaml:"hit_radius"`
	HitRadiusPerStack float64 `yaml:"hit_radius_per_stack"`
	BossRadiusFactor  float64 `yaml:"boss_radius_factor"` // share of boss width added to the radius
	DamageFactor      float64 `yaml:"damage_factor"`      // share of attack dealt per tick
	StackDamageBonus  float64 `yaml:"stack_damage_bonus"` // extra damage share per overdrive stack
	MobTouchDamage    float64 `yaml:"mob_touch_damage"`   // per tick
	BossTouchDamage   float64 `yaml:"boss_touch_damage"`  // per tick
	LevelUpExp        int     `yaml:"level_up_exp"`
	AttackPerLevel    float64 `yaml:"attack_per_level"`
}

// SpawnConfig defines mob and boss creation.
type SpawnConfig struct {
	MobInterval        float64 `yaml:"mob_interval"`
	MobIntervalPerWave float64 `yaml:"mob_interval_per_wave"`
	MobIntervalMin     float64 `yaml:"mob_interval_min"`
	MobWidth           float64 `yaml:"mob_width"`
	MobHeight          float64 `yaml:"mob_height"`
	MobBaseHP          float64 `yaml:"mob_base_hp"`
	MobHPPerLevel      float64 `yaml:"mob_hp_per_level"`
	MobBaseSpeed       float64 `yaml:"mob_base_speed"`
	MobSpeedPerLevel   float64 `yaml:"mob_speed_per_level"`
	MobSpawnOffset     float64 `yaml:"mob_spawn_offset"`
	MobScore           int     `yaml:"mob_score"`
	MobExp             int     `yaml:"mob_exp"`

	BossEvery        int     `yaml:"boss_every"`
	BossBaseHP       float64 `yaml:"boss_base_hp"`
	BossGrowth       float64 `yaml:"boss_growth"`
	BossWidth        float64 `yaml:"boss_width"`
	BossHeight       float64 `yaml:"boss_height"`
	BossBaseSpeed    float64 `yaml:"boss_base_speed"`
	BossSpeedDivisor float64 `yaml:"boss_speed_divisor"`
	BossSpawnOffset  float64 `yaml:"boss_spawn_offset"`
	BossScore        int     `yaml:"boss_score"`
	BossExp          int     `yaml:"boss_exp"`
}

// ItemConfig defines drops and their effects.
type ItemConfig struct {
	DropChance    float64 `yaml:"drop_chance"`
	CoreWeight    int     `yaml:"core_weight"`
	ThunderWeight int     `yaml:"thunder_weight"`
	HealWeight    int     `yaml:"heal_weight"`
	Size          float64 `yaml:"size"`
	PickupRangeX  float64 `yaml:"pickup_range_x"`
	PickupRangeY  float64 `yaml:"pickup_range_y"`
	ThunderDamage float64 `yaml:"thunder_damage"`
	HealAmount    float64 `yaml:"heal_amount"`
}

// Hazard modes.
const (
	HazardEnhanced = "enhanced"
	HazardClassic  = "classic"
)

// HazardConfig defines the lightning batches.
type HazardConfig struct {
	Mode            string  `yaml:"mode"` // "enhanced" or "classic"
	Interval        float64 `yaml:"interval"`
	IntervalPerWave float64 `yaml:"interval_per_wave"`
	IntervalMin     float64 `yaml:"interval_min"`
	Width           float64 `yaml:"width"`

	// Classic bolts.
	ClassicCount int     `yaml:"classic_count"`
	ClassicLife  int     `yaml:"classic_life"` // ticks
	ActiveBelow  int     `yaml:"active_below"` // damage while 0 < life < active_below
	TickDamage   float64 `yaml:"tick_damage"`  // per tick

	// Enhanced lanes.
	LaneCount      int     `yaml:"lane_count"` // lanes struck per batch
	SafeMargin     float64 `yaml:"safe_margin"`
	WarnDuration   float64 `yaml:"warn_duration"`
	StrikeDuration float64 `yaml:"strike_duration"`
	StrikeDPS      float64 `yaml:"strike_dps"`
}

// OverdriveConfig defines the core stack buff and its afterimages.
type OverdriveConfig struct {
	Duration         float64 `yaml:"duration"`
	IdleColor        string  `yaml:"idle_color"`
	ActiveColor      string  `yaml:"active_color"`
	AfterimageRadius float64 `yaml:"afterimage_radius"`
	AfterimageLife   int     `yaml:"afterimage_life"` // ticks
}

// RewardConfig defines the magnitudes of the boss-clear rewards.
type RewardConfig struct {
	RepairMaxHP      float64 `yaml:"repair_max_hp"`
	TuningAttack     float64 `yaml:"tuning_attack"`
	InfusionDuration float64 `yaml:"infusion_duration"`
	DischargeDamage  float64 `yaml:"discharge_damage"`
	BarrierDuration  float64 `yaml:"barrier_duration"`
	PlatingMaxHP     float64 `yaml:"plating_max_hp"`
	PlatingHeal      float64 `yaml:"plating_heal"`
	OffersPerClear   int     `yaml:"offers_per_clear"`
	RewardGrace      float64 `yaml:"reward_grace"`
}

// ProgressionConfig defines save slots, grace periods and autosave.
type ProgressionConfig struct {
	SlotCount        int     `yaml:"slot_count"`
	LoadGrace        float64 `yaml:"load_grace"`
	AutosaveInterval float64 `yaml:"autosave_interval"` // 0 = checkpoint-only
	NoticeDuration   float64 `yaml:"notice_duration"`
}

// DifficultyConfig scales the challenge on top of the base tuning.
type DifficultyConfig struct {
	Enabled     bool    `yaml:"enabled"`      // wave-based interval shrinking
	DamageTaken float64 `yaml:"damage_taken"` // multiplier for hazard and touch damage
	EnemyHP     float64 `yaml:"enemy_hp"`     // multiplier for mob and boss hp
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown names are rejected.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}

// IsFixedPreset returns true if the preset disables wave scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

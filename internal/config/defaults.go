package config

import (
	_ "embed"
)

//go:embed defaults/aether.yaml
var defaultAetherYAML []byte

// DefaultAetherConfig returns the hardcoded tuning, used when even the
// embedded YAML cannot be parsed.
func DefaultAetherConfig() AetherConfig {
	return AetherConfig{
		Arena: ArenaConfig{
			Width:       1280,
			Height:      720,
			FloorOffset: 100,
		},
		Player: PlayerConfig{
			Width:       80,
			Height:      110,
			MoveSpeed:   9,
			Friction:    0.85,
			JumpImpulse: -19,
			Gravity:     0.9,
			StartHP:     100,
			StartAttack: 45,
		},
		Combat: CombatConfig{
			HitRadius:         190,
			HitRadiusPerStack: 10,
			BossRadiusFactor:  0.15,
			DamageFactor:      0.17,
			StackDamageBonus:  0.6,
			MobTouchDamage:    0.3,
			BossTouchDamage:   0.8,
			LevelUpExp:        100,
			AttackPerLevel:    15,
		},
		Spawn: SpawnConfig{
			MobInterval:        2.0,
			MobIntervalPerWave: 0.1,
			MobIntervalMin:     0.8,
			MobWidth:           75,
			MobHeight:          95,
			MobBaseHP:          100,
			MobHPPerLevel:      30,
			MobBaseSpeed:       2.8,
			MobSpeedPerLevel:   0.25,
			MobSpawnOffset:     150,
			MobScore:           150,
			MobExp:             30,
			BossEvery:          10,
			BossBaseHP:         2500,
			BossGrowth:         1.7,
			BossWidth:          180,
			BossHeight:         230,
			BossBaseSpeed:      1.2,
			BossSpeedDivisor:   70,
			BossSpawnOffset:    240,
			BossScore:          8000,
			BossExp:            150,
		},
		Items: ItemConfig{
			DropChance:    0.2,
			CoreWeight:    20,
			ThunderWeight: 30,
			HealWeight:    50,
			Size:          40,
			PickupRangeX:  65,
			PickupRangeY:  100,
			ThunderDamage: 4000,
			HealAmount:    60,
		},
		Hazard: HazardConfig{
			Mode:            HazardEnhanced,
			Interval:        5.0,
			IntervalPerWave: 0.25,
			IntervalMin:     2.5,
			Width:           60,
			ClassicCount:    10,
			ClassicLife:     75,
			ActiveBelow:     15,
			TickDamage:      3,
			LaneCount:       6,
			SafeMargin:      120,
			WarnDuration:    0.9,
			StrikeDuration:  0.28,
			StrikeDPS:       56,
		},
		Overdrive: OverdriveConfig{
			Duration:         10,
			IdleColor:        "#0ff",
			ActiveColor:      "#f0f",
			AfterimageRadius: 110,
			AfterimageLife:   12,
		},
		Rewards: RewardConfig{
			RepairMaxHP:      20,
			TuningAttack:     25,
			InfusionDuration: 10,
			DischargeDamage:  3000,
			BarrierDuration:  6,
			PlatingMaxHP:     40,
			PlatingHeal:      40,
			OffersPerClear:   3,
			RewardGrace:      1.0,
		},
		Progression: ProgressionConfig{
			SlotCount:        3,
			LoadGrace:        1.5,
			AutosaveInterval: 0,
			NoticeDuration:   2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			DamageTaken: 1.0,
			EnemyHP:     1.0,
		},
	}
}

// ClassicVariant adapts a config to the classic rules: per-tick lightning
// bolts and an interval autosave every 30 seconds of play.
func ClassicVariant(cfg AetherConfig) AetherConfig {
	cfg.Hazard.Mode = HazardClassic
	if cfg.Progression.AutosaveInterval <= 0 {
		cfg.Progression.AutosaveInterval = 30
	}
	return cfg
}

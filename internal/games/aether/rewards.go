package aether

import (
	"math/rand"
)

// RewardID identifies a boss-clear reward.
type RewardID int

const (
	RewardRepair RewardID = iota
	RewardCoreTuning
	RewardOverdrive
	RewardDischarge
	RewardBarrier
	RewardPlating
)

// Reward is one entry of the boss-clear catalog.
type Reward struct {
	ID    RewardID
	Name  string // localized name
	Label string // terminal label (single-width runes)
	Info  string
}

var catalog = []Reward{
	{ID: RewardRepair, Name: "정비 완료", Label: "Repair", Info: "full heal, max hp +20"},
	{ID: RewardCoreTuning, Name: "코어 튜닝", Label: "Core Tuning", Info: "attack +25"},
	{ID: RewardOverdrive, Name: "오버드라이브 주입", Label: "Overdrive Infusion", Info: "core stack +1 for 10s"},
	{ID: RewardDischarge, Name: "에테르 방전", Label: "Ether Discharge", Info: "3000 damage to every enemy"},
	{ID: RewardBarrier, Name: "위상 보호막", Label: "Phase Barrier", Info: "6s invulnerability"},
	{ID: RewardPlating, Name: "강화 외피", Label: "Reinforced Plating", Info: "max hp +40, heal 40"},
}

// Catalog returns a copy of the reward pool.
func Catalog() []Reward {
	out := make([]Reward, len(catalog))
	copy(out, catalog)
	return out
}

// drawOffers shuffles the whole pool uniformly and keeps the first n,
// so offers never repeat within one clear.
func drawOffers(rng *rand.Rand, n int) []Reward {
	pool := Catalog()
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// applyReward performs the reward's effect on the run exactly once.
func (m *Machine) applyReward(r Reward) {
	rc := m.cfg.Rewards
	p := &m.world.Player

	switch r.ID {
	case RewardRepair:
		p.MaxHP += rc.RepairMaxHP
		p.HP = p.MaxHP
	case RewardCoreTuning:
		p.BaseAttack += rc.TuningAttack
	case RewardOverdrive:
		m.world.GrantOverdrive(rc.InfusionDuration)
	case RewardDischarge:
		m.world.DamageAll(rc.DischargeDamage)
	case RewardBarrier:
		p.GrantInvulnerability(rc.BarrierDuration)
	case RewardPlating:
		p.MaxHP += rc.PlatingMaxHP
		p.Heal(rc.PlatingHeal)
	}
}

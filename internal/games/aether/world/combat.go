package world

import (
	"fmt"
	"math"

	"github.com/vovakirdan/aether-knight/internal/core"
)

// SpawnEnemy is the mob timer callback: it spawns a boss instead of a mob
// exactly when the level is a boss level and no boss is alive.
func (w *World) SpawnEnemy() *Enemy {
	if w.Level%w.cfg.Spawn.BossEvery == 0 && !w.BossAlive() {
		return w.spawnBoss()
	}
	return w.spawnMob()
}

func (w *World) spawnMob() *Enemy {
	s := w.cfg.Spawn
	lvl := float64(w.Level)

	x := -s.MobSpawnOffset
	if !w.spawnLeft {
		x = w.cfg.Arena.Width + s.MobSpawnOffset
	}
	w.spawnLeft = !w.spawnLeft

	hp := w.diff.EnemyHP(s.MobBaseHP + s.MobHPPerLevel*lvl)
	e := &Enemy{
		Body:  core.Box{X: x, Y: w.FloorY() - s.MobHeight, W: s.MobWidth, H: s.MobHeight},
		HP:    hp,
		MaxHP: hp,
		Speed: s.MobBaseSpeed + s.MobSpeedPerLevel*lvl,
	}
	w.Enemies = append(w.Enemies, e)
	return e
}

func (w *World) spawnBoss() *Enemy {
	s := w.cfg.Spawn
	lvl := float64(w.Level)

	scale := 1 + lvl/100
	width, height := s.BossWidth*scale, s.BossHeight*scale
	hp := w.diff.EnemyHP(s.BossBaseHP * math.Pow(s.BossGrowth, lvl/float64(s.BossEvery)))

	e := &Enemy{
		Body:  core.Box{X: w.cfg.Arena.Width + s.BossSpawnOffset, Y: w.FloorY() - height, W: width, H: height},
		HP:    hp,
		MaxHP: hp,
		Speed: s.BossBaseSpeed + lvl/s.BossSpeedDivisor,
		Boss:  true,
	}
	w.Enemies = append(w.Enemies, e)
	w.emit(EventBossSpawned, fmt.Sprintf("BOSS ALERT: LV.%d", w.Level))
	return e
}

// HitRadius returns the melee radius against e for the current stack.
// The test is center to center so oversized boss bodies are reachable.
func (w *World) HitRadius(e *Enemy) float64 {
	c := w.cfg.Combat
	r := c.HitRadius + c.HitRadiusPerStack*float64(w.Overdrive.Stack)
	if e.Boss {
		r += c.BossRadiusFactor * e.Body.W
	}
	return r
}

// AttackDamage returns the per-tick melee damage.
func (w *World) AttackDamage() float64 {
	c := w.cfg.Combat
	return c.DamageFactor * w.Player.BaseAttack * (1 + c.StackDamageBonus*float64(w.Overdrive.Stack))
}

// resolveCombat moves enemies toward the knight, applies touch damage and
// the knight's aura damage.
func (w *World) resolveCombat() {
	c := w.cfg.Combat
	p := &w.Player
	pcx := p.Body.CenterX()
	dmg := w.AttackDamage()

	for _, e := range w.Enemies {
		if e.Dead {
			continue
		}

		if e.Body.CenterX() < pcx {
			e.Body.X += e.Speed
		} else {
			e.Body.X -= e.Speed
		}

		if e.Body.Overlaps(p.Body) && !p.Invulnerable() {
			touch := c.MobTouchDamage
			if e.Boss {
				touch = c.BossTouchDamage
			}
			p.HP -= w.diff.DamageTaken(touch)
		}

		if p.Body.CenterDistance(e.Body) < w.HitRadius(e) {
			e.Hit(dmg)
		}
	}
}

// pickupItems consumes every item within reach of the knight.
func (w *World) pickupItems() {
	ic := w.cfg.Items
	pcx, pcy := w.Player.Body.CenterX(), w.Player.Body.CenterY()

	kept := w.Items[:0]
	for _, it := range w.Items {
		if math.Abs(pcx-it.Body.CenterX()) < ic.PickupRangeX && math.Abs(pcy-it.Body.CenterY()) < ic.PickupRangeY {
			w.applyItem(it.Kind)
			continue
		}
		kept = append(kept, it)
	}
	w.Items = kept
}

func (w *World) applyItem(kind ItemKind) {
	ic := w.cfg.Items
	switch kind {
	case ItemCore:
		w.GrantOverdrive(w.cfg.Overdrive.Duration)
		w.emit(EventItemPicked, "CORE AWAKENED!")
	case ItemThunder:
		w.DamageAll(ic.ThunderDamage)
		w.emit(EventItemPicked, "ETHER THUNDER!")
	case ItemHeal:
		w.Player.Heal(ic.HealAmount)
		w.emit(EventItemPicked, "RECOVERED!")
	}
}

// sweepDead removes dead enemies and applies their rewards exactly once.
func (w *World) sweepDead() {
	s := w.cfg.Spawn

	alive := w.Enemies[:0]
	for _, e := range w.Enemies {
		if !e.Dead {
			alive = append(alive, e)
			continue
		}

		w.rollDrop(e)
		if e.Boss {
			w.Score += s.BossScore
			w.Exp += s.BossExp
			w.emit(EventBossCleared, "BOSS CLEARED!")
		} else {
			w.Score += s.MobScore
			w.Exp += s.MobExp
			w.emit(EventEnemyKilled, "")
		}
	}
	for i := len(alive); i < len(w.Enemies); i++ {
		w.Enemies[i] = nil
	}
	w.Enemies = alive
}

func (w *World) rollDrop(e *Enemy) {
	ic := w.cfg.Items
	if w.rng.Float64() >= ic.DropChance {
		return
	}

	total := ic.CoreWeight + ic.ThunderWeight + ic.HealWeight
	if total <= 0 {
		return
	}

	kind := ItemHeal
	switch r := w.rng.Intn(total); {
	case r < ic.CoreWeight:
		kind = ItemCore
	case r < ic.CoreWeight+ic.ThunderWeight:
		kind = ItemThunder
	}

	x := core.ClampF(e.Body.CenterX()-ic.Size/2, 0, w.cfg.Arena.Width-ic.Size)
	w.Items = append(w.Items, &Item{
		Body: core.Box{X: x, Y: w.FloorY() - ic.Size, W: ic.Size, H: ic.Size},
		Kind: kind,
	})
}

// levelUp converts experience into a level. Overflow is discarded.
func (w *World) levelUp() {
	c := w.cfg.Combat
	if w.Exp < c.LevelUpExp {
		return
	}
	w.Level++
	w.Exp = 0
	w.Player.BaseAttack += c.AttackPerLevel
	w.emit(EventLevelUp, fmt.Sprintf("LEVEL UP! LV.%d", w.Level))
}

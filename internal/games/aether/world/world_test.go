package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/aether-knight/internal/config"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	return New(config.DefaultAetherConfig(), 1)
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestBossSpawnAtLevelTen(t *testing.T) {
	w := newTestWorld(t)
	w.Level = 10

	e := w.SpawnEnemy()

	if !e.Boss {
		t.Fatal("level 10 spawn should be a boss")
	}
	if len(w.Enemies) != 1 {
		t.Fatalf("expected only the boss, got %d enemies", len(w.Enemies))
	}
	if math.Abs(e.HP-4250) > 1e-6 || math.Abs(e.MaxHP-4250) > 1e-6 {
		t.Errorf("boss hp = %f, expected 4250", e.HP)
	}
	if math.Abs(e.Body.W-198) > 1e-6 || math.Abs(e.Body.H-253) > 1e-6 {
		t.Errorf("boss size = %fx%f, expected 1.1x of 180x230", e.Body.W, e.Body.H)
	}
	if math.Abs(e.Speed-(1.2+10.0/70)) > 1e-9 {
		t.Errorf("boss speed = %f", e.Speed)
	}
	if e.Body.X != w.cfg.Arena.Width+240 {
		t.Errorf("boss should enter from the right edge, x = %f", e.Body.X)
	}
}

func TestNoSecondBossWhileOneAlive(t *testing.T) {
	w := newTestWorld(t)
	w.Level = 10

	w.SpawnEnemy()
	second := w.SpawnEnemy()
	if second.Boss {
		t.Fatal("a second boss must not spawn while one is alive")
	}

	bosses := 0
	for _, e := range w.Enemies {
		if e.Boss {
			bosses++
		}
	}
	if bosses != 1 {
		t.Errorf("expected 1 boss, got %d", bosses)
	}
}

func TestMobStatsAndAlternatingSides(t *testing.T) {
	w := newTestWorld(t)
	w.Level = 3

	a := w.SpawnEnemy()
	b := w.SpawnEnemy()

	if a.Boss || b.Boss {
		t.Fatal("level 3 should only spawn mobs")
	}
	if a.HP != 190 || math.Abs(a.Speed-3.55) > 1e-9 {
		t.Errorf("mob hp/speed = %f/%f, expected 190/3.55", a.HP, a.Speed)
	}
	if a.Body.X >= 0 || b.Body.X <= w.cfg.Arena.Width {
		t.Errorf("spawn sides should alternate: %f then %f", a.Body.X, b.Body.X)
	}
}

func TestBossClearedFiresExactlyOnce(t *testing.T) {
	w := newTestWorld(t)
	w.Level = 10
	boss := w.SpawnEnemy()
	boss.Body.X = w.Player.Body.X
	boss.HP = 1

	events := w.Step(0.02, Intents{})
	if n := countEvents(events, EventBossCleared); n != 1 {
		t.Fatalf("expected 1 boss cleared event, got %d", n)
	}
	if w.Score != 8000 {
		t.Errorf("score = %d, expected 8000", w.Score)
	}
	if w.Level != 11 || w.Exp != 0 {
		t.Errorf("boss exp should level up: level %d exp %d", w.Level, w.Exp)
	}
	if w.Player.BaseAttack != 60 {
		t.Errorf("base attack = %f, expected 60", w.Player.BaseAttack)
	}

	for i := 0; i < 10; i++ {
		if n := countEvents(w.Step(0.02, Intents{}), EventBossCleared); n != 0 {
			t.Fatalf("boss cleared fired again on tick %d", i)
		}
	}
}

func TestLevelUpDiscardsOverflow(t *testing.T) {
	w := newTestWorld(t)
	w.Exp = 95
	mob := w.SpawnEnemy()
	mob.Body.X = w.Player.Body.X
	mob.HP = 1

	events := w.Step(0.02, Intents{})

	if countEvents(events, EventLevelUp) != 1 {
		t.Fatal("expected a level up")
	}
	if w.Level != 2 || w.Exp != 0 || w.Player.BaseAttack != 60 {
		t.Errorf("level %d exp %d atk %f, expected 2/0/60", w.Level, w.Exp, w.Player.BaseAttack)
	}
}

func TestHitRadiusGrowsWithStackAndBossWidth(t *testing.T) {
	w := newTestWorld(t)
	mob := &Enemy{}
	boss := &Enemy{Boss: true}
	boss.Body.W = 200

	if r := w.HitRadius(mob); r != 190 {
		t.Errorf("base radius = %f, expected 190", r)
	}
	w.Overdrive.Stack = 2
	if r := w.HitRadius(mob); r != 210 {
		t.Errorf("radius with 2 stacks = %f, expected 210", r)
	}
	if r := w.HitRadius(boss); r != 240 {
		t.Errorf("boss radius = %f, expected 240", r)
	}
	if d := w.AttackDamage(); math.Abs(d-0.17*45*2.2) > 1e-9 {
		t.Errorf("attack damage = %f", d)
	}
}

func TestBossReachableByCenterDistance(t *testing.T) {
	w := newTestWorld(t)
	w.Level = 50
	boss := w.SpawnEnemy()

	// The bodies do not touch, but the centers are within the boss radius.
	boss.Body.X = w.Player.Body.X + w.Player.Body.W + 20
	before := boss.HP
	w.resolveCombat()

	if boss.HP >= before {
		t.Error("boss next to the knight should take aura damage")
	}
}

func TestEnhancedStrikeDamage(t *testing.T) {
	w := newTestWorld(t)
	w.Hazards = []*Hazard{{
		X:     w.Player.Body.X,
		Width: 60,
		Phase: HazardStrike,
		Timer: 0.28,
	}}

	for i := 0; i < 20 && len(w.Hazards) > 0; i++ {
		w.Step(0.02, Intents{})
	}

	if len(w.Hazards) != 0 {
		t.Fatal("strike should have ended")
	}
	if math.Abs(w.Player.HP-(100-15.68)) > 1e-6 {
		t.Errorf("hp = %f, expected 84.32", w.Player.HP)
	}
}

func TestEnhancedWarnDealsNoDamage(t *testing.T) {
	w := newTestWorld(t)
	hz := &Hazard{X: w.Player.Body.X, Width: 60, Phase: HazardWarn, Timer: 0.9}
	w.Hazards = []*Hazard{hz}

	for hz.Phase == HazardWarn {
		w.Step(0.02, Intents{})
		if hz.Phase == HazardWarn && w.Player.HP != 100 {
			t.Fatalf("warn phase dealt damage: hp %f", w.Player.HP)
		}
	}
	if hz.Timer != 0.28 {
		t.Errorf("strike should start with the full duration, got %f", hz.Timer)
	}
}

func TestInvulnerabilitySuppressesHazards(t *testing.T) {
	w := newTestWorld(t)
	w.Player.GrantInvulnerability(1.0)
	w.Hazards = []*Hazard{{X: w.Player.Body.X, Width: 60, Phase: HazardStrike, Timer: 0.28}}

	for i := 0; i < 14; i++ {
		w.Step(0.02, Intents{})
	}

	if w.Player.HP != 100 {
		t.Errorf("invulnerable knight took damage: hp %f", w.Player.HP)
	}
	if math.Abs(w.Player.Invuln-0.72) > 1e-9 {
		t.Errorf("invulnerability should decay by dt, left %f", w.Player.Invuln)
	}
}

func TestClassicBoltWindow(t *testing.T) {
	w := newTestWorld(t)
	w.Hazards = []*Hazard{{X: w.Player.Body.X, Width: 60, Classic: true, Life: 75}}

	for i := 0; i < 60; i++ {
		w.Step(0.02, Intents{})
	}
	if w.Player.HP != 100 {
		t.Fatalf("bolt hurt outside its window: hp %f", w.Player.HP)
	}

	for i := 0; i < 15; i++ {
		w.Step(0.02, Intents{})
	}
	if w.Player.HP != 58 {
		t.Errorf("hp = %f, expected 14 ticks of 3 damage", w.Player.HP)
	}
	if len(w.Hazards) != 0 {
		t.Error("bolt should be gone after its life runs out")
	}
}

func TestEnhancedLanesLeaveSafePath(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		w := New(config.DefaultAetherConfig(), seed)
		w.Player.Body.X = float64(seed) * 23

		w.SpawnHazards()

		if len(w.Hazards) != w.cfg.Hazard.LaneCount {
			t.Fatalf("seed %d: %d lanes, expected %d", seed, len(w.Hazards), w.cfg.Hazard.LaneCount)
		}

		cx := w.Player.Body.CenterX()
		seen := make(map[float64]bool)
		for _, hz := range w.Hazards {
			if hz.X < cx+120 && hz.X+hz.Width > cx-120 {
				t.Fatalf("seed %d: lane at %f overlaps the safe band around %f", seed, hz.X, cx)
			}
			if seen[hz.X] {
				t.Fatalf("seed %d: lane %f struck twice", seed, hz.X)
			}
			seen[hz.X] = true
		}
	}
}

func TestItemEffects(t *testing.T) {
	w := newTestWorld(t)
	at := w.Player.Body

	w.Player.HP = 30
	w.Items = []*Item{{Body: at, Kind: ItemHeal}}
	w.pickupItems()
	if w.Player.HP != 90 || len(w.Items) != 0 {
		t.Errorf("heal: hp %f items %d", w.Player.HP, len(w.Items))
	}

	w.Items = []*Item{{Body: at, Kind: ItemHeal}}
	w.pickupItems()
	if w.Player.HP != 100 {
		t.Errorf("heal should clamp to max, got %f", w.Player.HP)
	}

	w.Items = []*Item{{Body: at, Kind: ItemCore}}
	w.pickupItems()
	if w.Overdrive.Stack != 1 || w.Overdrive.Remaining != 10 || w.Overdrive.Color != "#f0f" {
		t.Errorf("core: %+v", w.Overdrive)
	}

	e := &Enemy{HP: 5000, MaxHP: 5000}
	small := &Enemy{HP: 100, MaxHP: 100}
	w.Enemies = []*Enemy{e, small}
	w.Items = []*Item{{Body: at, Kind: ItemThunder}}
	w.pickupItems()
	if e.HP != 1000 || !small.Dead {
		t.Errorf("thunder: hp %f, small dead %v", e.HP, small.Dead)
	}
}

func TestItemOutOfReachStays(t *testing.T) {
	w := newTestWorld(t)
	far := w.Player.Body
	far.X += 200
	w.Items = []*Item{{Body: far, Kind: ItemHeal}}

	w.pickupItems()
	if len(w.Items) != 1 {
		t.Error("item out of reach should not be consumed")
	}
}

func TestOverdriveDecay(t *testing.T) {
	var o Overdrive
	o.Tick(1, "#0ff")
	if o.Stack != 0 || o.Remaining != 0 {
		t.Fatal("empty overdrive should not decay")
	}

	o.Grant(10, "#f0f")
	o.Grant(10, "#f0f")
	o.Tick(9.99, "#0ff")
	if o.Stack != 2 {
		t.Fatalf("stack dropped early: %+v", o)
	}

	o.Tick(0.02, "#0ff")
	if o.Stack != 0 || o.Remaining != 0 || o.Color != "#0ff" {
		t.Errorf("stack and duration should end together: %+v", o)
	}
}

func TestPlayerPhysics(t *testing.T) {
	w := newTestWorld(t)
	startX := w.Player.Body.X

	w.Step(0.02, Intents{Right: true, Jump: true})
	if w.Player.Body.X != startX+9 {
		t.Errorf("x = %f, expected +9", w.Player.Body.X)
	}
	if w.Player.Grounded || w.Player.VY >= 0 {
		t.Error("jump should lift the knight")
	}

	for i := 0; i < 100; i++ {
		w.Step(0.02, Intents{Left: true})
	}
	if w.Player.Body.X != 0 {
		t.Errorf("knight should stop at the left wall, x = %f", w.Player.Body.X)
	}
	if !w.Player.Grounded || w.Player.Body.Y+w.Player.Body.H != w.FloorY() {
		t.Error("knight should land on the floor")
	}
}

func TestAfterimagesFollowStack(t *testing.T) {
	w := newTestWorld(t)
	w.GrantOverdrive(10)
	w.GrantOverdrive(10)

	w.Step(0.02, Intents{})
	if len(w.Afterimages) != 3 {
		t.Errorf("expected 1+stack afterimages, got %d", len(w.Afterimages))
	}

	for i := 0; i < 30; i++ {
		w.Step(0.02, Intents{})
	}
	if len(w.Afterimages) > 3*12 {
		t.Errorf("afterimages should expire, got %d", len(w.Afterimages))
	}
}

func TestSchedulerSpawnsOnSimulatedTime(t *testing.T) {
	w := newTestWorld(t)

	const dt = 1.0 / 32

	for i := 0; i < 63; i++ {
		w.Step(dt, Intents{})
	}
	if len(w.Enemies) != 0 {
		t.Fatal("no mob should spawn before 2 seconds")
	}
	w.Step(dt, Intents{})
	if len(w.Enemies) != 1 {
		t.Errorf("expected 1 mob after 2 seconds, got %d", len(w.Enemies))
	}
}

func TestInvariantsOverLongRun(t *testing.T) {
	w := New(config.DefaultAetherConfig(), 7)
	rng := rand.New(rand.NewSource(99))
	w.Level = 9

	for i := 0; i < 5000; i++ {
		in := Intents{Left: rng.Intn(3) == 0, Right: rng.Intn(3) == 0, Jump: rng.Intn(10) == 0}
		w.Step(0.016, in)

		if w.Player.HP < 0 || w.Player.HP > w.Player.MaxHP {
			t.Fatalf("tick %d: hp %f outside [0, %f]", i, w.Player.HP, w.Player.MaxHP)
		}
		bosses := 0
		for _, e := range w.Enemies {
			if e.Boss {
				bosses++
			}
		}
		if bosses > 1 {
			t.Fatalf("tick %d: %d bosses alive", i, bosses)
		}
		if w.Overdrive.Stack > 0 && w.Overdrive.Remaining <= 0 {
			t.Fatalf("tick %d: stack without duration", i)
		}
	}
}

func TestRestoreClearsTransients(t *testing.T) {
	w := newTestWorld(t)
	w.SpawnEnemy()
	w.SpawnHazards()
	w.Items = []*Item{{Kind: ItemCore}}

	w.Restore(Progress{Score: 1200, Level: 4, Exp: 60, Wave: 2, HP: 80, MaxHP: 120, BaseAttack: 90})

	if len(w.Enemies)+len(w.Items)+len(w.Hazards)+len(w.Afterimages) != 0 {
		t.Error("restore should empty transient collections")
	}
	p := w.Progress()
	if p.Score != 1200 || p.Level != 4 || p.Exp != 60 || p.Wave != 2 {
		t.Errorf("progress = %+v", p)
	}
	if p.HP != 80 || p.MaxHP != 120 || p.BaseAttack != 90 {
		t.Errorf("player stats = %+v", p)
	}
	if p.CoreColor != "#0ff" {
		t.Errorf("idle core color expected, got %q", p.CoreColor)
	}
}

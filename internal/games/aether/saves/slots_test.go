package saves

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/aether-knight/internal/games/aether/world"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

var testLimits = Limits{LevelUpExp: 100, CoreDuration: 10, IdleColor: "#0ff", ActiveColor: "#f0f"}

func newTestSlots() (*Slots, *storage.MemoryKV) {
	kv := storage.NewMemoryKV()
	s := NewSlots(kv, 3, testLimits)
	s.Now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return s, kv
}

func sampleProgress() world.Progress {
	return world.Progress{
		Score:        12_300,
		Level:        7,
		Exp:          40,
		Wave:         3,
		HP:           64,
		MaxHP:        140,
		BaseAttack:   160,
		CoreStack:    1,
		CoreDuration: 4.5,
		CoreColor:    "#f0f",
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s, _ := newTestSlots()
	p := sampleProgress()

	if err := s.Write(2, p); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	r, err := s.Read(2)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if got := r.Progress(); got != p {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, p)
	}
	if r.Version != Version || r.Slot != 2 || r.SavedAt != 1_700_000_000_000 {
		t.Errorf("record header = %+v", r)
	}
}

func TestWriteSetsTokenRegardlessOfPrior(t *testing.T) {
	for _, prior := range []bool{false, true} {
		s, _ := newTestSlots()
		s.SetToken(prior)

		if err := s.Write(1, sampleProgress()); err != nil {
			t.Fatalf("Write() failed: %v", err)
		}
		if tok, _ := s.Token(); !tok {
			t.Errorf("token should be 1 after a save (prior %v)", prior)
		}
	}
}

func TestWriteRejectsDeadRun(t *testing.T) {
	s, kv := newTestSlots()
	s.Write(1, sampleProgress())
	before, _, _ := kv.Get(SlotKey(1))
	s.SetToken(false)

	dead := sampleProgress()
	dead.HP = 0
	if err := s.Write(1, dead); !errors.Is(err, ErrDead) {
		t.Fatalf("Write() error = %v, expected ErrDead", err)
	}

	after, _, _ := kv.Get(SlotKey(1))
	if after != before {
		t.Error("rejected save must not touch the stored record")
	}
	if tok, _ := s.Token(); tok {
		t.Error("rejected save must not refill the token")
	}
}

func TestWriteStorageFailure(t *testing.T) {
	s, kv := newTestSlots()
	kv.FailWrites = true

	if err := s.Write(1, sampleProgress()); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("Write() error = %v, expected ErrUnavailable", err)
	}
}

func TestReadEmptyAndForeignRecords(t *testing.T) {
	s, kv := newTestSlots()

	if _, err := s.Read(1); !errors.Is(err, ErrEmpty) {
		t.Errorf("missing record: err = %v", err)
	}

	kv.Set(SlotKey(1), `{"version":"aether-save/0","score":5}`)
	if _, err := s.Read(1); !errors.Is(err, ErrEmpty) {
		t.Errorf("old version: err = %v", err)
	}

	partial := []string{
		`{"version":"aether-save/1"}`,
		`{"version":"aether-save/1","slot":1,"savedAt":1,"score":5,"level":2,"exp":0,"wave":1,` +
			`"player":{"hp":50,"maxHp":100},"core":{"stack":0,"duration":0}}`,
		`{"version":"aether-save/1","slot":1,"savedAt":1,"score":5,"level":2,"exp":0,"wave":1,` +
			`"player":{"hp":50,"maxHp":100,"baseAtk":45},"core":null}`,
		`{"version":"aether-save/1","slot":1,"savedAt":1,"score":5,"level":2,"exp":0,` +
			`"player":{"hp":50,"maxHp":100,"baseAtk":45},"core":{"stack":0,"duration":0}}`,
	}
	for _, data := range partial {
		kv.Set(SlotKey(1), data)
		if _, err := s.Read(1); !errors.Is(err, ErrEmpty) {
			t.Errorf("partial record %s: err = %v", data, err)
		}
	}
	if !s.Summaries()[0].Empty {
		t.Error("a partial record should show as an empty slot")
	}

	kv.Set(SlotKey(1), `{not json`)
	if _, err := s.Read(1); !errors.Is(err, ErrEmpty) {
		t.Errorf("malformed: err = %v", err)
	}

	if _, err := s.Read(4); !errors.Is(err, ErrSlot) {
		t.Errorf("out of range slot: err = %v", err)
	}
}

func TestReadClampsEditedRecord(t *testing.T) {
	s, kv := newTestSlots()
	kv.Set(SlotKey(3), `{"version":"aether-save/1","slot":9,"score":-50,"level":0,"exp":250,"wave":-2,`+
		`"player":{"hp":500,"maxHp":120,"baseAtk":-10},"core":{"stack":3,"duration":0,"color":"#123"}}`)

	r, err := s.Read(3)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	if r.Slot != 3 || r.Score != 0 || r.Level != 1 || r.Exp != 99 || r.Wave != 1 {
		t.Errorf("counters not clamped: %+v", r)
	}
	if r.Player.HP != 120 || r.Player.BaseAtk != 0 {
		t.Errorf("player not clamped: %+v", r.Player)
	}
	if r.Core.Stack != 0 || r.Core.Duration != 0 || r.Core.Color != "#0ff" {
		t.Errorf("stack without duration should reset: %+v", r.Core)
	}
}

func TestClampNeverLoadsDead(t *testing.T) {
	r := Record{Player: PlayerRecord{HP: 0, MaxHP: 0}}.Clamp(testLimits)
	if r.Player.HP < 1 || r.Player.MaxHP < 1 {
		t.Errorf("loaded run must be alive: %+v", r.Player)
	}

	r = Record{Core: CoreRecord{Stack: 2, Duration: 99, Color: "#bad"}}.Clamp(testLimits)
	if r.Core.Duration != 10 || r.Core.Color != "#f0f" {
		t.Errorf("core = %+v", r.Core)
	}
}

func TestClearRemovesRecord(t *testing.T) {
	s, _ := newTestSlots()
	s.Write(1, sampleProgress())

	if err := s.Clear(1); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if _, err := s.Read(1); !errors.Is(err, ErrEmpty) {
		t.Error("slot should be empty after Clear()")
	}
}

func TestFlagsAndActiveSlot(t *testing.T) {
	s, kv := newTestSlots()

	if n, _ := s.ActiveSlot(); n != 1 {
		t.Errorf("default active slot = %d, expected 1", n)
	}
	s.SetActiveSlot(3)
	if n, _ := s.ActiveSlot(); n != 3 {
		t.Errorf("active slot = %d, expected 3", n)
	}
	if err := s.SetActiveSlot(0); !errors.Is(err, ErrSlot) {
		t.Error("slot 0 should be rejected")
	}
	kv.Set(KeyActiveSlot, "banana")
	if n, _ := s.ActiveSlot(); n != 1 {
		t.Errorf("garbage active slot should fall back to 1, got %d", n)
	}

	s.SetDeathPending(true)
	if dp, _ := s.DeathPending(); !dp {
		t.Error("death pending should be set")
	}
	kv.Set(KeyContinueToken, "7")
	if tok, _ := s.Token(); tok {
		t.Error("token values other than 1 count as 0")
	}
}

func TestSummaries(t *testing.T) {
	s, _ := newTestSlots()
	s.Write(2, sampleProgress())

	sums := s.Summaries()
	if len(sums) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(sums))
	}
	if !sums[0].Empty || sums[1].Empty || !sums[2].Empty {
		t.Errorf("emptiness = %v %v %v", sums[0].Empty, sums[1].Empty, sums[2].Empty)
	}
	if sums[1].Level != 7 || sums[1].Wave != 3 || sums[1].Score != 12_300 {
		t.Errorf("summary = %+v", sums[1])
	}
}

package saves

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/vovakirdan/aether-knight/internal/config"
	"github.com/vovakirdan/aether-knight/internal/games/aether/world"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

var (
	// ErrDead rejects a save while the knight has no hp left.
	ErrDead = errors.New("saves: cannot save a dead run")
	// ErrSlot rejects a slot number outside [1, count].
	ErrSlot = errors.New("saves: slot out of range")
)

// LoadResult is the outcome of a load request.
type LoadResult int

const (
	LoadOK LoadResult = iota
	LoadEmpty
	LoadNoToken
	LoadFailed
	LoadRejected // not allowed in the current phase
)

// String returns a short name for logs.
func (r LoadResult) String() string {
	switch r {
	case LoadOK:
		return "ok"
	case LoadEmpty:
		return "empty"
	case LoadNoToken:
		return "no_token"
	case LoadFailed:
		return "failed"
	case LoadRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Summary describes a slot for the title screen and the slot board.
type Summary struct {
	Slot    int
	Empty   bool
	Score   int
	Level   int
	Wave    int
	SavedAt time.Time
}

// Slots manages save records and the global save flags in a KV.
type Slots struct {
	kv     storage.KV
	count  int
	limits Limits

	// Now stamps new records. Tests replace it.
	Now func() time.Time
}

// NewSlots creates a manager for count slots.
func NewSlots(kv storage.KV, count int, limits Limits) *Slots {
	if count < 1 {
		count = 1
	}
	return &Slots{kv: kv, count: count, limits: limits, Now: time.Now}
}

// NewSlotsFor creates the slot manager for a tuning: its slot count and
// the bounds loaded records are clamped to.
func NewSlotsFor(kv storage.KV, cfg config.AetherConfig) *Slots {
	return NewSlots(kv, cfg.Progression.SlotCount, Limits{
		LevelUpExp:   cfg.Combat.LevelUpExp,
		CoreDuration: cfg.Overdrive.Duration,
		IdleColor:    cfg.Overdrive.IdleColor,
		ActiveColor:  cfg.Overdrive.ActiveColor,
	})
}

// Count returns the number of slots.
func (s *Slots) Count() int {
	return s.count
}

// Valid reports whether slot is in [1, Count()].
func (s *Slots) Valid(slot int) bool {
	return slot >= 1 && slot <= s.count
}

// Write stores the run in slot and refills the continue token.
// A dead run is rejected before anything is touched.
func (s *Slots) Write(slot int, p world.Progress) error {
	if !s.Valid(slot) {
		return ErrSlot
	}
	if p.HP <= 0 {
		return ErrDead
	}

	data, err := NewRecord(slot, p, s.Now()).Encode()
	if err != nil {
		return err
	}
	if err := s.kv.Set(SlotKey(slot), data); err != nil {
		return err
	}
	return s.SetToken(true)
}

// Read loads and clamps the record in slot.
// Returns ErrEmpty when there is nothing usable to load.
func (s *Slots) Read(slot int) (Record, error) {
	if !s.Valid(slot) {
		return Record{}, ErrSlot
	}
	data, ok, err := s.kv.Get(SlotKey(slot))
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, ErrEmpty
	}
	r, err := Decode(data)
	if err != nil {
		return Record{}, err
	}
	r.Slot = slot
	return r.Clamp(s.limits), nil
}

// Clear removes the record in slot.
func (s *Slots) Clear(slot int) error {
	if !s.Valid(slot) {
		return ErrSlot
	}
	return s.kv.Delete(SlotKey(slot))
}

// Token reports whether the one-shot continue credit is available.
func (s *Slots) Token() (bool, error) {
	return s.flag(KeyContinueToken)
}

// SetToken sets or consumes the continue credit.
func (s *Slots) SetToken(v bool) error {
	return s.setFlag(KeyContinueToken, v)
}

// DeathPending reports whether a game over awaits a continue decision.
func (s *Slots) DeathPending() (bool, error) {
	return s.flag(KeyDeathPending)
}

// SetDeathPending sets or clears the death-pending flag.
func (s *Slots) SetDeathPending(v bool) error {
	return s.setFlag(KeyDeathPending, v)
}

// ActiveSlot returns the slot receiving checkpoints. A missing or invalid
// value falls back to slot 1.
func (s *Slots) ActiveSlot() (int, error) {
	v, ok, err := s.kv.Get(KeyActiveSlot)
	if err != nil {
		return 1, err
	}
	if !ok {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || !s.Valid(n) {
		return 1, nil
	}
	return n, nil
}

// SetActiveSlot persists the active slot.
func (s *Slots) SetActiveSlot(slot int) error {
	if !s.Valid(slot) {
		return ErrSlot
	}
	return s.kv.Set(KeyActiveSlot, strconv.Itoa(slot))
}

// Summaries describes every slot. Unreadable slots show as empty.
func (s *Slots) Summaries() []Summary {
	out := make([]Summary, 0, s.count)
	for slot := 1; slot <= s.count; slot++ {
		r, err := s.Read(slot)
		if err != nil {
			out = append(out, Summary{Slot: slot, Empty: true})
			continue
		}
		out = append(out, Summary{
			Slot:    slot,
			Score:   r.Score,
			Level:   r.Level,
			Wave:    r.Wave,
			SavedAt: r.Time(),
		})
	}
	return out
}

// flag reads a 0/1 key. Anything other than "1" is false.
func (s *Slots) flag(key string) (bool, error) {
	v, ok, err := s.kv.Get(key)
	if err != nil {
		return false, err
	}
	return ok && v == "1", nil
}

func (s *Slots) setFlag(key string, v bool) error {
	val := "0"
	if v {
		val = "1"
	}
	if err := s.kv.Set(key, val); err != nil {
		return fmt.Errorf("saves: cannot set %s: %w", key, err)
	}
	return nil
}

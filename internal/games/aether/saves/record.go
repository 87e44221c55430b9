// Package saves holds the versioned save record and the slot manager that
// keeps records, the one-shot continue token, the death-pending flag and
// the active slot in a storage.KV.
package saves

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/games/aether/world"
)

// Version tags the record schema. Records with any other tag are ignored.
const Version = "aether-save/1"

// Storage keys.
const (
	KeyActiveSlot    = "aether/active_slot"
	KeyContinueToken = "aether/continue_token"
	KeyDeathPending  = "aether/death_pending"
)

// SlotKey returns the key of a slot record.
func SlotKey(slot int) string {
	return fmt.Sprintf("aether/slot/%d", slot)
}

// Bounds applied to every loaded record.
const (
	MaxScore    = 999_999_999
	MaxLevel    = 9999
	MaxWave     = 9999
	MaxStat     = 99_999
	MaxStack    = 20
	minMaxHP    = 1
	minLevel    = 1
	minWave     = 1
	minLoadedHP = 1
)

// ErrEmpty reports an absent, foreign-version or malformed record.
var ErrEmpty = errors.New("saves: slot is empty")

// Record is one save slot as stored.
type Record struct {
	Version string       `json:"version"`
	Slot    int          `json:"slot"`
	SavedAt int64        `json:"savedAt"` // unix milliseconds
	Score   int          `json:"score"`
	Level   int          `json:"level"`
	Exp     int          `json:"exp"`
	Wave    int          `json:"wave"`
	Player  PlayerRecord `json:"player"`
	Core    CoreRecord   `json:"core"`
}

// PlayerRecord holds the knight's persistent stats.
type PlayerRecord struct {
	HP      float64 `json:"hp"`
	MaxHP   float64 `json:"maxHp"`
	BaseAtk float64 `json:"baseAtk"`
}

// CoreRecord holds the overdrive buff.
type CoreRecord struct {
	Stack    int     `json:"stack"`
	Duration float64 `json:"duration"`
	Color    string  `json:"color"`
}

// Limits are the tuning-dependent bounds for clamping.
type Limits struct {
	LevelUpExp   int
	CoreDuration float64
	IdleColor    string
	ActiveColor  string
}

// NewRecord captures a run's progress for the given slot.
func NewRecord(slot int, p world.Progress, at time.Time) Record {
	return Record{
		Version: Version,
		Slot:    slot,
		SavedAt: at.UnixMilli(),
		Score:   p.Score,
		Level:   p.Level,
		Exp:     p.Exp,
		Wave:    p.Wave,
		Player: PlayerRecord{
			HP:      p.HP,
			MaxHP:   p.MaxHP,
			BaseAtk: p.BaseAttack,
		},
		Core: CoreRecord{
			Stack:    p.CoreStack,
			Duration: p.CoreDuration,
			Color:    p.CoreColor,
		},
	}
}

// Progress converts the record back into run progress.
func (r Record) Progress() world.Progress {
	return world.Progress{
		Score:        r.Score,
		Level:        r.Level,
		Exp:          r.Exp,
		Wave:         r.Wave,
		HP:           r.Player.HP,
		MaxHP:        r.Player.MaxHP,
		BaseAttack:   r.Player.BaseAtk,
		CoreStack:    r.Core.Stack,
		CoreDuration: r.Core.Duration,
		CoreColor:    r.Core.Color,
	}
}

// Time returns the save timestamp.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.SavedAt)
}

// Decode parses a stored record. Anything that is not a well-formed record
// of the current version is ErrEmpty.
func Decode(data string) (Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrEmpty, err)
	}
	if r.Version != Version {
		return Record{}, fmt.Errorf("%w: version %q", ErrEmpty, r.Version)
	}
	if err := checkFields(data); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrEmpty, err)
	}
	return r, nil
}

// Fields every record must carry. The core color may be absent; Clamp
// fills it in from the core state.
var (
	recordFields = []string{"slot", "savedAt", "score", "level", "exp", "wave", "player", "core"}
	playerFields = []string{"hp", "maxHp", "baseAtk"}
	coreFields   = []string{"stack", "duration"}
)

// checkFields reports the first required field that is missing or null.
func checkFields(data string) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &top); err != nil {
		return err
	}
	if err := present(top, "", recordFields); err != nil {
		return err
	}
	for name, fields := range map[string][]string{"player": playerFields, "core": coreFields} {
		var sub map[string]json.RawMessage
		if err := json.Unmarshal(top[name], &sub); err != nil {
			return fmt.Errorf("field %s: %v", name, err)
		}
		if err := present(sub, name+".", fields); err != nil {
			return err
		}
	}
	return nil
}

func present(obj map[string]json.RawMessage, prefix string, fields []string) error {
	for _, f := range fields {
		v, ok := obj[f]
		if !ok || string(v) == "null" {
			return fmt.Errorf("missing field %s%s", prefix, f)
		}
	}
	return nil
}

// Encode serializes the record.
func (r Record) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("saves: cannot encode slot %d: %w", r.Slot, err)
	}
	return string(data), nil
}

// Clamp forces every field into a playable range. A loaded run never
// starts dead, the core stack and duration are either both set or both
// zero, and the color is one of the two known tags.
func (r Record) Clamp(lim Limits) Record {
	r.Score = core.Clamp(r.Score, 0, MaxScore)
	r.Level = core.Clamp(r.Level, minLevel, MaxLevel)
	r.Wave = core.Clamp(r.Wave, minWave, MaxWave)
	r.Exp = core.Clamp(r.Exp, 0, core.Max(lim.LevelUpExp-1, 0))

	r.Player.MaxHP = core.ClampF(r.Player.MaxHP, minMaxHP, MaxStat)
	r.Player.HP = core.ClampF(r.Player.HP, minLoadedHP, r.Player.MaxHP)
	r.Player.BaseAtk = core.ClampF(r.Player.BaseAtk, 0, MaxStat)

	r.Core.Stack = core.Clamp(r.Core.Stack, 0, MaxStack)
	r.Core.Duration = core.ClampF(r.Core.Duration, 0, lim.CoreDuration)
	if r.Core.Stack == 0 || r.Core.Duration == 0 {
		r.Core.Stack = 0
		r.Core.Duration = 0
		r.Core.Color = lim.IdleColor
	} else if r.Core.Color != lim.ActiveColor && r.Core.Color != lim.IdleColor {
		r.Core.Color = lim.ActiveColor
	}

	return r
}

// Package aether implements Aether Knight on top of the world simulation:
// the title/play/pause/reward/game-over state machine, the boss-clear
// reward economy, checkpoint saves with a one-shot continue, and the
// registry adapter that renders it to a core.Screen.
package aether

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aether-knight/internal/config"
	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/games/aether/saves"
	"github.com/vovakirdan/aether-knight/internal/games/aether/world"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

// Machine drives one player's session. Transitions that are not allowed in
// the current phase are ignored and report false; storage problems become
// HUD notices instead of errors.
type Machine struct {
	cfg    config.AetherConfig
	world  *world.World
	slots  *saves.Slots
	logger *log.Logger

	phase  Phase
	resume Phase // phase BackOut returns to; PhaseTitle when there is none

	offers []Reward
	cursor int

	active   int // slot receiving checkpoints
	selected int // slot highlighted on the title screen

	notice    string
	noticeTTL float64
	sinceSave float64

	summaries   []saves.Summary
	canContinue bool
}

// NewMachine creates a session on the title screen.
// A nil logger discards output.
func NewMachine(cfg config.AetherConfig, kv storage.KV, seed int64, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Machine{
		cfg:    cfg,
		world:  world.New(cfg, seed),
		logger: logger,
		phase:  PhaseTitle,
		resume: PhaseTitle,
	}
	m.slots = saves.NewSlotsFor(kv, cfg)
	m.world.Scheduler().Gate = func() bool { return m.phase == PhasePlay }

	active, err := m.slots.ActiveSlot()
	if err != nil {
		m.logger.Warn("cannot read active slot", "error", err)
	}
	m.active, m.selected = active, active
	m.refreshSlots()

	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// World exposes the simulation.
func (m *Machine) World() *world.World { return m.world }

// Slots exposes the save slot manager.
func (m *Machine) Slots() *saves.Slots { return m.slots }

// ActiveSlot returns the slot that receives checkpoints.
func (m *Machine) ActiveSlot() int { return m.active }

// SelectedSlot returns the slot highlighted on the title screen.
func (m *Machine) SelectedSlot() int { return m.selected }

// Notice returns the HUD notice, empty once it has expired.
func (m *Machine) Notice() string { return m.notice }

// Offers returns the rewards on offer in the reward phase.
func (m *Machine) Offers() []Reward {
	out := make([]Reward, len(m.offers))
	copy(out, m.offers)
	return out
}

// SelectSlot highlights a slot on the title screen.
func (m *Machine) SelectSlot(slot int) bool {
	if m.phase != PhaseTitle || !m.slots.Valid(slot) {
		return false
	}
	m.selected = slot
	return true
}

// NewGame starts a fresh run in slot. Any record in the slot is deleted and
// the continue token and death-pending flag are reset, forfeiting a
// pending continue.
func (m *Machine) NewGame(slot int) bool {
	if m.phase != PhaseTitle && m.phase != PhaseGameOver {
		return false
	}
	if !m.slots.Valid(slot) {
		return false
	}

	m.world.Reset()
	if err := m.slots.Clear(slot); err != nil {
		m.storageWarn("cannot clear slot", err, "slot", slot)
	}
	if err := m.slots.SetToken(false); err != nil {
		m.storageWarn("cannot reset continue token", err)
	}
	if err := m.slots.SetDeathPending(false); err != nil {
		m.storageWarn("cannot clear death flag", err)
	}

	m.setActive(slot)
	m.startRun()
	m.flash(fmt.Sprintf("SLOT %d: NEW GAME", slot))
	m.logger.Info("new game", "slot", slot)
	return true
}

// LoadSlot restores the record in slot. While a game over is pending the
// load counts as a continuation and needs the continue token.
func (m *Machine) LoadSlot(slot int) saves.LoadResult {
	if m.phase != PhaseTitle && m.phase != PhaseGameOver {
		return saves.LoadRejected
	}

	pending, err := m.slots.DeathPending()
	if err != nil {
		m.logger.Warn("cannot read death flag", "error", err)
		m.flash("LOAD FAILED")
		return saves.LoadFailed
	}
	return m.load(slot, pending || m.phase == PhaseGameOver)
}

// Continue resumes from the active slot after a game over, spending the
// continue token.
func (m *Machine) Continue() saves.LoadResult {
	if m.phase != PhaseGameOver {
		return saves.LoadRejected
	}
	return m.load(m.active, true)
}

// Retry starts over on the active slot without needing a token.
func (m *Machine) Retry() bool {
	if m.phase != PhaseGameOver {
		return false
	}
	return m.NewGame(m.active)
}

func (m *Machine) load(slot int, continuing bool) saves.LoadResult {
	rec, err := m.slots.Read(slot)
	switch {
	case errors.Is(err, saves.ErrEmpty), errors.Is(err, saves.ErrSlot):
		m.flash("EMPTY SLOT")
		return saves.LoadEmpty
	case err != nil:
		m.storageWarn("cannot read slot", err, "slot", slot)
		m.flash("LOAD FAILED")
		return saves.LoadFailed
	}

	if continuing {
		tok, err := m.slots.Token()
		if err != nil {
			m.storageWarn("cannot read continue token", err)
			m.flash("LOAD FAILED")
			return saves.LoadFailed
		}
		if !tok {
			m.flash("NO CONTINUE LEFT")
			return saves.LoadNoToken
		}
		if err := m.slots.SetToken(false); err != nil {
			m.storageWarn("cannot consume continue token", err)
			m.flash("LOAD FAILED")
			return saves.LoadFailed
		}
	}
	if err := m.slots.SetDeathPending(false); err != nil {
		m.storageWarn("cannot clear death flag", err)
	}

	m.world.Restore(rec.Progress())
	m.world.Player.GrantInvulnerability(m.cfg.Progression.LoadGrace)

	m.setActive(slot)
	m.startRun()
	if continuing {
		m.flash("CONTINUE!")
	} else {
		m.flash(fmt.Sprintf("SLOT %d LOADED", slot))
	}
	m.logger.Info("loaded", "slot", slot, "continue", continuing, "level", rec.Level, "wave", rec.Wave)
	return saves.LoadOK
}

func (m *Machine) startRun() {
	m.offers = nil
	m.cursor = 0
	m.sinceSave = 0
	m.resume = PhaseTitle
	m.enter(PhasePlay)
	m.refreshSlots()
}

// Pause stops the simulation.
func (m *Machine) Pause() bool {
	if m.phase != PhasePlay {
		return false
	}
	m.enter(PhasePause)
	return true
}

// Resume continues a paused run.
func (m *Machine) Resume() bool {
	if m.phase != PhasePause {
		return false
	}
	m.enter(PhasePlay)
	return true
}

// ToTitle leaves a paused run or the game-over screen for the title,
// remembering where to come back to.
func (m *Machine) ToTitle() bool {
	if m.phase != PhasePause && m.phase != PhaseGameOver {
		return false
	}
	m.resume = m.phase
	m.selected = m.active
	m.enter(PhaseTitle)
	m.refreshSlots()
	return true
}

// BackOut returns from the title to the phase it was entered from.
func (m *Machine) BackOut() bool {
	if m.phase != PhaseTitle || m.resume == PhaseTitle {
		return false
	}
	m.enter(m.resume)
	m.resume = PhaseTitle
	return true
}

// SelectReward applies offer i, advances the wave and writes a checkpoint
// to the active slot.
func (m *Machine) SelectReward(i int) bool {
	if m.phase != PhaseReward || i < 0 || i >= len(m.offers) {
		return false
	}

	r := m.offers[i]
	m.offers = nil
	m.applyReward(r)
	m.world.NextWave()
	m.world.Player.GrantInvulnerability(m.cfg.Rewards.RewardGrace)

	m.enter(PhasePlay)
	m.flash(fmt.Sprintf("%s  WAVE %d", r.Label, m.world.Wave))
	m.logger.Info("reward", "reward", r.Label, "name", r.Name, "wave", m.world.Wave)

	m.save("checkpoint")
	return true
}

// Save writes the run to the active slot. It fails for a dead run or when
// the store rejects the write.
func (m *Machine) Save() bool {
	switch m.phase {
	case PhasePlay, PhasePause, PhaseReward:
		return m.save("manual")
	default:
		return false
	}
}

func (m *Machine) save(reason string) bool {
	err := m.slots.Write(m.active, m.world.Progress())
	switch {
	case errors.Is(err, saves.ErrDead):
		m.logger.Debug("save rejected", "slot", m.active, "reason", reason)
		return false
	case err != nil:
		m.storageWarn("save failed", err, "slot", m.active, "reason", reason)
		m.flash("SAVE FAILED")
		return false
	}

	m.sinceSave = 0
	m.logger.Info("saved", "slot", m.active, "reason", reason, "wave", m.world.Wave, "level", m.world.Level)
	m.refreshSlots()
	return true
}

// Tick advances the session by dt. The world only moves in PLAY; death is
// checked before a boss clear so a run that dies while killing the boss
// ends in game over.
func (m *Machine) Tick(dt float64, in world.Intents) []world.Event {
	m.decayNotice(dt)
	if m.phase != PhasePlay {
		return nil
	}

	events := m.world.Step(dt, in)

	cleared := false
	for _, ev := range events {
		if ev.Notice != "" {
			m.flash(ev.Notice)
		}
		switch ev.Kind {
		case world.EventBossCleared:
			cleared = true
		case world.EventBossSpawned, world.EventLevelUp:
			m.logger.Debug(ev.Kind.String(), "level", m.world.Level, "wave", m.world.Wave)
		}
	}

	// A death in the same tick forfeits the boss clear and its reward.
	switch {
	case m.world.Player.HP <= 0:
		m.gameOver()
	case cleared:
		m.enterReward()
	default:
		m.autosave(dt)
	}
	return events
}

func (m *Machine) gameOver() {
	if err := m.slots.SetDeathPending(true); err != nil {
		m.storageWarn("cannot set death flag", err)
	}
	m.offers = nil
	m.enter(PhaseGameOver)
	m.refreshSlots()
	m.logger.Info("game over", "score", m.world.Score, "level", m.world.Level, "wave", m.world.Wave)
}

func (m *Machine) enterReward() {
	m.offers = drawOffers(m.world.Rand(), m.cfg.Rewards.OffersPerClear)
	m.cursor = 0
	m.enter(PhaseReward)
}

func (m *Machine) autosave(dt float64) {
	interval := m.cfg.Progression.AutosaveInterval
	if interval <= 0 {
		return
	}
	m.sinceSave += dt
	if m.sinceSave >= interval {
		m.sinceSave = 0
		m.save("interval")
	}
}

// Update maps one input frame onto the current phase and then ticks.
func (m *Machine) Update(in core.InputFrame, dt float64) []world.Event {
	switch m.phase {
	case PhaseTitle:
		m.updateTitle(in)
	case PhasePlay:
		if in.Has(core.ActionPause) {
			m.Pause()
		}
	case PhasePause:
		switch {
		case in.Has(core.ActionPause), in.Has(core.ActionConfirm), in.Has(core.ActionBack):
			m.Resume()
		case in.Has(core.ActionTitle):
			m.ToTitle()
		}
	case PhaseReward:
		m.updateReward(in)
	case PhaseGameOver:
		switch {
		case in.Has(core.ActionContinue):
			m.Continue()
		case in.Has(core.ActionRestart):
			m.Retry()
		case in.Has(core.ActionTitle):
			m.ToTitle()
		}
	}

	return m.Tick(dt, world.Intents{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
	})
}

func (m *Machine) updateTitle(in core.InputFrame) {
	n := m.slots.Count()
	switch {
	case in.Has(core.ActionUp):
		m.selected = (m.selected+n-2)%n + 1
	case in.Has(core.ActionDown):
		m.selected = m.selected%n + 1
	case in.Has(core.ActionChoice1):
		m.SelectSlot(1)
	case in.Has(core.ActionChoice2):
		m.SelectSlot(2)
	case in.Has(core.ActionChoice3):
		m.SelectSlot(3)
	}

	switch {
	case in.Has(core.ActionNewGame):
		m.NewGame(m.selected)
	case in.Has(core.ActionLoad), in.Has(core.ActionConfirm):
		m.LoadSlot(m.selected)
	case in.Has(core.ActionBack):
		m.BackOut()
	}
}

func (m *Machine) updateReward(in core.InputFrame) {
	switch {
	case in.Has(core.ActionChoice1):
		m.SelectReward(0)
	case in.Has(core.ActionChoice2):
		m.SelectReward(1)
	case in.Has(core.ActionChoice3):
		m.SelectReward(2)
	case in.Has(core.ActionUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case in.Has(core.ActionDown):
		if m.cursor < len(m.offers)-1 {
			m.cursor++
		}
	case in.Has(core.ActionConfirm):
		m.SelectReward(m.cursor)
	}
}

func (m *Machine) enter(p Phase) {
	if p != m.phase {
		m.logger.Debug("phase", "from", m.phase, "to", p)
	}
	m.phase = p
}

func (m *Machine) setActive(slot int) {
	m.active, m.selected = slot, slot
	if err := m.slots.SetActiveSlot(slot); err != nil {
		m.storageWarn("cannot store active slot", err, "slot", slot)
	}
}

func (m *Machine) refreshSlots() {
	m.summaries = m.slots.Summaries()
	tok, err := m.slots.Token()
	if err != nil {
		tok = false
	}
	m.canContinue = tok && m.slots.Valid(m.active) && !m.summaries[m.active-1].Empty
}

func (m *Machine) flash(text string) {
	m.notice = text
	m.noticeTTL = m.cfg.Progression.NoticeDuration
}

func (m *Machine) decayNotice(dt float64) {
	if m.noticeTTL <= 0 {
		return
	}
	m.noticeTTL -= dt
	if m.noticeTTL <= 0 {
		m.notice = ""
	}
}

func (m *Machine) storageWarn(msg string, err error, keyvals ...any) {
	m.logger.Warn(msg, append(keyvals, "error", err)...)
}

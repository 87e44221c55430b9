package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/registry"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

// HoldWindow is how long a movement key counts as held after its last
// press. Terminals report key repeats but no releases.
const HoldWindow = 180 * time.Millisecond

// Options configures a game model.
type Options struct {
	Config core.RuntimeConfig
	Scores *storage.Store // high score table, may be nil
	Saves  storage.KV     // save slots, may be nil
	Logger *log.Logger    // may be nil
	Player string         // name recorded with scores
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	scores     *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	player     string
	pending    core.InputFrame
	held       map[core.Action]time.Time
	lastTick   time.Time
	loop       uint64
	now        func() time.Time
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	standalone bool // quit instead of returning to a menu
	scoreSaved bool // Whether score has been saved for current game over
	err        error
}

// NewModel creates a new Bubble Tea model for the given game and attaches
// the save store and logger to it.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config.Normalize(time.Now())
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = "player"
	}

	registry.Attach(game, opts.Saves, logger)

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:  opts.Scores,
		logger:  logger,
		config:  cfg,
		keys:    NewKeyMapper(),
		player:  player,
		pending: core.NewInputFrame(),
		held:    make(map[core.Action]time.Time),
		now:     time.Now,
		loop:    nextLoop(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.FrameInterval(), m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game scales to any size; the run is kept.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.loop {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.IsMenu(msg) && m.canLeave() {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	actions, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	now := m.now()
	for _, a := range actions {
		if a.IsHeld() {
			m.held[a] = now
		} else {
			m.pending.Set(a)
		}
	}
	return m, nil
}

// canLeave reports whether the session may drop back to the menu.
// Runs in progress stay until they are paused or over.
func (m Model) canLeave() bool {
	switch m.gameState.Phase {
	case "play", "reward":
		return false
	default:
		return true
	}
}

// frame builds the input for the tick at t: edge actions pressed since the
// previous tick plus movement keys still inside the hold window.
func (m Model) frame(t time.Time) core.InputFrame {
	in := m.pending.Clone()
	for a, at := range m.held {
		if t.Sub(at) <= HoldWindow {
			in.Set(a)
		} else {
			delete(m.held, a)
		}
	}
	in.DT = frameDelta(m.lastTick, t)
	return in
}

// handleTick processes simulation ticks.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	in := m.frame(t)
	m.lastTick = t
	m.pending.Clear()

	result, err := m.step(in)
	if err != nil {
		m.logger.Error("tick failed", "game", m.game.ID(), "error", err)
		m.err = err
		return m, tickCmd(m.config.FrameInterval(), m.loop)
	}
	m.gameState = result.State
	for _, ev := range result.Events {
		m.logger.Debug("event", "game", m.game.ID(), "event", ev)
	}

	m.recordScore()

	return m, tickCmd(m.config.FrameInterval(), m.loop)
}

// step runs one game tick, turning a panic into an error. The session keeps
// ticking and shows the error on the bottom row.
func (m Model) step(in core.InputFrame) (res core.StepResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tui: game step panicked: %v", r)
		}
	}()
	return m.game.Step(in), nil
}

// recordScore saves the final score once per game over.
func (m *Model) recordScore() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true

	if m.scores == nil {
		return
	}
	_, err := m.scores.SaveScore(storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
		Wave:   m.gameState.Wave,
	})
	if err != nil {
		m.logger.Warn("cannot record score", "error", err)
		return
	}
	m.logger.Info("score recorded", "game", m.game.ID(), "player", m.player, "score", m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".aether", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	if m.err != nil {
		return renderWithErrorBar(m.screen, m.err.Error())
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the last fault recovered from a tick, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, opts Options) error {
	model := NewModel(game, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aether-knight/internal/core"
)

// binding ties one key binding to the actions it produces. A key may
// produce several actions; the game uses whichever fits its phase.
type binding struct {
	key     key.Binding
	actions []core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings []binding
	quit     key.Binding
	menu     key.Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		bindings: []binding{
			{key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "move")), []core.Action{core.ActionLeft}},
			{key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "move")), []core.Action{core.ActionRight}},
			{key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "jump")), []core.Action{core.ActionJump, core.ActionUp}},
			{key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "jump")), []core.Action{core.ActionJump}},
			{key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")), []core.Action{core.ActionDown}},
			{key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")), []core.Action{core.ActionConfirm}},
			{key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")), []core.Action{core.ActionBack}},
			{key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")), []core.Action{core.ActionPause}},
			{key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")), []core.Action{core.ActionNewGame}},
			{key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")), []core.Action{core.ActionLoad}},
			{key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")), []core.Action{core.ActionContinue}},
			{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")), []core.Action{core.ActionRestart}},
			{key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "title")), []core.Action{core.ActionTitle}},
			{key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "choice")), []core.Action{core.ActionChoice1}},
			{key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "choice")), []core.Action{core.ActionChoice2}},
			{key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "choice")), []core.Action{core.ActionChoice3}},
		},
		quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		menu: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	}
}

// MapKey translates a key message to game actions.
// Returns the actions (possibly none) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return []core.Action{core.ActionQuit}, true
	}
	for _, b := range km.bindings {
		if key.Matches(msg, b.key) {
			actions = append(actions, b.actions...)
		}
	}
	return actions, false
}

// IsMenu reports whether the key asks to leave the game for the menu.
func (km *KeyMapper) IsMenu(msg tea.KeyMsg) bool {
	return key.Matches(msg, km.menu)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRecords
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRecords
	}

	return MenuActionNone
}

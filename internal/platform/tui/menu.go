package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aether-knight/internal/config"
	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/games/aether/saves"
	"github.com/vovakirdan/aether-knight/internal/registry"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuTokenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// MenuItem is a selectable game variant.
type MenuItem struct {
	GameID  string
	Title   string
	Summary string
}

// MenuModel picks the variant to play. With a save store attached it also
// shows the shared save slots and whether a continue is banked.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	slots       []saves.Summary
	token       bool
	quitting    bool
	selected    *MenuItem
	openRecords bool
}

// NewMenuModel creates a menu. kv may be nil.
func NewMenuModel(cfg core.RuntimeConfig, kv storage.KV) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for _, g := range registry.List() {
		m.items = append(m.items, MenuItem{GameID: g.ID, Title: g.Title, Summary: g.Summary})
	}
	if kv != nil {
		s := saves.NewSlotsFor(kv, config.DefaultAetherConfig())
		m.slots = s.Summaries()
		m.token, _ = s.Token()
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.items)-1)
	case MenuActionSelect:
		if len(m.items) > 0 {
			item := m.items[m.cursor]
			m.selected = &item
		}
	case MenuActionRecords:
		m.openRecords = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	line := func(st lipgloss.Style, text string) {
		b.WriteString(st.Render(centerText(text, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	line(menuTitleStyle, "A E T H E R   K N I G H T")
	b.WriteString("\n")
	line(menuDimStyle, "Select a rule set")
	b.WriteString("\n")

	for i, item := range m.items {
		st, cursor := lipgloss.NewStyle(), "  "
		if i == m.cursor {
			st, cursor = menuActiveStyle, "> "
		}
		line(st, fmt.Sprintf("%s%-26s %s", cursor, item.Title, item.Summary))
	}

	if len(m.slots) > 0 {
		b.WriteString("\n")
		parts := make([]string, 0, len(m.slots))
		for _, s := range m.slots {
			if s.Empty {
				parts = append(parts, fmt.Sprintf("%d: empty", s.Slot))
				continue
			}
			parts = append(parts, fmt.Sprintf("%d: LV.%d W%d", s.Slot, s.Level, s.Wave))
		}
		line(menuDimStyle, "Saves  "+strings.Join(parts, "   "))
		if m.token {
			line(menuTokenStyle, "continue ready")
		}
	}

	b.WriteString("\n")
	line(menuDimStyle, "↑/↓ navigate   enter play   tab records   q quit")
	return b.String()
}

// Selected returns the chosen variant, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords reports whether the user asked for the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the runtime config, updated by resizes.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}

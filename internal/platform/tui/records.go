package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/aether-knight/internal/config"
	"github.com/vovakirdan/aether-knight/internal/games/aether/saves"
	"github.com/vovakirdan/aether-knight/internal/registry"
	"github.com/vovakirdan/aether-knight/internal/storage"
)

const (
	maxScores  = 100
	slotsBoard = "slots" // board ID of the save slot table
	dateLayout = "Jan 02 15:04"
)

var (
	recordsTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	recordsTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	recordsActiveTab   = recordsTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	recordsFrameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	recordsDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	recordsStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type recordsKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Clear key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func (k recordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Clear, k.Back, k.Quit}
}

func (k recordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Clear, k.Back, k.Quit}}
}

func newRecordsKeyMap() recordsKeyMap {
	return recordsKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next board")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev board")),
		Clear: key.NewBinding(key.WithKeys("x"), key.WithHelp("x x", "clear slot")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RecordsModel shows one high score board per variant and, when a save
// store is attached, a board of the save slots.
type RecordsModel struct {
	boards    []registry.GameInfo
	cursor    int
	store     *storage.Store
	slots     *saves.Slots
	table     table.Model
	help      help.Model
	keys      recordsKeyMap
	width     int
	height    int
	armed     int // slot awaiting a second clear press, 0 when none
	status    string
	quitting  bool
	goingBack bool
}

// NewRecordsModel creates the records screen. kv may be nil, which hides
// the save slot board.
func NewRecordsModel(store *storage.Store, kv storage.KV, width, height int) RecordsModel {
	m := RecordsModel{
		boards: registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newRecordsKeyMap(),
		width:  width,
		height: height,
	}
	if kv != nil {
		m.slots = saves.NewSlotsFor(kv, config.DefaultAetherConfig())
		m.boards = append(m.boards, registry.GameInfo{ID: slotsBoard, Title: "Save Slots"})
	}
	m.help.Width = width
	m.reload()
	return m
}

func (m *RecordsModel) board() string {
	if len(m.boards) == 0 {
		return ""
	}
	return m.boards[m.cursor].ID
}

// reload rebuilds the table for the selected board.
func (m *RecordsModel) reload() {
	cols, rows := m.scoreRows()
	if m.board() == slotsBoard {
		cols, rows = m.slotRows()
	}
	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).Bold(false)
	m.table.SetStyles(st)
}

func (m *RecordsModel) scoreRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 10},
		{Title: "LV", Width: 4},
		{Title: "Wave", Width: 5},
		{Title: "Date", Width: 13},
	}
	if m.store == nil {
		return cols, nil
	}
	scores, err := m.store.TopScores(m.board(), maxScores)
	if err != nil {
		m.status = "cannot load scores: " + err.Error()
		return cols, nil
	}
	rows := make([]table.Row, 0, len(scores))
	for i, s := range scores {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			s.Player,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Level),
			strconv.Itoa(s.Wave),
			s.CreatedAt.Format(dateLayout),
		})
	}
	return cols, rows
}

func (m *RecordsModel) slotRows() ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Slot", Width: 5},
		{Title: "LV", Width: 4},
		{Title: "Wave", Width: 5},
		{Title: "Score", Width: 10},
		{Title: "Saved", Width: 13},
	}
	var rows []table.Row
	for _, s := range m.slots.Summaries() {
		if s.Empty {
			rows = append(rows, table.Row{strconv.Itoa(s.Slot), "-", "-", "EMPTY", ""})
			continue
		}
		rows = append(rows, table.Row{
			strconv.Itoa(s.Slot),
			strconv.Itoa(s.Level),
			strconv.Itoa(s.Wave),
			strconv.Itoa(s.Score),
			s.SavedAt.Format(dateLayout),
		})
	}
	return cols, rows
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if !key.Matches(msg, m.keys.Clear) {
			m.armed = 0
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.switchBoard(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchBoard(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.clearSelected()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *RecordsModel) switchBoard(step int) {
	if len(m.boards) == 0 {
		return
	}
	m.cursor = (m.cursor + step + len(m.boards)) % len(m.boards)
	m.status = ""
	m.reload()
}

// clearSelected deletes the highlighted slot on the second press.
func (m *RecordsModel) clearSelected() {
	if m.board() != slotsBoard || len(m.table.Rows()) == 0 {
		return
	}
	slot, err := strconv.Atoi(m.table.SelectedRow()[0])
	if err != nil {
		return
	}
	if m.armed != slot {
		m.armed = slot
		m.status = fmt.Sprintf("press x again to clear slot %d", slot)
		return
	}
	m.armed = 0
	if err := m.slots.Clear(slot); err != nil {
		m.status = "cannot clear slot: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("slot %d cleared", slot)
	cursor := m.table.Cursor()
	m.reload()
	m.table.SetCursor(cursor)
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RECORDS"
	if len(m.boards) > 0 {
		title = strings.ToUpper(m.boards[m.cursor].Title)
	}

	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		if i == m.cursor {
			tabs[i] = recordsActiveTab.Render(b.Title)
		} else {
			tabs[i] = recordsTabStyle.Render(b.Title)
		}
	}

	body := m.table.View()
	if len(m.table.Rows()) == 0 {
		body = recordsDimStyle.Italic(true).Padding(1, 2).
			Render("No runs recorded yet.\nFall in battle to set a score.")
	}

	var b strings.Builder
	b.WriteString(recordsTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")
	b.WriteString(recordsFrameStyle.Render(body))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(recordsStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(recordsDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/aether-knight/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func hasAction(actions []core.Action, want core.Action) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, []core.Action{core.ActionLeft}},
		{"d", runeKey('d'), []core.Action{core.ActionRight}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []core.Action{core.ActionJump}},
		{"up jumps and moves the cursor", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionJump, core.ActionUp}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}},
		{"n", runeKey('n'), []core.Action{core.ActionNewGame}},
		{"c", runeKey('c'), []core.Action{core.ActionContinue}},
		{"2", runeKey('2'), []core.Action{core.ActionChoice2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			if quit {
				t.Fatal("not a quit key")
			}
			if len(got) != len(tc.want) {
				t.Fatalf("MapKey() = %v, expected %v", got, tc.want)
			}
			for _, a := range tc.want {
				if !hasAction(got, a) {
					t.Errorf("MapKey() = %v, missing %s", got, a)
				}
			}
		})
	}
}

func TestMapKeyQuitAndUnknown(t *testing.T) {
	km := NewKeyMapper()

	if _, quit := km.MapKey(runeKey('q')); !quit {
		t.Error("q should quit")
	}
	if _, quit := km.MapKey(tea.KeyMsg{Type: tea.KeyCtrlC}); !quit {
		t.Error("ctrl+c should quit")
	}
	if got, _ := km.MapKey(runeKey('z')); len(got) != 0 {
		t.Errorf("unbound key produced %v", got)
	}
	if !km.IsMenu(runeKey('m')) {
		t.Error("m should open the menu")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRecords},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tc.msg.String(), got, tc.want)
		}
	}
}

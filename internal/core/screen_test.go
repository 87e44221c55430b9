package core

import (
	"strings"
	"testing"
)

func TestScreenStartsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		s.SetColored(p[0], p[1], 'X', ColorRed)
		if c := s.GetCell(p[0], p[1]); c.Rune != ' ' || c.Color != ColorDefault {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], c)
		}
	}
	s.DrawTextColored(2, 1, "HP 120", ColorBrightGreen)
	if got := s.Row(1); got != "  HP" {
		t.Errorf("Row(1) = %q, expected clipped text", got)
	}
	if got := s.Row(5); got != "    " {
		t.Errorf("Row(5) = %q, expected blank row", got)
	}
}

func TestScreenColoredDrawing(t *testing.T) {
	s := NewScreen(8, 6)
	s.DrawRectColored(NewRect(1, 1, 2, 3), '█', ColorBrightWhite)
	s.DrawVLineColored(6, 0, 5, '║', ColorBrightCyan)
	s.DrawTextColored(0, 5, "LV.2", ColorYellow)

	tests := []struct {
		x, y int
		want Cell
	}{
		{1, 1, Cell{'█', ColorBrightWhite}},
		{2, 3, Cell{'█', ColorBrightWhite}},
		{3, 3, Cell{' ', ColorDefault}},
		{6, 0, Cell{'║', ColorBrightCyan}},
		{6, 4, Cell{'║', ColorBrightCyan}},
		{6, 5, Cell{' ', ColorDefault}},
		{3, 5, Cell{'2', ColorYellow}},
	}
	for _, tc := range tests {
		if got := s.GetCell(tc.x, tc.y); got != tc.want {
			t.Errorf("GetCell(%d, %d) = %+v, expected %+v", tc.x, tc.y, got, tc.want)
		}
	}

	s.Clear()
	if c := s.GetCell(1, 1); c != (Cell{' ', ColorDefault}) {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenBoxAndLines(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4))
	s.DrawHLine(1, 2, 4, '▀')

	expected := strings.Join([]string{
		"┌────┐",
		"│    │",
		"│▀▀▀▀│",
		"└────┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawTextColored(0, 0, "WAVE 3", ColorBrightWhite)
	s.DrawText(0, 3, "floor")

	s.Resize(4, 2)
	if got := s.Row(0); got != "WAVE" {
		t.Errorf("Row(0) after shrink = %q", got)
	}
	if c := s.GetCell(0, 0); c.Color != ColorBrightWhite {
		t.Errorf("color lost on resize: %+v", c)
	}

	s.Resize(12, 5)
	if got := s.Row(0); got != "WAVE        " {
		t.Errorf("Row(0) after grow = %q", got)
	}
	if got := s.Row(3); strings.TrimSpace(got) != "" {
		t.Errorf("rows dropped by a shrink should come back blank, got %q", got)
	}
}

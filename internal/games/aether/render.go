package aether

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/aether-knight/internal/core"
	"github.com/vovakirdan/aether-knight/internal/games/aether/world"
)

// Sprite runes.
const (
	FloorChar      = '▀'
	KnightChar     = '█'
	KnightEdge     = '▌'
	MobChar        = '▓'
	BossChar       = '▒'
	LaneWarnChar   = '┆'
	LaneStrikeChar = '║'
	AfterimageChar = '░'
	BarFull        = '■'
	BarEmpty       = '·'
)

// hudRows is the number of rows reserved above the arena.
const hudRows = 2

// viewport maps arena coordinates onto screen cells.
type viewport struct {
	top    int
	sx, sy float64
	w, h   int
}

func newViewport(dst *core.Screen, arenaW, arenaH float64) viewport {
	rows := core.Max(dst.Height()-hudRows, 1)
	return viewport{
		top: hudRows,
		sx:  float64(dst.Width()) / arenaW,
		sy:  float64(rows) / arenaH,
		w:   dst.Width(),
		h:   rows,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// rect scales a box to cells, never smaller than one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x, y := v.col(b.X), v.row(b.Y)
	w := core.Max(int(math.Round(b.W*v.sx)), 1)
	h := core.Max(int(math.Round(b.H*v.sy)), 1)
	return core.NewRect(x, y, w, h)
}

// Render draws the session into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.machine == nil {
		return
	}
	s := g.machine.Snapshot()
	v := newViewport(dst, s.ArenaW, s.ArenaH)

	drawHUD(dst, s)

	floor := v.row(s.FloorY)
	dst.DrawHLine(0, floor, dst.Width(), FloorChar)

	if s.Phase != PhaseTitle {
		drawArena(dst, v, s, floor)
	}

	switch s.Phase {
	case PhaseTitle:
		drawTitle(dst, s, g.Title())
	case PhasePause:
		drawMessage(dst, "PAUSED", "P resume   T title")
	case PhaseReward:
		drawReward(dst, s)
	case PhaseGameOver:
		drawGameOver(dst, s)
	}
}

func drawHUD(dst *core.Screen, s Snapshot) {
	h := s.HUD
	status := fmt.Sprintf(" LV.%d  WAVE %d  ATK %.0f  SCORE %d ", h.Level, h.Wave, h.Attack, h.Score)
	dst.DrawTextColored(0, 0, status, core.ColorBrightWhite)

	hp := fmt.Sprintf("HP %3.0f/%-3.0f ", math.Max(h.HP, 0), h.MaxHP)
	x := dst.Width() - len(hp) - 12
	if x > len(status) {
		hpColor := core.ColorBrightGreen
		switch {
		case h.HPRatio < 0.25:
			hpColor = core.ColorBrightRed
		case h.HPRatio < 0.5:
			hpColor = core.ColorYellow
		}
		if h.Invulnerable {
			hpColor = core.ColorBrightCyan
		}
		dst.DrawTextColored(x, 0, hp, hpColor)
		drawBar(dst, x+len(hp), 0, 10, h.HPRatio, hpColor)
	}

	exp := fmt.Sprintf(" EXP %d ", h.Exp)
	dst.DrawTextColored(0, 1, exp, core.ColorGray)
	drawBar(dst, len(exp), 1, 10, h.ExpRatio, core.ColorBlue)

	col := len(exp) + 12
	if h.Stack > 0 {
		od := fmt.Sprintf("CORE x%d %.1fs", h.Stack, h.OverdriveLeft)
		dst.DrawTextColored(col, 1, od, coreColor(h.CoreColor))
		col += len(od) + 2
	}
	if s.Notice != "" {
		nx := core.Max(col, (dst.Width()-len([]rune(s.Notice)))/2)
		dst.DrawTextColored(nx, 1, s.Notice, core.ColorBrightYellow)
	}
}

func drawBar(dst *core.Screen, x, y, width int, fill float64, c core.Color) {
	n := int(math.Round(core.Clamp01(fill) * float64(width)))
	for i := 0; i < width; i++ {
		if i < n {
			dst.SetColored(x+i, y, BarFull, c)
		} else {
			dst.SetColored(x+i, y, BarEmpty, core.ColorGray)
		}
	}
}

func drawArena(dst *core.Screen, v viewport, s Snapshot, floor int) {
	for _, h := range s.Hazards {
		x := v.col(h.X)
		w := core.Max(int(math.Round(h.Width*v.sx)), 1)
		ch, c := LaneWarnChar, core.ColorYellow
		if h.Striking {
			ch, c = LaneStrikeChar, core.ColorBrightCyan
		}
		for i := 0; i < w; i++ {
			dst.DrawVLineColored(x+i, v.top, floor-v.top, ch, c)
		}
	}

	for _, a := range s.Afterimages {
		dst.SetColored(v.col(a.X), v.row(a.Y), AfterimageChar, coreColor(a.Color))
	}

	for _, it := range s.Items {
		r := v.rect(it.Body)
		dst.SetColored(r.X, r.Y, itemRune(it.Kind), itemColor(it.Kind))
	}

	for _, e := range s.Enemies {
		r := v.rect(e.Body)
		ch, c := MobChar, core.ColorRed
		if e.Boss {
			ch, c = BossChar, core.ColorMagenta
		}
		dst.DrawRectColored(r, ch, c)
		if e.Boss {
			drawBar(dst, r.X, r.Y-1, core.Max(r.W, 4), e.HPRatio, core.ColorBrightMagenta)
		}
	}

	r := v.rect(s.Player)
	knight := core.ColorBrightWhite
	if s.HUD.Stack > 0 {
		knight = coreColor(s.HUD.CoreColor)
	}
	if s.HUD.Invulnerable {
		knight = core.ColorBrightCyan
	}
	dst.DrawRectColored(r, KnightChar, knight)
	edge := r.X + r.W
	if s.Facing < 0 {
		edge = r.X - 1
	}
	dst.SetColored(edge, r.Y+r.H/2, KnightEdge, knight)
}

func drawTitle(dst *core.Screen, s Snapshot, title string) {
	lines := []string{strings.ToUpper(title), ""}
	for _, sum := range s.Slots {
		cursor := "  "
		if sum.Slot == s.Selected {
			cursor = "> "
		}
		desc := "EMPTY"
		if !sum.Empty {
			desc = fmt.Sprintf("LV.%d  WAVE %d  SCORE %d", sum.Level, sum.Wave, sum.Score)
		}
		lines = append(lines, fmt.Sprintf("%sSLOT %d  %s", cursor, sum.Slot, desc))
	}
	lines = append(lines, "", "N new game   L load   1-3 slot")
	if s.CanBackOut {
		lines = append(lines, "B back")
	}
	drawMessage(dst, lines...)
}

func drawReward(dst *core.Screen, s Snapshot) {
	lines := []string{"BOSS CLEARED - CHOOSE A REWARD", ""}
	for i, r := range s.Offers {
		cursor := "  "
		if i == s.Cursor {
			cursor = "> "
		}
		lines = append(lines, fmt.Sprintf("%s%d. %-18s %s", cursor, i+1, r.Label, r.Info))
	}
	drawMessage(dst, lines...)
}

func drawGameOver(dst *core.Screen, s Snapshot) {
	hint := "NO CONTINUE LEFT   R retry   T title"
	if s.CanContinue {
		hint = "C continue   R retry   T title"
	}
	drawMessage(dst,
		"GAME OVER",
		fmt.Sprintf("Score: %d  |  LV.%d  WAVE %d", s.HUD.Score, s.HUD.Level, s.HUD.Wave),
		"",
		hint,
	)
}

// drawMessage draws a boxed block of lines in the center of the screen.
func drawMessage(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		if strings.HasPrefix(l, "> ") || strings.HasPrefix(l, "  ") {
			x = boxX + 2
		}
		dst.DrawText(x, boxY+1+i, l)
	}
}

func itemRune(k world.ItemKind) rune {
	switch k {
	case world.ItemCore:
		return '◆'
	case world.ItemThunder:
		return 'ϟ'
	default:
		return '+'
	}
}

func itemColor(k world.ItemKind) core.Color {
	switch k {
	case world.ItemCore:
		return core.ColorBrightMagenta
	case world.ItemThunder:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightGreen
	}
}

// coreColor maps the overdrive tint to the closest terminal color.
func coreColor(hex string) core.Color {
	return core.ColorFromHex(hex, core.ColorWhite)
}

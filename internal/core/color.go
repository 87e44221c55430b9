package core

import (
	"strconv"
	"strings"
)

// Color is a foreground color for a screen cell, expressed as an index
// into a small fixed palette of ANSI 256-color codes.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorGray

	// NumColors is the size of the palette.
	NumColors = int(ColorGray) + 1
)

type paletteEntry struct {
	code    string
	r, g, b int
}

// palette holds the ANSI code and approximate RGB value of every color.
var palette = [NumColors]paletteEntry{
	ColorDefault:       {"", -1, -1, -1},
	ColorRed:           {"1", 0x80, 0x00, 0x00},
	ColorGreen:         {"2", 0x00, 0x80, 0x00},
	ColorYellow:        {"3", 0x80, 0x80, 0x00},
	ColorBlue:          {"4", 0x00, 0x00, 0x80},
	ColorMagenta:       {"5", 0x80, 0x00, 0x80},
	ColorCyan:          {"6", 0x00, 0x80, 0x80},
	ColorWhite:         {"7", 0xc0, 0xc0, 0xc0},
	ColorBrightRed:     {"9", 0xff, 0x00, 0x00},
	ColorBrightGreen:   {"10", 0x00, 0xff, 0x00},
	ColorBrightYellow:  {"11", 0xff, 0xff, 0x00},
	ColorBrightMagenta: {"13", 0xff, 0x00, 0xff},
	ColorBrightCyan:    {"14", 0x00, 0xff, 0xff},
	ColorBrightWhite:   {"15", 0xff, 0xff, 0xff},
	ColorGray:          {"245", 0x8a, 0x8a, 0x8a},
}

// Code returns the ANSI 256-color code for c, or "" for the terminal default.
func (c Color) Code() string {
	if int(c) >= len(palette) {
		return ""
	}
	return palette[c].code
}

// ColorFromHex maps a CSS-style hex color ("#f0f" or "#ff00ff") to the
// nearest palette color. Unparseable input yields fallback.
func ColorFromHex(hex string, fallback Color) Color {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return fallback
	}
	best, bestDist := fallback, -1
	for i := ColorRed; int(i) < len(palette); i++ {
		p := palette[i]
		dr, dg, db := p.r-r, p.g-g, p.b-b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func parseHex(hex string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

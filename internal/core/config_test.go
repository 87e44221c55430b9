package core

import (
	"testing"
	"time"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	now := time.Unix(1_700_000_000, 42)
	c := RuntimeConfig{}.Normalize(now)

	if c.ScreenW != 80 || c.ScreenH != 24 || c.TickRate != 60 {
		t.Errorf("Normalize() = %+v, expected the default terminal", c)
	}
	if c.Seed != now.UnixNano() {
		t.Errorf("Seed = %d, expected one derived from the clock", c.Seed)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	in := RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 30, Seed: 7}
	if got := in.Normalize(time.Now()); got != in {
		t.Errorf("Normalize() = %+v, expected %+v", got, in)
	}

	tiny := RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 30, Seed: 7}.Normalize(time.Now())
	if tiny.ScreenW != MinScreenW || tiny.ScreenH != MinScreenH {
		t.Errorf("tiny terminal = %dx%d, expected the minimum size", tiny.ScreenW, tiny.ScreenH)
	}
}

func TestFrameInterval(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("FrameInterval() = %v, expected 20ms", got)
	}
	if got := (RuntimeConfig{}).FrameInterval(); got != time.Second/60 {
		t.Errorf("zero tick rate should fall back to 60 Hz, got %v", got)
	}
}

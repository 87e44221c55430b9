package world

// Scheduler runs named recurring timers off the simulation clock instead of
// wall-clock callbacks, so spawn timing is reproducible.
type Scheduler struct {
	timers []*timer

	// Gate, when set, is consulted before each firing. A closed gate still
	// consumes the firing; the callback is skipped.
	Gate func() bool
}

type timer struct {
	name      string
	interval  func() float64
	fn        func()
	remaining float64
}

// minInterval keeps a misconfigured zero interval from spinning forever.
const minInterval = 0.01

// Every registers fn to run each time interval() seconds elapse.
// The interval is re-read after every firing, so it may depend on game state.
func (s *Scheduler) Every(name string, interval func() float64, fn func()) {
	t := &timer{name: name, interval: interval, fn: fn}
	t.remaining = t.next()
	s.timers = append(s.timers, t)
}

func (t *timer) next() float64 {
	iv := t.interval()
	if iv < minInterval {
		return minInterval
	}
	return iv
}

// Advance moves every timer forward by dt and fires the due ones in
// registration order. A timer may fire several times in one call.
// Returns the number of callbacks that ran.
func (s *Scheduler) Advance(dt float64) int {
	fired := 0
	for _, t := range s.timers {
		t.remaining -= dt
		for t.remaining <= 0 {
			if s.Gate == nil || s.Gate() {
				t.fn()
				fired++
			}
			t.remaining += t.next()
		}
	}
	return fired
}

// Restart rewinds every timer to a full interval.
func (s *Scheduler) Restart() {
	for _, t := range s.timers {
		t.remaining = t.next()
	}
}

// Remaining returns the seconds until the named timer fires next,
// or -1 if no such timer exists.
func (s *Scheduler) Remaining(name string) float64 {
	for _, t := range s.timers {
		if t.name == name {
			return t.remaining
		}
	}
	return -1
}

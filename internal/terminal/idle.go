package terminal

import "time"

// IdleTimer counts tick periods and tells when the recovery interval has
// elapsed.
//
// Ticks are counted against absolute deadlines, so a late observation counts
// every period that passed in the meantime.
type IdleTimer struct {
	tick     time.Duration
	interval time.Duration
	deadline time.Time
	elapsed  time.Duration
}

// NewIdleTimer returns a pointer to a new IdleTimer whose first tick is due
// one period after now. A zero interval disables recovery.
func NewIdleTimer(now time.Time, tick, interval time.Duration) *IdleTimer {
	return &IdleTimer{
		tick:     tick,
		interval: interval,
		deadline: now.Add(tick),
	}
}

// Deadline returns when the next tick is due.
func (t *IdleTimer) Deadline() time.Time { return t.deadline }

// Due returns whether a tick is due at now.
func (t *IdleTimer) Due(now time.Time) bool { return !now.Before(t.deadline) }

// Advance counts every tick due at now and reports whether the recovery
// interval was crossed, in which case the counter keeps the remainder.
func (t *IdleTimer) Advance(now time.Time) bool {
	if !t.Due(now) {
		return false
	}
	n := 1 + now.Sub(t.deadline)/t.tick
	t.deadline = t.deadline.Add(n * t.tick)
	t.elapsed += n * t.tick

	if t.interval == 0 || t.elapsed < t.interval {
		return false
	}
	t.elapsed %= t.interval
	return true
}

// Elapsed returns the time counted since the last crossing.
func (t *IdleTimer) Elapsed() time.Duration { return t.elapsed }

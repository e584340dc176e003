package vtest

import (
	"sync"
	"time"

	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// maxTimerRuns bounds RunAll so a self-rescheduling timer cannot hang a test.
const maxTimerRuns = 10_000

// FakeClock is a manually advanced tooltip.Clock. Callbacks run
// synchronously inside Advance and RunAll, in due order.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *FakeClock
	at    time.Duration
	seq   int
	fn    func()
	done  bool
}

// NewFakeClock creates a clock at elapsed time zero.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// AfterFunc implements tooltip.Clock.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) tooltip.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &fakeTimer{clock: c, at: c.now + d, seq: c.seq, fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop implements tooltip.Timer.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

// Elapsed returns the total time advanced so far.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves time forward by d, firing every timer due on the way,
// including timers scheduled by callbacks if they fall within d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		t := c.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	c.mu.Lock()
	if c.now < target {
		c.now = target
	}
	c.mu.Unlock()
}

// RunAll fires timers in due order until none are left, advancing time to
// each one. It returns the number of callbacks run.
func (c *FakeClock) RunAll() int {
	runs := 0
	for runs < maxTimerRuns {
		t := c.nextDue(-1)
		if t == nil {
			break
		}
		t.fn()
		runs++
	}
	return runs
}

// nextDue pops the earliest timer due at or before limit (any timer when
// limit is negative) and moves the clock to its due time.
func (c *FakeClock) nextDue(limit time.Duration) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var next *fakeTimer
	for _, t := range c.timers {
		if limit >= 0 && t.at > limit {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	if next == nil {
		return nil
	}
	next.done = true
	c.remove(next)
	if next.at > c.now {
		c.now = next.at
	}
	return next
}

func (c *FakeClock) remove(t *fakeTimer) {
	for i, x := range c.timers {
		if x == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

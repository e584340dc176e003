package vtest

import (
	"testing"
	"time"
)

func TestFakeClockAdvance(t *testing.T) {
	c := NewFakeClock()
	var fired []string

	c.AfterFunc(400*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "b") })

	c.Advance(99 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}
	c.Advance(1 * time.Millisecond)
	if len(fired) != 1 || fired[0] != "b" {
		t.Fatalf("fired = %v, want [b]", fired)
	}
	c.Advance(300 * time.Millisecond)
	if len(fired) != 2 || fired[1] != "a" {
		t.Fatalf("fired = %v, want [b a]", fired)
	}
	if c.Elapsed() != 400*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 400ms", c.Elapsed())
	}
}

func TestFakeClockStop(t *testing.T) {
	c := NewFakeClock()
	ran := false
	timer := c.AfterFunc(time.Second, func() { ran = true })

	if !timer.Stop() {
		t.Error("first Stop() = false, want true")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}
	c.RunAll()
	if ran {
		t.Error("stopped timer ran")
	}
}

func TestFakeClockStopAfterFire(t *testing.T) {
	c := NewFakeClock()
	timer := c.AfterFunc(0, func() {})
	c.RunAll()
	if timer.Stop() {
		t.Error("Stop() after firing should return false")
	}
}

func TestFakeClockRunAllFollowsChains(t *testing.T) {
	c := NewFakeClock()
	var order []time.Duration

	c.AfterFunc(10*time.Millisecond, func() {
		order = append(order, c.Elapsed())
		c.AfterFunc(5*time.Millisecond, func() {
			order = append(order, c.Elapsed())
		})
	})

	if runs := c.RunAll(); runs != 2 {
		t.Errorf("RunAll() = %d, want 2", runs)
	}
	if len(order) != 2 || order[0] != 10*time.Millisecond || order[1] != 15*time.Millisecond {
		t.Errorf("order = %v", order)
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}
}

func TestFakeClockSameDeadlineKeepsScheduleOrder(t *testing.T) {
	c := NewFakeClock()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		c.AfterFunc(time.Millisecond, func() { got = append(got, i) })
	}
	c.RunAll()
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v, want [0 1 2]", got)
		}
	}
}

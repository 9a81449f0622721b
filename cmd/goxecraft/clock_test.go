package main

import (
	"testing"
	"time"
)

func TestFrameClockTick(t *testing.T) {
	start := time.Unix(100, 0)
	c := newFrameClock(60, start)
	if dt := c.tick(start.Add(20 * time.Millisecond)); dt < 0.0199 || dt > 0.0201 {
		t.Errorf("dt = %v, want 0.02", dt)
	}
}

func TestFrameClockFPS(t *testing.T) {
	start := time.Unix(100, 0)
	c := newFrameClock(0, start)
	now := start
	for i := 0; i < 30; i++ {
		now = now.Add(30 * time.Millisecond)
		c.tick(now)
		if _, ok := c.fps(now); ok {
			t.Fatalf("fps reported after %v", now.Sub(start))
		}
	}
	now = now.Add(200 * time.Millisecond)
	c.tick(now)
	n, ok := c.fps(now)
	if !ok || n != 31 {
		t.Fatalf("fps = %d,%v, want 31,true", n, ok)
	}
	if _, ok := c.fps(now.Add(time.Millisecond)); ok {
		t.Error("fps reported twice within a second")
	}
}

func TestFrameClockSchedule(t *testing.T) {
	start := time.Unix(100, 0)
	c := newFrameClock(100, start)
	c.deadline = start

	if got := c.next(start.Add(2 * time.Millisecond)); !got.Equal(start.Add(10 * time.Millisecond)) {
		t.Errorf("next = %v, want start+10ms", got.Sub(start))
	}
	// a long hitch restarts the schedule instead of bursting frames
	late := start.Add(time.Second)
	if got := c.next(late); !got.Equal(late.Add(10 * time.Millisecond)) {
		t.Errorf("after hitch next = %v, want late+10ms", got.Sub(late))
	}

	uncapped := newFrameClock(0, start)
	if got := uncapped.next(late); !got.Equal(late) {
		t.Errorf("uncapped next = %v, want now", got)
	}
}

package main

import "time"

// frameClock measures frame time, counts frames per second and paces the
// loop to a frame cap.
type frameClock struct {
	period   time.Duration // zero when uncapped
	last     time.Time
	deadline time.Time

	frames      int
	windowStart time.Time
}

func newFrameClock(fps int, now time.Time) *frameClock {
	c := &frameClock{last: now, windowStart: now}
	if fps > 0 {
		c.period = time.Second / time.Duration(fps)
	}
	return c
}

// tick starts a frame at now and returns the seconds since the previous one.
func (c *frameClock) tick(now time.Time) float32 {
	dt := now.Sub(c.last)
	c.last = now
	c.frames++
	return float32(dt.Seconds())
}

// fps reports the frames counted over the last second, once per second.
func (c *frameClock) fps(now time.Time) (int, bool) {
	if now.Sub(c.windowStart) < time.Second {
		return 0, false
	}
	n := c.frames
	c.frames = 0
	c.windowStart = now
	return n, true
}

// next returns the time the following frame may start. A frame that
// overran by more than a whole period restarts the schedule from now, so
// the loop never races to catch up.
func (c *frameClock) next(now time.Time) time.Time {
	if c.period == 0 {
		return now
	}
	c.deadline = c.deadline.Add(c.period)
	if c.deadline.Before(now.Add(-c.period)) {
		c.deadline = now.Add(c.period)
	}
	return c.deadline
}

// wait sleeps until the next frame is due.
func (c *frameClock) wait() {
	if d := time.Until(c.next(time.Now())); d > 0 {
		time.Sleep(d)
	}
}

package playback

import "time"

// Clock is a Player backed by a wall-clock playhead instead of a real
// media element. The TUI advances it by calling Advance on a ticker and
// forwarding each tick to the synchronizer as a time update.
type Clock struct {
	positionMS int64
	durationMS int64
	playing    bool
	lastTick   time.Time
}

// NewClock creates a paused clock over a source of the given duration.
func NewClock(durationMS int64) *Clock {
	return &Clock{durationMS: durationMS}
}

// CurrentTimeMS returns the playhead position.
func (c *Clock) CurrentTimeMS() int64 { return c.positionMS }

// DurationMS returns the source duration.
func (c *Clock) DurationMS() int64 { return c.durationMS }

// Playing reports whether the playhead is advancing.
func (c *Clock) Playing() bool { return c.playing }

// SeekMS moves the playhead, clamped to [0, duration].
func (c *Clock) SeekMS(ms int64) {
	if ms < 0 {
		ms = 0
	}
	if c.durationMS > 0 && ms > c.durationMS {
		ms = c.durationMS
	}
	c.positionMS = ms
}

// Play starts advancing the playhead.
func (c *Clock) Play() {
	if c.playing {
		return
	}
	c.playing = true
	c.lastTick = time.Now()
}

// Pause stops the playhead.
func (c *Clock) Pause() { c.playing = false }

// Advance moves the playhead by the real time elapsed since the previous
// tick. Pauses automatically at the end of the source.
func (c *Clock) Advance(now time.Time) {
	if !c.playing {
		return
	}
	c.positionMS += now.Sub(c.lastTick).Milliseconds()
	c.lastTick = now
	if c.durationMS > 0 && c.positionMS >= c.durationMS {
		c.positionMS = c.durationMS
		c.playing = false
	}
}

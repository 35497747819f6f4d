package motion

import (
	"sync"
	"time"

	"layerstage/internal/geom"
)

// StartClock records the first timestamp each motion ever observed,
// keyed by motion identity (layer id + effect name). Numeric speeds
// measure elapsed time from that anchor so motion always starts at
// angle 0 no matter when the pipeline is first invoked.
//
// A StartClock is owned by one pipeline engine. It is never a package
// global, so independent stages and test runs cannot interfere.
type StartClock struct {
	mu     sync.Mutex
	starts map[string]int64
}

// NewStartClock creates an empty start-time store.
func NewStartClock() *StartClock {
	return &StartClock{starts: make(map[string]int64)}
}

// ElapsedHours returns hours elapsed since the key's first observed
// timestamp, recording the timestamp on first sight (yielding 0).
func (c *StartClock) ElapsedHours(key string, timestampMs int64) float64 {
	c.mu.Lock()
	start, ok := c.starts[key]
	if !ok {
		c.starts[key] = timestampMs
		start = timestampMs
	}
	c.mu.Unlock()
	return float64(timestampMs-start) / float64(time.Hour/time.Millisecond)
}

// Reset forgets the start time for a key.
func (c *StartClock) Reset(key string) {
	c.mu.Lock()
	delete(c.starts, key)
	c.mu.Unlock()
}

// AngleAt resolves the current angle in degrees for a speed at the
// given timestamp.
//
//   - Static: always 0.
//   - Numeric: normalize360(elapsedHours · rph · 360 · direction),
//     elapsed from the motion's own start timestamp.
//   - Alias: read directly from the timezone-shifted wall clock; the
//     result is already normalized to [0, 360). Direction −1 mirrors
//     the sweep.
//
// key scopes the start-time bookkeeping for numeric speeds.
func AngleAt(s Speed, key string, timestampMs int64, clock *StartClock) float64 {
	switch s.Kind {
	case Numeric:
		if clock == nil {
			return 0
		}
		h := clock.ElapsedHours(key, timestampMs)
		return geom.Normalize360(h * s.RotationsPerHour * 360 * s.Direction)
	case Alias:
		return geom.Normalize360(AliasAngle(s, timestampMs, true) * s.Direction)
	default:
		return 0
	}
}

// AliasAngle derives the hand angle from the wall clock at the given
// timestamp. The angle is measured clockwise from the canonical "up"
// (12 o'clock) position and pre-normalized to [0, 360). With smooth
// set, sub-second and sub-minute fractions interpolate continuously;
// otherwise the hand ticks on whole units.
func AliasAngle(s Speed, timestampMs int64, smooth bool) float64 {
	t := time.UnixMilli(timestampMs).UTC().Add(s.TZOffset)

	sec := float64(t.Second())
	if smooth {
		sec += float64(t.Nanosecond()) / 1e9
	}
	min := float64(t.Minute())
	if smooth || s.Hand != HandMinute {
		min += sec / 60
	}

	switch s.Hand {
	case HandSecond:
		return geom.Normalize360(sec / 60 * 360)
	case HandMinute:
		return geom.Normalize360(min / 60 * 360)
	case HandHour:
		if s.Format == Format24 {
			h := float64(t.Hour()) + min/60
			// 24-hour dials put midnight at the bottom; the 270°
			// correction lands 12:00 at the same up position as the
			// 12-hour dial.
			return geom.Normalize360(h/24*360 + 270)
		}
		h := float64(t.Hour()%12) + min/60
		return geom.Normalize360(h / 12 * 360)
	default:
		return 0
	}
}

package effect

import (
	"math"
	"strings"
	"sync"

	"layerstage/internal/geom"
	"layerstage/internal/motion"
	"layerstage/internal/scene"
)

// Clock modes for the governing angle source.
const (
	clockModeStatic = ""
	clockModeSpin   = "true"
)

// Clock drives a layer like a clock hand: the image tip, image center,
// image base and the external clock center stay on one straight line.
// The base anchor sits at the clock center, or at the configured
// radial offset along the hand's line (positive toward the tip).
//
// The governing angle comes from exactly one source: the static config
// angle (motion empty), the spin processor's current angle (motion
// "true"; if no spin is configured the hand does not move), or a
// real-time alias (motion "second"/"minute"/"hour", honoring tick vs
// smooth, timezone and 12/24h format). Angles are measured clockwise
// from the canonical up position.
//
// Clock-following fully owns placement; orbit on the same layer is
// suppressed at chain build.
//
// Owns: Rotation, Position.
func Clock(l *scene.Layer) Processor {
	cfg := l.Config.Clock
	m := l.Mapping

	var mode string
	var aliasSpeed motion.Speed
	if cfg != nil {
		mode = strings.ToLower(strings.TrimSpace(cfg.Motion))
		switch mode {
		case motion.HandSecond, motion.HandMinute, motion.HandHour:
			aliasSpeed = motion.Resolve(&motion.Spec{
				Speed:    motion.SpeedValue{Raw: mode},
				Timezone: cfg.Timezone,
				Format:   cfg.Format,
			})
		}
	}

	basePercent := m.BasePercent()
	var once sync.Once

	return func(s scene.State, timestampMs int64) scene.State {
		if cfg == nil {
			return s
		}
		if m.ImageDimensions.Width <= 0 || m.ImageDimensions.Height <= 0 {
			warnOnce(&once, "effect: clock-follow without image mapping", "layer", l.Config.ID)
			return s
		}

		var theta float64
		switch mode {
		case clockModeStatic:
			theta = geom.Sanitize(cfg.Angle, 0)
		case clockModeSpin:
			if !s.SpinActive {
				// Motion requested from spin but none is configured:
				// do not move.
				return s
			}
			theta = s.SpinAngle
		case motion.HandSecond, motion.HandMinute, motion.HandHour:
			theta = motion.AliasAngle(aliasSpeed, timestampMs, cfg.Smooth)
		default:
			warnOnce(&once, "effect: unknown clock motion mode", "layer", l.Config.ID, "mode", cfg.Motion)
			return s
		}

		// DisplayRotation brings the base→tip axis to point up; adding
		// the hand angle turns it clockwise from there.
		rot := geom.Normalize360(m.DisplayRotation + theta)

		// Hand direction in screen coords, clockwise from up.
		rad := geom.Deg2Rad(theta)
		dir := geom.Pt(math.Sin(rad), -math.Cos(rad))
		target := cfg.Center.Point().Add(dir.Mul(geom.Sanitize(cfg.Offset, 0)))

		s.Rotation = rot
		s.Position = geom.PlaceByPivot(target, basePercent, m.ImageDimensions, s.Scale, rot)
		return s
	}
}

package effect

import (
	"math"
	"sync"

	"layerstage/internal/geom"
	"layerstage/internal/motion"
	"layerstage/internal/scene"
)

// Orbit revolves a layer along a circle. The orbit center and the
// "orbit line" reference point both default to the layer's resting
// position; the radius is their distance and the starting phase is the
// line point's bearing from the center, so motion continues smoothly
// from wherever the line point was placed instead of snapping to
// angle 0.
//
// Orientation rule: while spin is active, orbit never touches rotation
// (spin owns it). When spin is inactive and orient is requested, the
// same per-tick angular delta used for position is added to the base
// rotation, keeping co-orbiting layers that share one sweep in
// lockstep (tidal-locked facing). Computing an outward-facing angle
// from position instead would desynchronize them.
//
// Owns: Position, OrbitAngle, and Rotation only in orient mode.
func Orbit(l *scene.Layer, clock *motion.StartClock) Processor {
	cfg := l.Config.Orbit
	speed := l.OrbitSpeed
	m := l.Mapping

	rest := l.Config.Position.Point()
	center := rest
	if cfg != nil && cfg.Center != nil {
		center = cfg.Center.Point()
	}
	line := rest
	if cfg != nil && cfg.LinePoint != nil {
		line = cfg.LinePoint.Point()
	}
	imagePoint := geom.PercentPoint{X: 50, Y: 50}
	if cfg != nil && cfg.ImagePoint != nil {
		imagePoint = cfg.ImagePoint.Percent()
	}

	radius := center.Distance(line)
	// Bearing of the line point from the center, parameterized so that
	// position(a) = center + radius·(cos a, sin a) in screen coords.
	// Increasing angles sweep clockwise on screen.
	initial := geom.Rad2Deg(math.Atan2(line.Y-center.Y, line.X-center.X))

	key := l.Config.ID + "/orbit"
	var once sync.Once

	return func(s scene.State, timestampMs int64) scene.State {
		if cfg == nil || speed.IsStatic() {
			return s
		}
		if !geom.Pt(radius, initial).IsFinite() || !center.IsFinite() {
			warnOnce(&once, "effect: orbit with unresolvable geometry", "layer", l.Config.ID)
			return s
		}

		delta := motion.AngleAt(speed, key, timestampMs, clock)
		angle := initial + delta
		rad := geom.Deg2Rad(angle)
		orbitPoint := center.Add(geom.Pt(math.Cos(rad), math.Sin(rad)).Mul(radius))

		s.OrbitAngle = geom.Normalize360(angle)
		if cfg.Orient && !s.SpinActive {
			s.Rotation = geom.Normalize360(s.Rotation + delta)
		}
		s.Position = geom.PlaceByPivot(orbitPoint, imagePoint, m.ImageDimensions, s.Scale, s.Rotation)
		return s
	}
}

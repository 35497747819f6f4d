package effect

import (
	"sync"

	"layerstage/internal/geom"
	"layerstage/internal/motion"
	"layerstage/internal/scene"
)

// Spin rotates a layer around a configured pivot point. While spin is
// active it is the sole source of rotation: any statically configured
// angle on the layer is ignored. The pivot's stage location stays
// visually fixed while the image turns, which requires recomputing the
// layer position through pivot-based placement every frame.
//
// Owns: Rotation, Position, SpinActive, SpinAngle.
func Spin(l *scene.Layer, clock *motion.StartClock) Processor {
	cfg := l.Config.Spin
	speed := l.SpinSpeed
	m := l.Mapping

	pivot := geom.PercentPoint{X: 50, Y: 50}
	if cfg != nil && cfg.Pivot != nil {
		pivot = cfg.Pivot.Percent()
	}
	pivotImage := geom.PercentToImage(pivot, m.ImageDimensions)
	key := l.Config.ID + "/spin"
	var once sync.Once

	return func(s scene.State, timestampMs int64) scene.State {
		if cfg == nil || speed.IsStatic() {
			return s
		}
		if m.ImageDimensions.Width <= 0 || m.ImageDimensions.Height <= 0 {
			warnOnce(&once, "effect: spin without image mapping", "layer", l.Config.ID)
			return s
		}

		angle := motion.AngleAt(speed, key, timestampMs, clock)

		// The pivot stays where it sits at rest; its stage location is
		// derived from the resting position, not the animated one.
		rest := l.Config.Position.Point()
		pivotStage := geom.ImageToStage(pivotImage, m.ImageDimensions, rest, s.Scale)

		s.SpinActive = true
		s.SpinAngle = angle
		s.Rotation = angle
		s.Position = geom.PlaceByPivot(pivotStage, pivot, m.ImageDimensions, s.Scale, angle)
		return s
	}
}

package effect

import (
	"math"

	"layerstage/internal/geom"
	"layerstage/internal/scene"
)

// Pulse multiplies the layer scale by 1 + amplitude·sin(2πft + phase).
// Amplitude or frequency ≤ 0 makes it a no-op; the resulting scale is
// clamped to stay positive.
//
// Owns: Scale.
func Pulse(l *scene.Layer) Processor {
	cfg := l.Config.Pulse

	return func(s scene.State, timestampMs int64) scene.State {
		if cfg == nil || cfg.Amplitude <= 0 || cfg.Frequency <= 0 {
			return s
		}
		t := float64(timestampMs) / 1000
		f := 1 + cfg.Amplitude*math.Sin(2*math.Pi*cfg.Frequency*t+cfg.Phase)
		if !geom.Pt(f, 0).IsFinite() || f < geom.MinScale {
			f = geom.MinScale
		}
		s.Scale = geom.ClampScalePoint(s.Scale.Mul(f))
		return s
	}
}

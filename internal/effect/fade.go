package effect

import (
	"math"

	"layerstage/internal/geom"
	"layerstage/internal/scene"
)

// Fade sets the layer opacity to a bounded oscillation between min and
// max. A degenerate range (min > max) is swapped; zero or negative
// frequency holds the static midpoint.
//
// Owns: Opacity.
func Fade(l *scene.Layer) Processor {
	cfg := l.Config.Fade

	var lo, hi float64
	if cfg != nil {
		lo = clamp01(geom.Sanitize(cfg.Min, 0))
		hi = clamp01(geom.Sanitize(cfg.Max, 1))
		if lo > hi {
			lo, hi = hi, lo
		}
	}

	return func(s scene.State, timestampMs int64) scene.State {
		if cfg == nil {
			return s
		}
		if cfg.Frequency <= 0 {
			s.Opacity = (lo + hi) / 2
			return s
		}
		t := float64(timestampMs) / 1000
		osc := 0.5 + 0.5*math.Sin(2*math.Pi*cfg.Frequency*t+cfg.Phase)
		s.Opacity = lo + (hi-lo)*osc
		return s
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

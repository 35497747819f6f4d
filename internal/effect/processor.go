// Package effect implements the composable per-frame processors that
// turn a layer's resting state into its animated state: spin, orbit,
// clock-following, pulse and fade.
//
// Every processor is a pure function of (state, timestamp). Each one
// only writes the fields it owns and passes everything else through
// unchanged, so consumers can diff cheaply. Malformed or missing
// prerequisites make a processor log once and return its input
// unchanged — never panic, never emit non-finite numbers.
package effect

import (
	"sync"

	"layerstage/internal/logging"
	"layerstage/internal/motion"
	"layerstage/internal/scene"
)

// Processor transforms a layer state for one frame timestamp
// (milliseconds). Implementations must be side-effect free apart from
// motion start-time bookkeeping.
type Processor func(s scene.State, timestampMs int64) scene.State

// Chain builds the ordered processor list for a layer:
// spin → orbit → clock-following → pulse → fade, on top of the basic
// placement already present in the base state. Only configured effects
// contribute; a layer with no motion blocks gets an empty chain.
//
// When clock-following is configured, any orbit block on the same
// layer is suppressed: mixing orbit with the colinearity constraint is
// geometrically over-determined, so clock-following fully owns
// placement.
func Chain(l *scene.Layer, clock *motion.StartClock) []Processor {
	cfg := l.Config
	var ps []Processor
	if cfg.Spin != nil {
		ps = append(ps, Spin(l, clock))
	}
	if cfg.Orbit != nil {
		if cfg.Clock != nil {
			logging.Logger().Warn("effect: clock-following suppresses orbit", "layer", cfg.ID)
		} else {
			ps = append(ps, Orbit(l, clock))
		}
	}
	if cfg.Clock != nil {
		ps = append(ps, Clock(l))
	}
	if cfg.Pulse != nil {
		ps = append(ps, Pulse(l))
	}
	if cfg.Fade != nil {
		ps = append(ps, Fade(l))
	}
	return ps
}

// warnOnce emits a diagnostic exactly once per processor instance.
func warnOnce(once *sync.Once, msg string, args ...any) {
	once.Do(func() {
		logging.Logger().Warn(msg, args...)
	})
}

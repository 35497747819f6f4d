package pipeline

import (
	"layerstage/internal/effect"
	"layerstage/internal/logging"
	"layerstage/internal/motion"
	"layerstage/internal/scene"
)

// RunPipeline folds the processors left-to-right over a base state for
// one frame timestamp, each consuming the previous output.
func RunPipeline(base scene.State, processors []effect.Processor, timestampMs int64) scene.State {
	s := base
	for _, p := range processors {
		s = p(s, timestampMs)
	}
	return s
}

// Engine owns everything one render loop needs: the resolved scene,
// the per-layer processor chains, the motion start-time store and the
// frame-scoped cache. All of that state is instance-scoped — two
// engines never share caches or start times.
type Engine struct {
	scn    *scene.Scene
	clock  *motion.StartClock
	cache  *FrameCache
	chains map[string][]effect.Processor
	layers []*scene.Layer
}

// New builds an engine for a resolved scene. Fully static layers that
// already rest outside the padded stage bounds are dropped here so
// they never cost per-frame work.
func New(scn *scene.Scene) *Engine {
	e := &Engine{
		scn:    scn,
		clock:  motion.NewStartClock(),
		cache:  NewFrameCache(),
		chains: make(map[string][]effect.Processor),
	}
	for _, l := range scn.Layers {
		if !l.Config.Animated() && !Visible(l.BaseState(), scn.StageSize) {
			logging.Logger().Debug("pipeline: dropping static offstage layer", "layer", l.Config.ID)
			continue
		}
		e.chains[l.Config.ID] = effect.Chain(l, e.clock)
		e.layers = append(e.layers, l)
	}
	return e
}

// StageSize returns the side length of the square stage.
func (e *Engine) StageSize() float64 {
	return e.scn.StageSize
}

// Layers returns the active layers in stacking order.
func (e *Engine) Layers() []*scene.Layer {
	return e.layers
}

// NextFrame marks the beginning of a new rendered frame, invalidating
// all memoized states at once.
func (e *Engine) NextFrame() {
	e.cache.NextFrame()
}

// LayerState computes (or returns the memoized) state for one layer at
// the given timestamp. Repeated calls within one frame — e.g. from
// several backends — reuse the first result.
func (e *Engine) LayerState(l *scene.Layer, timestampMs int64) scene.State {
	id := l.Config.ID
	if s, ok := e.cache.Lookup(id); ok {
		return s
	}
	s := RunPipeline(l.BaseState(), e.chains[id], timestampMs)
	s.Visible = Visible(s, e.scn.StageSize)
	e.cache.Store(id, s)
	return s
}

// ComputeFrame runs the pipeline for every layer without touching the
// frame cache. Processors are pure, so once motion start times are
// anchored (see Prime) this is safe to call concurrently for different
// timestamps — which is what the batch renderer's workers do.
func (e *Engine) ComputeFrame(timestampMs int64) []scene.Snapshot {
	snaps := make([]scene.Snapshot, 0, len(e.layers))
	for _, l := range e.layers {
		s := RunPipeline(l.BaseState(), e.chains[l.Config.ID], timestampMs)
		s.Visible = Visible(s, e.scn.StageSize)
		snaps = append(snaps, s.Snapshot())
	}
	return snaps
}

// Prime anchors every numeric motion's start time at the given
// timestamp so that out-of-order frame computation afterwards agrees
// on where elapsed time begins.
func (e *Engine) Prime(timestampMs int64) {
	e.ComputeFrame(timestampMs)
}

// Frame runs the pipeline for every layer at one shared timestamp and
// returns the flat snapshots in stacking order. The caller owns frame
// boundaries: call NextFrame before each new frame.
func (e *Engine) Frame(timestampMs int64) []scene.Snapshot {
	snaps := make([]scene.Snapshot, 0, len(e.layers))
	for _, l := range e.layers {
		snaps = append(snaps, e.LayerState(l, timestampMs).Snapshot())
	}
	return snaps
}

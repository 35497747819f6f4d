package pipeline

import (
	"math"
	"testing"

	"layerstage/internal/anchor"
	"layerstage/internal/geom"
	"layerstage/internal/motion"
	"layerstage/internal/scene"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func makeLayer(cfg *scene.LayerConfig) *scene.Layer {
	tip, base := cfg.Anchors()
	l := &scene.Layer{
		Config:  cfg,
		Mapping: anchor.Compute(geom.Size{Width: 100, Height: 100}, tip, base),
	}
	if cfg.Spin != nil {
		l.SpinSpeed = motion.Resolve(&cfg.Spin.Spec)
	}
	if cfg.Orbit != nil {
		l.OrbitSpeed = motion.Resolve(&cfg.Orbit.Spec)
	}
	return l
}

func makeScene(layers ...*scene.Layer) *scene.Scene {
	return &scene.Scene{StageSize: 2048, Layers: layers}
}

func TestFrameCacheEpochs(t *testing.T) {
	c := NewFrameCache()
	l := makeLayer(&scene.LayerConfig{ID: "a", Position: scene.PointConfig{X: 1, Y: 2}})
	s := l.BaseState()

	if _, ok := c.Lookup("a"); ok {
		t.Error("empty cache reported a hit")
	}
	c.Store("a", s)
	got, ok := c.Lookup("a")
	if !ok {
		t.Fatal("stored state not found")
	}
	if got.Position != s.Position {
		t.Errorf("cached position = %v, want %v", got.Position, s.Position)
	}

	c.NextFrame()
	if _, ok := c.Lookup("a"); ok {
		t.Error("stale entry survived frame boundary")
	}

	c.Store("a", s)
	if _, ok := c.Lookup("a"); !ok {
		t.Error("re-stored entry not found in new frame")
	}
}

func TestVisibleBounds(t *testing.T) {
	tests := []struct {
		name     string
		pos      geom.Point
		scale    float64
		animated bool
		want     bool
	}{
		{"center of stage", geom.Pt(1024, 1024), 1, false, true},
		{"far left", geom.Pt(-500, 1024), 1, false, false},
		{"far below", geom.Pt(1024, 3000), 1, false, false},
		// 100 px image, scale 1: half extent 50. Static pad 4 means the
		// center may sit down to -54 before the box clears the bound.
		{"static just inside pad", geom.Pt(-53, 1024), 1, false, true},
		{"static just outside pad", geom.Pt(-55, 1024), 1, false, false},
		// Animated pad 40: center at -89 still counts as on stage.
		{"animated just inside pad", geom.Pt(-89, 1024), 1, true, true},
		{"animated just outside pad", geom.Pt(-91, 1024), 1, true, false},
		// Scale widens the box: half extent 100 at scale 2.
		{"scaled reaches in", geom.Pt(-100, 1024), 2, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &scene.LayerConfig{
				ID:       "probe",
				Position: scene.PointConfig{X: tt.pos.X, Y: tt.pos.Y},
				Scale:    tt.scale,
			}
			if tt.animated {
				cfg.Fade = &scene.FadeConfig{Min: 1, Max: 1, Frequency: 1}
			}
			l := makeLayer(cfg)
			if got := Visible(l.BaseState(), 2048); got != tt.want {
				t.Errorf("Visible at %v = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestEngineDropsStaticOffstageLayers(t *testing.T) {
	onstage := makeLayer(&scene.LayerConfig{ID: "keep", Position: scene.PointConfig{X: 1024, Y: 1024}})
	offstage := makeLayer(&scene.LayerConfig{ID: "drop", Position: scene.PointConfig{X: -999, Y: -999}})
	// Animated layers stay even when resting offstage; they may move in.
	roamer := makeLayer(&scene.LayerConfig{
		ID:       "roamer",
		Position: scene.PointConfig{X: -999, Y: -999},
		Orbit:    &scene.OrbitConfig{Spec: motion.Spec{Speed: motion.SpeedValue{Raw: "1"}}},
	})

	e := New(makeScene(onstage, offstage, roamer))
	if len(e.Layers()) != 2 {
		t.Fatalf("active layers = %d, want 2", len(e.Layers()))
	}
	for _, l := range e.Layers() {
		if l.Config.ID == "drop" {
			t.Error("static offstage layer survived engine build")
		}
	}
}

func TestLayerStateMemoizedWithinFrame(t *testing.T) {
	l := makeLayer(&scene.LayerConfig{
		ID:       "fader",
		Position: scene.PointConfig{X: 1024, Y: 1024},
		Fade:     &scene.FadeConfig{Min: 0, Max: 1, Frequency: 1},
	})
	e := New(makeScene(l))

	e.NextFrame()
	first := e.LayerState(l, 250) // opacity peak
	if !almostEqual(first.Opacity, 1) {
		t.Fatalf("opacity at 250ms = %v, want 1", first.Opacity)
	}

	// Same frame, different timestamp: the memoized state wins.
	again := e.LayerState(l, 750)
	if !almostEqual(again.Opacity, first.Opacity) {
		t.Errorf("memoized opacity = %v, want %v", again.Opacity, first.Opacity)
	}

	e.NextFrame()
	fresh := e.LayerState(l, 750) // opacity trough
	if !almostEqual(fresh.Opacity, 0) {
		t.Errorf("opacity after frame boundary = %v, want 0", fresh.Opacity)
	}
}

func TestLayerStateSetsVisibility(t *testing.T) {
	l := makeLayer(&scene.LayerConfig{
		ID:       "wanderer",
		Position: scene.PointConfig{X: -500, Y: 1024},
		Pulse:    &scene.PulseConfig{Amplitude: 0.1, Frequency: 1},
	})
	e := New(makeScene(l))

	e.NextFrame()
	s := e.LayerState(l, 0)
	if s.Visible {
		t.Error("layer resting far offstage reported visible")
	}
}

func TestFrameSnapshotsInStackingOrder(t *testing.T) {
	back := makeLayer(&scene.LayerConfig{ID: "back", ZOrder: 0, Position: scene.PointConfig{X: 100, Y: 100}})
	front := makeLayer(&scene.LayerConfig{ID: "front", ZOrder: 5, Position: scene.PointConfig{X: 200, Y: 200}})
	e := New(makeScene(back, front))

	e.NextFrame()
	snaps := e.Frame(0)
	if len(snaps) != 2 {
		t.Fatalf("snapshot count = %d, want 2", len(snaps))
	}
	if snaps[0].ID != "back" || snaps[1].ID != "front" {
		t.Errorf("snapshot order = %s, %s; want back, front", snaps[0].ID, snaps[1].ID)
	}
	if !snaps[0].Visible {
		t.Error("onstage snapshot not visible")
	}
	if !almostEqual(snaps[1].X, 200) || !almostEqual(snaps[1].Y, 200) {
		t.Errorf("snapshot position = (%v, %v), want (200, 200)", snaps[1].X, snaps[1].Y)
	}
}

func TestComputeFrameOrderIndependentAfterPrime(t *testing.T) {
	l := makeLayer(&scene.LayerConfig{
		ID:       "spinner",
		Position: scene.PointConfig{X: 1024, Y: 1024},
		Spin:     &scene.SpinConfig{Spec: motion.Spec{Speed: motion.SpeedValue{Raw: "1"}}},
	})

	// Forward order.
	a := New(makeScene(makeLayer(l.Config)))
	a.Prime(0)
	var forward []float64
	for _, ts := range []int64{0, 900_000, 1_800_000} {
		forward = append(forward, a.ComputeFrame(ts)[0].Rotation)
	}

	// Reverse order on a fresh engine: priming pins the start time, so
	// the later frames must not re-anchor it.
	b := New(makeScene(makeLayer(l.Config)))
	b.Prime(0)
	var reverse []float64
	for _, ts := range []int64{1_800_000, 900_000, 0} {
		reverse = append(reverse, b.ComputeFrame(ts)[0].Rotation)
	}

	for i := range forward {
		if !almostEqual(forward[i], reverse[len(reverse)-1-i]) {
			t.Errorf("frame %d: forward %v vs reverse %v", i, forward[i], reverse[len(reverse)-1-i])
		}
	}
	// 30 minutes at 1 rotation/hour is half a turn.
	if !almostEqual(forward[2], 180) {
		t.Errorf("rotation at 30m = %v, want 180", forward[2])
	}
}

func TestComputeFrameBypassesCache(t *testing.T) {
	l := makeLayer(&scene.LayerConfig{
		ID:       "fader",
		Position: scene.PointConfig{X: 1024, Y: 1024},
		Fade:     &scene.FadeConfig{Min: 0, Max: 1, Frequency: 1},
	})
	e := New(makeScene(l))

	e.NextFrame()
	e.LayerState(l, 250)

	// Different timestamp through ComputeFrame: no memoized reuse.
	snaps := e.ComputeFrame(750)
	if !almostEqual(snaps[0].Opacity, 0) {
		t.Errorf("ComputeFrame opacity = %v, want 0 (cache must be bypassed)", snaps[0].Opacity)
	}
}

func TestEngineInstancesAreIndependent(t *testing.T) {
	cfg := &scene.LayerConfig{
		ID:       "s",
		Position: scene.PointConfig{X: 1024, Y: 1024},
		Spin:     &scene.SpinConfig{Spec: motion.Spec{Speed: motion.SpeedValue{Raw: "1"}}},
	}

	a := New(makeScene(makeLayer(cfg)))
	b := New(makeScene(makeLayer(cfg)))

	a.Prime(0)
	b.Prime(1_800_000) // anchored half an hour later

	ra := a.ComputeFrame(1_800_000)[0].Rotation
	rb := b.ComputeFrame(1_800_000)[0].Rotation
	if !almostEqual(ra, 180) {
		t.Errorf("engine a rotation = %v, want 180", ra)
	}
	if !almostEqual(rb, 0) {
		t.Errorf("engine b rotation = %v, want 0", rb)
	}
}

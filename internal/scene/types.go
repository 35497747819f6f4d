// Package scene defines the layer data model: the immutable
// configuration records loaded from a scene file, the per-frame runtime
// state threaded through the effect pipeline, and the flat snapshot
// records handed to rendering backends.
package scene

import (
	"layerstage/internal/anchor"
	"layerstage/internal/geom"
	"layerstage/internal/motion"
)

// DefaultStageSize is the side length of the square virtual stage when
// a scene file does not specify one.
const DefaultStageSize = 2048.0

// PointConfig is a stage point as written in a scene file.
type PointConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point converts to a geometry point.
func (p PointConfig) Point() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// PercentConfig is an image-relative percent point as written in a
// scene file. Pivots may use values outside 0–100.
type PercentConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Percent converts to a geometry percent point.
func (p PercentConfig) Percent() geom.PercentPoint {
	return geom.PercentPoint{X: p.X, Y: p.Y}
}

// SpinConfig makes a layer rotate around a pivot point.
type SpinConfig struct {
	motion.Spec
	// Pivot is the rotation anchor in image percent coordinates.
	// Defaults to the image center.
	Pivot *PercentConfig `json:"pivot,omitempty"`
}

// OrbitConfig moves a layer along a circle.
type OrbitConfig struct {
	motion.Spec
	// Center of the orbit in stage pixels. Defaults to the layer's own
	// resting position ("orbit around where you'd otherwise sit").
	Center *PointConfig `json:"center,omitempty"`
	// LinePoint defines the orbital radius and starting phase by its
	// distance and bearing from the center. Defaults to the layer's
	// resting position.
	LinePoint *PointConfig `json:"line_point,omitempty"`
	// ImagePoint is the image-space percent point that rides the
	// circle. Defaults to 50/50 (the center).
	ImagePoint *PercentConfig `json:"image_point,omitempty"`
	// Orient turns the layer in lockstep with its revolution
	// (tidal-locked facing). Ignored while spin is active.
	Orient bool `json:"orient,omitempty"`
}

// ClockConfig drives a layer like a clock hand: image tip, image
// center, image base and the clock center stay on one straight line.
type ClockConfig struct {
	// Motion selects the governing angle source: "" (static angle),
	// "true" (follow the spin processor), or "second"/"minute"/"hour"
	// (real-time alias).
	Motion string `json:"motion,omitempty"`
	// Angle is the static hand angle in degrees clockwise from up,
	// used when Motion is empty.
	Angle float64 `json:"angle,omitempty"`
	// Center is the external clock center in stage pixels.
	Center PointConfig `json:"center"`
	// Offset places the base anchor this many stage pixels from the
	// center along the hand's line (positive toward the tip).
	Offset float64 `json:"offset,omitempty"`
	// Smooth interpolates between ticks instead of jumping.
	Smooth bool `json:"smooth,omitempty"`
	// Timezone and Format apply to the alias motion modes.
	Timezone string `json:"timezone,omitempty"`
	Format   int    `json:"format,omitempty"`
}

// PulseConfig multiplies scale by a bounded periodic oscillation.
type PulseConfig struct {
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"` // Hz
	Phase     float64 `json:"phase,omitempty"`
}

// FadeConfig drives opacity with a bounded periodic oscillation.
type FadeConfig struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Frequency float64 `json:"frequency"` // Hz
	Phase     float64 `json:"phase,omitempty"`
}

// LayerConfig is one immutable layer record from a scene file. The
// motion core never mutates it.
type LayerConfig struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Renderer string `json:"renderer,omitempty"`
	ZOrder   int    `json:"z,omitempty"`

	Position PointConfig `json:"position"`
	Scale    float64     `json:"scale,omitempty"`
	ScaleY   float64     `json:"scale_y,omitempty"`
	Angle    float64     `json:"angle,omitempty"`
	Opacity  *float64    `json:"opacity,omitempty"`

	// Anchor angles in degrees, 0°=right / 90°=up. Zero values mean
	// the 90°/270° defaults.
	TipAngle  float64 `json:"tip_angle,omitempty"`
	BaseAngle float64 `json:"base_angle,omitempty"`

	Spin  *SpinConfig  `json:"spin,omitempty"`
	Orbit *OrbitConfig `json:"orbit,omitempty"`
	Clock *ClockConfig `json:"clock,omitempty"`
	Pulse *PulseConfig `json:"pulse,omitempty"`
	Fade  *FadeConfig  `json:"fade,omitempty"`
}

// Animated reports whether any motion block is present. Culling uses
// this to pick its padding margin.
func (c *LayerConfig) Animated() bool {
	return c.Spin != nil || c.Orbit != nil || c.Clock != nil || c.Pulse != nil || c.Fade != nil
}

// ScaleVec returns the per-axis scale with defaults applied.
func (c *LayerConfig) ScaleVec() geom.Point {
	sx := c.Scale
	if sx == 0 {
		sx = 1
	}
	sy := c.ScaleY
	if sy == 0 {
		sy = sx
	}
	return geom.Point{X: sx, Y: sy}
}

// BaseOpacity returns the configured opacity, defaulting to 1.
func (c *LayerConfig) BaseOpacity() float64 {
	if c.Opacity == nil {
		return 1
	}
	o := *c.Opacity
	if o < 0 {
		return 0
	}
	if o > 1 {
		return 1
	}
	return o
}

// Anchors returns the anchor angle pair with defaults applied.
func (c *LayerConfig) Anchors() (tip, base float64) {
	tip, base = c.TipAngle, c.BaseAngle
	if tip == 0 && base == 0 {
		return anchor.DefaultTipAngle, anchor.DefaultBaseAngle
	}
	return tip, base
}

// Layer couples an immutable config record with its derived geometry
// and resolved motion speeds. Built once at load time.
type Layer struct {
	Config  *LayerConfig
	Mapping anchor.Mapping

	SpinSpeed  motion.Speed
	OrbitSpeed motion.Speed
}

// State is the mutable-by-replacement runtime record threaded through
// the effect pipeline. Every processor receives it by value and
// returns a derived copy; a processor only writes the fields it owns
// and leaves everything else untouched.
type State struct {
	Layer *Layer

	Position geom.Point
	Scale    geom.Point
	Rotation float64 // degrees, clockwise on screen
	Opacity  float64
	Visible  bool

	// Motion scratch fields.
	SpinActive bool
	SpinAngle  float64
	OrbitAngle float64
}

// BaseState builds the resting state for a layer: the statically
// configured transform before any effect runs.
func (l *Layer) BaseState() State {
	return State{
		Layer:    l,
		Position: l.Config.Position.Point(),
		Scale:    geom.ClampScalePoint(l.Config.ScaleVec()),
		Rotation: l.Config.Angle,
		Opacity:  l.Config.BaseOpacity(),
		Visible:  true,
	}
}

// Snapshot is the flat per-layer output record consumed by rendering
// backends; no further geometric computation is required downstream.
type Snapshot struct {
	ID       string  `json:"id"`
	Image    string  `json:"image"`
	Renderer string  `json:"renderer,omitempty"`
	ZOrder   int     `json:"z"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Opacity  float64 `json:"opacity"`
	Visible  bool    `json:"visible"`
}

// Snapshot flattens the state for backend consumption.
func (s State) Snapshot() Snapshot {
	cfg := s.Layer.Config
	return Snapshot{
		ID:       cfg.ID,
		Image:    cfg.Image,
		Renderer: cfg.Renderer,
		ZOrder:   cfg.ZOrder,
		X:        s.Position.X,
		Y:        s.Position.Y,
		Rotation: s.Rotation,
		ScaleX:   s.Scale.X,
		ScaleY:   s.Scale.Y,
		Opacity:  s.Opacity,
		Visible:  s.Visible,
	}
}

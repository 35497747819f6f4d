package pipeline

import "layerstage/internal/scene"

// Culling margins in stage pixels. Static layers never move, so a
// tight margin suffices; animated layers get a wide one to avoid
// visible pop-in at the stage edge as they cross it.
const (
	StaticPad = 4.0
	MotionPad = 40.0
)

// Visible tests the layer's axis-aligned bounding box — from its
// current position, scale and image dimensions — against the stage
// bounds expanded by the appropriate padding margin.
func Visible(s scene.State, stageSize float64) bool {
	pad := StaticPad
	if s.Layer.Config.Animated() {
		pad = MotionPad
	}

	dims := s.Layer.Mapping.ImageDimensions
	hw := dims.Width * s.Scale.X / 2
	hh := dims.Height * s.Scale.Y / 2

	if s.Position.X+hw < -pad || s.Position.X-hw > stageSize+pad {
		return false
	}
	if s.Position.Y+hh < -pad || s.Position.Y-hh > stageSize+pad {
		return false
	}
	return true
}

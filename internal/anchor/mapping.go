// Package anchor derives per-image anchor geometry: where the tip and
// base of a layer sit inside its image, and how the image must be
// rotated so its base→tip axis points straight up.
package anchor

import (
	"math"

	"layerstage/internal/geom"
)

// Default anchor angles: tip straight up, base straight down.
const (
	DefaultTipAngle  = 90.0
	DefaultBaseAngle = 270.0
)

// Mapping is the derived geometry for one image size + anchor-angle
// pair. It is a pure function of those inputs and therefore immutable
// and freely shareable across layers.
type Mapping struct {
	ImageDimensions geom.Size

	// Anchor points in image pixel space.
	ImageCenter geom.Point
	ImageTip    geom.Point
	ImageBase   geom.Point

	// DisplayAxisAngle is the angle of the base→tip axis in the
	// 0°=right / 90°=up convention.
	DisplayAxisAngle float64

	// DisplayRotation is the screen rotation that brings the axis to
	// point straight up (90° − DisplayAxisAngle, normalized).
	DisplayRotation float64

	// AxisCenterOffset is the offset from the tip/base segment's
	// midpoint to the image's geometric center. Non-zero when tip and
	// base are not antipodal; colinearity constraints pivot around the
	// segment, not the center, and need this correction.
	AxisCenterOffset geom.Point
}

// Compute builds the mapping for the given image dimensions and anchor
// angle pair. Angles use the 0°=right, 90°=up screen convention
// (counter-clockwise visually, which means the angle is negated before
// trigonometry because screen Y grows downward).
func Compute(dims geom.Size, tipAngle, baseAngle float64) Mapping {
	dims.Width = geom.Sanitize(dims.Width, 1)
	dims.Height = geom.Sanitize(dims.Height, 1)
	center := dims.Center()

	tip := rayToBorder(center, dims, geom.Sanitize(tipAngle, DefaultTipAngle))
	base := rayToBorder(center, dims, geom.Sanitize(baseAngle, DefaultBaseAngle))

	// Base→tip vector; flip sign of Y to report the angle in the
	// 0°=right / 90°=up convention.
	v := tip.Sub(base)
	axisAngle := geom.Normalize360(geom.Rad2Deg(math.Atan2(-v.Y, v.X)))

	mid := tip.Add(base).Mul(0.5)

	return Mapping{
		ImageDimensions:  dims,
		ImageCenter:      center,
		ImageTip:         tip,
		ImageBase:        base,
		DisplayAxisAngle: axisAngle,
		DisplayRotation:  geom.Normalize360(90 - axisAngle),
		AxisCenterOffset: center.Sub(mid),
	}
}

// TipPercent returns the tip anchor in image percent coordinates.
func (m Mapping) TipPercent() geom.PercentPoint {
	return geom.ImageToPercent(m.ImageTip, m.ImageDimensions)
}

// BasePercent returns the base anchor in image percent coordinates.
func (m Mapping) BasePercent() geom.PercentPoint {
	return geom.ImageToPercent(m.ImageBase, m.ImageDimensions)
}

// rayToBorder casts a ray from the rectangle center at the given angle
// and returns the point where it exits the bounding rectangle.
func rayToBorder(center geom.Point, dims geom.Size, angleDeg float64) geom.Point {
	rad := geom.Deg2Rad(-angleDeg)
	dir := geom.Point{X: math.Cos(rad), Y: math.Sin(rad)}

	// Scale to reach the border. Division by zero means the ray is
	// purely vertical or horizontal on that axis; treat as infinity so
	// the other axis decides.
	tx := math.Inf(1)
	if dir.X != 0 {
		tx = (dims.Width / 2) / math.Abs(dir.X)
	}
	ty := math.Inf(1)
	if dir.Y != 0 {
		ty = (dims.Height / 2) / math.Abs(dir.Y)
	}
	t := math.Min(tx, ty)
	if math.IsInf(t, 1) {
		return center
	}
	return center.Add(dir.Mul(t))
}

package geom

// Scale clamp range. Anything outside is pulled back in before use so
// conversions can never divide by zero or explode geometry.
const (
	MinScale = 0.01
	MaxScale = 10.0
)

// Sanitize returns v if it is a finite number, otherwise fallback.
func Sanitize(v, fallback float64) float64 {
	if !isFinite(v) {
		return fallback
	}
	return v
}

// SanitizePoint replaces non-finite components with the fallback point.
func SanitizePoint(p, fallback Point) Point {
	return Point{
		X: Sanitize(p.X, fallback.X),
		Y: Sanitize(p.Y, fallback.Y),
	}
}

// ClampScale pulls a scale factor into the safe [MinScale, MaxScale]
// range. Non-finite input yields 1.
func ClampScale(s float64) float64 {
	if !isFinite(s) {
		return 1
	}
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ClampScalePoint clamps both components of a per-axis scale.
func ClampScalePoint(s Point) Point {
	return Point{X: ClampScale(s.X), Y: ClampScale(s.Y)}
}

// ImageToStage converts an image-local pixel point to stage pixels.
// layerPos is the stage position of the image's geometric center.
//
//	stage = layerPos + (imagePoint - imageCenter) * scale
func ImageToStage(imagePoint Point, dims Size, layerPos Point, scale Point) Point {
	imagePoint = SanitizePoint(imagePoint, dims.Center())
	layerPos = SanitizePoint(layerPos, Point{})
	scale = ClampScalePoint(scale)
	off := imagePoint.Sub(dims.Center()).MulXY(scale.X, scale.Y)
	return layerPos.Add(off)
}

// StageToImage is the algebraic inverse of ImageToStage.
func StageToImage(stagePoint Point, dims Size, layerPos Point, scale Point) Point {
	stagePoint = SanitizePoint(stagePoint, layerPos)
	layerPos = SanitizePoint(layerPos, Point{})
	scale = ClampScalePoint(scale)
	off := stagePoint.Sub(layerPos)
	return dims.Center().Add(Point{X: off.X / scale.X, Y: off.Y / scale.Y})
}

// ImageToPercent converts an image pixel point to percent of the image box.
func ImageToPercent(p Point, dims Size) PercentPoint {
	w := Sanitize(dims.Width, 1)
	h := Sanitize(dims.Height, 1)
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	p = SanitizePoint(p, Point{})
	return PercentPoint{X: p.X / w * 100, Y: p.Y / h * 100}
}

// PercentToImage converts a percent point to image pixels. Values
// outside 0–100 are allowed and land outside the image box, which is
// how off-image pivots are expressed.
func PercentToImage(pc PercentPoint, dims Size) Point {
	x := Sanitize(pc.X, 50)
	y := Sanitize(pc.Y, 50)
	return Point{
		X: x / 100 * Sanitize(dims.Width, 0),
		Y: y / 100 * Sanitize(dims.Height, 0),
	}
}

// StageToPercent converts a stage pixel point to percent of the stage.
func StageToPercent(p Point, stageSize float64) PercentPoint {
	s := Sanitize(stageSize, 1)
	if s == 0 {
		s = 1
	}
	p = SanitizePoint(p, Point{})
	return PercentPoint{X: p.X / s * 100, Y: p.Y / s * 100}
}

// PercentToStage converts a percent point to stage pixels.
func PercentToStage(pc PercentPoint, stageSize float64) Point {
	s := Sanitize(stageSize, 0)
	return Point{
		X: Sanitize(pc.X, 50) / 100 * s,
		Y: Sanitize(pc.Y, 50) / 100 * s,
	}
}

// PlaceByPivot answers: given that stage point target should coincide
// with the image-relative point pivot (percent, values outside 0–100
// permitted), and the image is rotated by rotationDeg, what layer
// position (stage coords of the image center) makes that true?
//
// The rotation is applied to the scaled center offset, not to the final
// point; applying it any later would make the pivot drift while the
// image spins.
func PlaceByPivot(target Point, pivot PercentPoint, dims Size, scale Point, rotationDeg float64) Point {
	target = SanitizePoint(target, Point{})
	scale = ClampScalePoint(scale)
	q := PercentToImage(pivot, dims)
	off := q.Sub(dims.Center()).MulXY(scale.X, scale.Y)
	off = off.Rotate(Sanitize(rotationDeg, 0))
	return target.Sub(off)
}

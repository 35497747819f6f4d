package geom

import "math"

// Point is a pixel coordinate in either image or stage space.
// Which space applies is determined by context; the conversion
// functions in this package are the only way to cross spaces.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// MulXY scales each component independently.
func (p Point) MulXY(sx, sy float64) Point {
	return Point{X: p.X * sx, Y: p.Y * sy}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite reports whether both components are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Rotate rotates the point as a vector about the origin by the given
// screen angle in degrees. Positive angles turn clockwise on screen
// (screen Y grows downward, so the standard rotation matrix already
// produces a visually clockwise turn).
func (p Point) Rotate(deg float64) Point {
	r := Deg2Rad(deg)
	c, s := math.Cos(r), math.Sin(r)
	return Point{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// PercentPoint is a coordinate expressed relative to a bounding box,
// where 0–100 spans the box. Pivot points may lie outside that range.
type PercentPoint struct {
	X, Y float64
}

// Size holds pixel dimensions of an image or the stage.
type Size struct {
	Width, Height float64
}

// Center returns the geometric center of the box.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// CoordinateBundle caches a coordinate in both pixel and percent form
// so repeated conversions are not recomputed.
type CoordinateBundle struct {
	Point   Point
	Percent PercentPoint
}

// DualSpaceCoordinate is one logical point expressed in both
// image-local and stage-global pixel space.
type DualSpaceCoordinate struct {
	Image Point
	Stage Point
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

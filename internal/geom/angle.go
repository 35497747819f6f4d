package geom

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Normalize360 wraps an angle into [0, 360). Non-finite input yields 0.
func Normalize360(deg float64) float64 {
	if !isFinite(deg) {
		return 0
	}
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod can return 360-epsilon rounding up to exactly 360.
	if d >= 360 {
		d -= 360
	}
	return d
}

// AngleDist returns the shortest angular distance between two angles
// in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := Normalize360(a - b)
	if d > 180 {
		return 360 - d
	}
	return d
}

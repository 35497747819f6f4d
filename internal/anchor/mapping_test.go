package anchor

import (
	"math"
	"testing"

	"layerstage/internal/geom"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestRayToBorderConvention(t *testing.T) {
	// 0° = right, 90° = up on screen (top edge, smaller Y).
	tests := []struct {
		name  string
		w, h  float64
		angle float64
		want  geom.Point
	}{
		{"right", 100, 100, 0, geom.Pt(100, 50)},
		{"up", 100, 100, 90, geom.Pt(50, 0)},
		{"left", 100, 100, 180, geom.Pt(0, 50)},
		{"down", 100, 100, 270, geom.Pt(50, 100)},
		{"right wide", 200, 100, 0, geom.Pt(200, 50)},
		{"up wide", 200, 100, 90, geom.Pt(100, 0)},
		{"diagonal square", 100, 100, 45, geom.Pt(100, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compute(geom.Size{Width: tt.w, Height: tt.h}, tt.angle, tt.angle+180)
			if !almostEqual(m.ImageTip.X, tt.want.X) || !almostEqual(m.ImageTip.Y, tt.want.Y) {
				t.Errorf("tip at angle %v = %v, want %v", tt.angle, m.ImageTip, tt.want)
			}
		})
	}
}

func TestDefaultAnchorsEndToEnd(t *testing.T) {
	// 100×100 image, tip 90°, base 270°: tip top-center, base
	// bottom-center, axis pointing straight up, no correction needed.
	m := Compute(geom.Size{Width: 100, Height: 100}, DefaultTipAngle, DefaultBaseAngle)

	if !almostEqual(m.ImageTip.X, 50) || !almostEqual(m.ImageTip.Y, 0) {
		t.Errorf("ImageTip = %v, want (50, 0)", m.ImageTip)
	}
	if !almostEqual(m.ImageBase.X, 50) || !almostEqual(m.ImageBase.Y, 100) {
		t.Errorf("ImageBase = %v, want (50, 100)", m.ImageBase)
	}
	if !almostEqual(m.DisplayAxisAngle, 90) {
		t.Errorf("DisplayAxisAngle = %v, want 90", m.DisplayAxisAngle)
	}
	if !almostEqual(m.DisplayRotation, 0) {
		t.Errorf("DisplayRotation = %v, want 0", m.DisplayRotation)
	}
	if !almostEqual(m.AxisCenterOffset.X, 0) || !almostEqual(m.AxisCenterOffset.Y, 0) {
		t.Errorf("AxisCenterOffset = %v, want (0, 0)", m.AxisCenterOffset)
	}
}

func TestSidewaysAxisNeedsRotation(t *testing.T) {
	// Tip pointing right: the axis angle is 0° and the image must turn
	// 90° to bring the tip up.
	m := Compute(geom.Size{Width: 100, Height: 100}, 0, 180)
	if !almostEqual(m.DisplayAxisAngle, 0) {
		t.Errorf("DisplayAxisAngle = %v, want 0", m.DisplayAxisAngle)
	}
	if !almostEqual(m.DisplayRotation, 90) {
		t.Errorf("DisplayRotation = %v, want 90", m.DisplayRotation)
	}
}

func TestNonAntipodalAnchors(t *testing.T) {
	// Tip up, base right: anchors are not required to be antipodal, and
	// the midpoint no longer coincides with the image center.
	m := Compute(geom.Size{Width: 100, Height: 100}, 90, 0)
	if !almostEqual(m.ImageTip.X, 50) || !almostEqual(m.ImageTip.Y, 0) {
		t.Errorf("ImageTip = %v, want (50, 0)", m.ImageTip)
	}
	if !almostEqual(m.ImageBase.X, 100) || !almostEqual(m.ImageBase.Y, 50) {
		t.Errorf("ImageBase = %v, want (100, 50)", m.ImageBase)
	}
	// Midpoint (75, 25); offset from midpoint to center (−25, 25).
	if !almostEqual(m.AxisCenterOffset.X, -25) || !almostEqual(m.AxisCenterOffset.Y, 25) {
		t.Errorf("AxisCenterOffset = %v, want (-25, 25)", m.AxisCenterOffset)
	}
}

func TestComputeDeterministic(t *testing.T) {
	a := Compute(geom.Size{Width: 64, Height: 128}, 45, 200)
	b := Compute(geom.Size{Width: 64, Height: 128}, 45, 200)
	if a != b {
		t.Errorf("identical inputs produced different mappings:\n%+v\n%+v", a, b)
	}
}

func TestCacheSharesMappings(t *testing.T) {
	c := NewCache()
	a := c.Get(100, 100, 90, 270)
	b := c.Get(100, 100, 90, 270)
	if a != b {
		t.Error("cache returned different mappings for the same key")
	}
	if c.Len() != 1 {
		t.Errorf("cache size = %d, want 1", c.Len())
	}
	c.Get(100, 100, 0, 180)
	c.Get(200, 100, 90, 270)
	if c.Len() != 3 {
		t.Errorf("cache size = %d, want 3", c.Len())
	}
}

// Package motion resolves declarative speed specifications into
// normalized runtime descriptors and computes angles from timestamps.
package motion

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"layerstage/internal/logging"
)

// Kind discriminates the resolved speed variants. Exactly one variant
// is active per Speed; alias and numeric are mutually exclusive by
// construction.
type Kind int

const (
	// Static means no motion at all; the angle is always 0.
	Static Kind = iota
	// Alias follows real wall-clock time (second/minute/hour hand).
	Alias
	// Numeric is a signed rotations-per-hour speed.
	Numeric
)

// Hand names accepted as real-time alias speeds.
const (
	HandSecond = "second"
	HandMinute = "minute"
	HandHour   = "hour"
)

// ClockFormat selects the hour-hand dial: 12-hour or 24-hour.
type ClockFormat int

const (
	Format12 ClockFormat = 12
	Format24 ClockFormat = 24
)

// Direction signs. Clockwise is the positive screen rotation.
const (
	Clockwise        = 1.0
	CounterClockwise = -1.0
)

// Speed is a resolved motion speed. Zero value is Static.
type Speed struct {
	Kind Kind

	// Alias fields.
	Hand     string
	TZOffset time.Duration
	Format   ClockFormat

	// Numeric fields. RotationsPerHour is always non-negative; the
	// sign lives in Direction.
	RotationsPerHour float64

	// Direction applies to both alias and numeric variants:
	// Clockwise (+1) or CounterClockwise (−1).
	Direction float64
}

// IsStatic reports whether the speed describes no motion.
func (s Speed) IsStatic() bool {
	return s.Kind == Static
}

// Spec is the raw, unresolved speed block as it appears in a scene
// file. Speed may be a number (rotations per hour) or one of the
// real-time hand names; the overload is resolved exactly once, at load
// time, so nothing downstream ever re-inspects raw configuration.
type Spec struct {
	Speed     SpeedValue `json:"speed"`
	Direction string     `json:"direction,omitempty"`
	Format    int        `json:"format,omitempty"`
	Timezone  string     `json:"timezone,omitempty"`
}

// SpeedValue accepts either a JSON number or a string.
type SpeedValue struct {
	Raw string
}

// UnmarshalJSON stores numbers and strings alike as their text form.
func (v *SpeedValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v.Raw = s
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("motion: speed must be a number or string: %s", data)
	}
	v.Raw = strconv.FormatFloat(n, 'g', -1, 64)
	return nil
}

// IsZero reports whether no speed was supplied.
func (v SpeedValue) IsZero() bool {
	return v.Raw == ""
}

// Resolve normalizes a raw spec into a Speed. Resolution order:
//
//  1. absent or zero speed → Static
//  2. one of the hand names → Alias (with timezone and format)
//  3. anything else → Numeric, coerced to a finite number
//
// A negative numeric speed is treated as a direction flip with a
// warning, not an error. A malformed timezone falls back to UTC with a
// warning. Resolve never fails; worst case is a Static speed.
func Resolve(spec *Spec) Speed {
	if spec == nil || spec.Speed.IsZero() {
		return Speed{Kind: Static}
	}

	dir := parseDirection(spec.Direction)

	raw := strings.ToLower(strings.TrimSpace(spec.Speed.Raw))
	switch raw {
	case HandSecond, HandMinute, HandHour:
		return Speed{
			Kind:      Alias,
			Hand:      raw,
			TZOffset:  ParseTimezone(spec.Timezone),
			Format:    parseFormat(spec.Format),
			Direction: dir,
		}
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		logging.Logger().Warn("motion: unusable speed value, treating as static", "speed", spec.Speed.Raw)
		return Speed{Kind: Static}
	}
	if n == 0 {
		return Speed{Kind: Static}
	}
	if n < 0 {
		logging.Logger().Warn("motion: negative speed flips direction", "speed", n)
		n = -n
		dir = -dir
	}
	return Speed{
		Kind:             Numeric,
		RotationsPerHour: n,
		Direction:        dir,
	}
}

func parseDirection(s string) float64 {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cw", "clockwise":
		return Clockwise
	case "ccw", "counterclockwise", "counter-clockwise":
		return CounterClockwise
	default:
		logging.Logger().Warn("motion: unknown direction, assuming clockwise", "direction", s)
		return Clockwise
	}
}

func parseFormat(f int) ClockFormat {
	if f == 24 {
		return Format24
	}
	return Format12
}

package sprinkles

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

// White is the neutral tint (no color modification).
var White = Color{1, 1, 1, 1}

// Range is a min/max output range. Curve samples are normalized to [0, 1];
// consumers map them into a Range via Span.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// NewRange returns a Range with the given bounds.
func NewRange(min, max float32) Range {
	return Range{Min: min, Max: max}
}

// DefaultRange is the [0, 1] range curves default to.
func DefaultRange() Range {
	return Range{Min: 0, Max: 1}
}

// Span returns Max - Min. A span smaller than epsilon returns 1.0 instead of
// 0.0 so that consumers dividing by the span never divide by zero.
func (r Range) Span() float32 {
	span := r.Max - r.Min
	if abs32(span) < epsilon32 {
		return 1.0
	}
	return span
}

// Debug enables stderr diagnostics for asset validation. Off by default;
// never consulted on the per-frame path.
var Debug = false

// epsilon32 matches f32 machine epsilon, the threshold below which tension
// and spans are treated as zero.
const epsilon32 = 1.1920929e-7

// epsilon64 matches f64 machine epsilon, used for constant-curve detection.
const epsilon64 = 2.220446049250313e-16

// lerp32 linearly interpolates between a and b by t.
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// lerpColor linearly interpolates each channel of a and b by t.
func lerpColor(a, b Color, t float32) Color {
	return Color{
		R: lerp32(a.R, b.R, t),
		G: lerp32(a.G, b.G, t),
		B: lerp32(a.B, b.B, t),
		A: lerp32(a.A, b.A, t),
	}
}

// clamp01 clamps t to [0, 1].
func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func pow32(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// sign32 returns -1 for negative values (including -0) and +1 otherwise,
// mirroring IEEE signum so a flat segment keeps a positive slope sign.
func sign32(v float32) float32 {
	if math.Signbit(float64(v)) {
		return -1
	}
	return 1
}

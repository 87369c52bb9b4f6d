package sprinkles

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"gopkg.in/yaml.v3"
)

// GradientInterpolation selects how colors blend between adjacent stops.
type GradientInterpolation uint8

const (
	GradientLinear     GradientInterpolation = iota // per-channel linear blend (default)
	GradientSteps                                   // hold the left stop's color until the next stop
	GradientSmoothstep                              // smoothstep-eased blend
)

// String returns the canonical asset-file name for the interpolation.
func (g GradientInterpolation) String() string {
	switch g {
	case GradientSteps:
		return "Steps"
	case GradientSmoothstep:
		return "Smoothstep"
	default:
		return "Linear"
	}
}

// ParseGradientInterpolation parses the asset-file name of an interpolation.
func ParseGradientInterpolation(s string) (GradientInterpolation, error) {
	switch s {
	case "Steps":
		return GradientSteps, nil
	case "Linear":
		return GradientLinear, nil
	case "Smoothstep":
		return GradientSmoothstep, nil
	default:
		return GradientLinear, fmt.Errorf("unknown gradient interpolation %q", s)
	}
}

// MarshalYAML encodes the interpolation as its canonical name.
func (g GradientInterpolation) MarshalYAML() (any, error) {
	return g.String(), nil
}

// UnmarshalYAML decodes the interpolation from its canonical name.
func (g *GradientInterpolation) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseGradientInterpolation(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// GradientStop is one color stop of a Gradient, at Position in [0, 1].
type GradientStop struct {
	Color    Color   `yaml:"color"`
	Position float32 `yaml:"position"`
}

// Gradient is an ordered sequence of color stops over [0, 1]. Stops are
// assumed sorted by Position. A gradient with zero stops must not be
// constructed; Validate on the owning asset rejects it.
type Gradient struct {
	Stops         []GradientStop        `yaml:"stops"`
	Interpolation GradientInterpolation `yaml:"interpolation,omitempty"`
}

// DefaultGradient returns the black-to-white gradient used when no gradient
// is authored.
func DefaultGradient() Gradient {
	return Gradient{
		Stops: []GradientStop{
			{Color: Color{0, 0, 0, 1}, Position: 0},
			{Color: Color{1, 1, 1, 1}, Position: 1},
		},
	}
}

// WhiteGradient returns a constant opaque-white gradient.
func WhiteGradient() Gradient {
	return Gradient{
		Stops: []GradientStop{
			{Color: White, Position: 0},
			{Color: White, Position: 1},
		},
	}
}

// Sample evaluates the gradient at t (clamped to [0, 1]). A single stop
// returns its color everywhere. An empty gradient returns opaque white as a
// defined fallback rather than panicking.
func (g *Gradient) Sample(t float32) Color {
	if len(g.Stops) == 0 {
		return White
	}
	if len(g.Stops) == 1 {
		return g.Stops[0].Color
	}

	t = clamp01(t)

	leftIdx := 0
	rightIdx := len(g.Stops) - 1
	for i := range g.Stops {
		if g.Stops[i].Position <= t {
			leftIdx = i
		}
	}
	for i := range g.Stops {
		if g.Stops[i].Position >= t {
			rightIdx = i
			break
		}
	}

	left := &g.Stops[leftIdx]
	right := &g.Stops[rightIdx]

	if leftIdx == rightIdx {
		return left.Color
	}
	span := right.Position - left.Position
	if span <= 0 {
		return left.Color
	}

	factor := (t - left.Position) / span
	switch g.Interpolation {
	case GradientSteps:
		return left.Color
	case GradientSmoothstep:
		factor = factor * factor * (3 - 2*factor)
	}
	return lerpColor(left.Color, right.Color, factor)
}

// CacheKey hashes every field that affects the sampled output: stop colors,
// stop positions, and the interpolation mode. Structurally equal gradients
// always hash equal.
func (g *Gradient) CacheKey() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	writeBits := func(bits uint32) {
		binary.LittleEndian.PutUint32(buf[:], bits)
		h.Write(buf[:])
	}
	for i := range g.Stops {
		s := &g.Stops[i]
		writeBits(math.Float32bits(s.Color.R))
		writeBits(math.Float32bits(s.Color.G))
		writeBits(math.Float32bits(s.Color.B))
		writeBits(math.Float32bits(s.Color.A))
		writeBits(math.Float32bits(s.Position))
	}
	h.Write([]byte{byte(g.Interpolation)})
	return h.Sum64()
}

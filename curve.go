package sprinkles

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"gopkg.in/yaml.v3"
)

// CurveMode selects how a segment interpolates between its two control
// points. The mode stored on a point applies to the segment that *ends* at
// that point, not to the point itself.
type CurveMode uint8

const (
	CurveModeDouble       CurveMode = iota // symmetric S-curve split at the segment midpoint (default)
	CurveModeSingle                        // one easing arc across the whole segment
	CurveModeHold                          // hold the left value for the whole segment (step function)
	CurveModeStairs                        // quantized staircase; step count controlled by tension
	CurveModeSmoothStairs                  // staircase with smoothstep transitions between steps
)

// String returns the canonical asset-file name for the mode.
func (m CurveMode) String() string {
	switch m {
	case CurveModeSingle:
		return "SingleCurve"
	case CurveModeHold:
		return "Hold"
	case CurveModeStairs:
		return "Stairs"
	case CurveModeSmoothStairs:
		return "SmoothStairs"
	default:
		return "DoubleCurve"
	}
}

// ParseCurveMode parses the asset-file name of a curve mode.
func ParseCurveMode(s string) (CurveMode, error) {
	switch s {
	case "SingleCurve":
		return CurveModeSingle, nil
	case "DoubleCurve":
		return CurveModeDouble, nil
	case "Hold":
		return CurveModeHold, nil
	case "Stairs":
		return CurveModeStairs, nil
	case "SmoothStairs":
		return CurveModeSmoothStairs, nil
	default:
		return CurveModeDouble, fmt.Errorf("unknown curve mode %q", s)
	}
}

// MarshalYAML encodes the mode as its canonical name.
func (m CurveMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// UnmarshalYAML decodes the mode from its canonical name.
func (m *CurveMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCurveMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// CurveEasing selects the easing family applied within a segment.
type CurveEasing uint8

const (
	CurveEasingPower CurveEasing = iota // power curve; tension controls the exponent (default)
	CurveEasingSine                     // sinusoidal ease
	CurveEasingExpo                     // exponential ease
	CurveEasingCirc                     // circular ease
)

// String returns the canonical asset-file name for the easing.
func (e CurveEasing) String() string {
	switch e {
	case CurveEasingSine:
		return "Sine"
	case CurveEasingExpo:
		return "Expo"
	case CurveEasingCirc:
		return "Circ"
	default:
		return "Power"
	}
}

// ParseCurveEasing parses the asset-file name of an easing family.
func ParseCurveEasing(s string) (CurveEasing, error) {
	switch s {
	case "Power":
		return CurveEasingPower, nil
	case "Sine":
		return CurveEasingSine, nil
	case "Expo":
		return CurveEasingExpo, nil
	case "Circ":
		return CurveEasingCirc, nil
	default:
		return CurveEasingPower, fmt.Errorf("unknown curve easing %q", s)
	}
}

// MarshalYAML encodes the easing as its canonical name.
func (e CurveEasing) MarshalYAML() (any, error) {
	return e.String(), nil
}

// UnmarshalYAML decodes the easing from its canonical name.
func (e *CurveEasing) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCurveEasing(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// CurvePoint is one control point of a CurveTexture. Position is the point's
// location on the [0, 1] axis; Value is the curve's output there. Mode,
// Tension, and Easing shape the segment from the previous point to this one.
type CurvePoint struct {
	Position float32     `yaml:"position"`
	Value    float64     `yaml:"value"`
	Mode     CurveMode   `yaml:"mode,omitempty"`
	Tension  float64     `yaml:"tension,omitempty"`
	Easing   CurveEasing `yaml:"easing,omitempty"`
}

// NewCurvePoint returns a point with default mode, easing, and zero tension.
func NewCurvePoint(position float32, value float64) CurvePoint {
	return CurvePoint{Position: position, Value: value}
}

// WithMode returns a copy of the point with the given segment mode.
func (p CurvePoint) WithMode(mode CurveMode) CurvePoint {
	p.Mode = mode
	return p
}

// WithTension returns a copy of the point with the given tension.
func (p CurvePoint) WithTension(tension float64) CurvePoint {
	p.Tension = tension
	return p
}

// WithEasing returns a copy of the point with the given easing family.
func (p CurvePoint) WithEasing(easing CurveEasing) CurvePoint {
	p.Easing = easing
	return p
}

// CurveTexture is an ordered sequence of control points defining a scalar
// curve over [0, 1]. Points are assumed sorted by Position; callers that
// violate this get a degraded (but crash-free) bracketing, never a panic.
//
// A CurveTexture is an immutable value for the duration of a frame: editors
// replace it wholesale rather than mutating points in place.
type CurveTexture struct {
	// Name is cosmetic only and never affects sampling or the cache key.
	Name   string       `yaml:"name,omitempty"`
	Points []CurvePoint `yaml:"points"`
	// Range maps normalized samples into the consumer's value space.
	// Sample does not apply it; SampleScaled does.
	Range Range `yaml:"range"`
}

// NewCurveTexture returns an unnamed curve over the given points with the
// default [0, 1] output range.
func NewCurveTexture(points []CurvePoint) CurveTexture {
	return CurveTexture{Points: points, Range: DefaultRange()}
}

// DefaultCurve returns the constant-1.0 curve used when no curve is authored.
func DefaultCurve() CurveTexture {
	return CurveTexture{
		Name:   "Constant",
		Points: []CurvePoint{NewCurvePoint(0, 1), NewCurvePoint(1, 1)},
		Range:  DefaultRange(),
	}
}

// WithName returns a copy of the curve with the given cosmetic name.
func (c CurveTexture) WithName(name string) CurveTexture {
	c.Name = name
	return c
}

// WithRange returns a copy of the curve with the given output range.
func (c CurveTexture) WithRange(r Range) CurveTexture {
	c.Range = r
	return c
}

// Sample evaluates the curve at t (clamped to [0, 1]) and returns the
// normalized value. An empty curve samples to 1.0, the neutral multiplier;
// a single point samples to that point's value everywhere.
func (c *CurveTexture) Sample(t float32) float32 {
	if len(c.Points) == 0 {
		return 1.0
	}
	if len(c.Points) == 1 {
		return float32(c.Points[0].Value)
	}

	t = clamp01(t)

	// left = last point at or before t, right = first point at or after t.
	leftIdx := 0
	rightIdx := len(c.Points) - 1
	for i := range c.Points {
		if c.Points[i].Position <= t {
			leftIdx = i
		}
	}
	for i := range c.Points {
		if c.Points[i].Position >= t {
			rightIdx = i
			break
		}
	}

	left := &c.Points[leftIdx]
	right := &c.Points[rightIdx]

	// t sits exactly on a point, or outside the authored range.
	if leftIdx == rightIdx {
		return float32(left.Value)
	}

	segment := right.Position - left.Position
	if segment <= 0 {
		// Duplicate or non-ascending positions; degrade to the left value.
		return float32(left.Value)
	}

	localT := (t - left.Position) / segment

	// Couple tension to the segment's direction so positive tension bulges
	// the same perceptual way whether the segment rises or falls.
	slopeSign := sign32(float32(right.Value - left.Value))
	effectiveTension := float32(right.Tension) * slopeSign
	curvedT := applyCurve(localT, right.Mode, right.Easing, effectiveTension)

	return float32(left.Value + (right.Value-left.Value)*float64(curvedT))
}

// SampleScaled evaluates the curve at t and maps the normalized result
// through the curve's output Range.
func (c *CurveTexture) SampleScaled(t float32) float32 {
	return c.Range.Min + c.Sample(t)*c.Range.Span()
}

// IsConstant reports whether every point shares the first point's value
// (within f64 epsilon). Constant curves never need baking; consumers use
// the fallback texture instead.
func (c *CurveTexture) IsConstant() bool {
	if len(c.Points) < 2 {
		return true
	}
	first := c.Points[0].Value
	for i := range c.Points {
		if math.Abs(c.Points[i].Value-first) >= epsilon64 {
			return false
		}
	}
	return true
}

// CacheKey hashes every field that affects the sampled output: point
// positions, values, modes, tensions, and the output range. Name is
// cosmetic and excluded. Structurally equal curves always hash equal.
func (c *CurveTexture) CacheKey() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	writeBits := func(bits uint32) {
		binary.LittleEndian.PutUint32(buf[:], bits)
		h.Write(buf[:])
	}
	for i := range c.Points {
		p := &c.Points[i]
		writeBits(math.Float32bits(p.Position))
		writeBits(math.Float32bits(float32(p.Value)))
		h.Write([]byte{byte(p.Mode)})
		writeBits(math.Float32bits(float32(p.Tension)))
	}
	writeBits(math.Float32bits(c.Range.Min))
	writeBits(math.Float32bits(c.Range.Max))
	return h.Sum64()
}

// applyCurve maps a local segment parameter in [0, 1] through the segment's
// mode, returning the eased parameter used for the value blend.
func applyCurve(t float32, mode CurveMode, easing CurveEasing, tension float32) float32 {
	switch mode {
	case CurveModeSingle:
		return applyEasing(t, easing, tension)
	case CurveModeDouble:
		if t < 0.5 {
			return applyEasing(t*2, easing, tension) * 0.5
		}
		// Tension sign flips in the second half to keep the S symmetric.
		return 0.5 + applyEasing((t-0.5)*2, easing, -tension)*0.5
	case CurveModeHold:
		return 0
	case CurveModeStairs:
		steps := tensionToSteps(tension)
		return floor32(t*float32(steps)) / float32(maxInt(int(steps)-1, 1))
	case CurveModeSmoothStairs:
		steps := tensionToSteps(tension)
		stepSize := 1.0 / float32(steps)
		currentStep := floor32(t / stepSize)
		localT := (t - currentStep*stepSize) / stepSize
		smoothT := localT * localT * (3 - 2*localT)
		denom := float32(maxInt(int(steps)-1, 1))
		start := currentStep / denom
		end := minf32(currentStep+1, float32(steps)-1) / denom
		return start + (end-start)*smoothT
	default:
		return applyEasing(t, easing, tension)
	}
}

// applyEasing maps t through the easing family. All four families are exact
// identities at intensity 0 and pin f(0)=0, f(1)=1 for any intensity.
func applyEasing(t float32, easing CurveEasing, tension float32) float32 {
	switch easing {
	case CurveEasingSine:
		return applySine(t, tension)
	case CurveEasingExpo:
		return applyExpo(t, tension)
	case CurveEasingCirc:
		return applyCirc(t, tension)
	default:
		return applyPower(t, tension)
	}
}

func applyPower(t, tension float32) float32 {
	if abs32(tension) < epsilon32 {
		return t
	}
	exp := 1.0 / (1.0 - abs32(tension)*0.999)
	if tension > 0 {
		return pow32(t, exp)
	}
	return 1 - pow32(1-t, exp)
}

func applySine(t, tension float32) float32 {
	intensity := abs32(tension)
	if intensity < epsilon32 {
		return t
	}
	var eased float32
	if tension >= 0 {
		eased = 1 - float32(math.Cos(float64(t)*math.Pi*0.5))
	} else {
		eased = float32(math.Sin(float64(t) * math.Pi * 0.5))
	}
	return t + (eased-t)*intensity
}

func applyExpo(t, tension float32) float32 {
	intensity := abs32(tension)
	if intensity < epsilon32 {
		return t
	}
	var eased float32
	if tension >= 0 {
		if t <= 0 {
			eased = 0
		} else {
			eased = pow32(2, 10*(t-1))
		}
	} else {
		if t >= 1 {
			eased = 1
		} else {
			eased = 1 - pow32(2, -10*t)
		}
	}
	return t + (eased-t)*intensity
}

func applyCirc(t, tension float32) float32 {
	intensity := abs32(tension)
	if intensity < epsilon32 {
		return t
	}
	var eased float32
	if tension >= 0 {
		eased = 1 - float32(math.Sqrt(float64(1-t*t)))
	} else {
		eased = float32(math.Sqrt(float64(1 - (1-t)*(1-t))))
	}
	return t + (eased-t)*intensity
}

// tensionToSteps maps tension in [0, 1] to a stair count in [2, 66].
func tensionToSteps(tension float32) uint32 {
	t := clamp01(tension)
	return 2 + uint32(64*t)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

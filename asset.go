package sprinkles

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// EmitterTime is the per-emitter timing configuration. It is supplied by
// the asset and immutable for the duration of a frame.
type EmitterTime struct {
	// Lifetime is the emission cycle length in seconds. Expected > 0;
	// non-positive lifetimes degrade to phase 0 rather than erroring.
	Lifetime float32 `yaml:"lifetime"`
	// LifetimeRandomness shortens individual particle lifetimes by up to
	// this fraction.
	LifetimeRandomness float32 `yaml:"lifetime_randomness,omitempty"`
	// Delay is the pre-emission wait at the start of each cycle, in seconds.
	Delay float32 `yaml:"delay,omitempty"`
	// OneShot stops emission after a single completed cycle.
	OneShot bool `yaml:"one_shot,omitempty"`
	// Explosiveness compresses particle spawn times toward the start of
	// the cycle: 0 spreads them evenly, 1 spawns all at once.
	Explosiveness float32 `yaml:"explosiveness,omitempty"`
	// SpawnTimeRandomness jitters each particle's scheduled spawn phase.
	SpawnTimeRandomness float32 `yaml:"spawn_time_randomness,omitempty"`
	// FixedFPS, when non-zero, decouples simulation stepping from the
	// render frame rate by advancing in whole 1/FixedFPS increments.
	FixedFPS uint32 `yaml:"fixed_fps,omitempty"`
	// FixedSeed, when set, makes the emitter's randomness reproducible.
	FixedSeed *uint32 `yaml:"fixed_seed,omitempty"`
}

// DefaultEmitterTime returns the timing defaults: a one-second looping
// cycle with no delay.
func DefaultEmitterTime() EmitterTime {
	return EmitterTime{Lifetime: 1}
}

// TotalDuration returns the full cycle length: delay plus lifetime.
func (t *EmitterTime) TotalDuration() float32 {
	return t.Delay + t.Lifetime
}

// UnmarshalYAML decodes the timing block, applying defaults for absent
// fields.
func (t *EmitterTime) UnmarshalYAML(value *yaml.Node) error {
	type raw EmitterTime
	out := raw(DefaultEmitterTime())
	if err := value.Decode(&out); err != nil {
		return err
	}
	*t = EmitterTime(out)
	return nil
}

// EmitterEmission controls how many particles an emitter owns and how the
// spawn rate varies across the cycle.
type EmitterEmission struct {
	// ParticlesAmount is the emitter's fixed particle pool size.
	ParticlesAmount uint32 `yaml:"particles_amount"`
	// RateCurve optionally modulates spawn density across the cycle.
	RateCurve *CurveTexture `yaml:"rate_curve,omitempty"`
}

// DefaultEmitterEmission returns the emission defaults.
func DefaultEmitterEmission() EmitterEmission {
	return EmitterEmission{ParticlesAmount: 8}
}

// UnmarshalYAML decodes the emission block, applying defaults for absent
// fields.
func (e *EmitterEmission) UnmarshalYAML(value *yaml.Node) error {
	type raw EmitterEmission
	out := raw(DefaultEmitterEmission())
	if err := value.Decode(&out); err != nil {
		return err
	}
	*e = EmitterEmission(out)
	return nil
}

// EmitterScale controls per-particle scale: a random base in [Min, Max]
// optionally modulated over the particle's life by Curve.
type EmitterScale struct {
	Min   float32       `yaml:"min"`
	Max   float32       `yaml:"max"`
	Curve *CurveTexture `yaml:"curve,omitempty"`
}

// DefaultEmitterScale returns unit scale with no curve.
func DefaultEmitterScale() EmitterScale {
	return EmitterScale{Min: 1, Max: 1}
}

// UnmarshalYAML decodes the scale block, applying defaults for absent
// fields.
func (s *EmitterScale) UnmarshalYAML(value *yaml.Node) error {
	type raw EmitterScale
	out := raw(DefaultEmitterScale())
	if err := value.Decode(&out); err != nil {
		return err
	}
	*s = EmitterScale(out)
	return nil
}

// EmitterColors controls per-particle color: a solid initial tint, or a
// gradient evaluated over the particle's life, with an optional alpha
// curve on top.
type EmitterColors struct {
	Initial    Color         `yaml:"initial"`
	Gradient   *Gradient     `yaml:"gradient,omitempty"`
	AlphaCurve *CurveTexture `yaml:"alpha_curve,omitempty"`
}

// DefaultEmitterColors returns an opaque-white tint with no gradient.
func DefaultEmitterColors() EmitterColors {
	return EmitterColors{Initial: White}
}

// UnmarshalYAML decodes the colors block, applying defaults for absent
// fields.
func (c *EmitterColors) UnmarshalYAML(value *yaml.Node) error {
	type raw EmitterColors
	out := raw(DefaultEmitterColors())
	if err := value.Decode(&out); err != nil {
		return err
	}
	*c = EmitterColors(out)
	return nil
}

// EmitterData is one emitter of a particle system asset.
type EmitterData struct {
	Name     string          `yaml:"name"`
	Enabled  bool            `yaml:"enabled"`
	Time     EmitterTime     `yaml:"time"`
	Emission EmitterEmission `yaml:"emission"`
	Scale    EmitterScale    `yaml:"scale"`
	Colors   EmitterColors   `yaml:"colors"`
}

// DefaultEmitterData returns an enabled emitter with all block defaults.
func DefaultEmitterData() EmitterData {
	return EmitterData{
		Name:     "Emitter",
		Enabled:  true,
		Time:     DefaultEmitterTime(),
		Emission: DefaultEmitterEmission(),
		Scale:    DefaultEmitterScale(),
		Colors:   DefaultEmitterColors(),
	}
}

// UnmarshalYAML decodes an emitter, applying defaults for absent fields.
func (e *EmitterData) UnmarshalYAML(value *yaml.Node) error {
	type raw EmitterData
	out := raw(DefaultEmitterData())
	if err := value.Decode(&out); err != nil {
		return err
	}
	*e = EmitterData(out)
	return nil
}

// ParticleSystemAsset is the root of a declarative effect asset.
type ParticleSystemAsset struct {
	Emitters []EmitterData `yaml:"emitters"`
}

// LoadParticleSystemAsset parses a YAML effect asset and validates it.
func LoadParticleSystemAsset(data []byte) (*ParticleSystemAsset, error) {
	var asset ParticleSystemAsset
	if err := yaml.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("failed to parse particle system asset: %w", err)
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Marshal serializes the asset back to YAML.
func (a *ParticleSystemAsset) Marshal() ([]byte, error) {
	return yaml.Marshal(a)
}

// Validate rejects structurally unusable assets: no emitters, or a
// gradient with zero stops. Cosmetic anomalies (non-ascending curve
// points) only warn under Debug; sampling degrades gracefully on them.
func (a *ParticleSystemAsset) Validate() error {
	if len(a.Emitters) == 0 {
		return fmt.Errorf("particle system asset contains no emitters")
	}
	for i := range a.Emitters {
		e := &a.Emitters[i]
		if e.Colors.Gradient != nil && len(e.Colors.Gradient.Stops) == 0 {
			return fmt.Errorf("emitter %q: gradient has no stops", e.Name)
		}
		if Debug {
			for _, c := range []*CurveTexture{e.Emission.RateCurve, e.Scale.Curve, e.Colors.AlphaCurve} {
				if c != nil && !pointsAscending(c.Points) {
					log.Printf("sprinkles: emitter %q: curve %q has non-ascending points", e.Name, c.Name)
				}
			}
		}
	}
	return nil
}

func pointsAscending(points []CurvePoint) bool {
	for i := 1; i < len(points); i++ {
		if points[i].Position < points[i-1].Position {
			return false
		}
	}
	return true
}

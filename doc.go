// Package sprinkles is the simulation core of a declarative particle-effects
// engine for [Ebitengine] hosts.
//
// An effect asset describes emitters with scalar curves, color gradients,
// and timing configuration; this package interprets that asset at runtime.
// It deliberately excludes rendering; the host's GPU stage consumes the
// outputs defined here.
//
// # Curves and gradients
//
// [CurveTexture] evaluates an ordered set of control points with five
// interpolation modes and four easing families; [Gradient] evaluates color
// stops with step, linear, or smoothstep blending. Both are pure values:
//
//	curve := sprinkles.NewCurveTexture([]sprinkles.CurvePoint{
//		sprinkles.NewCurvePoint(0, 1),
//		sprinkles.NewCurvePoint(1, 0).WithEasing(sprinkles.CurveEasingExpo),
//	})
//	v := curve.Sample(0.3)
//
// # Baked textures
//
// [CurveTextureCache] and [GradientTextureCache] bake curves and gradients
// into 256x1 lookup textures, deduplicated by content hash: two emitters
// using structurally identical curves share one texture. [FallbackTexture]
// covers the no-curve and constant-curve cases.
//
// # Emission timing
//
// [EmitterRuntime] is the per-emitter clock. Each frame the driver calls
// [EmitterRuntime.Advance] with the wall-clock delta; the runtime handles
// fixed-FPS stepping, cycle wrap, one-shot completion, and produces the
// [SimulationStep] queue the GPU stage consumes. [ComputePhase] and
// [IsPastDelay] answer progress queries without mutating state.
//
// # Assets and previews
//
// [LoadParticleSystemAsset] parses the YAML effect asset. [Preview] runs a
// CPU reference simulation of one emitter for editor-style previews, and
// [CurveTexture.TweenFunc] bridges authored curves into [gween] easings.
//
// The whole package is single-threaded and synchronous: all state advances
// once per simulation tick on one calling thread.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package sprinkles

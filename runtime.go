package sprinkles

import (
	"math"
	"time"
)

// SimulationStep describes one discrete simulation advance for the GPU
// stage to apply. The emitter runtime is the sole producer; steps are
// immutable once produced.
type SimulationStep struct {
	// PrevSystemTime is the emitter time at the start of this step.
	PrevSystemTime float32
	// SystemTime is the emitter time at the end of this step.
	SystemTime float32
	// Cycle is the emission cycle index after this step.
	Cycle uint32
	// DeltaTime is the duration of this step in seconds.
	DeltaTime float32
	// ClearRequested asks the simulation stage to wipe existing particles
	// before applying this step.
	ClearRequested bool
}

// EmitterRuntime is the mutable per-emitter clock. It is owned by the
// simulation driver, advanced once per frame on a single thread, and
// destroyed with the owning particle system.
type EmitterRuntime struct {
	// Emitting reports whether the emitter is actively spawning.
	Emitting bool
	// SystemTime is the current simulation time in seconds.
	SystemTime float32
	// PrevSystemTime is the simulation time from the previous step.
	PrevSystemTime float32
	// Cycle counts completed delay+lifetime periods since the last reset.
	Cycle uint32
	// AccumulatedDelta carries sub-step remainders for fixed-FPS stepping.
	AccumulatedDelta float32
	// RandomSeed drives the emitter's particle randomness.
	RandomSeed uint32
	// OneShotCompleted is set once a one-shot emitter finishes its cycle.
	OneShotCompleted bool
	// ClearRequested is consumed by the next produced step.
	ClearRequested bool
	// EmitterIndex is this emitter's index within the owning asset.
	EmitterIndex int

	steps []SimulationStep
}

// NewEmitterRuntime creates the runtime for the emitter at the given asset
// index, emitting immediately. With a fixedSeed the emitter behaves
// deterministically; otherwise the seed is time-derived.
func NewEmitterRuntime(emitterIndex int, fixedSeed *uint32) *EmitterRuntime {
	return &EmitterRuntime{
		Emitting:     true,
		RandomSeed:   seedOr(fixedSeed),
		EmitterIndex: emitterIndex,
	}
}

// Play starts or resumes emission. The current system time is kept, so a
// paused emitter continues where it left off.
func (e *EmitterRuntime) Play() {
	e.Emitting = true
	e.OneShotCompleted = false
}

// Stop halts emission and resets all timing state. The next produced step
// carries ClearRequested so the simulation stage wipes existing particles.
// The seed is regenerated from fixedSeed, or freshly if nil.
func (e *EmitterRuntime) Stop(fixedSeed *uint32) {
	e.Emitting = false
	e.SystemTime = 0
	e.PrevSystemTime = 0
	e.Cycle = 0
	e.AccumulatedDelta = 0
	e.RandomSeed = seedOr(fixedSeed)
	e.OneShotCompleted = false
	e.ClearRequested = true
	e.steps = e.steps[:0]
}

// Restart stops and immediately resumes emission from the beginning.
func (e *EmitterRuntime) Restart(fixedSeed *uint32) {
	e.Stop(fixedSeed)
	e.Emitting = true
}

// Seek jumps the emitter to the given time without producing a step.
// Cycle and the fixed-FPS accumulator are deliberately left untouched:
// scrubbing a preview does not care about cycle-dependent randomness.
func (e *EmitterRuntime) Seek(t float32) {
	e.SystemTime = t
	e.PrevSystemTime = t
}

// SystemPhase returns the current emission phase in [0, 1].
func (e *EmitterRuntime) SystemPhase(t *EmitterTime) float32 {
	return ComputePhase(e.SystemTime, t)
}

// PrevSystemPhase returns the emission phase at the previous step.
func (e *EmitterRuntime) PrevSystemPhase(t *EmitterTime) float32 {
	return ComputePhase(e.PrevSystemTime, t)
}

// PastDelay reports whether the emitter has passed its pre-emission delay
// within the current cycle.
func (e *EmitterRuntime) PastDelay(t *EmitterTime) bool {
	return IsPastDelay(e.SystemTime, t)
}

// PendingSteps returns the steps produced since the last drain. The slice
// is owned by the runtime; the GPU stage consumes it via DrainSteps.
func (e *EmitterRuntime) PendingSteps() []SimulationStep {
	return e.steps
}

// DrainSteps returns the pending steps and clears the queue.
func (e *EmitterRuntime) DrainSteps() []SimulationStep {
	steps := e.steps
	e.steps = nil
	return steps
}

// Advance moves the clock forward by delta seconds, producing zero or more
// simulation steps. With FixedFPS set, delta accumulates and the clock
// advances only in whole 1/FixedFPS increments, carrying the remainder, so
// emission timing is independent of the render frame rate.
//
// Crossing a multiple of the total cycle duration increments Cycle; a
// one-shot emitter then stops unless forceLoop overrides it. A negative or
// zero delta is a caller contract violation and advances nothing.
//
// The returned slice is the newly produced tail of PendingSteps.
func (e *EmitterRuntime) Advance(delta float32, t *EmitterTime, forceLoop bool) []SimulationStep {
	if !e.Emitting || delta <= 0 {
		return nil
	}
	produced := len(e.steps)
	if t.FixedFPS > 0 {
		step := 1.0 / float32(t.FixedFPS)
		e.AccumulatedDelta += delta
		for e.AccumulatedDelta >= step && e.Emitting {
			e.AccumulatedDelta -= step
			e.advanceBy(step, t, forceLoop)
		}
	} else {
		e.advanceBy(delta, t, forceLoop)
	}
	return e.steps[produced:]
}

func (e *EmitterRuntime) advanceBy(dt float32, t *EmitterTime, forceLoop bool) {
	e.PrevSystemTime = e.SystemTime
	e.SystemTime += dt

	total := t.TotalDuration()
	if total > 0 {
		prevCycles := uint32(e.PrevSystemTime / total)
		curCycles := uint32(e.SystemTime / total)
		if curCycles > prevCycles {
			e.Cycle += curCycles - prevCycles
			if t.OneShot && !forceLoop {
				e.OneShotCompleted = true
				e.Emitting = false
			}
		}
	}

	e.steps = append(e.steps, SimulationStep{
		PrevSystemTime: e.PrevSystemTime,
		SystemTime:     e.SystemTime,
		Cycle:          e.Cycle,
		DeltaTime:      dt,
		ClearRequested: e.ClearRequested,
	})
	e.ClearRequested = false
}

// ComputePhase returns the emission phase in [0, 1] for the given time:
// the normalized position within the lifetime window of the current cycle,
// or 0 while still inside the delay window. Degenerate timing (lifetime or
// total duration <= 0) returns 0.
func ComputePhase(t float32, et *EmitterTime) float32 {
	if et.Lifetime <= 0 {
		return 0
	}
	total := et.TotalDuration()
	if total <= 0 {
		return 0
	}
	timeInCycle := mod32(t, total)
	if timeInCycle < et.Delay {
		return 0
	}
	return (timeInCycle - et.Delay) / et.Lifetime
}

// IsPastDelay reports whether the given time is past the pre-emission
// delay within its cycle. Degenerate timing returns true: there is no
// delay to wait for.
func IsPastDelay(t float32, et *EmitterTime) bool {
	total := et.TotalDuration()
	if total <= 0 {
		return true
	}
	return mod32(t, total) >= et.Delay
}

// SystemRuntime is the playback state shared by all emitters of one
// particle system.
type SystemRuntime struct {
	// Paused halts the whole simulation without resetting emitter clocks.
	Paused bool
	// ForceLoop makes one-shot emitters loop continuously, which editors
	// want while an effect is being tuned.
	ForceLoop bool
	// GlobalSeed seeds all emitters of the system.
	GlobalSeed uint32
}

// NewSystemRuntime returns an unpaused runtime with ForceLoop enabled and
// a fresh time-derived seed.
func NewSystemRuntime() *SystemRuntime {
	return &SystemRuntime{ForceLoop: true, GlobalSeed: randSeed()}
}

// Pause halts the particle simulation.
func (s *SystemRuntime) Pause() {
	s.Paused = true
}

// Resume continues the particle simulation.
func (s *SystemRuntime) Resume() {
	s.Paused = false
}

// Toggle switches between paused and playing.
func (s *SystemRuntime) Toggle() {
	s.Paused = !s.Paused
}

func seedOr(fixed *uint32) uint32 {
	if fixed != nil {
		return *fixed
	}
	return randSeed()
}

func randSeed() uint32 {
	return uint32(time.Now().UnixNano() & 0xFFFFFFFF)
}

func mod32(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}

package sprinkles

import "math/rand/v2"

// PreviewParticle is the visible state of one preview particle slot,
// exposed for host rendering.
type PreviewParticle struct {
	Active   bool
	Age      float32
	Lifetime float32
	Scale    float32
	Color    Color
}

// previewSlot holds the per-slot schedule alongside the visible state.
type previewSlot struct {
	PreviewParticle
	spawnPhase    float32 // scheduled spawn position within the emission window
	nextSpawnTime float32 // absolute emitter time of the next spawn
	baseScale     float32
}

// Preview is a CPU reference simulation of a single emitter. It consumes
// the SimulationSteps produced by an EmitterRuntime and evaluates the
// emitter's curves and gradient per particle, so an effect can be
// previewed without the GPU stage.
//
// Slots are fixed, mirroring the GPU particle buffer: each of the
// emitter's ParticlesAmount slots has a scheduled spawn phase, spawns when
// the clock reaches it, and frees itself when its lifetime expires.
type Preview struct {
	emitter *EmitterData
	rng     *rand.Rand
	slots   []previewSlot
}

// NewPreview creates a preview for the emitter, deterministic for a given
// seed. Spawn phases spread evenly across the cycle, compressed toward the
// start by Explosiveness and jittered by SpawnTimeRandomness.
func NewPreview(emitter *EmitterData, seed uint32) *Preview {
	amount := int(emitter.Emission.ParticlesAmount)
	if amount <= 0 {
		amount = 1
	}
	p := &Preview{
		emitter: emitter,
		rng:     rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9E3779B97F4A7C15)),
		slots:   make([]previewSlot, amount),
	}
	t := &emitter.Time
	for i := range p.slots {
		s := &p.slots[i]
		base := float32(i) / float32(amount) * (1 - t.Explosiveness)
		jitter := p.rng.Float32() * t.SpawnTimeRandomness
		s.spawnPhase = clamp01(base + jitter)
		s.nextSpawnTime = t.Delay + s.spawnPhase*t.Lifetime
	}
	return p
}

// Step applies a batch of simulation steps in order.
func (p *Preview) Step(steps []SimulationStep) {
	for i := range steps {
		p.applyStep(&steps[i])
	}
}

func (p *Preview) applyStep(step *SimulationStep) {
	t := &p.emitter.Time
	if step.ClearRequested {
		p.clear(step.PrevSystemTime)
	}

	// Age out expired particles first so their slots can respawn below.
	for i := range p.slots {
		s := &p.slots[i]
		if !s.Active {
			continue
		}
		s.Age += step.DeltaTime
		if s.Age >= s.Lifetime {
			s.Active = false
			continue
		}
		p.refresh(s)
	}

	total := t.TotalDuration()
	for i := range p.slots {
		s := &p.slots[i]
		for s.nextSpawnTime <= step.SystemTime {
			if !s.Active {
				p.spawn(s)
			}
			if total <= 0 {
				break
			}
			s.nextSpawnTime += total
		}
	}
}

// clear deactivates every slot and reschedules spawns relative to the
// given emitter time (a Stop or Restart happened upstream).
func (p *Preview) clear(now float32) {
	t := &p.emitter.Time
	total := t.TotalDuration()
	for i := range p.slots {
		s := &p.slots[i]
		s.Active = false
		s.nextSpawnTime = t.Delay + s.spawnPhase*t.Lifetime
		if total > 0 {
			s.nextSpawnTime += floor32(now/total) * total
			if s.nextSpawnTime < now {
				s.nextSpawnTime += total
			}
		}
	}
}

func (p *Preview) spawn(s *previewSlot) {
	t := &p.emitter.Time
	s.Active = true
	s.Age = 0
	s.Lifetime = t.Lifetime * (1 - t.LifetimeRandomness*p.rng.Float32())
	if s.Lifetime <= 0 {
		s.Lifetime = epsilon32
	}
	s.baseScale = lerp32(p.emitter.Scale.Min, p.emitter.Scale.Max, p.rng.Float32())
	p.refresh(s)
}

// refresh evaluates the emitter's curves and gradient at the particle's
// normalized age.
func (p *Preview) refresh(s *previewSlot) {
	age := clamp01(s.Age / s.Lifetime)

	s.Scale = s.baseScale
	if curve := p.emitter.Scale.Curve; curve != nil {
		s.Scale *= curve.SampleScaled(age)
	}

	if g := p.emitter.Colors.Gradient; g != nil {
		s.Color = g.Sample(age)
	} else {
		s.Color = p.emitter.Colors.Initial
	}
	if curve := p.emitter.Colors.AlphaCurve; curve != nil {
		s.Color.A *= curve.SampleScaled(age)
	}
}

// Alive returns the number of active particles.
func (p *Preview) Alive() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}

// Particles returns the visible state of every slot, active or not. The
// returned snapshot is safe for the host to retain.
func (p *Preview) Particles() []PreviewParticle {
	out := make([]PreviewParticle, len(p.slots))
	for i := range p.slots {
		out[i] = p.slots[i].PreviewParticle
	}
	return out
}

package sprinkles

import "testing"

func previewEmitter() EmitterData {
	e := DefaultEmitterData()
	e.Emission.ParticlesAmount = 10
	return e
}

// drive advances the runtime and feeds every produced step to the preview.
func drive(p *Preview, e *EmitterRuntime, cfg *EmitterTime, delta float32, frames int) {
	for i := 0; i < frames; i++ {
		p.Step(e.Advance(delta, cfg, true))
	}
}

func TestPreviewSpawnsOverCycle(t *testing.T) {
	emitter := previewEmitter()
	rt := NewEmitterRuntime(0, nil)
	p := NewPreview(&emitter, 1)

	drive(p, rt, &emitter.Time, 0.1, 3)
	early := p.Alive()
	if early == 0 {
		t.Fatal("no particles spawned early in the cycle")
	}
	if early == int(emitter.Emission.ParticlesAmount) {
		t.Error("with zero explosiveness the whole pool should not spawn at once")
	}

	drive(p, rt, &emitter.Time, 0.1, 8)
	if p.Alive() != int(emitter.Emission.ParticlesAmount) {
		t.Errorf("alive after a full cycle = %d, want %d", p.Alive(), emitter.Emission.ParticlesAmount)
	}
}

func TestPreviewExplosivenessSpawnsTogether(t *testing.T) {
	emitter := previewEmitter()
	emitter.Time.Explosiveness = 1
	rt := NewEmitterRuntime(0, nil)
	p := NewPreview(&emitter, 1)

	p.Step(rt.Advance(0.01, &emitter.Time, true))
	if p.Alive() != int(emitter.Emission.ParticlesAmount) {
		t.Errorf("alive = %d immediately, want all %d (explosiveness 1)",
			p.Alive(), emitter.Emission.ParticlesAmount)
	}
}

func TestPreviewParticlesExpireAndRespawn(t *testing.T) {
	emitter := previewEmitter()
	emitter.Time.Explosiveness = 1
	rt := NewEmitterRuntime(0, nil)
	p := NewPreview(&emitter, 1)

	// Everything spawns at the start of the cycle and ages together.
	drive(p, rt, &emitter.Time, 0.05, 19)
	for _, part := range p.Particles() {
		if !part.Active || part.Age < 0.85 {
			t.Fatalf("expected old active particles near end of cycle, got %+v", part)
		}
	}

	// Crossing the cycle boundary kills the old generation and spawns fresh.
	p.Step(rt.Advance(0.2, &emitter.Time, true))
	for _, part := range p.Particles() {
		if !part.Active {
			t.Fatal("particle should have respawned in the next cycle")
		}
		if part.Age > 0.5 {
			t.Errorf("age after cycle wrap = %v, want a fresh particle", part.Age)
		}
	}
}

func TestPreviewDeterministicForSeed(t *testing.T) {
	emitter := previewEmitter()
	emitter.Time.LifetimeRandomness = 0.5
	emitter.Scale.Min, emitter.Scale.Max = 0.5, 2

	run := func(seed uint32) []PreviewParticle {
		rt := NewEmitterRuntime(0, nil)
		p := NewPreview(&emitter, seed)
		drive(p, rt, &emitter.Time, 0.05, 10)
		return p.Particles()
	}

	a, b := run(99), run(99)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("slot %d differs across identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := run(7)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical particle state")
	}
}

func TestPreviewClearStepResets(t *testing.T) {
	emitter := previewEmitter()
	rt := NewEmitterRuntime(0, nil)
	p := NewPreview(&emitter, 1)

	drive(p, rt, &emitter.Time, 0.1, 5)
	if p.Alive() == 0 {
		t.Fatal("expected live particles before restart")
	}

	rt.Restart(nil)
	p.Step(rt.Advance(0.001, &emitter.Time, true))
	// The clear wiped the pool; only slots scheduled at the very start of
	// the cycle may have respawned within the first millisecond.
	if p.Alive() > 1 {
		t.Errorf("alive right after restart = %d, want at most 1", p.Alive())
	}
}

func TestPreviewEvaluatesCurvesAndGradient(t *testing.T) {
	emitter := previewEmitter()
	emitter.Time.Explosiveness = 1
	scaleCurve := linearCurve(1, 0)
	g := redToBlue()
	emitter.Scale = EmitterScale{Min: 2, Max: 2, Curve: &scaleCurve}
	emitter.Colors.Gradient = &g

	rt := NewEmitterRuntime(0, nil)
	p := NewPreview(&emitter, 1)

	// All particles spawn at once; advance to half their lifetime.
	p.Step(rt.Advance(0.0001, &emitter.Time, true))
	p.Step(rt.Advance(0.5, &emitter.Time, true))

	for _, part := range p.Particles() {
		if !part.Active {
			continue
		}
		age := part.Age / part.Lifetime
		if age < 0.45 || age > 0.55 {
			continue
		}
		if part.Scale < 0.5 || part.Scale > 1.5 {
			t.Errorf("scale at mid-life = %v, want ~1 (base 2 * curve ~0.5)", part.Scale)
		}
		if part.Color.R < 0.3 || part.Color.R > 0.7 {
			t.Errorf("color at mid-life = %v, want red ~0.5", part.Color)
		}
		return
	}
	t.Fatal("no particle found at mid-life")
}

func TestPreviewZeroAmountGetsOneSlot(t *testing.T) {
	emitter := DefaultEmitterData()
	emitter.Emission.ParticlesAmount = 0
	p := NewPreview(&emitter, 1)
	if len(p.Particles()) != 1 {
		t.Errorf("slot count = %d, want 1", len(p.Particles()))
	}
}

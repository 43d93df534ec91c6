// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"math"
	"testing"
	"time"
)

type gain struct {
	value  float64
	writes []float64
}

func (g *gain) Gain() float64 { return g.value }

func (g *gain) SetGain(v float64) {
	g.value = v
	g.writes = append(g.writes, v)
}

const tick = 10 * time.Millisecond

func run(r *Ramp, g *gain, maxTicks int) int {
	if r.Start(g) {
		return 0
	}
	for i := 1; i <= maxTicks; i++ {
		if r.Step(g, tick) {
			return i
		}
	}
	return -1
}

func TestRamp_ImmediateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		start    float64
		target   float64
		duration time.Duration
	}{
		{name: "zero duration", start: 0, target: 0.7, duration: 0},
		{name: "negative duration", start: 0.3, target: 0, duration: -time.Second},
		{name: "already at target", start: 0.5, target: 0.5004, duration: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := &gain{value: tt.start}
			r := New(tt.target, tt.duration, nil)
			if !r.Start(g) {
				t.Fatal("Start() = false, want immediate completion")
			}
			if g.value != tt.target {
				t.Errorf("gain = %v, want %v", g.value, tt.target)
			}
			if !r.Done() {
				t.Error("Done() = false after immediate completion")
			}
		})
	}
}

func TestRamp_AttackIsMonotonicAndTimely(t *testing.T) {
	t.Parallel()

	g := &gain{}
	r := New(0.8, 500*time.Millisecond, nil)

	ticks := run(r, g, 1000)
	if ticks < 0 {
		t.Fatal("ramp never finished")
	}
	if ticks != 50 {
		t.Errorf("finished after %d ticks, want 50", ticks)
	}

	prev := 0.0
	for i, w := range g.writes {
		if w < prev {
			t.Fatalf("write %d = %v decreased from %v", i, w, prev)
		}
		prev = w
	}
	if g.value != 0.8 {
		t.Errorf("final gain = %v, want 0.8", g.value)
	}
}

func TestRamp_ReleaseIsMonotonic(t *testing.T) {
	t.Parallel()

	g := &gain{value: 0.6}
	r := New(0, 300*time.Millisecond, nil)

	if ticks := run(r, g, 1000); ticks != 30 {
		t.Errorf("finished after %d ticks, want 30", ticks)
	}

	prev := 0.6
	for i, w := range g.writes {
		if w > prev {
			t.Fatalf("write %d = %v increased from %v", i, w, prev)
		}
		prev = w
	}
	if g.value != 0 {
		t.Errorf("final gain = %v, want 0", g.value)
	}
}

func TestRamp_LinearMidpoint(t *testing.T) {
	t.Parallel()

	g := &gain{}
	r := New(1, 100*time.Millisecond, nil)
	r.Start(g)

	for range 5 {
		r.Step(g, tick)
	}
	if math.Abs(g.value-0.5) > 1e-9 {
		t.Errorf("gain at half time = %v, want 0.5", g.value)
	}
	if r.Elapsed() != 50*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 50ms", r.Elapsed())
	}
}

func TestRamp_CeilingIsReadEveryStep(t *testing.T) {
	t.Parallel()

	ceiling := 1.0
	g := &gain{}
	r := New(0.9, 100*time.Millisecond, func() float64 { return ceiling })
	r.Start(g)

	for range 3 {
		r.Step(g, tick)
	}
	if g.value > 0.3 {
		t.Fatalf("gain = %v before ceiling change, want <= 0.3", g.value)
	}

	ceiling = 0.2
	r.Step(g, tick)
	if g.value != 0.2 {
		t.Errorf("gain after ceiling drop = %v, want 0.2", g.value)
	}

	// at the ceiling the ramp finishes on the capped target
	if !r.Step(g, tick) {
		t.Error("Step() = false, want completion at the ceiling")
	}
	if g.value != 0.2 {
		t.Errorf("final gain = %v, want 0.2", g.value)
	}
}

func TestRamp_UncappedReachesLiteralTarget(t *testing.T) {
	t.Parallel()

	g := &gain{value: 0.1}
	r := New(0.9, 50*time.Millisecond, nil)

	run(r, g, 100)
	if g.value != 0.9 {
		t.Errorf("final gain = %v, want 0.9", g.value)
	}
}

func TestRamp_FollowRetargets(t *testing.T) {
	t.Parallel()

	level := 0.5
	g := &gain{}
	r := Follow(func() float64 { return level }, 100*time.Millisecond)

	if r.Start(g) {
		t.Fatal("Start() = true, want running ramp")
	}
	for range 2 {
		r.Step(g, tick)
	}
	if math.Abs(g.value-0.1) > 1e-9 {
		t.Fatalf("gain after 20ms = %v, want 0.1", g.value)
	}

	level = 0.8
	if got := r.Target(); got != 0.8 {
		t.Errorf("Target() = %v, want 0.8", got)
	}

	for i := 0; i < 100 && !r.Step(g, tick); i++ {
	}
	for i := 1; i < len(g.writes); i++ {
		if g.writes[i] < g.writes[i-1] {
			t.Errorf("writes not monotonic at %d: %v", i, g.writes)
		}
	}
	if g.value != 0.8 {
		t.Errorf("final gain = %v, want 0.8", g.value)
	}
}

func TestRamp_StepAfterDoneIsNoop(t *testing.T) {
	t.Parallel()

	g := &gain{}
	r := New(0.5, 0, nil)
	r.Start(g)
	writes := len(g.writes)

	if !r.Step(g, tick) {
		t.Error("Step() on finished ramp = false")
	}
	if len(g.writes) != writes {
		t.Error("Step() on finished ramp wrote gain")
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	for s, want := range map[State]string{None: "none", Attack: "attack", Release: "release", State(9): "State(9)"} {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

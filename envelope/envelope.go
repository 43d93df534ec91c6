// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/audpool/utils"
)

// Epsilon is the distance at which a gain counts as having reached its target.
const Epsilon = 0.001

// State is the fade phase recorded on a playback slot.
type State int

const (
	None State = iota
	Attack
	Release
)

func (s State) String() string {
	switch s {
	case None:
		return "none"
	case Attack:
		return "attack"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Gain is the live gain of whatever the ramp drives.
type Gain interface {
	Gain() float64
	SetGain(g float64)
}

// Ceiling returns the current upper bound for a capped ramp.
type Ceiling func() float64

// Ramp is one linear fade.
type Ramp struct {
	target   float64
	follow   Ceiling
	duration time.Duration
	ceiling  Ceiling
	from     float64
	elapsed  time.Duration
	done     bool
}

// New returns a ramp towards target over duration. A nil ceiling makes it
// uncapped.
func New(target float64, duration time.Duration, ceiling Ceiling) *Ramp {
	return &Ramp{target: target, duration: duration, ceiling: ceiling}
}

// Follow returns an uncapped ramp whose target is re-read from target on
// every step, so it lands on whatever value target reports at the end.
func Follow(target Ceiling, duration time.Duration) *Ramp {
	return &Ramp{follow: target, duration: duration}
}

// Target is the value the ramp is heading to right now, before any ceiling.
func (r *Ramp) Target() float64 {
	if r.follow != nil {
		return r.follow()
	}
	return r.target
}

func (r *Ramp) Duration() time.Duration { return r.duration }
func (r *Ramp) Elapsed() time.Duration  { return r.elapsed }
func (r *Ramp) Done() bool              { return r.done }

// limit is the effective target for this instant.
func (r *Ramp) limit() float64 {
	if r.ceiling == nil {
		return r.Target()
	}
	return math.Min(r.Target(), r.ceiling())
}

func (r *Ramp) cap(g float64) float64 {
	if r.ceiling == nil {
		return g
	}
	return math.Min(g, r.ceiling())
}

func (r *Ramp) finish(g Gain) bool {
	g.SetGain(r.limit())
	r.done = true
	return true
}

// Start records the starting gain. A non-positive duration, or a gain already
// within Epsilon of the target, completes the ramp immediately. It reports
// whether the ramp is done.
func (r *Ramp) Start(g Gain) bool {
	if r.done {
		return true
	}
	if r.duration <= 0 || math.Abs(g.Gain()-r.limit()) < Epsilon {
		return r.finish(g)
	}

	r.from = g.Gain()
	return false
}

// Step advances the ramp by dt and writes the interpolated gain. Once the
// full duration has elapsed, or the gain has reached the effective target,
// the exact target is written and Step reports true.
func (r *Ramp) Step(g Gain, dt time.Duration) bool {
	if r.done {
		return true
	}
	if dt < 0 {
		dt = 0
	}

	if math.Abs(g.Gain()-r.limit()) < Epsilon {
		return r.finish(g)
	}

	r.elapsed += dt
	if r.elapsed >= r.duration {
		return r.finish(g)
	}

	t := float64(r.elapsed) / float64(r.duration)
	g.SetGain(r.cap(utils.Lerp(r.from, r.Target(), t)))

	return false
}

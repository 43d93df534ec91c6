// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"time"

	"github.com/ik5/audpool/envelope"
)

// completion is what happens to a playback when its fade finishes.
type completion int

const (
	keepPlaying completion = iota
	stopAfter
)

// bound ties a fade to the channel volume.
type bound int

const (
	// uncapped fades reach their literal target.
	uncapped bound = iota
	// capped fades never exceed the channel volume as it is at each tick.
	capped
	// tracking fades head for the channel volume itself.
	tracking
)

// fade is a ramp bound to the slot generation it was started under.
type fade struct {
	slot int
	gen  uint64
	ramp *envelope.Ramp
	then completion
}

// startFade supersedes any fade on slot idx. Tracking fades ignore target.
func (s *Scheduler) startFade(idx int, target float64, d time.Duration, b bound, state envelope.State, then completion) {
	sl := s.pool.At(idx)
	voice, ok := s.voices.at(sl.Voice())
	if !ok {
		s.log.Warn().Int("playback", sl.PlaybackID()).Int("voice", sl.Voice()).Msg("fade: voice out of range")
		return
	}

	gen := sl.BeginFade(state)

	var ramp *envelope.Ramp
	switch b {
	case capped:
		ramp = envelope.New(target, d, s.ceiling)
	case tracking:
		ramp = envelope.Follow(s.ceiling, d)
	default:
		ramp = envelope.New(target, d, nil)
	}

	s.obs.FadeStarted(s.cfg.Name, state)

	if ramp.Start(voice) {
		s.complete(idx, gen, then)
		return
	}

	s.fades = append(s.fades, fade{slot: idx, gen: gen, ramp: ramp, then: then})
}

func (s *Scheduler) ceiling() float64 {
	return s.gain
}

func (s *Scheduler) complete(idx int, gen uint64, then completion) {
	sl := s.pool.At(idx)
	if !sl.Settle(gen) {
		return
	}

	if then == stopAfter {
		s.voices.Stop(sl.Voice())
		s.pool.Reset(idx)
	}
}

// Tick advances every running fade by dt, then frees slots whose voice has
// finished on its own.
func (s *Scheduler) Tick(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	live := s.fades[:0]
	for _, f := range s.fades {
		sl := s.pool.At(f.slot)
		if sl.Generation() != f.gen {
			continue
		}

		voice, ok := s.voices.at(sl.Voice())
		if !ok {
			s.log.Warn().Int("playback", sl.PlaybackID()).Msg("fade dropped: voice out of range")
			sl.Cancel()
			continue
		}

		if f.ramp.Step(voice, dt) {
			s.complete(f.slot, f.gen, f.then)
			continue
		}
		live = append(live, f)
	}
	clear(s.fades[len(live):])
	s.fades = live

	s.reclaim()
	s.obs.ActiveVoices(s.cfg.Name, s.pool.Active())
}

func (s *Scheduler) reclaim() {
	for i := range s.pool.Len() {
		sl := s.pool.At(i)
		if sl.Active() && !s.voices.Playing(sl.Voice()) {
			s.log.Debug().Int("playback", sl.PlaybackID()).Msg("playback finished")
			s.pool.Reset(i)
		}
	}
}

// Fading reports how many fades are running.
func (s *Scheduler) Fading() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.fades {
		if s.pool.At(f.slot).Generation() == f.gen {
			n++
		}
	}
	return n
}

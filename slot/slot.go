// SPDX-License-Identifier: EPL-2.0

// Package slot keeps the fixed pool of playback records a channel owns.
//
// Slots are reused in place and identified by their index. Every slot carries
// a generation counter which is bumped whenever its fade is superseded or the
// slot is reset; a fade started under an older generation is stale and must
// not touch the slot or its voice.
package slot

import "github.com/ik5/audpool/envelope"

// Unused marks the playback id and voice index of a free slot.
const Unused = -1

// Override is an optional per-playback volume on the 0..100 scale.
type Override struct {
	Volume float64
	Set    bool
}

// NoOverride leaves a playback tracking the channel volume.
var NoOverride = Override{}

// Volume returns an override pinned to v.
func Volume(v float64) Override {
	return Override{Volume: v, Set: true}
}

// Slot describes one logical playback.
type Slot struct {
	playbackID int
	address    string
	voice      int
	active     bool
	fadeState  envelope.State
	override   Override
	generation uint64
}

func (s *Slot) PlaybackID() int           { return s.playbackID }
func (s *Slot) Address() string           { return s.address }
func (s *Slot) Voice() int                { return s.voice }
func (s *Slot) Active() bool              { return s.active }
func (s *Slot) FadeState() envelope.State { return s.fadeState }
func (s *Slot) Override() Override        { return s.override }
func (s *Slot) Generation() uint64        { return s.generation }

func (s *Slot) IsActiveWithID(id int) bool {
	return s.active && s.playbackID == id
}

func (s *Slot) IsActiveWithAddress(address string) bool {
	return s.active && s.address == address
}

func (s *Slot) IsInAttack() bool {
	return s.active && s.fadeState == envelope.Attack
}

// Assign binds the slot to a new playback.
func (s *Slot) Assign(id int, address string, voice int, override Override) {
	s.generation++
	s.playbackID = id
	s.address = address
	s.voice = voice
	s.active = true
	s.fadeState = envelope.None
	s.override = override
}

// SetOverride pins the playback volume.
func (s *Slot) SetOverride(o Override) {
	s.override = o
}

// BeginFade supersedes any running fade and enters state. The returned
// generation identifies the new fade.
func (s *Slot) BeginFade(state envelope.State) uint64 {
	s.generation++
	s.fadeState = state
	return s.generation
}

// Cancel supersedes any running fade without starting another.
func (s *Slot) Cancel() {
	s.generation++
	s.fadeState = envelope.None
}

// Settle clears the fade state if gen is still the current fade. It reports
// whether the fade was current.
func (s *Slot) Settle(gen uint64) bool {
	if s.generation != gen {
		return false
	}
	s.fadeState = envelope.None
	return true
}

func (s *Slot) reset() {
	s.generation++
	s.playbackID = Unused
	s.address = ""
	s.voice = Unused
	s.active = false
	s.fadeState = envelope.None
	s.override = NoOverride
}

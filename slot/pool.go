// SPDX-License-Identifier: EPL-2.0

package slot

// Voices is what the pool needs to know about the voices slots are bound to.
type Voices interface {
	// Playing reports whether voice i is sounding. Out of range is false.
	Playing(i int) bool
	// Stop silences voice i. Out of range is ignored.
	Stop(i int)
}

// Pool is a fixed-capacity array of slots.
type Pool struct {
	slots []Slot
	last  int
}

// NewPool creates n slots, at least one, all free.
func NewPool(n int) *Pool {
	n = max(n, 1)

	p := &Pool{slots: make([]Slot, n), last: n - 1}
	for i := range p.slots {
		p.slots[i].reset()
	}

	return p
}

func (p *Pool) Len() int { return len(p.slots) }

// At returns the slot at i. It panics when i is out of range, like a slice.
func (p *Pool) At(i int) *Slot { return &p.slots[i] }

// Allocate picks a slot for a new playback: the first free slot, else the
// first slot whose voice has finished on its own, else the slot after the
// last allocated one, which is evicted. It reports whether a sounding
// playback was evicted.
func (p *Pool) Allocate(v Voices) (int, bool) {
	idx, evicted := p.pick(v)
	p.last = idx

	return idx, evicted
}

func (p *Pool) pick(v Voices) (int, bool) {
	for i := range p.slots {
		if !p.slots[i].active {
			return i, false
		}
	}

	for i := range p.slots {
		s := &p.slots[i]
		if s.voice >= 0 && !v.Playing(s.voice) {
			s.reset()
			return i, false
		}
	}

	i := (p.last + 1) % len(p.slots)
	p.Evict(i, v)

	return i, true
}

// Evict cancels the fade of slot i, stops its voice and frees it.
func (p *Pool) Evict(i int, v Voices) {
	s := &p.slots[i]
	if !s.active {
		return
	}

	s.Cancel()
	if s.voice >= 0 {
		v.Stop(s.voice)
	}
	s.reset()
}

// Find returns the index of the active slot holding playback id.
func (p *Pool) Find(id int) (int, bool) {
	if id < 0 {
		return Unused, false
	}
	for i := range p.slots {
		if p.slots[i].IsActiveWithID(id) {
			return i, true
		}
	}
	return Unused, false
}

// FindVoice returns the index of the active slot bound to voice.
func (p *Pool) FindVoice(voice int) (int, bool) {
	for i := range p.slots {
		if p.slots[i].active && p.slots[i].voice == voice {
			return i, true
		}
	}
	return Unused, false
}

// Reset frees slot i and invalidates any fade running on it.
func (p *Pool) Reset(i int) {
	p.slots[i].reset()
}

// Active counts active slots.
func (p *Pool) Active() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].active {
			n++
		}
	}
	return n
}

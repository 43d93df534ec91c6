// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"sync"

	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/output"
)

// FakeVoice is an output.Voice that records what is done to it. It keeps
// playing until Finish or Stop is called.
type FakeVoice struct {
	mu      sync.Mutex
	mode    output.LoopMode
	level   output.Level
	clip    *audio.Clip
	playing bool
	gain    float64
	trace   []float64
	plays   int
	stops   int
	closed  bool
}

func NewFakeVoice(mode output.LoopMode, level output.Level) *FakeVoice {
	return &FakeVoice{mode: mode, level: level, gain: 1}
}

func (v *FakeVoice) Play(clip *audio.Clip) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.clip = clip
	v.playing = clip != nil
	v.plays++
}

func (v *FakeVoice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.playing = false
	v.stops++
}

func (v *FakeVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.playing
}

func (v *FakeVoice) Gain() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.gain
}

// SetGain stores g and appends it to the trace.
func (v *FakeVoice) SetGain(g float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.gain = g
	v.trace = append(v.trace, g)
}

func (v *FakeVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.playing = false
	v.closed = true
	return nil
}

// Finish simulates the clip running out.
func (v *FakeVoice) Finish() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.playing = false
}

func (v *FakeVoice) Clip() *audio.Clip {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.clip
}

// Trace returns every gain written so far.
func (v *FakeVoice) Trace() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]float64, len(v.trace))
	copy(out, v.trace)
	return out
}

func (v *FakeVoice) Plays() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.plays
}

func (v *FakeVoice) Stops() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.stops
}

func (v *FakeVoice) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.closed
}

func (v *FakeVoice) Mode() output.LoopMode { return v.mode }
func (v *FakeVoice) Level() output.Level   { return v.level }

// FakeDevice hands out FakeVoices and remembers them in creation order.
type FakeDevice struct {
	mu         sync.Mutex
	sampleRate int
	channels   int
	voices     []*FakeVoice
	failAfter  int
	err        error
	closed     bool
}

func NewFakeDevice(sampleRate, channels int) *FakeDevice {
	return &FakeDevice{sampleRate: sampleRate, channels: channels, failAfter: -1}
}

// FailAfter makes NewVoice return err once n voices exist.
func (d *FakeDevice) FailAfter(n int, err error) *FakeDevice {
	d.failAfter = n
	d.err = err
	return d
}

func (d *FakeDevice) NewVoice(mode output.LoopMode, level output.Level) (output.Voice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, output.ErrClosed
	}
	if d.failAfter >= 0 && len(d.voices) >= d.failAfter {
		return nil, d.err
	}

	v := NewFakeVoice(mode, level)
	d.voices = append(d.voices, v)
	return v, nil
}

func (d *FakeDevice) SampleRate() int { return d.sampleRate }
func (d *FakeDevice) Channels() int   { return d.channels }

func (d *FakeDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	return nil
}

func (d *FakeDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.closed
}

// Voice returns the i-th voice created.
func (d *FakeDevice) Voice(i int) *FakeVoice {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.voices[i]
}

// Voices returns every voice created so far.
func (d *FakeDevice) Voices() []*FakeVoice {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*FakeVoice, len(d.voices))
	copy(out, d.voices)
	return out
}

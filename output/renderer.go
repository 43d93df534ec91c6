// SPDX-License-Identifier: EPL-2.0

package output

import (
	"io"
	"sync"
	"time"

	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/formats/wav"
	"github.com/rs/zerolog"
)

// Renderer is an offline software mixer. Voices only advance when Render is
// called; the mixed result accumulates in memory.
type Renderer struct {
	mu       sync.Mutex
	rate     int
	channels int
	voices   []*softVoice
	mix      []float32
	carry    float64
	closed   bool
	log      zerolog.Logger
}

func NewRenderer(sampleRate, channels int, opts ...DeviceOption) (*Renderer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, audio.ErrInvalidFormat
	}

	o := newDeviceOptions(opts)

	return &Renderer{rate: sampleRate, channels: channels, log: o.log}, nil
}

func (r *Renderer) SampleRate() int { return r.rate }
func (r *Renderer) Channels() int   { return r.channels }

func (r *Renderer) NewVoice(mode LoopMode, level Level) (Voice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}

	v := &softVoice{r: r, mode: mode, level: level}
	r.voices = append(r.voices, v)

	return v, nil
}

// Render mixes d worth of audio from every playing voice and returns the
// number of frames produced. Fractional frames carry over to the next call.
func (r *Renderer) Render(d time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d <= 0 || r.closed {
		return 0
	}

	exact := d.Seconds()*float64(r.rate) + r.carry
	frames := int(exact)
	r.carry = exact - float64(frames)
	if frames == 0 {
		return 0
	}

	block := make([]float32, frames*r.channels)
	for _, v := range r.voices {
		v.mixInto(block)
	}
	r.mix = append(r.mix, block...)

	return frames
}

// Samples returns a copy of everything rendered so far.
func (r *Renderer) Samples() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float32, len(r.mix))
	copy(out, r.mix)

	return out
}

// Duration of the rendered mix.
func (r *Renderer) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return time.Duration(len(r.mix)/r.channels) * time.Second / time.Duration(r.rate)
}

// WriteWAV encodes the rendered mix as 16-bit PCM WAV.
func (r *Renderer) WriteWAV(w io.WriteSeeker) error {
	return wav.Encode(w, r.rate, r.channels, r.Samples())
}

func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for _, v := range r.voices {
		v.playing = false
	}

	return nil
}

type softVoice struct {
	r       *Renderer
	mode    LoopMode
	level   Level
	cur     cursor
	playing bool
	gain    float64
}

func (v *softVoice) Play(clip *audio.Clip) {
	v.r.mu.Lock()
	defer v.r.mu.Unlock()

	if v.r.closed {
		v.playing = false
		return
	}

	prepared, err := prepare(clip, v.r.rate, v.r.channels)
	if err != nil {
		v.r.log.Warn().Err(err).Str("clip", clipName(clip)).Msg("play: clip not playable")
		v.playing = false
		return
	}

	v.cur = cursor{clip: prepared, mode: v.mode}
	v.playing = true
}

func (v *softVoice) Stop() {
	v.r.mu.Lock()
	defer v.r.mu.Unlock()

	v.playing = false
}

func (v *softVoice) IsPlaying() bool {
	v.r.mu.Lock()
	defer v.r.mu.Unlock()

	return v.playing
}

func (v *softVoice) Gain() float64 {
	v.r.mu.Lock()
	defer v.r.mu.Unlock()

	return v.gain
}

func (v *softVoice) SetGain(g float64) {
	v.r.mu.Lock()
	defer v.r.mu.Unlock()

	v.gain = clampGain(g)
}

func (v *softVoice) Close() error {
	v.Stop()
	return nil
}

// mixInto is called with the renderer lock held.
func (v *softVoice) mixInto(dst []float32) {
	if !v.playing {
		return
	}

	_, ended := v.cur.fill(dst, float32(v.gain*levelOf(v.level)), true)
	if ended {
		v.playing = false
	}
}

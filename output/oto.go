// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/audpool/audio"
	"github.com/rs/zerolog"
)

// OtoDevice plays voices through the system audio device.
type OtoDevice struct {
	ctx      *oto.Context
	rate     int
	channels int
	log      zerolog.Logger

	mu     sync.Mutex
	voices []*otoVoice
	closed bool
}

// NewOtoDevice opens the audio device with float32 samples. oto allows a
// single context per process.
func NewOtoDevice(sampleRate, channels int, opts ...DeviceOption) (*OtoDevice, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, audio.ErrInvalidFormat
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating oto context: %w", err)
	}
	<-ready

	o := newDeviceOptions(opts)

	return &OtoDevice{ctx: ctx, rate: sampleRate, channels: channels, log: o.log}, nil
}

func (d *OtoDevice) SampleRate() int { return d.rate }
func (d *OtoDevice) Channels() int   { return d.channels }

func (d *OtoDevice) NewVoice(mode LoopMode, level Level) (Voice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}

	v := &otoVoice{dev: d, mode: mode, level: level}
	d.voices = append(d.voices, v)

	return v, nil
}

func (d *OtoDevice) Close() error {
	d.mu.Lock()
	voices := d.voices
	d.voices = nil
	d.closed = true
	d.mu.Unlock()

	var firstErr error
	for _, v := range voices {
		if err := v.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := d.ctx.Suspend(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("suspending oto context: %w", err)
	}

	return firstErr
}

type otoVoice struct {
	mu     sync.Mutex
	dev    *OtoDevice
	mode   LoopMode
	level  Level
	player *oto.Player
	gain   float64
}

func (v *otoVoice) Play(clip *audio.Clip) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.release()

	prepared, err := prepare(clip, v.dev.rate, v.dev.channels)
	if err != nil {
		v.dev.log.Warn().Err(err).Str("clip", clipName(clip)).Msg("play: clip not playable")
		return
	}

	v.player = v.dev.ctx.NewPlayer(&stream{
		cur:   cursor{clip: prepared, mode: v.mode},
		level: v.level,
	})
	v.player.SetVolume(v.gain)
	v.player.Play()
}

func (v *otoVoice) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.release()
}

func (v *otoVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.player != nil && v.player.IsPlaying()
}

func (v *otoVoice) Gain() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.gain
}

func (v *otoVoice) SetGain(g float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.gain = clampGain(g)
	if v.player != nil {
		v.player.SetVolume(v.gain)
	}
}

func (v *otoVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.release()
}

func (v *otoVoice) release() error {
	if v.player == nil {
		return nil
	}

	v.player.Pause()
	err := v.player.Close()
	v.player = nil

	if err != nil {
		return fmt.Errorf("closing oto player: %w", err)
	}
	return nil
}

// stream feeds a clip to an oto.Player as little-endian float32 bytes with
// the bus level applied.
type stream struct {
	cur   cursor
	level Level
	buf   []float32
}

func (s *stream) Read(p []byte) (int, error) {
	samples := len(p) / 4
	if samples == 0 {
		return 0, nil
	}
	if cap(s.buf) < samples {
		s.buf = make([]float32, samples)
	}
	buf := s.buf[:samples]

	n, ended := s.cur.fill(buf, float32(levelOf(s.level)), false)
	for i := range n {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(buf[i]))
	}

	if n == 0 && ended {
		return 0, io.EOF
	}

	return n * 4, nil
}

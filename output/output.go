// SPDX-License-Identifier: EPL-2.0

package output

import (
	"fmt"
	"strings"

	"github.com/ik5/audpool/audio"
)

// LoopMode decides what a voice does when its clip ends.
type LoopMode int

const (
	OneShot LoopMode = iota
	Loop
)

func (m LoopMode) String() string {
	switch m {
	case OneShot:
		return "oneshot"
	case Loop:
		return "loop"
	default:
		return fmt.Sprintf("LoopMode(%d)", int(m))
	}
}

// ParseLoopMode accepts "oneshot" and "loop" in any case. Empty means OneShot.
func ParseLoopMode(s string) (LoopMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "oneshot", "one_shot", "one-shot":
		return OneShot, nil
	case "loop":
		return Loop, nil
	default:
		return OneShot, fmt.Errorf("%q: %w", s, ErrUnknownLoopMode)
	}
}

// Voice is a single device playback unit.
type Voice interface {
	// Play starts clip from its beginning, replacing whatever was sounding.
	Play(clip *audio.Clip)
	Stop()
	IsPlaying() bool
	Gain() float64
	SetGain(g float64)
	Close() error
}

// Level is a gain factor applied beneath the voice gain, usually a mixer bus.
type Level interface {
	Level() float64
}

// Device creates voices sharing one output format.
type Device interface {
	NewVoice(mode LoopMode, level Level) (Voice, error)
	SampleRate() int
	Channels() int
	Close() error
}

func levelOf(l Level) float64 {
	if l == nil {
		return 1
	}
	return l.Level()
}

func clampGain(g float64) float64 {
	if g < 0 || g != g {
		return 0
	}
	if g > 1 {
		return 1
	}
	return g
}

// prepare converts clip to the device layout.
func prepare(clip *audio.Clip, sampleRate, channels int) (*audio.Clip, error) {
	if clip == nil {
		return nil, ErrNilClip
	}
	return audio.Convert(clip, sampleRate, channels)
}

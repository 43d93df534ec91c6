// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"time"

	"github.com/ik5/audpool/output"
)

// Voice count bounds for a channel.
const (
	MinVoices       = 1
	MaxVoices       = 100
	CrossfadeVoices = 2
)

// Crossfade settings. When enabled the channel always has two voices.
type Crossfade struct {
	Enabled bool
	Attack  time.Duration
	Release time.Duration
}

// Config is fixed for the lifetime of a scheduler.
type Config struct {
	Name               string
	Voices             int
	Mode               output.LoopMode
	Volume             float64
	Attack             time.Duration
	Release            time.Duration
	Crossfade          Crossfade
	AllowDuplicatePlay bool
}

// VoiceCount is the number of device voices the channel owns.
func (c Config) VoiceCount() int {
	if c.Crossfade.Enabled {
		return CrossfadeVoices
	}
	return min(max(c.Voices, MinVoices), MaxVoices)
}

// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"github.com/ik5/audpool/envelope"
	"github.com/ik5/audpool/output"
	"github.com/rs/zerolog"
)

// Observer is notified of scheduling events. Calls happen with the channel
// lock held and must not call back into the scheduler.
type Observer interface {
	Played(channel string)
	Rejected(channel string, reason error)
	Evicted(channel string)
	FadeStarted(channel string, state envelope.State)
	ActiveVoices(channel string, n int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Played(string)                      {}
func (NopObserver) Rejected(string, error)             {}
func (NopObserver) Evicted(string)                     {}
func (NopObserver) FadeStarted(string, envelope.State) {}
func (NopObserver) ActiveVoices(string, int)           {}

type options struct {
	log   zerolog.Logger
	obs   Observer
	level output.Level
}

type Option func(*options)

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.obs = obs
		}
	}
}

// WithLevel routes the channel's voices through a bus level.
func WithLevel(l output.Level) Option {
	return func(o *options) { o.level = l }
}

type playOptions struct {
	volume *float64
}

type PlayOption func(*playOptions)

// WithVolume pins the playback to v on the 0..100 scale instead of tracking
// the channel volume.
func WithVolume(v float64) PlayOption {
	return func(o *playOptions) { o.volume = &v }
}

// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/channel"
	"github.com/rs/zerolog"
)

type options struct {
	log      zerolog.Logger
	obs      channel.Observer
	decoders *audio.Registry
}

type Option func(*options)

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver receives the events of every channel.
func WithObserver(obs channel.Observer) Option {
	return func(o *options) { o.obs = obs }
}

// WithDecoders replaces the default format registry used for loads.
func WithDecoders(r *audio.Registry) Option {
	return func(o *options) { o.decoders = r }
}

type playOptions struct {
	group  string
	volume *float64
}

type PlayOption func(*playOptions)

// InGroup resolves the address in a resource group instead of the common one.
func InGroup(group string) PlayOption {
	return func(o *playOptions) { o.group = group }
}

// WithVolume pins the playback volume (0..100).
func WithVolume(v float64) PlayOption {
	return func(o *playOptions) { o.volume = &v }
}


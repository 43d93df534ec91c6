// SPDX-License-Identifier: EPL-2.0

package output

import (
	"github.com/ik5/audpool/audio"
	"github.com/rs/zerolog"
)

type deviceOptions struct {
	log zerolog.Logger
}

// DeviceOption configures a Renderer or an OtoDevice.
type DeviceOption func(*deviceOptions)

// WithLogger receives warnings about clips a voice could not start.
func WithLogger(l zerolog.Logger) DeviceOption {
	return func(o *deviceOptions) { o.log = l }
}

func newDeviceOptions(opts []DeviceOption) deviceOptions {
	o := deviceOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.With().Str("component", "output").Logger()
	return o
}

func clipName(c *audio.Clip) string {
	if c == nil {
		return ""
	}
	return c.Name()
}

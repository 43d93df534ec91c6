// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var (
	ErrNilClip         = errors.New("nil clip")
	ErrUnknownLoopMode = errors.New("unknown loop mode")
	ErrNoAudioDevice   = errors.New("audio device support not compiled in")
	ErrClosed          = errors.New("device closed")
)

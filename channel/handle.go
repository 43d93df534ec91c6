// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"fmt"
	"time"
)

// Handle identifies one playback. It is a plain value; copying it is free
// and holding it keeps nothing alive.
type Handle struct {
	id      int
	address string
	ch      *Scheduler
}

// Invalid is returned by a rejected Play.
var Invalid = Handle{id: -1}

func (h Handle) PlaybackID() int { return h.id }
func (h Handle) Address() string { return h.address }

// Channel returns the name of the owning channel, or "" for Invalid.
func (h Handle) Channel() string {
	if h.ch == nil {
		return ""
	}
	return h.ch.Name()
}

func (h Handle) IsValid() bool {
	return h.id >= 0 && h.ch != nil
}

// IsPlaying reports whether the playback is still sounding.
func (h Handle) IsPlaying() bool {
	return h.IsValid() && h.ch.IsPlaying(h.id)
}

func (h Handle) Stop() error {
	if !h.IsValid() {
		return ErrInvalidHandle
	}
	return h.ch.StopPlayback(h.id)
}

// SetVolume pins the playback volume, ramping over d when d is positive.
func (h Handle) SetVolume(volume float64, d time.Duration) error {
	if !h.IsValid() {
		return ErrInvalidHandle
	}
	return h.ch.SetPlaybackVolume(h.id, volume, d)
}

func (h Handle) String() string {
	if !h.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("%s/%d(%s)", h.ch.Name(), h.id, h.address)
}

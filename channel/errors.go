// SPDX-License-Identifier: EPL-2.0

package channel

import "errors"

var (
	ErrNilClip          = errors.New("nil clip")
	ErrDuplicatePlay    = errors.New("clip already playing on channel")
	ErrNotFound         = errors.New("no active playback matches")
	ErrEmptyAddress     = errors.New("empty address")
	ErrEmptyName        = errors.New("empty channel name")
	ErrInvalidHandle    = errors.New("invalid playback handle")
	ErrUnknownChannel   = errors.New("unknown channel")
	ErrDuplicateChannel = errors.New("channel already registered")
	ErrClosed           = errors.New("channel closed")
)

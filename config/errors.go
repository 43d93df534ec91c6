// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrEmptyChannelName = errors.New("channel without a name")
	ErrDuplicateChannel = errors.New("duplicate channel name")
	ErrEmptyBusName     = errors.New("bus without a name")
	ErrDuplicateBus     = errors.New("duplicate bus name")
	ErrUnknownBus       = errors.New("channel references unknown bus")
	ErrInvalidOutput    = errors.New("output sample rate and channels must be positive")
	ErrInvalidTick      = errors.New("tick interval must be positive")
	ErrEmptyPackName    = errors.New("pack without a name")
)

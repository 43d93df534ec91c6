// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacStream   = errors.New("not a FLAC stream")
	ErrChannelMismatch = errors.New("frame channel count differs from stream info")
)

// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidFormat  = errors.New("sample rate and channels must be positive and samples a multiple of channels")
	ErrUnknownFormat  = errors.New("no decoder registered for format")
	ErrStalledSource  = errors.New("source stopped producing samples without EOF")
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
)

// SPDX-License-Identifier: EPL-2.0

package audpool

import "errors"

var (
	ErrClosed        = errors.New("audpool: manager shut down")
	ErrClipNotLoaded = errors.New("audpool: clip not loaded")
	ErrNilDevice     = errors.New("audpool: nil output device")
)

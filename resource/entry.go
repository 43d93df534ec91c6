// SPDX-License-Identifier: EPL-2.0

package resource

import (
	"fmt"

	"github.com/ik5/audpool/audio"
)

// Kind tells how an entry got into the cache.
type Kind int

const (
	Streamed Kind = iota
	Preloaded
)

func (k Kind) String() string {
	switch k {
	case Streamed:
		return "streamed"
	case Preloaded:
		return "preloaded"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type entry struct {
	kind Kind
	clip *audio.Clip
}

// releasable reports whether a release with the given force may drop e.
func (e *entry) releasable(force bool) bool {
	return e.kind == Streamed || force
}

// dispose drops the decoded samples so a playback still holding the clip is
// the last reference to them.
func (e *entry) dispose() {
	e.clip = nil
}

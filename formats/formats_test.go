// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := Registry()

	for _, ext := range []string{"wav", ".WAV", "mp3", "ogg", "aif", "flac"} {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("Get(%q) not registered", ext)
		}
	}

	want := []string{"aif", "aiff", "flac", "mp3", "oga", "ogg", "wav", "wave"}
	if got := reg.Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

// SPDX-License-Identifier: EPL-2.0

package output

import "github.com/ik5/audpool/audio"

// cursor walks the samples of a clip, wrapping around in Loop mode.
type cursor struct {
	clip *audio.Clip
	mode LoopMode
	pos  int
}

// fill writes up to len(dst) samples scaled by gain, adding to dst when mix
// is set. It reports how many samples were produced and whether a one-shot
// clip has ended.
func (c *cursor) fill(dst []float32, gain float32, mix bool) (int, bool) {
	src := c.clip.Samples()
	if len(src) == 0 {
		return 0, true
	}

	n := 0
	for n < len(dst) {
		if c.pos >= len(src) {
			if c.mode != Loop {
				return n, true
			}
			c.pos = 0
		}

		m := min(len(dst)-n, len(src)-c.pos)
		if mix {
			for i := range m {
				dst[n+i] += src[c.pos+i] * gain
			}
		} else {
			for i := range m {
				dst[n+i] = src[c.pos+i] * gain
			}
		}
		n += m
		c.pos += m
	}

	return n, c.mode != Loop && c.pos >= len(src)
}

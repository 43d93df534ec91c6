// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/audpool/utils"
)

// Convert returns c remixed to channels and resampled to sampleRate. The
// original clip is returned when it already matches.
func Convert(c *Clip, sampleRate, channels int) (*Clip, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrInvalidFormat
	}
	if c.sampleRate == sampleRate && c.channels == channels {
		return c, nil
	}

	samples := Remix(c.samples, c.channels, channels)
	if c.sampleRate != sampleRate {
		samples = Resample(samples, channels, c.sampleRate, sampleRate)
	}

	return NewClip(c.name, sampleRate, channels, samples)
}

// Remix maps interleaved samples from src to dst channels. Down to mono
// averages every input channel; up from mono duplicates; other layouts wrap
// input channels around the output.
func Remix(samples []float32, src, dst int) []float32 {
	if src == dst {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out
	}

	frames := len(samples) / src
	out := make([]float32, frames*dst)

	switch {
	case dst == 1:
		scale := 1 / float32(src)
		for f := range frames {
			var sum float32
			for ch := range src {
				sum += samples[f*src+ch]
			}
			out[f] = sum * scale
		}
	case src == 1:
		for f := range frames {
			for ch := range dst {
				out[f*dst+ch] = samples[f]
			}
		}
	default:
		for f := range frames {
			for ch := range dst {
				out[f*dst+ch] = samples[f*src+ch%src]
			}
		}
	}

	return out
}

// Resample converts interleaved samples between rates with cubic
// interpolation, clamping the neighbourhood at the buffer edges.
func Resample(samples []float32, channels, from, to int) []float32 {
	frames := len(samples) / channels
	if frames == 0 || from == to {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out
	}

	outFrames := int(int64(frames) * int64(to) / int64(from))
	out := make([]float32, outFrames*channels)
	step := float64(from) / float64(to)

	at := func(f, ch int) float32 {
		if f < 0 {
			f = 0
		} else if f >= frames {
			f = frames - 1
		}
		return samples[f*channels+ch]
	}

	for i := range outFrames {
		pos := float64(i) * step
		idx := int(pos)
		frac := float32(pos - float64(idx))
		for ch := range channels {
			out[i*channels+ch] = utils.CubicInterpolate(
				at(idx-1, ch), at(idx, ch), at(idx+1, ch), at(idx+2, ch), frac)
		}
	}

	return out
}

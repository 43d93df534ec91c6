// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	readChunkFrames = 4096
	maxStalledReads = 8
)

// Clip is fully decoded, interleaved PCM held in memory. A Clip is immutable
// once built and is shared by every voice that plays it; its pointer is its
// identity.
type Clip struct {
	name       string
	sampleRate int
	channels   int
	samples    []float32
}

// NewClip wraps interleaved samples. The slice is owned by the clip afterwards.
func NewClip(name string, sampleRate, channels int, samples []float32) (*Clip, error) {
	if sampleRate <= 0 || channels <= 0 || len(samples)%channels != 0 {
		return nil, ErrInvalidFormat
	}

	return &Clip{
		name:       name,
		sampleRate: sampleRate,
		channels:   channels,
		samples:    samples,
	}, nil
}

func (c *Clip) Name() string       { return c.name }
func (c *Clip) SampleRate() int    { return c.sampleRate }
func (c *Clip) Channels() int      { return c.channels }
func (c *Clip) Samples() []float32 { return c.samples }
func (c *Clip) Frames() int        { return len(c.samples) / c.channels }
func (c *Clip) Duration() time.Duration {
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.sampleRate)
}

// ReadClip drains src into a Clip. src is not closed.
func ReadClip(name string, src Source) (*Clip, error) {
	channels := src.Channels()
	if channels <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidFormat
	}

	buf := make([]float32, readChunkFrames*channels)
	var samples []float32
	stalled := 0

	for {
		n, err := src.ReadSamples(buf)
		samples = append(samples, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", name, err)
		}

		if n == 0 {
			stalled++
			if stalled >= maxStalledReads {
				return nil, fmt.Errorf("reading %q: %w", name, ErrStalledSource)
			}
			continue
		}
		stalled = 0
	}

	// drop a trailing partial frame
	samples = samples[:len(samples)-len(samples)%channels]

	return NewClip(name, src.SampleRate(), channels, samples)
}

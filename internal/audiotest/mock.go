// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic sources, voices and devices for
// tests across the module.
package audiotest

import "io"

// MockSource generates audio data for decoder and clip tests.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	chunkLimit  int
	waveform    func(frame int, channel int) float32
	closed      bool
}

// NewMockSource creates a source yielding totalFrames frames produced by waveform.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewConstantSource creates a source where every sample equals value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// NewRampSource creates a source whose sample equals frame index plus
// channel*1000, handy for checking interleaving.
func NewRampSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return float32(frame + channel*1000)
	})
}

// WithChunkLimit caps the frames returned per ReadSamples call.
func (m *MockSource) WithChunkLimit(frames int) *MockSource {
	m.chunkLimit = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	if m.chunkLimit > 0 {
		frames = min(frames, m.chunkLimit)
	}

	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

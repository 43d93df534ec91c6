// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audpool/formats/wav"
)

// WAV returns the bytes of a 16-bit PCM WAV file holding frames frames of
// value on every channel.
func WAV(tb testing.TB, sampleRate, channels, frames int, value float32) []byte {
	tb.Helper()

	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = value
	}

	path := filepath.Join(tb.TempDir(), "clip.wav")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatal(err)
	}
	if err := wav.Encode(f, sampleRate, channels, samples); err != nil {
		tb.Fatalf("wav.Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		tb.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatal(err)
	}
	return data
}

// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/audpool/utils"
)

const encodeChunk = 8192

// Encode writes interleaved float samples as a 16-bit PCM WAV file. The
// header sizes are patched on completion, hence the io.WriteSeeker.
func Encode(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if sampleRate <= 0 || channels <= 0 {
		return ErrInvalidFormat
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, 0, encodeChunk),
		SourceBitDepth: 16,
	}

	for start := 0; start < len(samples); start += encodeChunk {
		end := min(start+encodeChunk, len(samples))

		buf.Data = buf.Data[:0]
		for _, s := range samples[start:end] {
			buf.Data = append(buf.Data, int(utils.Float32ToInt16(s)))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files using github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM at 16, 24 or 32 bits with any channel count
// and sample rate. Inputs that cannot seek are buffered in memory first.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// # Encoding
//
// Encode writes interleaved float samples as 16-bit PCM. It is what the
// offline renderer uses to save a mix:
//
//	f, _ := os.Create("mix.wav")
//	err := wav.Encode(f, 48000, 2, samples)
package wav

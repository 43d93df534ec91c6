// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// # Decoding
//
//	f, _ := os.Open("theme.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // handle error
//	}
//
// formats.Registry registers the decoder for both "ogg" and "oga".
//
// # Output Format
//
//   - Sample format: float32 straight from the Vorbis decoder, no rescaling
//   - Channels: the stream's own layout, interleaved
//   - Sample rate: as declared by the identification header
//
// # Reading
//
// ReadSamples only hands out whole frames. A destination shorter than one
// frame fails with audio.ErrInvalidDstSize; longer ones are trimmed to a
// multiple of the channel count.
//
// # Limitations
//
//   - Decoding only; there is no Vorbis encoder
package vorbis

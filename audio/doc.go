// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM primitives the rest of the module is built on.
//
// # Sources and decoders
//
// A Source streams interleaved float32 samples in [-1,1]. Format decoders in
// the formats subpackages turn an io.Reader into a Source, and a Registry
// picks the decoder from a file extension:
//
//	reg := formats.Registry()
//	src, err := reg.Decode("sfx/jump.wav", file)
//
// # Clips
//
// A Clip is a Source drained into memory. Clips are what voices play; they
// are immutable and compared by pointer, so the same *Clip can sound on many
// voices at once.
//
//	clip, err := audio.ReadClip("jump", src)
//
// # Conversion
//
// Convert remixes and resamples a clip to a device format. Resampling uses
// Catmull-Rom cubic interpolation from the utils package; remixing averages
// down to mono and duplicates up from mono.
//
//	clip, err = audio.Convert(clip, 48000, 2)
package audio

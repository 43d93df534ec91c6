// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams through github.com/hajimehoshi/go-mp3.
//
// # Supported Formats
//
// The decoder accepts:
//   - MPEG-1 and MPEG-2 Audio Layer III
//   - constant and variable bitrates
//   - mono and stereo files
//
// # Decoding
//
// Decoder is a value type; the zero value is ready to use:
//
//	f, _ := os.Open("click.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // handle error
//	}
//
//	clip, err := audio.ReadClip("click", src)
//
// Most callers never touch the decoder directly: formats.Registry maps the
// "mp3" extension to it and the resource cache picks it by file name.
//
// # Output Format
//
//   - Sample format: float32 in [-1, 1), converted from go-mp3's 16-bit PCM
//   - Channels: always 2; go-mp3 duplicates mono files onto both channels
//   - Sample rate: whatever the file declares, usually 44.1 or 48 kHz
//
// Use audio.Convert to fold the clip to mono or resample it to the device
// rate.
//
// # Limitations
//
//   - Decoding only; there is no MP3 encoder
package mp3

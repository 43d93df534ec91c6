// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// # Supported Formats
//
//   - Integer PCM at 16, 24 and 32 bits
//   - Any channel count and sample rate declared in the COMM chunk
//
// Compressed AIFF-C files fail the header check with ErrNotAiffFile; 8-bit
// files are rejected with ErrUnsupportedBitDepth.
//
// # Decoding
//
//	f, _ := os.Open("door.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF container
//	}
//
// go-audio/aiff needs to seek. Readers that cannot seek, such as files from
// an fs.FS, are buffered in memory before decoding.
//
// # Output Format
//
//   - Sample format: float32 in [-1, 1), scaled by the declared bit depth
//   - Channels and sample rate: as declared by the file
//
// # Errors
//
//   - ErrNotAiffFile: no FORM/AIFF header, a compressed encoding or no frames
//   - ErrUnsupportedBitDepth: a sample size other than 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: no channels or no sample rate in the COMM chunk
package aiff

// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams through github.com/mewkiz/flac.
//
// Frames are decoded one at a time and interleaved on demand, so a source
// never holds more than one frame of audio beyond what the caller asked for.
package flac

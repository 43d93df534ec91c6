// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small numeric helpers shared by the decoders, the
// software mixer and the scheduler: PCM sample conversion, interpolation and
// the 0..100 volume scale.
package utils

// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Volume bounds of the user-facing 0..100 scale.
const (
	MinVolume = 0.0
	MaxVolume = 100.0
)

// ClampVolume limits v to [MinVolume, MaxVolume]. NaN becomes MinVolume.
func ClampVolume(v float64) float64 {
	if math.IsNaN(v) || v < MinVolume {
		return MinVolume
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}

// VolumeToGain maps a 0..100 volume to a linear gain in [0,1].
func VolumeToGain(v float64) float64 {
	return ClampVolume(v) / MaxVolume
}

// DecibelToGain converts a level in dB to a linear amplitude factor.
func DecibelToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

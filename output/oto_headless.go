// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

// OtoDevice is unavailable in headless builds.
type OtoDevice struct{}

func NewOtoDevice(sampleRate, channels int, opts ...DeviceOption) (*OtoDevice, error) {
	return nil, ErrNoAudioDevice
}

func (d *OtoDevice) SampleRate() int { return 0 }
func (d *OtoDevice) Channels() int   { return 0 }
func (d *OtoDevice) Close() error    { return nil }

func (d *OtoDevice) NewVoice(LoopMode, Level) (Voice, error) {
	return nil, ErrNoAudioDevice
}

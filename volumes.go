// SPDX-License-Identifier: EPL-2.0

package audpool

import "github.com/ik5/audpool/config"

// ExportVolumes snapshots every bus and channel volume, in creation order.
func (m *Manager) ExportVolumes() config.VolumeData {
	var v config.VolumeData

	for _, name := range m.mixer.Names() {
		if b, err := m.mixer.Bus(name); err == nil {
			v.Buses = append(v.Buses, config.Volume{Name: name, Volume: b.Volume()})
		}
	}
	for _, name := range m.order {
		if s, err := m.channels.Get(name); err == nil {
			v.Channels = append(v.Channels, config.Volume{Name: name, Volume: s.Volume()})
		}
	}

	return v
}

// ApplyVolumes restores a snapshot. Names no longer configured are logged
// and skipped, so a stale file never blocks startup.
func (m *Manager) ApplyVolumes(v config.VolumeData) error {
	if m.closed.Load() {
		return ErrClosed
	}

	for _, b := range v.Buses {
		if err := m.SetBusVolume(b.Name, b.Volume); err != nil {
			m.log.Warn().Str("bus", b.Name).Msg("skipping saved volume")
		}
	}
	for _, c := range v.Channels {
		if err := m.SetChannelVolume(c.Name, c.Volume); err != nil {
			m.log.Warn().Str("channel", c.Name).Msg("skipping saved volume")
		}
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package bus

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

var (
	ErrUnknownBus   = errors.New("unknown bus")
	ErrDuplicateBus = errors.New("bus already exists")
	ErrEmptyName    = errors.New("empty bus name")
)

// MasterName is the name of the root bus.
const MasterName = "master"

// Mixer holds the master bus and the group buses beneath it.
type Mixer struct {
	mu     sync.RWMutex
	master *Bus
	buses  map[string]*Bus
	order  []string
}

// NewMixer creates a mixer whose master bus uses parameter, maxDB and
// volume.
func NewMixer(parameter string, maxDB, volume float64) *Mixer {
	master := New(MasterName, parameter, maxDB, volume, nil)

	return &Mixer{
		master: master,
		buses:  map[string]*Bus{MasterName: master},
		order:  []string{MasterName},
	}
}

func (m *Mixer) Master() *Bus { return m.master }

// Add creates a group bus under master.
func (m *Mixer) Add(name, parameter string, maxDB, volume float64) (*Bus, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buses[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateBus, name)
	}

	b := New(name, parameter, maxDB, volume, m.master)
	m.buses[name] = b
	m.order = append(m.order, name)

	return b, nil
}

func (m *Mixer) Bus(name string) (*Bus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.buses[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBus, name)
	}
	return b, nil
}

// Names lists buses in creation order, master first.
func (m *Mixer) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.order)
}

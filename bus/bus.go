// SPDX-License-Identifier: EPL-2.0

package bus

import (
	"math"
	"sync/atomic"

	"github.com/ik5/audpool/utils"
)

const (
	// MinDB is the level treated as silence.
	MinDB = -80.0
	// muteVolume and below map straight to MinDB.
	muteVolume = 0.01
)

// Bus is one volume knob. Level is safe to call from audio callbacks.
type Bus struct {
	name      string
	parameter string
	maxDB     float64
	parent    *Bus

	volume atomic.Uint64
	gain   atomic.Uint64
}

// New creates a bus. An empty parameter disables the knob: the volume is
// still stored but the bus level stays at unity.
func New(name, parameter string, maxDB, volume float64, parent *Bus) *Bus {
	b := &Bus{name: name, parameter: parameter, maxDB: maxDB, parent: parent}
	b.SetVolume(volume)

	return b
}

func (b *Bus) Name() string      { return b.name }
func (b *Bus) Parameter() string { return b.parameter }
func (b *Bus) MaxDB() float64    { return b.maxDB }
func (b *Bus) Parent() *Bus      { return b.parent }
func (b *Bus) Enabled() bool     { return b.parameter != "" }

// SetVolume clamps v to 0..100 and updates the level.
func (b *Bus) SetVolume(v float64) {
	v = utils.ClampVolume(v)
	b.volume.Store(math.Float64bits(v))

	gain := 1.0
	if b.Enabled() {
		gain = utils.DecibelToGain(ToDB(v, b.maxDB))
		if v <= muteVolume {
			gain = 0
		}
	}
	b.gain.Store(math.Float64bits(gain))
}

func (b *Bus) Volume() float64 {
	return math.Float64frombits(b.volume.Load())
}

// DB is the knob position in decibels, or 0 when the knob is disabled.
func (b *Bus) DB() float64 {
	if !b.Enabled() {
		return 0
	}
	return ToDB(b.Volume(), b.maxDB)
}

// Level is the linear gain of this bus times the level of its parents.
func (b *Bus) Level() float64 {
	g := math.Float64frombits(b.gain.Load())
	if b.parent != nil {
		g *= b.parent.Level()
	}
	return g
}

// ToDB maps a 0..100 volume onto MinDB..maxDB.
func ToDB(volume, maxDB float64) float64 {
	volume = utils.ClampVolume(volume)
	if volume <= muteVolume {
		return MinDB
	}
	return MinDB + (maxDB-MinDB)*volume/utils.MaxVolume
}

// FromDB is the inverse of ToDB.
func FromDB(db, maxDB float64) float64 {
	if db <= MinDB || maxDB <= MinDB {
		return 0
	}
	return utils.ClampVolume((db - MinDB) / (maxDB - MinDB) * utils.MaxVolume)
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audpool"
	"github.com/ik5/audpool/channel"
	"github.com/ik5/audpool/output"
)

// Script operations.
const (
	opPlay           = "play"
	opStop           = "stop"
	opForceStop      = "force_stop"
	opVolume         = "volume"
	opPlaybackVolume = "playback_volume"
	opBusVolume      = "bus_volume"
)

var (
	errUnknownOp  = errors.New("unknown script operation")
	errUnknownRef = errors.New("unknown playback reference")
	errNoDuration = errors.New("script has no duration")
)

// Script is a timed list of manager operations rendered offline.
type Script struct {
	DurationMS int     `yaml:"duration_ms"`
	Events     []Event `yaml:"events"`
}

// Event is one operation at AtMS. Ref names a play so that later
// playback_volume and stop events can target it.
type Event struct {
	AtMS    int      `yaml:"at_ms"`
	Op      string   `yaml:"op"`
	Channel string   `yaml:"channel,omitempty"`
	Bus     string   `yaml:"bus,omitempty"`
	Address string   `yaml:"address,omitempty"`
	Group   string   `yaml:"group,omitempty"`
	Volume  *float64 `yaml:"volume,omitempty"`
	FadeMS  int      `yaml:"fade_ms,omitempty"`
	Ref     string   `yaml:"ref,omitempty"`
}

func (e Event) at() time.Duration { return time.Duration(e.AtMS) * time.Millisecond }

// ParseScript decodes a script and orders its events by time, keeping the
// file order of simultaneous events.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("parsing script: %w", err)
	}
	if s.DurationMS <= 0 {
		return Script{}, errNoDuration
	}

	for i, e := range s.Events {
		switch e.Op {
		case opPlay, opStop, opForceStop, opVolume, opPlaybackVolume, opBusVolume:
		default:
			return Script{}, fmt.Errorf("event %d: %w: %q", i, errUnknownOp, e.Op)
		}
	}

	slices.SortStableFunc(s.Events, func(a, b Event) int { return a.AtMS - b.AtMS })

	return s, nil
}

func loadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// addresses lists every (group, address) pair the script plays.
func (s Script) addresses() map[string][]string {
	out := map[string][]string{}
	for _, e := range s.Events {
		if e.Op == opPlay && !slices.Contains(out[e.Group], e.Address) {
			out[e.Group] = append(out[e.Group], e.Address)
		}
	}
	return out
}

type player struct {
	m    *audpool.Manager
	refs map[string]channel.Handle
}

func (p *player) apply(e Event) error {
	switch e.Op {
	case opPlay:
		opts := []audpool.PlayOption{audpool.InGroup(e.Group)}
		if e.Volume != nil {
			opts = append(opts, audpool.WithVolume(*e.Volume))
		}
		h, err := p.m.Play(e.Address, e.Channel, opts...)
		if err != nil {
			return err
		}
		if e.Ref != "" {
			p.refs[e.Ref] = h
		}
		return nil

	case opStop:
		if e.Ref != "" {
			h, err := p.ref(e.Ref)
			if err != nil {
				return err
			}
			return h.Stop()
		}
		if e.Address != "" {
			return p.m.StopAddress(e.Address, e.Channel)
		}
		return p.m.Stop(e.Channel)

	case opForceStop:
		return p.m.ForceStop(e.Channel)

	case opVolume:
		return p.m.SetChannelVolume(e.Channel, volumeOf(e))

	case opPlaybackVolume:
		h, err := p.ref(e.Ref)
		if err != nil {
			return err
		}
		return h.SetVolume(volumeOf(e), time.Duration(e.FadeMS)*time.Millisecond)

	case opBusVolume:
		return p.m.SetBusVolume(e.Bus, volumeOf(e))
	}

	return fmt.Errorf("%w: %q", errUnknownOp, e.Op)
}

func (p *player) ref(name string) (channel.Handle, error) {
	h, ok := p.refs[name]
	if !ok {
		return channel.Invalid, fmt.Errorf("%w: %q", errUnknownRef, name)
	}
	return h, nil
}

func volumeOf(e Event) float64 {
	if e.Volume == nil {
		return 0
	}
	return *e.Volume
}

// Render loads every clip the script plays, then alternates mixing one tick
// of audio into r and advancing the manager by the same tick. Failing events
// are logged and skipped.
func Render(ctx context.Context, m *audpool.Manager, r *output.Renderer, s Script, tick time.Duration) error {
	for grp, addrs := range s.addresses() {
		if err := m.LoadAll(ctx, addrs, grp); err != nil {
			return err
		}
	}

	p := &player{m: m, refs: map[string]channel.Handle{}}
	total := time.Duration(s.DurationMS) * time.Millisecond

	events := s.Events
	for now := time.Duration(0); now < total; now += tick {
		if err := ctx.Err(); err != nil {
			return err
		}

		for len(events) > 0 && events[0].at() <= now {
			if err := p.apply(events[0]); err != nil {
				logger.Warn().Err(err).Str("op", events[0].Op).Int("at_ms", events[0].AtMS).Msg("script event failed")
			}
			events = events[1:]
		}

		r.Render(min(tick, total-now))
		m.Tick(tick)
	}

	return nil
}

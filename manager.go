// SPDX-License-Identifier: EPL-2.0

package audpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/bus"
	"github.com/ik5/audpool/channel"
	"github.com/ik5/audpool/config"
	"github.com/ik5/audpool/formats"
	"github.com/ik5/audpool/output"
	"github.com/ik5/audpool/resource"
	"github.com/rs/zerolog"
)

// Manager ties channels, buses and the clip cache to one output device. It
// is created by New and torn down by Shutdown; there is no global instance.
type Manager struct {
	id  uuid.UUID
	cfg config.Config
	dev output.Device

	mixer    *bus.Mixer
	channels *channel.Registry
	order    []string
	cache    *resource.Container

	log    zerolog.Logger
	closed atomic.Bool
	mu     sync.Mutex
}

// New builds every bus and channel in cfg on dev and registers the
// configured packs. Clips are read through loader.
func New(ctx context.Context, cfg config.Config, dev output.Device, loader resource.Loader, opts ...Option) (*Manager, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{log: zerolog.Nop(), obs: channel.NopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.decoders == nil {
		o.decoders = formats.Registry()
	}

	id := uuid.New()
	base := o.log.With().Str("instance", id.String()).Logger()

	m := &Manager{
		id:       id,
		cfg:      cfg,
		dev:      dev,
		mixer:    bus.NewMixer(cfg.Master.Parameter, cfg.Master.MaxDB, cfg.Master.Volume),
		channels: channel.NewRegistry(),
		log:      base.With().Str("component", "manager").Logger(),
	}

	for _, b := range cfg.Buses {
		if _, err := m.mixer.Add(b.Name, b.Parameter, b.MaxDB, b.Volume); err != nil {
			return nil, err
		}
	}

	for _, c := range cfg.Channels {
		if err := m.addChannel(c, base, o.obs); err != nil {
			_ = m.channels.Close()
			return nil, err
		}
	}

	m.cache = resource.New(loader, o.decoders,
		resource.WithLogger(base),
		resource.WithFormat(dev.SampleRate(), dev.Channels()),
		resource.WithLabels(cfg.Labels),
		resource.WithConcurrency(cfg.Output.Workers),
	)

	for _, p := range cfg.Packs {
		if err := m.cache.RegisterPack(ctx, p.Resource(), p.Group); err != nil {
			_ = m.channels.Close()
			return nil, err
		}
	}

	m.log.Info().
		Int("channels", len(m.order)).
		Int("sample_rate", dev.SampleRate()).
		Int("output_channels", dev.Channels()).
		Msg("audio manager ready")

	return m, nil
}

func (m *Manager) addChannel(c config.Channel, log zerolog.Logger, obs channel.Observer) error {
	sc, err := c.Scheduler()
	if err != nil {
		return err
	}

	level := m.mixer.Master()
	if c.Bus != "" {
		if level, err = m.mixer.Bus(c.Bus); err != nil {
			return fmt.Errorf("channel %q: %w", c.Name, err)
		}
	}

	s, err := channel.New(sc, m.dev,
		channel.WithLogger(log),
		channel.WithObserver(obs),
		channel.WithLevel(level),
	)
	if err != nil {
		return err
	}
	if err := m.channels.Add(s); err != nil {
		_ = s.Close()
		return err
	}

	m.order = append(m.order, c.Name)
	return nil
}

func (m *Manager) ID() uuid.UUID                  { return m.id }
func (m *Manager) Config() config.Config          { return m.cfg }
func (m *Manager) Mixer() *bus.Mixer              { return m.mixer }
func (m *Manager) Resources() *resource.Container { return m.cache }

// Channels lists channel names in configuration order.
func (m *Manager) Channels() []string {
	return append([]string(nil), m.order...)
}

func (m *Manager) Channel(name string) (*channel.Scheduler, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	s, err := m.channels.Get(name)
	if err != nil {
		m.log.Warn().Err(err).Str("channel", name).Msg("channel lookup failed")
		return nil, err
	}
	return s, nil
}

// Play starts the cached clip at address on the named channel.
func (m *Manager) Play(address, ch string, opts ...PlayOption) (channel.Handle, error) {
	var po playOptions
	for _, opt := range opts {
		opt(&po)
	}

	s, err := m.Channel(ch)
	if err != nil {
		return channel.Invalid, err
	}

	clip := m.cache.Clip(address, po.group)
	if clip == nil {
		m.log.Warn().Str("address", address).Str("group", po.group).Str("channel", ch).Msg("play: clip not loaded")
		return channel.Invalid, fmt.Errorf("%w: %q", ErrClipNotLoaded, address)
	}

	var chOpts []channel.PlayOption
	if po.volume != nil {
		chOpts = append(chOpts, channel.WithVolume(*po.volume))
	}

	return s.Play(clip, address, chOpts...)
}

// Stop stops every playback on ch, with release fades.
func (m *Manager) Stop(ch string) error {
	s, err := m.Channel(ch)
	if err != nil {
		return err
	}
	s.StopAll()
	return nil
}

func (m *Manager) StopAddress(address, ch string) error {
	s, err := m.Channel(ch)
	if err != nil {
		return err
	}
	return s.StopAddress(address)
}

func (m *Manager) StopHandle(h channel.Handle) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return h.Stop()
}

// ForceStop silences ch immediately.
func (m *Manager) ForceStop(ch string) error {
	s, err := m.Channel(ch)
	if err != nil {
		return err
	}
	s.ForceStop()
	return nil
}

func (m *Manager) StopAll() {
	if m.closed.Load() {
		return
	}
	for _, s := range m.channels.All() {
		s.StopAll()
	}
}

func (m *Manager) ForceStopAll() {
	if m.closed.Load() {
		return
	}
	for _, s := range m.channels.All() {
		s.ForceStop()
	}
}

func (m *Manager) SetChannelVolume(ch string, v float64) error {
	s, err := m.Channel(ch)
	if err != nil {
		return err
	}
	s.SetVolume(v)
	return nil
}

func (m *Manager) ChannelVolume(ch string) (float64, error) {
	s, err := m.Channel(ch)
	if err != nil {
		return 0, err
	}
	return s.Volume(), nil
}

func (m *Manager) SetBusVolume(name string, v float64) error {
	b, err := m.mixer.Bus(name)
	if err != nil {
		m.log.Warn().Err(err).Str("bus", name).Msg("bus lookup failed")
		return err
	}
	b.SetVolume(v)
	return nil
}

func (m *Manager) BusVolume(name string) (float64, error) {
	b, err := m.mixer.Bus(name)
	if err != nil {
		return 0, err
	}
	return b.Volume(), nil
}

// Playbacks snapshots the active playbacks of ch.
func (m *Manager) Playbacks(ch string) ([]channel.Playback, error) {
	s, err := m.Channel(ch)
	if err != nil {
		return nil, err
	}
	return s.Playbacks(), nil
}

func (m *Manager) Load(ctx context.Context, address, group string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return m.cache.Load(ctx, address, group)
}

func (m *Manager) LoadAll(ctx context.Context, addresses []string, group string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return m.cache.LoadAll(ctx, addresses, group)
}

func (m *Manager) LoadLabel(ctx context.Context, label, group string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return m.cache.LoadLabel(ctx, label, group)
}

func (m *Manager) RegisterPack(ctx context.Context, pack resource.Pack, group string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	return m.cache.RegisterPack(ctx, pack, group)
}

func (m *Manager) Clip(address, group string) *audio.Clip {
	return m.cache.Clip(address, group)
}

func (m *Manager) Release(address, group string, force bool) error {
	return m.cache.Release(address, group, force)
}

func (m *Manager) ReleaseGroup(group string, force bool) error {
	return m.cache.ReleaseGroup(group, force)
}

func (m *Manager) ReleaseAll(ignoreCommon, force bool) {
	m.cache.ReleaseAll(ignoreCommon, force)
}

// Tick advances every channel by dt.
func (m *Manager) Tick(dt time.Duration) {
	if m.closed.Load() {
		return
	}
	m.channels.Tick(dt)
}

// Run ticks the manager every interval until ctx ends, passing the measured
// time since the previous tick.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = m.cfg.Output.Tick()
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if m.closed.Load() {
				return ErrClosed
			}
			m.Tick(now.Sub(last))
			last = now
		}
	}
}

// Shutdown stops every voice, closes the channels, drops every cached clip
// and closes the device. Later calls return nil.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed.Swap(true) {
		return nil
	}

	var errs []error
	if err := m.channels.Close(); err != nil {
		errs = append(errs, err)
	}
	m.cache.ReleaseAll(false, true)
	if err := m.dev.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing device: %w", err))
	}

	m.log.Info().Msg("audio manager shut down")

	return errors.Join(errs...)
}

// SPDX-License-Identifier: EPL-2.0

package resource

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/ik5/audpool/audio"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CommonGroup is where loads without a group land.
const CommonGroup = ""

const defaultConcurrency = 4

type group map[string]*entry

// Container is the clip cache. It is safe for concurrent use.
type Container struct {
	mu     sync.RWMutex
	groups map[string]group
	labels map[string][]string

	loader   Loader
	decoders *audio.Registry
	rate     int
	channels int
	workers  int

	flight singleflight.Group
	log    zerolog.Logger
}

type Option func(*Container)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) { c.log = l.With().Str("component", "resource").Logger() }
}

// WithFormat converts every loaded clip to the given rate and channel count.
func WithFormat(sampleRate, channels int) Option {
	return func(c *Container) {
		c.rate = sampleRate
		c.channels = channels
	}
}

// WithLabels sets the address lists LoadLabel and ReleaseLabel resolve.
func WithLabels(labels map[string][]string) Option {
	return func(c *Container) { c.labels = maps.Clone(labels) }
}

// WithConcurrency bounds parallel decodes in batch loads.
func WithConcurrency(n int) Option {
	return func(c *Container) {
		if n > 0 {
			c.workers = n
		}
	}
}

func New(loader Loader, decoders *audio.Registry, opts ...Option) *Container {
	c := &Container{
		groups:   map[string]group{CommonGroup: {}},
		labels:   map[string][]string{},
		loader:   loader,
		decoders: decoders,
		workers:  defaultConcurrency,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load decodes address into group unless it is already there. Concurrent
// loads of the same address and group share one decode.
func (c *Container) Load(ctx context.Context, address, grp string) error {
	if address == "" {
		c.log.Warn().Str("group", grp).Msg("load: empty address")
		return ErrEmptyAddress
	}
	if c.Loaded(address, grp) {
		return nil
	}

	_, err, _ := c.flight.Do(grp+"\x00"+address, func() (any, error) {
		if c.Loaded(address, grp) {
			return nil, nil
		}

		clip, err := c.read(ctx, address, address)
		if err != nil {
			return nil, err
		}

		c.store(grp, address, &entry{kind: Streamed, clip: clip})
		c.log.Debug().Str("address", address).Str("group", grp).Dur("duration", clip.Duration()).Msg("clip loaded")

		return nil, nil
	})
	if err != nil {
		c.log.Error().Err(err).Str("address", address).Str("group", grp).Msg("load failed")
	}

	return err
}

// LoadAll loads every address into group, decoding in parallel. The first
// failure cancels the rest; clips loaded before it stay cached.
func (c *Container) LoadAll(ctx context.Context, addresses []string, grp string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, address := range addresses {
		g.Go(func() error {
			return c.Load(ctx, address, grp)
		})
	}

	return g.Wait()
}

// LoadLabel loads the addresses configured under label.
func (c *Container) LoadLabel(ctx context.Context, label, grp string) error {
	addresses, err := c.label(label)
	if err != nil {
		return err
	}
	return c.LoadAll(ctx, addresses, grp)
}

// ReleaseLabel releases the streamed clips configured under label.
func (c *Container) ReleaseLabel(label, grp string) error {
	addresses, err := c.label(label)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, address := range addresses {
		_ = c.release(address, grp, false)
	}
	return nil
}

func (c *Container) label(label string) ([]string, error) {
	if label == "" {
		c.log.Warn().Msg("empty label")
		return nil, ErrEmptyLabel
	}

	c.mu.RLock()
	addresses, ok := c.labels[label]
	c.mu.RUnlock()

	if !ok {
		c.log.Warn().Str("label", label).Msg("unknown label")
		return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return addresses, nil
}

// RegisterPack decodes every pack entry into group as preloaded clips.
func (c *Container) RegisterPack(ctx context.Context, pack Pack, grp string) error {
	if len(pack.Entries) == 0 {
		c.log.Warn().Str("pack", pack.Name).Msg("empty pack")
		return fmt.Errorf("%w: %q", ErrEmptyPack, pack.Name)
	}

	for _, e := range pack.Entries {
		if e.Key() == "" {
			return fmt.Errorf("pack %q: %w", pack.Name, ErrEmptyAddress)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, e := range pack.Entries {
		key := e.Key()
		g.Go(func() error {
			clip, err := c.read(ctx, e.Path, key)
			if err != nil {
				return fmt.Errorf("pack %q: %w", pack.Name, err)
			}
			c.store(grp, key, &entry{kind: Preloaded, clip: clip})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.log.Error().Err(err).Str("pack", pack.Name).Msg("pack registration failed")
		return err
	}

	c.log.Info().Str("pack", pack.Name).Str("group", grp).Int("clips", len(pack.Entries)).Msg("pack registered")
	return nil
}

func (c *Container) read(ctx context.Context, location, name string) (*audio.Clip, error) {
	file, rc, err := c.loader.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	src, err := c.decoders.Decode(file, rc)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	clip, err := audio.ReadClip(name, src)
	if err != nil {
		return nil, err
	}

	if c.rate > 0 && c.channels > 0 {
		return audio.Convert(clip, c.rate, c.channels)
	}
	return clip, nil
}

func (c *Container) store(grp, address string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, ok := c.groups[grp]
	if !ok {
		g = group{}
		c.groups[grp] = g
	}
	if old, ok := g[address]; ok {
		old.dispose()
	}
	g[address] = e
}

// Clip returns the cached clip or nil.
func (c *Container) Clip(address, grp string) *audio.Clip {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.groups[grp][address]
	if !ok {
		c.log.Warn().Str("address", address).Str("group", grp).Msg("clip not loaded")
		return nil
	}
	return e.clip
}

func (c *Container) Loaded(address, grp string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.groups[grp][address]
	return ok
}

// Kind reports how address got into group.
func (c *Container) Kind(address, grp string) (Kind, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.groups[grp][address]
	if !ok {
		return Streamed, false
	}
	return e.kind, true
}

// Count is the number of clips cached in group.
func (c *Container) Count(grp string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.groups[grp])
}

// Groups lists the group names, sorted. CommonGroup is always first.
func (c *Container) Groups() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.groups))
}

// Release drops address from group. Preloaded clips need force.
func (c *Container) Release(address, grp string, force bool) error {
	if address == "" {
		c.log.Warn().Msg("release: empty address")
		return ErrEmptyAddress
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.release(address, grp, force)
}

func (c *Container) release(address, grp string, force bool) error {
	e, ok := c.groups[grp][address]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotLoaded, address)
	}
	if !e.releasable(force) {
		c.log.Warn().Str("address", address).Str("group", grp).Msg("refusing to release preloaded clip")
		return fmt.Errorf("%w: %q", ErrPreloaded, address)
	}

	e.dispose()
	delete(c.groups[grp], address)
	c.log.Debug().Str("address", address).Str("group", grp).Msg("clip released")

	return nil
}

// ReleaseGroup drops every releasable clip of group.
func (c *Container) ReleaseGroup(grp string, force bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.groups[grp]; !ok {
		c.log.Warn().Str("group", grp).Msg("release: unknown group")
		return fmt.Errorf("%w: %q", ErrUnknownGroup, grp)
	}

	c.releaseGroup(grp, force)
	return nil
}

func (c *Container) releaseGroup(grp string, force bool) {
	for address, e := range c.groups[grp] {
		if e.releasable(force) {
			e.dispose()
			delete(c.groups[grp], address)
		}
	}
}

// ReleaseAll releases every group, leaving CommonGroup alone when
// ignoreCommon is set, then removes the groups left empty.
func (c *Container) ReleaseAll(ignoreCommon, force bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for grp := range c.groups {
		if grp == CommonGroup && ignoreCommon {
			continue
		}
		c.releaseGroup(grp, force)
	}

	c.removeEmptyGroups()
}

// RemoveEmptyGroups forgets groups with no clips. CommonGroup stays.
func (c *Container) RemoveEmptyGroups() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeEmptyGroups()
}

func (c *Container) removeEmptyGroups() {
	for grp, g := range c.groups {
		if grp != CommonGroup && len(g) == 0 {
			delete(c.groups, grp)
			c.log.Debug().Str("group", grp).Msg("empty group removed")
		}
	}
}

// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Registry maps channel names to schedulers.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]*Scheduler
}

func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]*Scheduler)}
}

// Add registers s under its name.
func (r *Registry) Add(s *Scheduler) error {
	if s == nil || s.Name() == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.channels[s.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateChannel, s.Name())
	}
	r.channels[s.Name()] = s

	return nil
}

func (r *Registry) Get(name string) (*Scheduler, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	return s, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// All returns the schedulers ordered by name.
func (r *Registry) All() []*Scheduler {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Scheduler, 0, len(names))
	for _, name := range names {
		if s, ok := r.channels[name]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Tick advances every channel by dt.
func (r *Registry) Tick(dt time.Duration) {
	for _, s := range r.All() {
		s.Tick(dt)
	}
}

// Close closes and forgets every channel.
func (r *Registry) Close() error {
	chs := r.All()

	r.mu.Lock()
	clear(r.channels)
	r.mu.Unlock()

	var errs []error
	for _, s := range chs {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing channel %q: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

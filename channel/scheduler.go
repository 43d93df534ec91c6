// SPDX-License-Identifier: EPL-2.0

package channel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/envelope"
	"github.com/ik5/audpool/output"
	"github.com/ik5/audpool/slot"
	"github.com/ik5/audpool/utils"
	"github.com/rs/zerolog"
)

// Scheduler owns the voices and playback slots of one named channel.
type Scheduler struct {
	mu sync.Mutex

	cfg    Config
	voices voiceSet
	clips  []*audio.Clip
	pool   *slot.Pool

	next   int
	last   int
	nextID int

	volume float64
	gain   float64

	fades []fade

	log    zerolog.Logger
	obs    Observer
	closed bool
}

// New creates the channel's voices on dev.
func New(cfg Config, dev output.Device, opts ...Option) (*Scheduler, error) {
	if cfg.Name == "" {
		return nil, ErrEmptyName
	}

	o := options{log: zerolog.Nop(), obs: NopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}

	n := cfg.VoiceCount()
	voices := make(voiceSet, 0, n)
	for range n {
		v, err := dev.NewVoice(cfg.Mode, o.level)
		if err != nil {
			voices.close()
			return nil, fmt.Errorf("creating voice for channel %q: %w", cfg.Name, err)
		}
		voices = append(voices, v)
	}

	s := &Scheduler{
		cfg:    cfg,
		voices: voices,
		clips:  make([]*audio.Clip, n),
		pool:   slot.NewPool(n),
		last:   slot.Unused,
		log:    o.log.With().Str("component", "channel").Str("channel", cfg.Name).Logger(),
		obs:    o.obs,
	}
	s.setVolume(cfg.Volume)

	return s, nil
}

func (s *Scheduler) Name() string   { return s.cfg.Name }
func (s *Scheduler) Config() Config { return s.cfg }
func (s *Scheduler) Voices() int    { return len(s.voices) }

// Play starts clip and returns a handle to the new playback. The returned
// handle is Invalid whenever err is not nil.
func (s *Scheduler) Play(clip *audio.Clip, address string, opts ...PlayOption) (Handle, error) {
	var po playOptions
	for _, opt := range opts {
		opt(&po)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Invalid, ErrClosed
	}
	if clip == nil {
		return Invalid, s.reject(address, ErrNilClip)
	}
	if !s.cfg.AllowDuplicatePlay && s.sounding(clip) {
		return Invalid, s.reject(address, ErrDuplicatePlay)
	}

	override := slot.NoOverride
	volume := s.volume
	if po.volume != nil {
		volume = utils.ClampVolume(*po.volume)
		override = slot.Volume(volume)
	}

	id := s.nextID
	s.nextID++

	if s.cfg.Crossfade.Enabled {
		s.playCrossfade(clip, address, id, volume, override)
	} else {
		s.playNormal(clip, address, id, volume, override)
	}

	s.obs.Played(s.cfg.Name)
	s.log.Debug().Int("playback", id).Str("address", address).Int("voice", s.last).Msg("play")

	return Handle{id: id, address: address, ch: s}, nil
}

func (s *Scheduler) reject(address string, err error) error {
	s.log.Warn().Err(err).Str("address", address).Msg("play rejected")
	s.obs.Rejected(s.cfg.Name, err)
	return err
}

// sounding reports whether clip is audible on any voice of the channel.
func (s *Scheduler) sounding(clip *audio.Clip) bool {
	for i, c := range s.clips {
		if c == clip && s.voices.Playing(i) {
			return true
		}
	}
	return false
}

func (s *Scheduler) playNormal(clip *audio.Clip, address string, id int, volume float64, override slot.Override) {
	v := s.next
	idx := s.claim(v)
	s.pool.At(idx).Assign(id, address, v, override)

	gain := utils.VolumeToGain(volume)
	attack := s.cfg.Attack > 0
	s.start(v, clip, gain, attack)

	if attack {
		s.startFade(idx, gain, s.cfg.Attack, attackBound(override), envelope.Attack, keepPlaying)
	}

	s.advance(v)
}

func (s *Scheduler) playCrossfade(clip *audio.Clip, address string, id int, volume float64, override slot.Override) {
	xf := s.cfg.Crossfade
	v := s.next
	prev := s.last

	idx := s.claim(v)
	s.pool.At(idx).Assign(id, address, v, override)

	gain := utils.VolumeToGain(volume)
	attack := xf.Attack > 0
	s.start(v, clip, gain, attack)

	if prev >= 0 && prev != v {
		if i, ok := s.pool.FindVoice(prev); ok {
			s.startFade(i, 0, xf.Release, uncapped, envelope.Release, stopAfter)
		}
	}

	if attack {
		s.startFade(idx, gain, xf.Attack, attackBound(override), envelope.Attack, keepPlaying)
	}

	s.advance(v)
}

// attackBound makes a playback without its own volume follow the channel
// volume while it fades in.
func attackBound(o slot.Override) bound {
	if o.Set {
		return capped
	}
	return tracking
}

// claim takes voice v away from whichever playback holds it and returns a
// free slot for the new playback.
func (s *Scheduler) claim(v int) int {
	if i, ok := s.pool.FindVoice(v); ok {
		if s.voices.Playing(v) {
			s.log.Debug().Int("playback", s.pool.At(i).PlaybackID()).Int("voice", v).Msg("evicting playback")
			s.obs.Evicted(s.cfg.Name)
		}
		s.pool.Evict(i, s.voices)
	}

	idx, evicted := s.pool.Allocate(s.voices)
	if evicted {
		s.obs.Evicted(s.cfg.Name)
	}

	return idx
}

func (s *Scheduler) start(v int, clip *audio.Clip, gain float64, fadeIn bool) {
	voice := s.voices[v]
	if fadeIn {
		voice.SetGain(0)
	} else {
		voice.SetGain(gain)
	}

	voice.Play(clip)
	s.clips[v] = clip
}

func (s *Scheduler) advance(v int) {
	s.last = v
	s.next = (v + 1) % len(s.voices)
}

// StopPlayback stops the playback with id, fading it out if the channel has
// a release time.
func (s *Scheduler) StopPlayback(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.pool.Find(id)
	if !ok {
		s.log.Warn().Int("playback", id).Msg("stop: no active playback")
		return ErrNotFound
	}

	s.stopSlot(idx)
	return nil
}

// StopAddress stops every active playback of address.
func (s *Scheduler) StopAddress(address string) error {
	if address == "" {
		s.log.Warn().Msg("stop: empty address")
		return ErrEmptyAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.pool.Len() {
		if s.pool.At(i).IsActiveWithAddress(address) {
			s.stopSlot(i)
			found = true
		}
	}

	if !found {
		s.log.Warn().Str("address", address).Msg("stop: no active playback")
		return ErrNotFound
	}
	return nil
}

// StopAll stops every active playback and rewinds voice rotation.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pool.Len() {
		if s.pool.At(i).Active() {
			s.stopSlot(i)
		}
	}

	s.next, s.last = 0, slot.Unused
}

func (s *Scheduler) stopSlot(idx int) {
	sl := s.pool.At(idx)

	if s.cfg.Release > 0 {
		// an attack turns around from wherever its gain got to
		if sl.IsInAttack() {
			s.log.Debug().Int("playback", sl.PlaybackID()).Msg("attack switched to release")
		}
		s.startFade(idx, 0, s.cfg.Release, capped, envelope.Release, stopAfter)
		return
	}

	s.pool.Evict(idx, s.voices)
}

// ForceStop silences every voice at once. No fades run.
func (s *Scheduler) ForceStop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.forceStop()
}

func (s *Scheduler) forceStop() {
	for i := range s.pool.Len() {
		s.pool.Evict(i, s.voices)
	}
	for i := range s.voices {
		s.voices.Stop(i)
		s.clips[i] = nil
	}
	clear(s.fades)
	s.fades = s.fades[:0]
	s.next, s.last = 0, slot.Unused
}

// SetVolume sets the channel volume (0..100). Playing voices without a
// per-playback volume snap to it; fading ones pick it up on the next Tick.
func (s *Scheduler) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setVolume(v)

	for i := range s.pool.Len() {
		sl := s.pool.At(i)
		if !sl.Active() || sl.Override().Set || sl.FadeState() != envelope.None || !s.voices.Playing(sl.Voice()) {
			continue
		}
		s.voices[sl.Voice()].SetGain(s.gain)
	}
}

func (s *Scheduler) setVolume(v float64) {
	s.volume = utils.ClampVolume(v)
	s.gain = utils.VolumeToGain(s.volume)
}

func (s *Scheduler) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.volume
}

// SetPlaybackVolume pins one playback to volume (0..100), snapping when d
// is not positive and ramping over d otherwise. Any running fade is superseded,
// including a release.
func (s *Scheduler) SetPlaybackVolume(id int, volume float64, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.pool.Find(id)
	if !ok {
		s.log.Debug().Int("playback", id).Msg("set playback volume: no active playback")
		return ErrNotFound
	}

	sl := s.pool.At(idx)
	voice, ok := s.voices.at(sl.Voice())
	if !ok {
		s.log.Warn().Int("playback", id).Int("voice", sl.Voice()).Msg("set playback volume: voice out of range")
		return ErrNotFound
	}

	v := utils.ClampVolume(volume)
	sl.SetOverride(slot.Volume(v))

	gain := utils.VolumeToGain(v)
	if d <= 0 {
		sl.Cancel()
		voice.SetGain(gain)
		return nil
	}

	s.startFade(idx, gain, d, uncapped, envelope.Attack, keepPlaying)
	return nil
}

// IsPlaying reports whether playback id is still sounding, including while
// it fades out.
func (s *Scheduler) IsPlaying(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.pool.Find(id)
	if !ok {
		return false
	}

	return s.voices.Playing(s.pool.At(idx).Voice())
}

// Playback is a snapshot of one active slot.
type Playback struct {
	ID       int
	Address  string
	Voice    int
	State    envelope.State
	Gain     float64
	Override *float64
	Playing  bool
}

// Playbacks lists active playbacks in slot order.
func (s *Scheduler) Playbacks() []Playback {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Playback
	for i := range s.pool.Len() {
		sl := s.pool.At(i)
		if !sl.Active() {
			continue
		}

		p := Playback{
			ID:      sl.PlaybackID(),
			Address: sl.Address(),
			Voice:   sl.Voice(),
			State:   sl.FadeState(),
			Playing: s.voices.Playing(sl.Voice()),
		}
		if v, ok := s.voices.at(sl.Voice()); ok {
			p.Gain = v.Gain()
		}
		if o := sl.Override(); o.Set {
			vol := o.Volume
			p.Override = &vol
		}
		out = append(out, p)
	}

	return out
}

// Close force-stops the channel and releases its voices. Later calls fail
// with ErrClosed or do nothing.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.forceStop()
	s.closed = true

	return s.voices.close()
}

// voiceSet adapts the voice slice to slot.Voices.
type voiceSet []output.Voice

func (vs voiceSet) at(i int) (output.Voice, bool) {
	if i < 0 || i >= len(vs) {
		return nil, false
	}
	return vs[i], true
}

func (vs voiceSet) Playing(i int) bool {
	v, ok := vs.at(i)
	return ok && v.IsPlaying()
}

func (vs voiceSet) Stop(i int) {
	if v, ok := vs.at(i); ok {
		v.Stop()
	}
}

func (vs voiceSet) close() error {
	var errs []error
	for _, v := range vs {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
